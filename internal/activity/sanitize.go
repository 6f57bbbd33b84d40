package activity

import (
	"fmt"
	"strconv"
	"strings"
)

// serverOnlyFields are resolved or computed by the backend and must never
// travel on a create or update request.
var serverOnlyFields = map[string]struct{}{
	"id":                 {},
	"nombre_empresa":     {},
	"nombre_area":        {},
	"nombre_responsable": {},
	"nombre_status":      {},
	"days_late":          {},
	"prioridad_accion":   {},
	"created_at":         {},
	"fecha_origen":       {},
}

// Sanitize normalizes a raw form payload before it is sent to the backend:
//   - empty strings and the literal "NaN" become null
//   - keys ending in _id are coerced to integers, null when unparseable
//   - avance is coerced to a float in [0,100], 0 when unparseable
//   - server-only fields are stripped on both create and edit
//
// The input map is not modified.
func Sanitize(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		if _, skip := serverOnlyFields[key]; skip {
			continue
		}

		switch {
		case strings.HasSuffix(key, "_id"):
			out[key] = toIntOrNil(value)
		case key == "avance":
			out[key] = toAvance(value)
		default:
			out[key] = toNullable(value)
		}
	}
	return out
}

func isBlank(s string) bool {
	return s == "" || s == "NaN"
}

func toNullable(value any) any {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && isBlank(s) {
		return nil
	}
	return value
}

func toIntOrNil(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		// JSON numbers arrive as float64
		return int(v)
	case int:
		return v
	case string:
		if isBlank(v) {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return n
	default:
		n, err := strconv.Atoi(fmt.Sprint(v))
		if err != nil {
			return nil
		}
		return n
	}
}

func toAvance(value any) float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}
