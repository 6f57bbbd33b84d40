package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized signals a 401 from the backend: the stored token is no
// longer accepted and the portal session must be destroyed.
var ErrUnauthorized = errors.New("backend: unauthorized")

// FieldError is one entry of a structured validation failure, FastAPI style:
// {"detail": [{"loc": ["body", "campo"], "msg": "..."}]}.
type FieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func (f FieldError) Field() string {
	if len(f.Loc) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.Loc))
	for _, p := range f.Loc {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

// ValidationError carries the backend's field-level messages. Error joins
// them one per line so the UI can show a single alert.
type ValidationError struct {
	Fields []FieldError
	Detail string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Detail != "" {
			return e.Detail
		}
		return "datos inválidos"
	}
	lines := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if field := f.Field(); field != "" {
			lines = append(lines, field+": "+f.Msg)
		} else {
			lines = append(lines, f.Msg)
		}
	}
	return strings.Join(lines, "\n")
}
