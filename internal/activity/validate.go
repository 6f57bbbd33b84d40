package activity

import (
	"fmt"
	"strings"
)

// Validate enforces the required fields before any request is issued:
// descripcion, empresa_id and area_id. It runs against the raw form
// payload, so "" and a missing key are equally invalid.
func Validate(payload map[string]any) []string {
	var problems []string

	if blankField(payload["descripcion"]) {
		problems = append(problems, "descripcion: campo obligatorio")
	}
	if toIntOrNil(payload["empresa_id"]) == nil {
		problems = append(problems, "empresa_id: seleccione una empresa")
	}
	if toIntOrNil(payload["area_id"]) == nil {
		problems = append(problems, "area_id: seleccione un área")
	}
	return problems
}

func blankField(value any) bool {
	if value == nil {
		return true
	}
	return strings.TrimSpace(fmt.Sprint(value)) == ""
}
