package activity

import (
	"fmt"

	"siviack-portal/internal/backend"
)

// DetailPlaceholder replaces empty values in the read-only details view.
const DetailPlaceholder = "No especificado"

func DetailValue(value string) string {
	if value == "" {
		return DetailPlaceholder
	}
	return value
}

// DetailView projects one record into the labeled field set the details
// modal renders. It is a pure projection: observaciones and link_evidencia
// stay empty (not placeholdered) so the view can hide their panels.
func DetailView(act backend.Actividad) map[string]string {
	days := ""
	if act.DaysLate != nil {
		days = fmt.Sprintf("%d", *act.DaysLate)
	}
	return map[string]string{
		"descripcion":          DetailValue(act.Descripcion),
		"development_doing":    DetailValue(act.DevelopmentDoing),
		"orden_servicio_legal": DetailValue(act.OrdenServicioLegal),
		"shk":                  DetailValue(act.Shk),
		"prioridad_atencion":   DetailValue(act.PrioridadAtencion),
		"dueno_proceso":        DetailValue(act.DuenoProceso),
		"nombre_responsable":   DetailValue(act.NombreResponsable),
		"autoridad_rq":         DetailValue(act.AutoridadRQ),
		"fecha_compromiso":     DetailValue(act.FechaCompromiso),
		"fecha_entrega_real":   DetailValue(act.FechaEntregaReal),
		"proxima_validacion":   DetailValue(act.ProximaValidacion),
		"nombre_status":        DetailValue(act.NombreStatus),
		"condicion_actual":     DetailValue(act.CondicionActual),
		"producto_entregable":  DetailValue(act.ProductoEntregable),
		"days_late":            DetailValue(days),
		"avance":               fmt.Sprintf("%.0f", act.Avance),
		"link_evidencia":       act.LinkEvidencia,
		"observaciones":        act.Observaciones,
	}
}
