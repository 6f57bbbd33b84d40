package activity

import (
	"math"
	"strings"

	"siviack-portal/internal/backend"
)

// KPIs summarize the activity list currently in view. They are derived on
// every request, never stored.
type KPIs struct {
	Total        int `json:"total"`
	Completadas  int `json:"completadas"`
	Atrasadas    int `json:"atrasadas"`
	Cumplimiento int `json:"cumplimiento"`
}

// ComputeKPIs derives the dashboard counters. Completed means the resolved
// status reads closed or delivered; late counts both the server-derived
// "Atrasada" action priority and over-limit status text. Compliance is
// round(completed/total*100), 0 for an empty list.
func ComputeKPIs(actividades []backend.Actividad) KPIs {
	k := KPIs{Total: len(actividades)}

	for _, act := range actividades {
		category := CategoryFor(act.NombreStatus)
		if category == CategoryDone {
			k.Completadas++
		}
		// The two lateness signals are independent: the backend may flag an
		// activity late before its status text says so.
		if category == CategoryLate || strings.EqualFold(act.PrioridadAccion, "Atrasada") {
			k.Atrasadas++
		}
	}

	if k.Total > 0 {
		k.Cumplimiento = int(math.Round(float64(k.Completadas) / float64(k.Total) * 100))
	}
	return k
}
