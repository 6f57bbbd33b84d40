package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"siviack-portal/internal/backend"
)

func withStatus(status string) backend.Actividad {
	return backend.Actividad{NombreStatus: status}
}

func TestComputeKPIs(t *testing.T) {
	actividades := []backend.Actividad{
		withStatus("Cerrada a Tiempo"),
		withStatus("Cerrada a Tiempo"),
		withStatus("Cerrada"),
		withStatus("Entregado"),
		withStatus("Cerrada Fuera de Plazo"),
		withStatus("En Proceso"),
		withStatus("En Proceso"),
		withStatus("En Revisión"),
		withStatus("Bloqueada"),
		withStatus("Pendiente"),
	}

	k := ComputeKPIs(actividades)
	assert.Equal(t, 10, k.Total)
	assert.Equal(t, 4, k.Completadas)
	assert.Equal(t, 1, k.Atrasadas)
	assert.Equal(t, 40, k.Cumplimiento)
}

func TestComputeKPIsCountsPrioridadAccion(t *testing.T) {
	// The backend can flag an activity late before its status text says so.
	actividades := []backend.Actividad{
		{NombreStatus: "En Proceso", PrioridadAccion: "Atrasada"},
		{NombreStatus: "En Proceso", PrioridadAccion: "atrasada"},
		{NombreStatus: "Cerrada Fuera de Plazo"},
	}

	k := ComputeKPIs(actividades)
	assert.Equal(t, 3, k.Atrasadas)
	assert.Equal(t, 0, k.Completadas)
}

func TestComputeKPIsRoundsCumplimiento(t *testing.T) {
	actividades := []backend.Actividad{
		withStatus("Cerrada a Tiempo"),
		withStatus("En Proceso"),
		withStatus("En Proceso"),
	}
	// 1/3 rounds to 33
	assert.Equal(t, 33, ComputeKPIs(actividades).Cumplimiento)
}

func TestComputeKPIsEmptyList(t *testing.T) {
	k := ComputeKPIs(nil)
	assert.Equal(t, 0, k.Total)
	assert.Equal(t, 0, k.Cumplimiento)
}
