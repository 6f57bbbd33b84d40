package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"siviack-portal/internal/backend"
)

func TestDetailViewPlaceholdersEmptyFields(t *testing.T) {
	days := 5
	view := DetailView(backend.Actividad{
		Descripcion:  "Implementación de SGSST",
		DuenoProceso: "",
		DaysLate:     &days,
		Avance:       62.4,
	})

	assert.Equal(t, "Implementación de SGSST", view["descripcion"])
	assert.Equal(t, DetailPlaceholder, view["dueno_proceso"])
	assert.Equal(t, DetailPlaceholder, view["fecha_compromiso"])
	assert.Equal(t, "5", view["days_late"])
	assert.Equal(t, "62", view["avance"])
}

func TestDetailViewKeepsOptionalPanelsEmpty(t *testing.T) {
	// Evidence and observations hide their panel when empty, so they must
	// not get the placeholder.
	view := DetailView(backend.Actividad{})
	assert.Empty(t, view["link_evidencia"])
	assert.Empty(t, view["observaciones"])
	assert.Equal(t, DetailPlaceholder, view["days_late"])
}
