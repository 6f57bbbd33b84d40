package handlers

import (
	"github.com/gofiber/fiber/v2"

	"siviack-portal/internal/activity"
	"siviack-portal/internal/backend"
	"siviack-portal/internal/middleware"
)

// ActividadRow is one table row: the record plus its precomputed badge
// style and the details projection the modal renders without further
// network calls.
type ActividadRow struct {
	backend.Actividad
	Badge   activity.Badge    `json:"badge"`
	Detalle map[string]string `json:"detalle"`
}

type actividadesResponse struct {
	Actividades []ActividadRow `json:"actividades"`
	KPIs        activity.KPIs  `json:"kpis"`
}

func filtersFromQuery(c *fiber.Ctx) backend.ActividadFilters {
	return backend.ActividadFilters{
		EmpresaID:     c.Query("empresa_id"),
		StatusID:      c.Query("status_id"),
		ResponsableID: c.Query("responsable_id"),
		FechaInicio:   c.Query("fecha_inicio"),
		FechaFin:      c.Query("fecha_fin"),
	}
}

// GetActividades serves the dashboard table: filtered records, derived
// KPIs and badge styles in a single response.
func (h *Handler) GetActividades(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	actividades, err := h.client.ListActividades(c.Context(), sess.Token, filtersFromQuery(c))
	if err != nil {
		return h.backendError(c, err)
	}

	rows := make([]ActividadRow, 0, len(actividades))
	for _, act := range actividades {
		rows = append(rows, ActividadRow{
			Actividad: act,
			Badge:     activity.BadgeFor(act.NombreStatus),
			Detalle:   activity.DetailView(act),
		})
	}

	return c.JSON(actividadesResponse{
		Actividades: rows,
		KPIs:        activity.ComputeKPIs(actividades),
	})
}

// GetMasterData serves the cached reference lists for dropdowns, plus the
// cascade endpoint below for area filtering.
func (h *Handler) GetMasterData(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	snap := h.store.Get(c.Context(), sess)
	return c.JSON(snap)
}

// GetAreasForEmpresa answers the empresa→area cascade from the cached
// snapshot. No company selected yields an empty list.
func (h *Handler) GetAreasForEmpresa(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	empresaID, _ := c.ParamsInt("empresaId")
	snap := h.store.Get(c.Context(), sess)
	return c.JSON(snap.AreasForEmpresa(empresaID))
}
