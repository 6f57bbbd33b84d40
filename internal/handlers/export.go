package handlers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"siviack-portal/internal/backend"
	"siviack-portal/internal/export"
	"siviack-portal/internal/middleware"
)

// Export handlers re-run the current filter set and stream the rendered
// file. An empty result refuses with a message instead of an empty file.

func (h *Handler) ExportExcel(c *fiber.Ctx) error {
	return h.export(c, "actividades.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.Excel)
}

func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	return h.export(c, "actividades.pdf", "application/pdf", export.PDF)
}

func (h *Handler) export(c *fiber.Ctx, filename, contentType string,
	render func([]backend.Actividad) (*bytes.Buffer, error)) error {

	sess := middleware.CurrentSession(c)

	actividades, err := h.client.ListActividades(c.Context(), sess.Token, filtersFromQuery(c))
	if err != nil {
		return h.backendError(c, err)
	}

	buf, err := render(actividades)
	if err != nil {
		if errors.Is(err, export.ErrNoData) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No hay actividades para exportar",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "No se pudo generar el archivo",
		})
	}

	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
