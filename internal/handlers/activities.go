package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"siviack-portal/internal/activity"
	"siviack-portal/internal/middleware"
)

// CreateActividad validates and sanitizes the form payload before it ever
// reaches the backend. A validation failure blocks the request entirely.
func (h *Handler) CreateActividad(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Solicitud inválida",
		})
	}

	if problems := activity.Validate(payload); len(problems) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.Join(problems, "\n"),
		})
	}

	created, err := h.client.CreateActividad(c.Context(), sess.Token, activity.Sanitize(payload))
	if err != nil {
		return h.backendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) UpdateActividad(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Identificador inválido",
		})
	}

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Solicitud inválida",
		})
	}

	if problems := activity.Validate(payload); len(problems) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.Join(problems, "\n"),
		})
	}

	updated, err := h.client.UpdateActividad(c.Context(), sess.Token, id, activity.Sanitize(payload))
	if err != nil {
		return h.backendError(c, err)
	}
	return c.JSON(updated)
}

// GetPendientes serves the "Mis Pendientes" agenda cards.
func (h *Handler) GetPendientes(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	pendientes, err := h.client.MisPendientes(c.Context(), sess.Token)
	if err != nil {
		return h.backendError(c, err)
	}

	rows := make([]ActividadRow, 0, len(pendientes))
	for _, act := range pendientes {
		rows = append(rows, ActividadRow{
			Actividad: act,
			Badge:     activity.BadgeFor(act.NombreStatus),
			Detalle:   activity.DetailView(act),
		})
	}
	return c.JSON(rows)
}
