package handlers

import (
	"github.com/gofiber/fiber/v2"

	"siviack-portal/internal/config"
	"siviack-portal/internal/middleware"
	"siviack-portal/internal/session"
)

func (h *Handler) pageData(c *fiber.Ctx, title, active string) fiber.Map {
	data := fiber.Map{
		"Title":  title,
		"Active": active,
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		data["Nombre"] = sess.Nombre
		data["Rol"] = sess.Rol
		data["Caps"] = session.CapabilitiesFor(sess.Rol)
	}
	return data
}

// LoginPage is public; a browser that already holds a valid session lands
// on the dashboard instead.
func (h *Handler) LoginPage(c *fiber.Ctx) error {
	if _, err := h.sessions.Get(c.Cookies(config.AppConfig.Session.CookieName)); err == nil {
		return c.Redirect("/dashboard")
	}
	return c.Render("pages/login", fiber.Map{
		"Title": "Iniciar Sesión - SIVIACK Portal",
	})
}

func (h *Handler) DashboardPage(c *fiber.Ctx) error {
	return c.Render("pages/dashboard", h.pageData(c, "Panel de Control - SIVIACK Portal", "dashboard"))
}

func (h *Handler) AdminPage(c *fiber.Ctx) error {
	return c.Render("pages/empresas", h.pageData(c, "Administración - SIVIACK Portal", "empresas"))
}

func (h *Handler) PendientesPage(c *fiber.Ctx) error {
	return c.Render("pages/pendientes", h.pageData(c, "Mis Pendientes - SIVIACK Portal", "pendientes"))
}
