package middleware

import (
	"github.com/gofiber/fiber/v2"

	"siviack-portal/internal/config"
	"siviack-portal/internal/models"
	"siviack-portal/internal/session"
)

const sessionKey = "session"

// CurrentSession returns the session attached by the auth middleware.
func CurrentSession(c *fiber.Ctx) *models.Session {
	sess, _ := c.Locals(sessionKey).(*models.Session)
	return sess
}

func cookieName() string {
	return config.AppConfig.Session.CookieName
}

// PageAuth gates rendered pages: no valid session means a redirect to
// /login, never an error page.
func PageAuth(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := mgr.Get(c.Cookies(cookieName()))
		if err != nil {
			return c.Redirect("/login")
		}
		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// APIAuth gates JSON endpoints with a 401 the page scripts translate into
// a redirect to /login.
func APIAuth(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := mgr.Get(c.Cookies(cookieName()))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Sesión no válida",
			})
		}
		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// AdminRequired guards the master-data APIs.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Solo administradores",
			})
		}
		return c.Next()
	}
}

// AdminPage is the page-flavored admin gate: non-admins land back on the
// dashboard instead of getting a JSON error.
func AdminPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsAdmin() {
			return c.Redirect("/dashboard")
		}
		return c.Next()
	}
}

// EditorRequired blocks the read-only CLIENTE role from write endpoints.
func EditorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if sess == nil || !session.CapabilitiesFor(sess.Rol).CanEdit {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Tu rol no permite editar actividades",
			})
		}
		return c.Next()
	}
}
