package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"siviack-portal/internal/backend"
	"siviack-portal/internal/config"
	"siviack-portal/internal/middleware"
	"siviack-portal/internal/session"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Nombre       string               `json:"nombre"`
	Rol          string               `json:"rol"`
	Capabilities session.Capabilities `json:"capabilities"`
}

// Login forwards credentials to the backend token endpoint, decodes the
// issued token's payload and binds it to a new portal session cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Solicitud inválida",
		})
	}

	token, err := h.client.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Credenciales inválidas",
			})
		}
		return h.backendError(c, err)
	}

	sess, err := h.sessions.Start(token)
	if err != nil {
		// Token payload undecodable: treat as a failed login, not a crash.
		if errors.Is(err, session.ErrBadToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token de sesión inválido",
			})
		}
		log.Printf("session start failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "No se pudo iniciar la sesión",
		})
	}

	cfg := config.AppConfig.Session
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    sess.ID,
		HTTPOnly: true,
		MaxAge:   int(cfg.TTL.Seconds()),
		Path:     "/",
	})

	return c.JSON(LoginResponse{
		Nombre:       sess.Nombre,
		Rol:          sess.Rol,
		Capabilities: session.CapabilitiesFor(sess.Rol),
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	if sess := middleware.CurrentSession(c); sess != nil {
		h.sessions.Destroy(sess.ID)
		h.store.Forget(sess.ID)
	}
	clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Sesión cerrada"})
}
