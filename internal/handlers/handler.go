package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"siviack-portal/internal/backend"
	"siviack-portal/internal/config"
	"siviack-portal/internal/masterdata"
	"siviack-portal/internal/middleware"
	"siviack-portal/internal/session"
)

// Handler bundles the portal's collaborators so routes share one wired set
// instead of reaching for globals.
type Handler struct {
	client   *backend.Client
	store    *masterdata.Store
	sessions *session.Manager
}

func New(client *backend.Client, store *masterdata.Store, sessions *session.Manager) *Handler {
	return &Handler{client: client, store: store, sessions: sessions}
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     config.AppConfig.Session.CookieName,
		Value:    "",
		HTTPOnly: true,
		MaxAge:   -1,
		Path:     "/",
	})
}

// backendError maps the client's error taxonomy onto responses: a 401
// destroys the session (forced logout), backend validation detail becomes
// one joined alert message, anything else is a generic failure. Every path
// terminates the request, so the UI can never hang on a loading state.
func (h *Handler) backendError(c *fiber.Ctx, err error) error {
	if errors.Is(err, backend.ErrUnauthorized) {
		if sess := middleware.CurrentSession(c); sess != nil {
			h.sessions.Destroy(sess.ID)
			h.store.Forget(sess.ID)
		}
		clearSessionCookie(c)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":  "Sesión expirada",
			"logout": true,
		})
	}

	var ve *backend.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Error(),
		})
	}

	log.Printf("backend request failed: %v", err)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": "No se pudo conectar con el servidor",
	})
}
