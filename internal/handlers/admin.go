package handlers

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"siviack-portal/internal/backend"
	"siviack-portal/internal/middleware"
	"siviack-portal/internal/session"
)

// Master-data CRUD. Every write invalidates the cached reference snapshot
// so open forms pick up the change on their next load.

func (h *Handler) CreateEmpresa(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	var empresa backend.Empresa
	if err := c.BodyParser(&empresa); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Solicitud inválida"})
	}

	created, err := h.client.CreateEmpresa(c.Context(), sess.Token, empresa)
	if err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) UpdateEmpresa(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Identificador inválido"})
	}

	var empresa backend.Empresa
	if err := c.BodyParser(&empresa); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Solicitud inválida"})
	}

	updated, err := h.client.UpdateEmpresa(c.Context(), sess.Token, id, empresa)
	if err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.JSON(updated)
}

func (h *Handler) DeleteEmpresa(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Identificador inválido"})
	}

	if err := h.client.DeleteEmpresa(c.Context(), sess.Token, id); err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.JSON(fiber.Map{"message": "Empresa eliminada"})
}

func (h *Handler) CreateArea(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	var area backend.Area
	if err := c.BodyParser(&area); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Solicitud inválida"})
	}

	created, err := h.client.CreateArea(c.Context(), sess.Token, area)
	if err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) UpdateArea(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Identificador inválido"})
	}

	var area backend.Area
	if err := c.BodyParser(&area); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Solicitud inválida"})
	}

	updated, err := h.client.UpdateArea(c.Context(), sess.Token, id, area)
	if err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.JSON(updated)
}

func (h *Handler) DeleteArea(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Identificador inválido"})
	}

	if err := h.client.DeleteArea(c.Context(), sess.Token, id); err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.JSON(fiber.Map{"message": "Área eliminada"})
}

// normalizeUsuario applies the CLIENTE rule: only client accounts carry a
// company; any other role gets its association nulled before submission.
func normalizeUsuario(u *backend.Usuario) error {
	if u.Rol != session.RolCliente {
		u.EmpresaID = nil
		return nil
	}
	if u.EmpresaID == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Un usuario CLIENTE requiere empresa")
	}
	return nil
}

func (h *Handler) CreateUsuario(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	var usuario backend.Usuario
	if err := c.BodyParser(&usuario); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Solicitud inválida"})
	}
	if err := normalizeUsuario(&usuario); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.client.CreateUsuario(c.Context(), sess.Token, usuario)
	if err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) UpdateUsuario(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Identificador inválido"})
	}

	var usuario backend.Usuario
	if err := c.BodyParser(&usuario); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Solicitud inválida"})
	}
	if err := normalizeUsuario(&usuario); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.client.UpdateUsuario(c.Context(), sess.Token, id, usuario)
	if err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.JSON(updated)
}

func (h *Handler) DeleteUsuario(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Identificador inválido"})
	}

	if err := h.client.DeleteUsuario(c.Context(), sess.Token, id); err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.JSON(fiber.Map{"message": "Usuario eliminado"})
}

type catalogoRequest struct {
	Nombre string `json:"nombre"`
}

func validCategoria(categoria string) bool {
	return slices.Contains(backend.CatalogoCategorias, categoria)
}

// GetCatalogoItems serves one master list from the cached snapshot so the
// catalog tab can render the selected list without reloading everything.
func (h *Handler) GetCatalogoItems(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	categoria := c.Params("categoria")
	if !validCategoria(categoria) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Lista desconocida"})
	}

	snap := h.store.Get(c.Context(), sess)
	items := snap.Listas.ByCategoria(categoria)
	if items == nil {
		items = []backend.CatalogoItem{}
	}
	return c.JSON(items)
}

func (h *Handler) CreateCatalogoItem(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	categoria := c.Params("categoria")
	if !validCategoria(categoria) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Lista desconocida"})
	}

	var req catalogoRequest
	if err := c.BodyParser(&req); err != nil || req.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nombre requerido"})
	}

	created, err := h.client.CreateCatalogoItem(c.Context(), sess.Token, categoria, req.Nombre)
	if err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) DeleteCatalogoItem(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	categoria := c.Params("categoria")
	if !validCategoria(categoria) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Lista desconocida"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Identificador inválido"})
	}

	if err := h.client.DeleteCatalogoItem(c.Context(), sess.Token, categoria, id); err != nil {
		return h.backendError(c, err)
	}
	h.store.Invalidate()
	return c.JSON(fiber.Map{"message": "Ítem eliminado"})
}

// GetAuditLogs serves the read-only audit trail tab.
func (h *Handler) GetAuditLogs(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	logs, err := h.client.ListAuditLogs(c.Context(), sess.Token)
	if err != nil {
		return h.backendError(c, err)
	}
	return c.JSON(logs)
}
