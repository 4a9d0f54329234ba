package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/subuser"
)

// SubUserHandler maneja las peticiones HTTP del ciclo de vida de sub-usuarios
// (protegido).
type SubUserHandler struct {
	uc *subuser.UseCase
}

// NewSubUserHandler construye el handler.
func NewSubUserHandler(uc *subuser.UseCase) *SubUserHandler {
	return &SubUserHandler{uc: uc}
}

// Create crea un sub-usuario en estado pending.
// POST /api/sub-users/create
func (h *SubUserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSubUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista los sub-usuarios del tenant del caller.
// GET /api/sub-users/list
func (h *SubUserHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List(c.Context(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Get obtiene un sub-usuario (scoped: fuera del tenant responde 404).
// GET /api/sub-users/:id
func (h *SubUserHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Update actualiza parcialmente un sub-usuario del tenant del caller.
// POST /api/sub-users/update/:id
func (h *SubUserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSubUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina un sub-usuario y sus permisos en cascada.
// POST /api/sub-users/delete/:id
func (h *SubUserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPending lista todos los pendientes con nombres resueltos (admin).
// GET /api/sub-users/pending
func (h *SubUserHandler) ListPending(c *fiber.Ctx) error {
	items, err := h.uc.ListPending(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// ListByStatus lista filtrando por estado (default approved).
// GET /api/sub-users/approved?status=
func (h *SubUserHandler) ListByStatus(c *fiber.Ctx) error {
	resp, err := h.uc.ListByStatus(c.Context(), GetIdentity(c), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Summary devuelve los conteos del dashboard.
// GET /api/sub-users/summary?storeId=&vendorId=
func (h *SubUserHandler) Summary(c *fiber.Ctx) error {
	resp, err := h.uc.Summary(c.Context(), GetIdentity(c), c.Query("storeId"), c.Query("vendorId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Approve aprueba un sub-usuario pendiente (admin).
// POST /api/sub-users/approve/:id
func (h *SubUserHandler) Approve(c *fiber.Ctx) error {
	resp, err := h.uc.Approve(c.Context(), GetIdentity(c).UserID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Reject rechaza un sub-usuario con motivo obligatorio (admin).
// POST /api/sub-users/reject/:id
func (h *SubUserHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectSubUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Reject(c.Context(), GetIdentity(c).UserID, c.Params("id"), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
