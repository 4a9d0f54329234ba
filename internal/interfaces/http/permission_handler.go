package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/permission"
	"github.com/jhoicas/marketplace-api/internal/domain"
)

// SubUserPermissionHandler maneja los permisos de menú de sub-usuarios
// (protegido; la puerta de propiedad vive en el caso de uso).
type SubUserPermissionHandler struct {
	uc *permission.SubUserPermissions
}

// NewSubUserPermissionHandler construye el handler.
func NewSubUserPermissionHandler(uc *permission.SubUserPermissions) *SubUserPermissionHandler {
	return &SubUserPermissionHandler{uc: uc}
}

// GetAll devuelve el mapa completo de permisos del sub-usuario.
// GET /api/sub-users/:subUserId/menu-permissions
func (h *SubUserPermissionHandler) GetAll(c *fiber.Ctx) error {
	m, err := h.uc.GetAll(c.Context(), GetIdentity(c), c.Params("subUserId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PermissionsMapResponse{Permissions: m})
}

// SetOne hace upsert de una sola llave.
// POST /api/sub-users/:subUserId/menu-permissions
func (h *SubUserPermissionHandler) SetOne(c *fiber.Ctx) error {
	var in dto.SetPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.MenuKey == "" || in.Enabled == nil {
		return writeError(c, domain.NewValidationError("menuKey", "enabled"))
	}
	resp, err := h.uc.SetOne(c.Context(), GetIdentity(c), c.Params("subUserId"), in.MenuKey, *in.Enabled)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// SetBulk aplica un lote de permisos con validación exhaustiva.
// POST /api/sub-users/:subUserId/menu-permissions/bulk
func (h *SubUserPermissionHandler) SetBulk(c *fiber.Ctx) error {
	var in dto.BulkPermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.uc.SetBulk(c.Context(), GetIdentity(c), c.Params("subUserId"), in.Permissions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PermissionsMapResponse{Permissions: m})
}

// StorePermissionHandler maneja los permisos de menú por tienda (solo admin,
// garantizado en el router).
type StorePermissionHandler struct {
	uc *permission.StorePermissions
}

// NewStorePermissionHandler construye el handler.
func NewStorePermissionHandler(uc *permission.StorePermissions) *StorePermissionHandler {
	return &StorePermissionHandler{uc: uc}
}

// GetAll devuelve el mapa completo de permisos de la tienda.
// GET /api/stores/:storeId/menu-permissions
func (h *StorePermissionHandler) GetAll(c *fiber.Ctx) error {
	m, err := h.uc.GetAll(c.Context(), c.Params("storeId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PermissionsMapResponse{Permissions: m})
}

// SetOne hace upsert de una sola llave de la tienda.
// POST /api/stores/:storeId/menu-permissions
func (h *StorePermissionHandler) SetOne(c *fiber.Ctx) error {
	var in dto.SetPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.MenuKey == "" || in.Enabled == nil {
		return writeError(c, domain.NewValidationError("menuKey", "enabled"))
	}
	resp, err := h.uc.SetOne(c.Context(), c.Params("storeId"), in.MenuKey, *in.Enabled)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// SetBulk aplica un lote de permisos de la tienda.
// POST /api/stores/:storeId/menu-permissions/bulk
func (h *StorePermissionHandler) SetBulk(c *fiber.Ctx) error {
	var in dto.BulkPermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.uc.SetBulk(c.Context(), c.Params("storeId"), in.Permissions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PermissionsMapResponse{Permissions: m})
}
