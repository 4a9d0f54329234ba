package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/pkg/jwt"
)

// LocalIdentity llave de Locals donde el middleware deja la identidad.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token JWT y deja la domain.Identity en
// c.Locals. La identidad se construye una sola vez aquí; los handlers la leen
// con GetIdentity.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		ident, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, domain.Identity{
			UserID:   ident.UserID,
			Role:     ident.Role,
			VendorID: ident.VendorID,
			StoreID:  ident.StoreID,
		})
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) domain.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return domain.Identity{Role: -1}
	}
	ident, ok := v.(domain.Identity)
	if !ok {
		return domain.Identity{Role: -1}
	}
	return ident
}

// RequireAdmin corta con 403 si el caller no es admin. Debe ir después de
// AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetIdentity(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol administrador"})
		}
		return c.Next()
	}
}
