package permission

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// BulkTxRunner ejecuta los upserts de un bulk dentro de una sola transacción
// para evitar aplicaciones parciales si la base falla a mitad del lote.
type BulkTxRunner interface {
	RunPermissions(ctx context.Context, fn func(perms repository.MenuPermissionRepository) error) error
}

// Cache es el cache de lectura de mapas de permisos. Las implementaciones
// deben degradar a no-op cuando el backend no está disponible: un fallo de
// cache nunca es un fallo de la operación.
type Cache interface {
	GetMap(ctx context.Context, key string) (map[string]bool, bool)
	SetMap(ctx context.Context, key string, m map[string]bool)
	Invalidate(ctx context.Context, key string)
}
