package subuser

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye el repo
// de sub-usuarios y el de sus permisos de menú. Se usa para que el alta (fila
// más siembra de permisos) y el borrado (cascada de permisos) sean atómicos.
type TxRunner interface {
	RunSubUser(ctx context.Context, fn func(
		subUsers repository.SubUserRepository,
		perms repository.MenuPermissionRepository,
	) error) error
}
