package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/marketplace-api/internal/application/billing"
	"github.com/jhoicas/marketplace-api/internal/application/permission"
	"github.com/jhoicas/marketplace-api/internal/application/subuser"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ subuser.TxRunner = (*TxRunner)(nil)
var _ billing.FormatTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSubUser inicia una transacción con el repo de sub-usuarios y el de sus
// permisos atados a la tx (creación con seed de permisos, borrado en cascada).
func (r *TxRunner) RunSubUser(ctx context.Context, fn func(
	subUsers repository.SubUserRepository,
	perms repository.MenuPermissionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSubUserRepository(tx), NewSubUserMenuPermissionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFormats inicia una transacción con el repo de formatos atado a la tx
// (swap de default clear-then-set).
func (r *TxRunner) RunFormats(ctx context.Context, fn func(
	formats repository.InvoiceFormatRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceFormatRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ permission.BulkTxRunner = (*PermissionTxRunner)(nil)

// PermissionTxRunner corre los upserts de un bulk de permisos dentro de una
// transacción. newRepo decide contra qué tabla (sub-usuarios o tiendas) se ata
// el repo transaccional.
type PermissionTxRunner struct {
	pool    *pgxpool.Pool
	newRepo func(Querier) *MenuPermissionRepo
}

// NewSubUserPermissionTxRunner construye el runner sobre la tabla de permisos
// de sub-usuarios.
func NewSubUserPermissionTxRunner(pool *pgxpool.Pool) *PermissionTxRunner {
	return &PermissionTxRunner{pool: pool, newRepo: NewSubUserMenuPermissionRepository}
}

// NewStorePermissionTxRunner construye el runner sobre la tabla de permisos de
// tiendas.
func NewStorePermissionTxRunner(pool *pgxpool.Pool) *PermissionTxRunner {
	return &PermissionTxRunner{pool: pool, newRepo: NewStoreMenuPermissionRepository}
}

// RunPermissions inicia la transacción y ejecuta fn con el repo atado a la tx.
func (r *PermissionTxRunner) RunPermissions(ctx context.Context, fn func(
	perms repository.MenuPermissionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(r.newRepo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
