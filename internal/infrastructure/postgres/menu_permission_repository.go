package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.MenuPermissionRepository = (*MenuPermissionRepo)(nil)

// MenuPermissionRepo implementa el puerto sobre una de las dos tablas de
// permisos (sub-usuarios o tiendas). El esquema de ambas es el mismo salvo el
// nombre de la columna de sujeto, así que la implementación se parametriza.
type MenuPermissionRepo struct {
	q          Querier
	table      string
	subjectCol string
}

// NewSubUserMenuPermissionRepository construye el adaptador sobre la tabla de
// permisos de sub-usuarios. Pasar pool o tx (Querier).
func NewSubUserMenuPermissionRepository(q Querier) *MenuPermissionRepo {
	return &MenuPermissionRepo{q: q, table: "sub_user_menu_permissions", subjectCol: "sub_user_id"}
}

// NewStoreMenuPermissionRepository construye el adaptador sobre la tabla de
// permisos de tiendas. Pasar pool o tx (Querier).
func NewStoreMenuPermissionRepository(q Querier) *MenuPermissionRepo {
	return &MenuPermissionRepo{q: q, table: "store_menu_permissions", subjectCol: "store_id"}
}

// ListBySubject devuelve las filas persistidas del sujeto.
func (r *MenuPermissionRepo) ListBySubject(subjectID string) ([]entity.MenuPermission, error) {
	query := fmt.Sprintf(
		`SELECT %s, menu_key, enabled FROM %s WHERE %s = $1`,
		r.subjectCol, r.table, r.subjectCol,
	)
	rows, err := r.q.Query(context.Background(), query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()

	var list []entity.MenuPermission
	for rows.Next() {
		var p entity.MenuPermission
		if err := rows.Scan(&p.SubjectID, &p.MenuKey, &p.Enabled); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Upsert crea o actualiza la fila (sujeto, llave) de forma atómica. El
// ON CONFLICT nativo evita la carrera del read-then-write entre dos llamadas
// concurrentes sobre la misma llave.
func (r *MenuPermissionRepo) Upsert(subjectID, menuKey string, enabled bool) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, menu_key, enabled, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (%s, menu_key)
		DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = now()`,
		r.table, r.subjectCol, r.subjectCol,
	)
	if _, err := r.q.Exec(context.Background(), query, subjectID, menuKey, enabled); err != nil {
		return fmt.Errorf("upsert %s: %w", r.table, err)
	}
	return nil
}

// DeleteBySubject elimina todas las filas del sujeto.
func (r *MenuPermissionRepo) DeleteBySubject(subjectID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.table, r.subjectCol)
	if _, err := r.q.Exec(context.Background(), query, subjectID); err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	return nil
}
