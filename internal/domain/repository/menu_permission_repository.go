package repository

import "github.com/jhoicas/marketplace-api/internal/domain/entity"

// MenuPermissionRepository define el puerto de persistencia para permisos de
// menú. El sujeto es un sub-usuario o una tienda según la implementación
// (tablas sub_user_menu_permissions y store_menu_permissions respectivamente);
// la semántica de upsert es idéntica en ambas.
type MenuPermissionRepository interface {
	// ListBySubject devuelve las filas persistidas del sujeto (puede ser un
	// subconjunto del catálogo; las llaves ausentes se resuelven con el default
	// del registry en el read path).
	ListBySubject(subjectID string) ([]entity.MenuPermission, error)
	// Upsert crea o actualiza la fila (subjectID, menuKey) de forma atómica
	// (ON CONFLICT DO UPDATE); nunca produce error de llave duplicada.
	Upsert(subjectID, menuKey string, enabled bool) error
	// DeleteBySubject elimina todas las filas del sujeto (cascada del borrado
	// de sub-usuario).
	DeleteBySubject(subjectID string) error
}
