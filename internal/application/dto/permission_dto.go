package dto

// SetPermissionRequest cuerpo de POST .../menu-permissions.
// Enabled es puntero para distinguir "ausente" de false.
type SetPermissionRequest struct {
	MenuKey string `json:"menuKey"`
	Enabled *bool  `json:"enabled"`
}

// BulkPermissionsRequest cuerpo de POST .../menu-permissions/bulk. Los valores
// llegan como json.RawMessage-equivalente (any) para poder reportar los no
// booleanos de forma exhaustiva en la validación.
type BulkPermissionsRequest struct {
	Permissions map[string]any `json:"permissions"`
}

// PermissionResponse resultado de un upsert individual.
type PermissionResponse struct {
	MenuKey string `json:"menuKey"`
	Enabled bool   `json:"enabled"`
}

// PermissionsMapResponse mapa completo sobre todas las llaves del catálogo
// (nunca parcial: las llaves sin fila llevan el default del tipo de entidad).
type PermissionsMapResponse struct {
	Permissions map[string]bool `json:"permissions"`
}
