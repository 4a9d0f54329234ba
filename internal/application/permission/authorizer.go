package permission

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// Authorizer resuelve y muta permisos de menú por sujeto (sub-usuario o
// tienda según el repo y el registry inyectados). La asimetría de defaults
// vive en el registry, no aquí: para un sub-usuario las llaves sin fila valen
// false, para una tienda true.
type Authorizer struct {
	perms    repository.MenuPermissionRepository
	registry entity.MenuRegistry
	txRunner BulkTxRunner
	cache    Cache
	cacheKey string // prefijo de llave de cache, ej. "perms:subuser:"
}

// NewAuthorizer construye el autorizador. cache puede ser un no-op.
func NewAuthorizer(perms repository.MenuPermissionRepository, registry entity.MenuRegistry, txRunner BulkTxRunner, cache Cache, cacheKeyPrefix string) *Authorizer {
	return &Authorizer{perms: perms, registry: registry, txRunner: txRunner, cache: cache, cacheKey: cacheKeyPrefix}
}

// GetAll devuelve el mapa COMPLETO sobre todas las llaves del catálogo: las
// llaves sin fila persistida llevan el default del tipo de entidad. Nunca
// devuelve un mapa parcial.
func (a *Authorizer) GetAll(ctx context.Context, subjectID string) (map[string]bool, error) {
	key := a.cacheKey + subjectID
	if m, ok := a.cache.GetMap(ctx, key); ok {
		return m, nil
	}

	rows, err := a.perms.ListBySubject(subjectID)
	if err != nil {
		return nil, err
	}
	stored := make(map[string]bool, len(rows))
	for _, r := range rows {
		stored[r.MenuKey] = r.Enabled
	}

	out := make(map[string]bool, len(a.registry.Keys))
	for _, k := range a.registry.Keys {
		if v, ok := stored[k]; ok {
			out[k] = v
		} else {
			out[k] = a.registry.DefaultEnabled
		}
	}

	a.cache.SetMap(ctx, key, out)
	return out, nil
}

// SetOne hace upsert de una sola llave. La llave debe pertenecer al catálogo.
func (a *Authorizer) SetOne(ctx context.Context, subjectID, menuKey string, enabled bool) (*dto.PermissionResponse, error) {
	if !a.registry.Valid(menuKey) {
		return nil, domain.NewValidationError("llave de menú inválida: " + menuKey + " (válidas: " + strings.Join(a.registry.Keys, ", ") + ")")
	}
	if err := a.perms.Upsert(subjectID, menuKey, enabled); err != nil {
		return nil, err
	}
	a.cache.Invalidate(ctx, a.cacheKey+subjectID)
	return &dto.PermissionResponse{MenuKey: menuKey, Enabled: enabled}, nil
}

// SetBulk valida TODO el lote antes de aplicar nada: junta todas las llaves
// fuera de catálogo y todos los valores no booleanos en un único error, en vez
// de fallar en el primero. Los upserts se aplican dentro de una transacción y
// la respuesta es el mapa completo resultante (incluidas llaves no tocadas).
func (a *Authorizer) SetBulk(ctx context.Context, subjectID string, raw map[string]any) (map[string]bool, error) {
	if len(raw) == 0 {
		return nil, domain.NewValidationError("permissions")
	}

	var invalidKeys, invalidValues []string
	clean := make(map[string]bool, len(raw))
	for k, v := range raw {
		if !a.registry.Valid(k) {
			invalidKeys = append(invalidKeys, k)
			continue
		}
		b, ok := v.(bool)
		if !ok {
			invalidValues = append(invalidValues, k)
			continue
		}
		clean[k] = b
	}
	if len(invalidKeys) > 0 || len(invalidValues) > 0 {
		var fields []string
		sort.Strings(invalidKeys)
		sort.Strings(invalidValues)
		for _, k := range invalidKeys {
			fields = append(fields, "llave inválida: "+k)
		}
		for _, k := range invalidValues {
			fields = append(fields, "valor no booleano: "+k)
		}
		return nil, domain.NewValidationError(fields...)
	}

	err := a.txRunner.RunPermissions(ctx, func(perms repository.MenuPermissionRepository) error {
		// Cada llave mapea a una fila independiente; el orden no importa.
		for k, v := range clean {
			if err := perms.Upsert(subjectID, k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.cache.Invalidate(ctx, a.cacheKey+subjectID)
	return a.GetAll(ctx, subjectID)
}
