package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/marketplace-api/internal/application/permission"
	"github.com/jhoicas/marketplace-api/pkg/logger"
)

var _ permission.Cache = (*PermissionCache)(nil)

// PermissionCache cachea mapas de permisos en Redis. Con client nil todas las
// operaciones son no-op: la aplicación funciona igual sin Redis, solo sin
// cache de lecturas.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewPermissionCache construye el cache. client puede ser nil.
func NewPermissionCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *PermissionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PermissionCache{client: client, ttl: ttl, log: log}
}

// GetMap lee un mapa cacheado. Cualquier fallo de Redis se trata como miss.
func (c *PermissionCache) GetMap(ctx context.Context, key string) (map[string]bool, bool) {
	if c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache get falló, se lee de DB")
		}
		return nil, false
	}
	var m map[string]bool
	if err := json.Unmarshal([]byte(val), &m); err != nil {
		return nil, false
	}
	return m, true
}

// SetMap guarda un mapa con TTL. Los fallos solo se loguean.
func (c *PermissionCache) SetMap(ctx context.Context, key string, m map[string]bool) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set falló")
	}
}

// Invalidate borra la llave después de una escritura de permisos.
func (c *PermissionCache) Invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache invalidate falló")
	}
}
