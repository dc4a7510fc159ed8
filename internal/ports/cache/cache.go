package cache

import (
	"context"
	"time"
)

// Cache guarda respuestas serializadas de lecturas públicas.
// Las entradas se agrupan por tags para invalidarlas después de una mutación.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tags ...string) error
}
