package memorycache

import (
	"context"
	"sync"
	"time"

	"animal-shelter/internal/ports/cache"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache es la cache en proceso: LRU con TTL único más un índice de tags.
// El ttl de Set se ignora; manda el del constructor.
// Las claves que el LRU expulsa o expira salen del índice por onEvict.
type Cache struct {
	mu      sync.Mutex // serializa Set e Invalidate
	entries *expirable.LRU[string, []byte]

	// idxMu nunca se toma mientras se llama a entries: onEvict corre
	// con el lock interno del LRU tomado.
	idxMu sync.Mutex
	tags  map[string]map[string]struct{}
	byKey map[string]map[string]struct{}
}

var _ cache.Cache = (*Cache)(nil)

func New(maxKeys int, ttl time.Duration) *Cache {
	if maxKeys <= 0 {
		maxKeys = 1024
	}
	c := &Cache{
		tags:  make(map[string]map[string]struct{}),
		byKey: make(map[string]map[string]struct{}),
	}
	c.entries = expirable.NewLRU[string, []byte](maxKeys, c.forget, ttl)
	return c
}

func (c *Cache) forget(key string, _ []byte) {
	c.idxMu.Lock()
	defer c.idxMu.Unlock()

	for t := range c.byKey[key] {
		delete(c.tags[t], key)
		if len(c.tags[t]) == 0 {
			delete(c.tags, t)
		}
	}
	delete(c.byKey, key)
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.entries.Get(key)
	return v, ok, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Add(key, value)
	if len(tags) == 0 {
		return nil
	}

	c.idxMu.Lock()
	defer c.idxMu.Unlock()
	own, ok := c.byKey[key]
	if !ok {
		own = make(map[string]struct{}, len(tags))
		c.byKey[key] = own
	}
	for _, t := range tags {
		keys, ok := c.tags[t]
		if !ok {
			keys = make(map[string]struct{})
			c.tags[t] = keys
		}
		keys[key] = struct{}{}
		own[t] = struct{}{}
	}
	return nil
}

// Invalidate borra todas las claves asociadas a cualquiera de los tags.
func (c *Cache) Invalidate(ctx context.Context, tags ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.idxMu.Lock()
	var keys []string
	for _, t := range tags {
		for key := range c.tags[t] {
			keys = append(keys, key)
		}
	}
	c.idxMu.Unlock()

	// Remove dispara forget, que limpia el índice
	for _, key := range keys {
		c.entries.Remove(key)
	}
	return nil
}
