package animals

import (
	"context"
	"strings"
	"sync"

	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/platform/metrics"
	"animal-shelter/internal/ports/cache"
)

// Tags de cache de las lecturas públicas.
const TagCatalog = "animals"

func TagAnimal(id string) string { return "animal:" + id }

// Revalidator invalida lo cacheado después de un commit.
// Es best-effort: un error de cache se loguea y no vuelve al caller.
//
// gen cuenta invalidaciones. Una lectura toma Generation antes de ir al
// repo; fill no cachea si hubo invalidaciones desde entonces.
type Revalidator struct {
	cache cache.Cache
	log   logger.Logger

	mu  sync.Mutex
	gen uint64
}

func (r *Revalidator) Generation() uint64 {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// fill corre set solo si no hubo invalidaciones desde gen.
func (r *Revalidator) fill(gen uint64, set func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == gen {
		set()
	}
}

func NewRevalidator(c cache.Cache, log logger.Logger) *Revalidator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Revalidator{cache: c, log: log}
}

// Animals invalida el catálogo y el detalle de cada id.
func (r *Revalidator) Animals(ctx context.Context, ids ...string) {
	if r == nil || r.cache == nil {
		return
	}
	tags := []string{TagCatalog}
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			tags = append(tags, TagAnimal(id))
		}
	}

	r.mu.Lock()
	r.gen++
	err := r.cache.Invalidate(ctx, tags...)
	r.mu.Unlock()
	if err != nil {
		r.log.Warn("cache invalidation failed", map[string]any{
			"tags":  tags,
			"error": err,
		})
		return
	}
	for _, t := range tags {
		if t != TagCatalog {
			t = "animal"
		}
		metrics.CacheInvalidations.WithLabelValues(t).Inc()
	}
}
