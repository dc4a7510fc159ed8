package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/references"
)

type referenceRepo struct {
	mu   sync.RWMutex
	byID map[string]references.Reference
}

func NewReferenceRepo() references.Repository {
	return &referenceRepo{
		byID: make(map[string]references.Reference),
	}
}

func (r *referenceRepo) Create(ctx context.Context, ref references.Reference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(ref.ID) == "" {
		return errors.New("reference id required")
	}
	if _, exists := r.byID[ref.ID]; exists {
		return errors.New("reference already exists")
	}
	r.byID[ref.ID] = ref
	return nil
}

func (r *referenceRepo) GetByID(ctx context.Context, id string) (references.Reference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, ok := r.byID[id]
	if !ok {
		return references.Reference{}, apperr.ErrRecordNotFound
	}
	return ref, nil
}

func (r *referenceRepo) List(ctx context.Context, kind references.Kind, parentID string) ([]references.Reference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]references.Reference, 0)
	for _, ref := range r.byID {
		if kind != "" && ref.Kind != kind {
			continue
		}
		if parentID != "" && ref.ParentID != parentID {
			continue
		}
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
