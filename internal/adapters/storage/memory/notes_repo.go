package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/notes"
)

type noteRepo struct {
	mu   sync.RWMutex
	byID map[string]notes.Note
}

func NewNoteRepo() notes.Repository {
	return &noteRepo{
		byID: make(map[string]notes.Note),
	}
}

func (r *noteRepo) Create(ctx context.Context, n notes.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(n.ID) == "" {
		return errors.New("note id required")
	}
	if _, exists := r.byID[n.ID]; exists {
		return errors.New("note already exists")
	}
	r.byID[n.ID] = n
	return nil
}

func (r *noteRepo) Update(ctx context.Context, n notes.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.byID[n.ID]; !ok || cur.DeletedAt != nil {
		return apperr.ErrRecordNotFound
	}
	r.byID[n.ID] = n
	return nil
}

func (r *noteRepo) GetByID(ctx context.Context, id string) (notes.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[id]
	if !ok || n.DeletedAt != nil {
		return notes.Note{}, apperr.ErrRecordNotFound
	}
	return n, nil
}

func (r *noteRepo) ListByAnimal(ctx context.Context, animalID string) ([]notes.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notes.Note, 0)
	for _, n := range r.byID {
		if n.AnimalID == animalID && n.DeletedAt == nil {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
