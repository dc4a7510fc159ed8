package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/characteristics"
)

type characteristicRepo struct {
	mu       sync.RWMutex
	byID     map[string]characteristics.Characteristic
	assigned map[string]map[string]characteristics.Assignment // animal -> characteristic
}

func NewCharacteristicRepo() characteristics.Repository {
	return &characteristicRepo{
		byID:     make(map[string]characteristics.Characteristic),
		assigned: make(map[string]map[string]characteristics.Assignment),
	}
}

func (r *characteristicRepo) Create(ctx context.Context, c characteristics.Characteristic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("characteristic id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("characteristic already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *characteristicRepo) Update(ctx context.Context, c characteristics.Characteristic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.byID[c.ID]; !ok || cur.DeletedAt != nil {
		return apperr.ErrRecordNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *characteristicRepo) GetByID(ctx context.Context, id string) (characteristics.Characteristic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok || c.DeletedAt != nil {
		return characteristics.Characteristic{}, apperr.ErrRecordNotFound
	}
	return c, nil
}

func (r *characteristicRepo) List(ctx context.Context, category string) ([]characteristics.Characteristic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]characteristics.Characteristic, 0)
	for _, c := range r.byID {
		if c.DeletedAt != nil {
			continue
		}
		if category != "" && !strings.EqualFold(c.Category, category) {
			continue
		}
		out = append(out, c)
	}
	sortCharacteristics(out)
	return out, nil
}

func (r *characteristicRepo) Assign(ctx context.Context, a characteristics.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byChar, ok := r.assigned[a.AnimalID]
	if !ok {
		byChar = make(map[string]characteristics.Assignment)
		r.assigned[a.AnimalID] = byChar
	}
	if _, exists := byChar[a.CharacteristicID]; !exists {
		byChar[a.CharacteristicID] = a
	}
	return nil
}

func (r *characteristicRepo) Unassign(ctx context.Context, animalID, characteristicID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assigned[animalID][characteristicID]; !ok {
		return false, nil
	}
	delete(r.assigned[animalID], characteristicID)
	return true, nil
}

func (r *characteristicRepo) ListByAnimal(ctx context.Context, animalID string) ([]characteristics.Characteristic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]characteristics.Characteristic, 0)
	for id := range r.assigned[animalID] {
		c, ok := r.byID[id]
		if !ok || c.DeletedAt != nil {
			continue
		}
		out = append(out, c)
	}
	sortCharacteristics(out)
	return out, nil
}

func sortCharacteristics(items []characteristics.Characteristic) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}
