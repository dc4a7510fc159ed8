package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/assessments"
)

type assessmentRepo struct {
	mu   sync.RWMutex
	byID map[string]assessments.Assessment
}

func NewAssessmentRepo() assessments.Repository {
	return &assessmentRepo{
		byID: make(map[string]assessments.Assessment),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, a assessments.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("assessment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("assessment already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *assessmentRepo) Update(ctx context.Context, a assessments.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.byID[a.ID]; !ok || cur.DeletedAt != nil {
		return apperr.ErrRecordNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (assessments.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok || a.DeletedAt != nil {
		return assessments.Assessment{}, apperr.ErrRecordNotFound
	}
	return a, nil
}

func (r *assessmentRepo) ListByAnimal(ctx context.Context, animalID string, kind assessments.Kind) ([]assessments.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assessments.Assessment, 0)
	for _, a := range r.byID {
		if a.AnimalID != animalID || a.DeletedAt != nil {
			continue
		}
		if kind != "" && a.Kind != kind {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AssessedAt.After(out[j].AssessedAt)
	})
	return out, nil
}
