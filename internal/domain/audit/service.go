package audit

import (
	"context"
	"strings"

	"animal-shelter/internal/domain/animals"
)

// AnimalGetter resuelve el 404 antes de listar.
type AnimalGetter interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	animals AnimalGetter
}

func NewService(repo Repository, ag AnimalGetter) *Service {
	return &Service{repo: repo, animals: ag}
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Entry, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListAuditEntries(ctx, animalID)
}
