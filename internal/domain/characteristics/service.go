package characteristics

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = apperr.NotFound("characteristic not found")
	ErrNotAssigned = apperr.NotFound("characteristic is not assigned to this animal")
	ErrDuplicate   = apperr.Conflict("a characteristic with that name already exists")
)

type AnimalGetter interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	animals AnimalGetter
	reval   *animals.Revalidator
	now     func() time.Time
}

func NewService(repo Repository, ag AnimalGetter, reval *animals.Revalidator) *Service {
	return &Service{
		repo:    repo,
		animals: ag,
		reval:   reval,
		now:     time.Now,
	}
}

type Input struct {
	Name        string
	Category    string
	Description string
}

func (s *Service) Create(ctx context.Context, in Input) (Characteristic, error) {
	in, err := s.clean(ctx, in, "")
	if err != nil {
		return Characteristic{}, err
	}

	now := s.now()
	c := Characteristic{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Characteristic{}, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Characteristic, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return Characteristic{}, err
	}
	in, err = s.clean(ctx, in, c.ID)
	if err != nil {
		return Characteristic{}, err
	}

	c.Name = in.Name
	c.Category = in.Category
	c.Description = in.Description
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Characteristic{}, err
	}
	// el nombre aparece en el detalle público
	s.reval.Animals(ctx)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	c.DeletedAt = &now
	c.UpdatedAt = now
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.reval.Animals(ctx)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Characteristic, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Characteristic{}, ErrNotFound
		}
		return Characteristic{}, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, category string) ([]Characteristic, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

// Assign es idempotente.
func (s *Service) Assign(ctx context.Context, actorID, animalID, characteristicID string) error {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return err
	}
	c, err := s.Get(ctx, characteristicID)
	if err != nil {
		return err
	}

	err = s.repo.Assign(ctx, Assignment{
		AnimalID:         animalID,
		CharacteristicID: c.ID,
		AssignedBy:       actorID,
		AssignedAt:       s.now(),
	})
	if err != nil {
		return err
	}
	s.reval.Animals(ctx, animalID)
	return nil
}

func (s *Service) Unassign(ctx context.Context, animalID, characteristicID string) error {
	animalID = strings.TrimSpace(animalID)
	ok, err := s.repo.Unassign(ctx, animalID, strings.TrimSpace(characteristicID))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAssigned
	}
	s.reval.Animals(ctx, animalID)
	return nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Characteristic, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

// TagsForAnimal alimenta el detalle público de animals.
func (s *Service) TagsForAnimal(ctx context.Context, animalID string) ([]animals.Tag, error) {
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	out := make([]animals.Tag, 0, len(items))
	for _, c := range items {
		out = append(out, animals.Tag{ID: c.ID, Name: c.Name, Category: c.Category})
	}
	return out, nil
}

func (s *Service) clean(ctx context.Context, in Input, selfID string) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return Input{}, apperr.FieldError("name", "is required")
	}
	if in.Category == "" {
		in.Category = "GENERAL"
	}

	existing, err := s.repo.List(ctx, "")
	if err != nil {
		return Input{}, err
	}
	for _, e := range existing {
		if e.ID != selfID && strings.EqualFold(e.Name, in.Name) {
			return Input{}, ErrDuplicate
		}
	}
	return in, nil
}
