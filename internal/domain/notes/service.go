package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/domain/animals"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = apperr.NotFound("note not found")
	ErrNotAuthor = apperr.Forbidden("only the author or an admin can change this note")
)

const maxBody = 10000

type AnimalGetter interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
}

// Actor es quien edita; el rol decide si puede tocar notas ajenas.
type Actor struct {
	ID   string
	Role authz.Role
}

func (a Actor) canEdit(n Note) bool {
	return a.Role == authz.RoleAdmin || (a.ID != "" && a.ID == n.AuthorID)
}

type Service struct {
	repo    Repository
	animals AnimalGetter
	now     func() time.Time
}

func NewService(repo Repository, ag AnimalGetter) *Service {
	return &Service{
		repo:    repo,
		animals: ag,
		now:     time.Now,
	}
}

func cleanBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", apperr.FieldError("body", "is required")
	}
	if len(body) > maxBody {
		return "", apperr.FieldError("body", "is too long")
	}
	return body, nil
}

func (s *Service) Create(ctx context.Context, actor Actor, animalID, body string) (Note, error) {
	body, err := cleanBody(body)
	if err != nil {
		return Note{}, err
	}
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return Note{}, err
	}

	now := s.now()
	n := Note{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		AuthorID:  actor.ID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, actor Actor, id, body string) (Note, error) {
	body, err := cleanBody(body)
	if err != nil {
		return Note{}, err
	}
	n, err := s.get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if !actor.canEdit(n) {
		return Note{}, ErrNotAuthor
	}

	n.Body = body
	n.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	n, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canEdit(n) {
		return ErrNotAuthor
	}
	now := s.now()
	n.DeletedAt = &now
	n.UpdatedAt = now
	return s.repo.Update(ctx, n)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Note, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) get(ctx context.Context, id string) (Note, error) {
	n, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return n, nil
}
