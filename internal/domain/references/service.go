package references

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter/internal/apperr"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = apperr.NotFound("reference not found")
	ErrDuplicate = apperr.Conflict("a reference with that name already exists")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Kind     Kind
	Name     string
	ParentID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Reference, error) {
	name := strings.TrimSpace(in.Name)
	parentID := strings.TrimSpace(in.ParentID)

	if !in.Kind.Valid() {
		return Reference{}, apperr.FieldError("kind", "must be SPECIES, BREED or COLOR")
	}
	if name == "" {
		return Reference{}, apperr.FieldError("name", "is required")
	}

	switch in.Kind {
	case KindBreed:
		if parentID == "" {
			return Reference{}, apperr.FieldError("parent_id", "breed requires a species")
		}
		parent, err := s.repo.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, apperr.ErrRecordNotFound) {
				return Reference{}, apperr.FieldError("parent_id", "species not found")
			}
			return Reference{}, err
		}
		if parent.Kind != KindSpecies {
			return Reference{}, apperr.FieldError("parent_id", "parent must be a species")
		}
	default:
		if parentID != "" {
			return Reference{}, apperr.FieldError("parent_id", "only breeds have a parent")
		}
	}

	existing, err := s.repo.List(ctx, in.Kind, parentID)
	if err != nil {
		return Reference{}, err
	}
	for _, e := range existing {
		if strings.EqualFold(e.Name, name) {
			return Reference{}, ErrDuplicate
		}
	}

	ref := Reference{
		ID:        uuid.NewString(),
		Kind:      in.Kind,
		Name:      name,
		ParentID:  parentID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, ref); err != nil {
		return Reference{}, err
	}
	return ref, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Reference, error) {
	ref, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Reference{}, ErrNotFound
		}
		return Reference{}, err
	}
	return ref, nil
}

func (s *Service) List(ctx context.Context, kind Kind, parentID string) ([]Reference, error) {
	if kind != "" && !kind.Valid() {
		return nil, apperr.FieldError("kind", "must be SPECIES, BREED or COLOR")
	}
	return s.repo.List(ctx, kind, strings.TrimSpace(parentID))
}

// Expect verifica que id exista y sea del kind indicado.
// Lo usa animals para validar species/breed/color.
func (s *Service) Expect(ctx context.Context, id string, kind Kind) (Reference, error) {
	ref, err := s.GetByID(ctx, id)
	if err != nil {
		return Reference{}, err
	}
	if ref.Kind != kind {
		return Reference{}, apperr.NotFound(strings.ToLower(string(kind)) + " not found")
	}
	return ref, nil
}
