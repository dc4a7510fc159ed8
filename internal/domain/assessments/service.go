package assessments

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"

	"github.com/google/uuid"
)

var ErrNotFound = apperr.NotFound("assessment not found")

type AnimalGetter interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
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

type CreateInput struct {
	Kind       Kind
	Score      int
	Summary    string
	Details    string
	AssessedAt *time.Time
}

func (s *Service) Create(ctx context.Context, actorID, animalID string, in CreateInput) (Assessment, error) {
	now := s.now()
	fields := map[string][]string{}

	if !in.Kind.Valid() {
		fields["kind"] = append(fields["kind"], "must be BEHAVIOR, MEDICAL or TEMPERAMENT")
	}
	checkScore(fields, in.Score)
	summary := strings.TrimSpace(in.Summary)
	if summary == "" {
		fields["summary"] = append(fields["summary"], "is required")
	}
	at := now
	if in.AssessedAt != nil {
		if in.AssessedAt.After(now) {
			fields["assessed_at"] = append(fields["assessed_at"], "cannot be in the future")
		}
		at = *in.AssessedAt
	}
	if len(fields) > 0 {
		return Assessment{}, apperr.Validation("invalid input", fields)
	}

	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return Assessment{}, err
	}

	a := Assessment{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		Kind:       in.Kind,
		Score:      in.Score,
		Summary:    summary,
		Details:    strings.TrimSpace(in.Details),
		AssessedAt: at,
		AssessedBy: actorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

type UpdateInput struct {
	Kind    *Kind
	Score   *int
	Summary *string
	Details *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Assessment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Assessment{}, err
	}

	fields := map[string][]string{}
	if in.Kind != nil {
		if !in.Kind.Valid() {
			fields["kind"] = append(fields["kind"], "must be BEHAVIOR, MEDICAL or TEMPERAMENT")
		}
		a.Kind = *in.Kind
	}
	if in.Score != nil {
		checkScore(fields, *in.Score)
		a.Score = *in.Score
	}
	if in.Summary != nil {
		a.Summary = strings.TrimSpace(*in.Summary)
		if a.Summary == "" {
			fields["summary"] = append(fields["summary"], "is required")
		}
	}
	if in.Details != nil {
		a.Details = strings.TrimSpace(*in.Details)
	}
	if len(fields) > 0 {
		return Assessment{}, apperr.Validation("invalid input", fields)
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	a.DeletedAt = &now
	a.UpdatedAt = now
	return s.repo.Update(ctx, a)
}

func (s *Service) Get(ctx context.Context, id string) (Assessment, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}
	return a, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string, kind Kind) ([]Assessment, error) {
	if kind != "" && !kind.Valid() {
		return nil, apperr.FieldError("kind", "must be BEHAVIOR, MEDICAL or TEMPERAMENT")
	}
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListByAnimal(ctx, animalID, kind)
}

func checkScore(fields map[string][]string, score int) {
	if score < MinScore || score > MaxScore {
		fields["score"] = append(fields["score"], "must be between 1 and 5")
	}
}
