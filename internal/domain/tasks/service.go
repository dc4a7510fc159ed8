package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"

	"github.com/google/uuid"
)

var ErrNotFound = apperr.NotFound("task not found")

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
	AnimalID    string
	Title       string
	Description string
	Priority    Priority
	AssigneeID  string
	DueDate     *time.Time
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, apperr.FieldError("title", "is required")
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Priority.Valid() {
		return Task{}, apperr.FieldError("priority", "must be LOW, MEDIUM or HIGH")
	}

	animalID := strings.TrimSpace(in.AnimalID)
	if animalID != "" {
		if _, err := s.animals.Get(ctx, animalID); err != nil {
			return Task{}, err
		}
	}

	now := s.now()
	t := Task{
		ID:          uuid.NewString(),
		AnimalID:    animalID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      StatusTodo,
		Priority:    in.Priority,
		AssigneeID:  strings.TrimSpace(in.AssigneeID),
		DueDate:     in.DueDate,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

type UpdateInput struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	AssigneeID  *string
	DueDate     *time.Time
	ClearDue    bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	now := s.now()

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Task{}, apperr.FieldError("title", "is required")
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return Task{}, apperr.FieldError("priority", "must be LOW, MEDIUM or HIGH")
		}
		t.Priority = *in.Priority
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return Task{}, apperr.FieldError("status", "must be TODO, IN_PROGRESS or DONE")
		}
		// completed_at sigue al estado
		switch {
		case *in.Status == StatusDone && t.Status != StatusDone:
			t.CompletedAt = &now
		case *in.Status != StatusDone:
			t.CompletedAt = nil
		}
		t.Status = *in.Status
	}
	if in.AssigneeID != nil {
		t.AssigneeID = strings.TrimSpace(*in.AssigneeID)
	}
	if in.ClearDue {
		t.DueDate = nil
	} else if in.DueDate != nil {
		t.DueDate = in.DueDate
	}

	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	t.DeletedAt = &now
	t.UpdatedAt = now
	return s.repo.Update(ctx, t)
}

func (s *Service) Get(ctx context.Context, id string) (Task, error) {
	t, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Task, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.FieldError("status", "must be TODO, IN_PROGRESS or DONE")
	}
	f.AnimalID = strings.TrimSpace(f.AnimalID)
	f.AssigneeID = strings.TrimSpace(f.AssigneeID)
	return s.repo.List(ctx, f)
}

// ListByAnimal devuelve 404 si el animal no existe.
func (s *Service) ListByAnimal(ctx context.Context, animalID string, f Filter) ([]Task, error) {
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return nil, err
	}
	f.AnimalID = animalID
	return s.List(ctx, f)
}
