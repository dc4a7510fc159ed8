package intakes

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/audit"
	"animal-shelter/internal/platform/metrics"

	"github.com/google/uuid"
)

var ErrNotArchived = apperr.Conflict("only archived animals can be re-admitted")

// AnimalCatalog es lo que intakes necesita del servicio de animales.
type AnimalCatalog interface {
	Prepare(ctx context.Context, in animals.CreateInput) (animals.Animal, error)
	Get(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	uow     UnitOfWork
	animals AnimalCatalog
	reval   *animals.Revalidator
	now     func() time.Time
}

func NewService(repo Repository, uow UnitOfWork, ac AnimalCatalog, reval *animals.Revalidator) *Service {
	return &Service{
		repo:    repo,
		uow:     uow,
		animals: ac,
		reval:   reval,
		now:     time.Now,
	}
}

type Input struct {
	Type       Type
	IntakeDate *time.Time
	Source     string
	Contact    string
	Notes      string
}

func (s *Service) build(actorID, animalID string, in Input) (Intake, error) {
	now := s.now()
	fields := map[string][]string{}

	if !in.Type.Valid() {
		fields["type"] = append(fields["type"], "invalid intake type")
	}
	date := now
	if in.IntakeDate != nil {
		if in.IntakeDate.After(now) {
			fields["intake_date"] = append(fields["intake_date"], "cannot be in the future")
		}
		date = *in.IntakeDate
	}
	if len(fields) > 0 {
		return Intake{}, apperr.Validation("invalid input", fields)
	}

	return Intake{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		Type:       in.Type,
		IntakeDate: date,
		Source:     strings.TrimSpace(in.Source),
		Contact:    strings.TrimSpace(in.Contact),
		Notes:      strings.TrimSpace(in.Notes),
		RecordedBy: actorID,
		CreatedAt:  now,
	}, nil
}

// Admit da de alta un animal nuevo (DRAFT) con su primer ingreso.
func (s *Service) Admit(ctx context.Context, actorID string, animal animals.CreateInput, in Input) (Intake, animals.Animal, error) {
	a, err := s.animals.Prepare(ctx, animal)
	if err != nil {
		return Intake{}, animals.Animal{}, err
	}
	it, err := s.build(actorID, a.ID, in)
	if err != nil {
		return Intake{}, animals.Animal{}, err
	}

	err = s.uow.Do(ctx, func(tx Tx) error {
		if err := tx.CreateAnimal(ctx, a); err != nil {
			return err
		}
		if err := tx.CreateIntake(ctx, it); err != nil {
			return err
		}
		return tx.AppendAuditEntry(ctx, audit.NewEntry(
			a.ID, audit.EntityIntake, it.ID, audit.ActionIntakeRecorded, actorID,
			map[string]string{"type": string(it.Type)},
			it.CreatedAt,
		))
	})
	if err != nil {
		return Intake{}, animals.Animal{}, err
	}
	return it, a, nil
}

// Readmit reingresa un animal archivado: ARCHIVED -> DRAFT sin motivo de archivo.
func (s *Service) Readmit(ctx context.Context, actorID, animalID string, in Input) (Intake, error) {
	animalID = strings.TrimSpace(animalID)
	it, err := s.build(actorID, animalID, in)
	if err != nil {
		return Intake{}, err
	}

	err = s.uow.Do(ctx, func(tx Tx) error {
		prev, err := tx.LockAnimal(ctx, animalID)
		if err != nil {
			if errors.Is(err, apperr.ErrRecordNotFound) {
				return animals.ErrNotFound
			}
			return err
		}

		ok, err := tx.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
			AnimalID:      animalID,
			From:          []animals.ListingStatus{animals.ListingArchived},
			To:            animals.ListingDraft,
			ArchiveReason: animals.ArchiveNone,
			At:            it.CreatedAt,
		})
		if err != nil {
			return err
		}
		if !ok {
			metrics.ListingConflicts.WithLabelValues("reintake").Inc()
			return ErrNotArchived
		}

		if err := tx.CreateIntake(ctx, it); err != nil {
			return err
		}
		return tx.AppendAuditEntry(ctx, audit.NewEntry(
			animalID, audit.EntityIntake, it.ID, audit.ActionReintake, actorID,
			map[string]string{
				"type":                    string(it.Type),
				"previous_archive_reason": string(prev.ArchiveReason),
			},
			it.CreatedAt,
		))
	})
	if err != nil {
		return Intake{}, err
	}

	s.reval.Animals(ctx, animalID)
	return it, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Intake, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListIntakesByAnimal(ctx, animalID)
}
