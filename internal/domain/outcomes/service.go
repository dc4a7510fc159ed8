package outcomes

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/applications"
	"animal-shelter/internal/domain/audit"
	"animal-shelter/internal/platform/metrics"

	"github.com/google/uuid"
)

// Motivo del cambio a ADOPTED cuando se registra la adopción.
const ReasonAdoptionRecorded = "Adoption outcome recorded"

var (
	ErrApplicationNotOpen = apperr.Conflict("the linked application is no longer open")
)

// AnimalGetter resuelve el 404 antes de abrir la transacción.
type AnimalGetter interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
}

type ApplicationGetter interface {
	Get(ctx context.Context, id string) (applications.Application, error)
}

type Service struct {
	repo    Repository
	uow     UnitOfWork
	animals AnimalGetter
	apps    ApplicationGetter
	effects *applications.Effects
	now     func() time.Time
}

func NewService(repo Repository, uow UnitOfWork, ag AnimalGetter, apps ApplicationGetter, effects *applications.Effects) *Service {
	return &Service{
		repo:    repo,
		uow:     uow,
		animals: ag,
		apps:    apps,
		effects: effects,
		now:     time.Now,
	}
}

type RecordInput struct {
	Type          Type
	OccurredAt    *time.Time
	ApplicationID string
	Destination   string
	Notes         string
}

// Record registra la salida del animal en una sola transacción:
// archiva el animal (o adopta vía la solicitud vinculada), rechaza las
// solicitudes abiertas restantes, guarda el outcome y la entrada de auditoría.
func (s *Service) Record(ctx context.Context, actorID, animalID string, in RecordInput) (Outcome, error) {
	animalID = strings.TrimSpace(animalID)
	appID := strings.TrimSpace(in.ApplicationID)
	now := s.now()

	if !in.Type.Valid() {
		return Outcome{}, apperr.FieldError("type", "invalid outcome type")
	}
	occurred := now
	if in.OccurredAt != nil {
		if in.OccurredAt.After(now) {
			return Outcome{}, apperr.FieldError("occurred_at", "cannot be in the future")
		}
		occurred = *in.OccurredAt
	}
	if appID != "" && in.Type != TypeAdoption {
		return Outcome{}, apperr.FieldError("application_id", "only adoptions can link an application")
	}

	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return Outcome{}, err
	}
	if appID != "" {
		app, err := s.apps.Get(ctx, appID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return Outcome{}, apperr.FieldError("application_id", "application not found")
			}
			return Outcome{}, err
		}
		if app.AnimalID != animalID {
			return Outcome{}, apperr.FieldError("application_id", "application belongs to another animal")
		}
	}

	o := Outcome{
		ID:            uuid.NewString(),
		AnimalID:      animalID,
		Type:          in.Type,
		OccurredAt:    occurred,
		ApplicationID: appID,
		Destination:   strings.TrimSpace(in.Destination),
		Notes:         strings.TrimSpace(in.Notes),
		RecordedBy:    actorID,
		CreatedAt:     now,
	}

	var changes []applications.Change
	err := s.uow.Do(ctx, func(tx Tx) error {
		var err error
		if appID != "" {
			changes, err = s.adopt(ctx, tx, o)
		} else {
			changes, err = s.archive(ctx, tx, o)
		}
		if err != nil {
			return err
		}

		if err := tx.CreateOutcome(ctx, o); err != nil {
			return err
		}
		return tx.AppendAuditEntry(ctx, audit.NewEntry(
			animalID, audit.EntityOutcome, o.ID, audit.ActionOutcomeRecorded, actorID,
			map[string]string{
				"type":             string(o.Type),
				"application_id":   appID,
				"rejected_pending": strconv.Itoa(len(changes)),
			},
			now,
		))
	})
	if err != nil {
		return Outcome{}, err
	}

	s.effects.Committed(ctx, changes, animalID)
	return o, nil
}

// adopt pasa la solicitud vinculada a ADOPTED con el orquestador, que
// archiva el animal y rechaza a las demás.
func (s *Service) adopt(ctx context.Context, tx Tx, o Outcome) ([]applications.Change, error) {
	app, _, err := tx.LockApplicationWithAnimal(ctx, o.ApplicationID)
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return nil, applications.ErrNotFound
		}
		return nil, err
	}
	if !app.Status.Open() {
		return nil, ErrApplicationNotOpen
	}

	res, err := applications.Apply(ctx, tx, applications.Transition{
		ApplicationID: app.ID,
		Status:        applications.StatusAdopted,
		Reason:        ReasonAdoptionRecorded,
		Actor:         o.RecordedBy,
		At:            o.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	return res.Changes, nil
}

// archive cubre las salidas sin solicitud vinculada.
func (s *Service) archive(ctx context.Context, tx Tx, o Outcome) ([]applications.Change, error) {
	if _, err := tx.LockAnimal(ctx, o.AnimalID); err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return nil, animals.ErrNotFound
		}
		return nil, err
	}

	ok, err := tx.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
		AnimalID:      o.AnimalID,
		From:          animals.NotArchived,
		To:            animals.ListingArchived,
		ArchiveReason: o.Type.ArchiveReason(),
		At:            o.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.ListingConflicts.WithLabelValues("archive").Inc()
		return nil, applications.ErrAnimalArchived
	}

	return applications.RejectOpen(ctx, tx, o.AnimalID, "", applications.ReasonNoLongerAvailable, o.RecordedBy, o.CreatedAt)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Outcome, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.Get(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListOutcomesByAnimal(ctx, animalID)
}
