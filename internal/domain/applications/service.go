package applications

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/paging"

	"github.com/google/uuid"
)

var (
	ErrNotOwner         = apperr.Forbidden("this application belongs to another user")
	ErrAlreadyApplied   = apperr.Conflict("you already have an open application for this animal")
	ErrProfileLocked    = apperr.Conflict("the application can only be edited while PENDING or REVIEWING")
	ErrAnimalNotListing = apperr.Conflict("this animal is not accepting applications")
)

type Service struct {
	repo    Repository
	uow     UnitOfWork
	effects *Effects
	now     func() time.Time
}

func NewService(repo Repository, uow UnitOfWork, effects *Effects) *Service {
	return &Service{
		repo:    repo,
		uow:     uow,
		effects: effects,
		now:     time.Now,
	}
}

// Submit crea una solicitud PENDING. Una sola abierta por (animal, solicitante).
func (s *Service) Submit(ctx context.Context, applicantID, animalID string, p Profile) (Application, error) {
	if strings.TrimSpace(applicantID) == "" {
		return Application{}, apperr.Unauthorized("authentication required")
	}
	p, err := cleanProfile(p)
	if err != nil {
		return Application{}, err
	}

	now := s.now()
	app := Application{
		ID:          uuid.NewString(),
		AnimalID:    strings.TrimSpace(animalID),
		ApplicantID: applicantID,
		Profile:     p,
		Status:      StatusPending,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.uow.Do(ctx, func(tx Tx) error {
		animal, err := tx.LockAnimal(ctx, app.AnimalID)
		if err != nil {
			if errors.Is(err, apperr.ErrRecordNotFound) {
				return animals.ErrNotFound
			}
			return err
		}
		if !animal.ListingStatus.AcceptsApplications() {
			return ErrAnimalNotListing
		}

		open, err := tx.ListOpenApplicationsByAnimal(ctx, app.AnimalID)
		if err != nil {
			return err
		}
		for _, o := range open {
			if o.ApplicantID == applicantID {
				return ErrAlreadyApplied
			}
		}
		return tx.CreateApplication(ctx, app)
	})
	if err != nil {
		return Application{}, err
	}
	return app, nil
}

func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	a, err := s.repo.GetApplication(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return a, nil
}

// GetMine exige que el caller sea el solicitante.
func (s *Service) GetMine(ctx context.Context, applicantID, id string) (Application, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if a.ApplicantID != applicantID {
		return Application{}, ErrNotOwner
	}
	return a, nil
}

func (s *Service) ListMine(ctx context.Context, applicantID string, p paging.Params) (paging.Result[Application], error) {
	return s.List(ctx, ListQuery{ApplicantID: applicantID, Sort: SortSubmittedAt, Desc: true, Paging: p})
}

func (s *Service) List(ctx context.Context, q ListQuery) (paging.Result[Application], error) {
	for _, st := range q.Statuses {
		if !st.Valid() {
			return paging.Result[Application]{}, apperr.FieldError("status", "invalid status")
		}
	}
	q.Paging = q.Paging.Normalize()
	items, total, err := s.repo.ListApplications(ctx, q)
	if err != nil {
		return paging.Result[Application]{}, err
	}
	return paging.NewResult(items, total, q.Paging), nil
}

func (s *Service) History(ctx context.Context, id string) ([]StatusHistory, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListStatusHistory(ctx, id)
}

// UpdateProfile (solicitante) solo mientras PENDING o REVIEWING.
func (s *Service) UpdateProfile(ctx context.Context, applicantID, id string, p Profile) (Application, error) {
	p, err := cleanProfile(p)
	if err != nil {
		return Application{}, err
	}

	var out Application
	err = s.uow.Do(ctx, func(tx Tx) error {
		a, _, err := tx.LockApplicationWithAnimal(ctx, strings.TrimSpace(id))
		if err != nil {
			if errors.Is(err, apperr.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if a.ApplicantID != applicantID {
			return ErrNotOwner
		}
		if a.Status != StatusPending && a.Status != StatusReviewing {
			return ErrProfileLocked
		}
		a.Profile = p
		a.UpdatedAt = s.now()
		out = a
		return tx.UpdateApplication(ctx, a)
	})
	if err != nil {
		return Application{}, err
	}
	return out, nil
}

// StatusInput es lo que manda el staff para mover una solicitud.
type StatusInput struct {
	Status        Status
	Reason        string
	SetPrimary    *bool
	InternalNotes *string
}

// UpdateStatus es el punto de entrada del staff al orquestador.
func (s *Service) UpdateStatus(ctx context.Context, actorID, id string, in StatusInput) (Application, error) {
	t := Transition{
		ApplicationID: strings.TrimSpace(id),
		Status:        in.Status,
		Reason:        in.Reason,
		SetPrimary:    in.SetPrimary,
		InternalNotes: in.InternalNotes,
		Actor:         actorID,
	}
	return s.transition(ctx, t, nil)
}

// Withdraw (solicitante). Sin motivo usa ReasonWithdrawnByApplicant.
func (s *Service) Withdraw(ctx context.Context, applicantID, id, reason string) (Application, error) {
	if strings.TrimSpace(reason) == "" {
		reason = ReasonWithdrawnByApplicant
	}
	t := Transition{
		ApplicationID: strings.TrimSpace(id),
		Status:        StatusWithdrawn,
		Reason:        reason,
		Actor:         applicantID,
	}
	return s.transition(ctx, t, func(a Application) error {
		if a.ApplicantID != applicantID {
			return ErrNotOwner
		}
		return nil
	})
}

// transition valida fuera de la transacción (permiso/propiedad, motivo,
// primario) y después aplica el cambio atómicamente.
func (s *Service) transition(ctx context.Context, t Transition, guard func(Application) error) (Application, error) {
	if err := CheckInput(t); err != nil {
		return Application{}, err
	}
	current, err := s.Get(ctx, t.ApplicationID)
	if err != nil {
		return Application{}, err
	}
	if guard != nil {
		if err := guard(current); err != nil {
			return Application{}, err
		}
	}
	if err := CheckAgainst(current, t); err != nil {
		return Application{}, err
	}

	t.At = s.now()
	var res Applied
	err = s.uow.Do(ctx, func(tx Tx) error {
		var err error
		res, err = Apply(ctx, tx, t)
		return err
	})
	if err != nil {
		return Application{}, err
	}

	s.effects.Committed(ctx, res.Changes, res.AnimalID)
	return res.Application, nil
}

func cleanProfile(p Profile) (Profile, error) {
	fields := map[string][]string{}

	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	p.OtherPets = strings.TrimSpace(p.OtherPets)
	p.Experience = strings.TrimSpace(p.Experience)
	p.Message = strings.TrimSpace(p.Message)

	if p.FullName == "" {
		fields["full_name"] = []string{"is required"}
	}
	if p.Email == "" {
		fields["email"] = []string{"is required"}
	} else if _, err := mail.ParseAddress(p.Email); err != nil {
		fields["email"] = []string{"must be a valid email address"}
	}
	if p.HousingType == "" {
		p.HousingType = HousingOther
	}
	if !p.HousingType.Valid() {
		fields["housing_type"] = []string{"invalid housing type"}
	}

	if len(fields) > 0 {
		return Profile{}, apperr.Validation("invalid input", fields)
	}
	return p, nil
}
