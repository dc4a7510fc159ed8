package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = apperr.NotFound("application not found")
	ErrAnimalUnavailable  = apperr.Conflict("animal no longer available")
	ErrAnimalArchived     = apperr.Conflict("animal is already archived")
	ErrPrimaryNotApproved = apperr.FieldError("is_primary", "only an APPROVED application can be primary")
	ErrReasonRequired     = apperr.FieldError("reason", "a reason is required for this status change")
)

// Transition es un cambio pedido sobre una solicitud.
// Status vacío = no cambia el estado (solo primario / notas).
type Transition struct {
	ApplicationID string
	Status        Status
	Reason        string
	SetPrimary    *bool
	InternalNotes *string
	Actor         string
	At            time.Time
}

// Change es un cambio de estado ya escrito dentro de la transacción.
type Change struct {
	Application Application
	From        Status
	To          Status
	Reason      string
}

// Applied resume lo que hizo Apply; se usa para los efectos post-commit.
type Applied struct {
	Application Application
	Changes     []Change
	AnimalID    string
}

// CheckInput valida lo que no depende del estado guardado.
func CheckInput(t Transition) error {
	if t.Status != "" && !t.Status.Valid() {
		return apperr.FieldError("status", "invalid status")
	}
	if t.SetPrimary != nil && *t.SetPrimary && t.Status != "" && t.Status != StatusApproved {
		return ErrPrimaryNotApproved
	}
	return nil
}

// CheckAgainst valida t contra el estado actual de a (motivo, primario, tabla).
func CheckAgainst(a Application, t Transition) error {
	to := t.Status
	if to == "" {
		to = a.Status
	}
	if t.SetPrimary != nil && *t.SetPrimary && to != StatusApproved {
		return ErrPrimaryNotApproved
	}
	if a.Status == to {
		return nil
	}
	if ReasonRequired(a.Status, to) && strings.TrimSpace(t.Reason) == "" {
		return ErrReasonRequired
	}
	if !CanTransition(a.Status, to) {
		return apperr.Conflict(fmt.Sprintf("cannot move application from %s to %s", a.Status, to))
	}
	return nil
}

// Apply ejecuta el cambio de estado con sus efectos sobre el animal.
// Debe correr dentro de tx: ante cualquier error el caller aborta todo.
//
//  1. relee solicitud + animal con lock; reabrir exige animal listado y
//     ninguna otra solicitud abierta del mismo solicitante
//  2. primaria + APPROVED => PUBLISHED -> PENDING_ADOPTION (condicional; 0 filas = conflicto)
//  3. deja de ser primaria aprobada => PENDING_ADOPTION -> PUBLISHED (condicional, best-effort)
//  4. ADOPTED => archiva el animal y rechaza las demás abiertas
//  5. persiste la solicitud
//  6. si cambió el estado, una fila de historial
func Apply(ctx context.Context, tx Tx, t Transition) (Applied, error) {
	if err := CheckInput(t); err != nil {
		return Applied{}, err
	}

	app, animal, err := tx.LockApplicationWithAnimal(ctx, t.ApplicationID)
	if err != nil {
		if errors.Is(err, apperr.ErrRecordNotFound) {
			return Applied{}, ErrNotFound
		}
		return Applied{}, err
	}
	if err := CheckAgainst(app, t); err != nil {
		return Applied{}, err
	}

	from := app.Status
	to := t.Status
	if to == "" {
		to = from
	}
	statusChanged := from != to
	reason := strings.TrimSpace(t.Reason)

	if statusChanged && to.Open() {
		if err := checkReopen(ctx, tx, app, animal, from); err != nil {
			return Applied{}, err
		}
	}

	primary := app.IsPrimary
	if t.SetPrimary != nil {
		primary = *t.SetPrimary
	}
	// Salir de APPROVED quita el primario, salvo hacia ADOPTED.
	if to != StatusApproved && to != StatusAdopted {
		primary = false
	}

	wasReserved := app.IsPrimary && from == StatusApproved
	reserves := primary && to == StatusApproved

	out := Applied{AnimalID: app.AnimalID}

	switch {
	case reserves && !wasReserved:
		ok, err := tx.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
			AnimalID: app.AnimalID,
			From:     []animals.ListingStatus{animals.ListingPublished},
			To:       animals.ListingPendingAdoption,
			At:       t.At,
		})
		if err != nil {
			return Applied{}, err
		}
		if !ok {
			metrics.ListingConflicts.WithLabelValues("reserve").Inc()
			return Applied{}, ErrAnimalUnavailable
		}

	case wasReserved && !reserves && to != StatusAdopted:
		// Si el animal ya no está en PENDING_ADOPTION no hay nada que liberar.
		if _, err := tx.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
			AnimalID: app.AnimalID,
			From:     []animals.ListingStatus{animals.ListingPendingAdoption},
			To:       animals.ListingPublished,
			At:       t.At,
		}); err != nil {
			return Applied{}, err
		}
	}

	if to == StatusAdopted && statusChanged {
		rejected, err := AdoptAnimal(ctx, tx, app.AnimalID, app.ID, t.Actor, t.At)
		if err != nil {
			return Applied{}, err
		}
		out.Changes = append(out.Changes, rejected...)
	}

	prev := app
	app.Status = to
	app.IsPrimary = primary
	if t.InternalNotes != nil {
		app.InternalNotes = strings.TrimSpace(*t.InternalNotes)
	}
	if statusChanged {
		at := t.At
		app.StatusReason = reason
		app.StatusChangedBy = t.Actor
		app.StatusChangedAt = &at
	}
	app.UpdatedAt = t.At

	if err := tx.UpdateApplication(ctx, app); err != nil {
		return Applied{}, err
	}

	if statusChanged {
		if err := tx.AppendStatusHistory(ctx, historyRow(prev, to, reason, t.Actor, t.At)); err != nil {
			return Applied{}, err
		}
		// la solicitud principal va primero
		out.Changes = append([]Change{{Application: app, From: from, To: to, Reason: reason}}, out.Changes...)
	}

	out.Application = app
	return out, nil
}

// checkReopen: volver a competir exige que el animal siga aceptando
// solicitudes y, si la solicitud estaba cerrada, que el solicitante no
// tenga otra abierta para el mismo animal.
func checkReopen(ctx context.Context, tx Tx, app Application, animal animals.Animal, from Status) error {
	if !animal.ListingStatus.AcceptsApplications() {
		return ErrAnimalNotListing
	}
	if from.Open() {
		return nil
	}
	open, err := tx.ListOpenApplicationsByAnimal(ctx, app.AnimalID)
	if err != nil {
		return err
	}
	for _, o := range open {
		if o.ID != app.ID && o.ApplicantID == app.ApplicantID {
			return ErrAlreadyApplied
		}
	}
	return nil
}

// AdoptAnimal archiva el animal (ADOPTED) y rechaza las demás solicitudes
// abiertas. Falla con conflicto si el animal ya estaba archivado.
func AdoptAnimal(ctx context.Context, tx Tx, animalID, adoptedAppID, actor string, at time.Time) ([]Change, error) {
	ok, err := tx.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
		AnimalID:      animalID,
		From:          animals.NotArchived,
		To:            animals.ListingArchived,
		ArchiveReason: animals.ArchiveAdopted,
		At:            at,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.ListingConflicts.WithLabelValues("archive").Inc()
		return nil, ErrAnimalArchived
	}
	return RejectOpen(ctx, tx, animalID, adoptedAppID, ReasonAdoptedElsewhere, actor, at)
}

// RejectOpen pasa a REJECTED todas las solicitudes abiertas del animal
// (menos exceptID) con una fila de historial por cada una.
func RejectOpen(ctx context.Context, tx Tx, animalID, exceptID, reason, actor string, at time.Time) ([]Change, error) {
	open, err := tx.ListOpenApplicationsByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}

	changes := make([]Change, 0, len(open))
	for _, a := range open {
		if a.ID == exceptID {
			continue
		}
		prev := a
		changedAt := at

		a.Status = StatusRejected
		a.IsPrimary = false
		a.StatusReason = reason
		a.StatusChangedBy = actor
		a.StatusChangedAt = &changedAt
		a.UpdatedAt = at

		if err := tx.UpdateApplication(ctx, a); err != nil {
			return nil, err
		}
		if err := tx.AppendStatusHistory(ctx, historyRow(prev, StatusRejected, reason, actor, at)); err != nil {
			return nil, err
		}
		changes = append(changes, Change{Application: a, From: prev.Status, To: StatusRejected, Reason: reason})
	}
	return changes, nil
}

func historyRow(prev Application, to Status, reason, actor string, at time.Time) StatusHistory {
	return StatusHistory{
		ID:                uuid.NewString(),
		ApplicationID:     prev.ID,
		FromStatus:        prev.Status,
		ToStatus:          to,
		Reason:            reason,
		ChangedBy:         actor,
		ChangedAt:         at,
		PreviousReason:    prev.StatusReason,
		PreviousChangedBy: prev.StatusChangedBy,
		PreviousChangedAt: prev.StatusChangedAt,
	}
}
