package outcomes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/applications"
	"animal-shelter/internal/domain/audit"
	"animal-shelter/internal/domain/outcomes"
	"animal-shelter/internal/platform/logger"

	"github.com/google/uuid"
)

// animalReader cumple outcomes.AnimalGetter sobre el store, sin el servicio de animales.
type animalReader struct{ store *memory.Store }

func (r animalReader) Get(ctx context.Context, id string) (animals.Animal, error) {
	a, err := r.store.GetAnimal(ctx, id)
	if errors.Is(err, apperr.ErrRecordNotFound) {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, err
}

type fixture struct {
	store *memory.Store
	apps  *applications.Service
	svc   *outcomes.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	effects := applications.NewEffects(nil, nil, logger.NewTest(t))
	apps := applications.NewService(store, memory.NewUnitOfWork[applications.Tx](store), effects)
	svc := outcomes.NewService(store, memory.NewUnitOfWork[outcomes.Tx](store), animalReader{store}, apps, effects)
	return &fixture{store: store, apps: apps, svc: svc}
}

func (f *fixture) animal(t *testing.T, status animals.ListingStatus) animals.Animal {
	t.Helper()
	a := animals.Animal{
		ID:            uuid.NewString(),
		Name:          "Toby",
		SpeciesID:     "species-dog",
		Sex:           animals.SexMale,
		HealthStatus:  animals.HealthHealthy,
		ListingStatus: status,
		CreatedAt:     time.Now().Add(-time.Hour),
		UpdatedAt:     time.Now().Add(-time.Hour),
	}
	if err := f.store.CreateAnimal(context.Background(), a); err != nil {
		t.Fatalf("create animal: %v", err)
	}
	return a
}

func (f *fixture) submit(t *testing.T, animalID, applicantID string) applications.Application {
	t.Helper()
	app, err := f.apps.Submit(context.Background(), applicantID, animalID, applications.Profile{
		FullName: "Applicant " + applicantID,
		Email:    applicantID + "@example.com",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return app
}

func TestRecord_TransferArchivesAndRejectsOpenApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	first := f.submit(t, a.ID, "user-1")
	second := f.submit(t, a.ID, "user-2")

	o, err := f.svc.Record(ctx, "staff-1", a.ID, outcomes.RecordInput{
		Type:        outcomes.TypeTransfer,
		Destination: "Partner rescue",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if o.RecordedBy != "staff-1" || o.Type != outcomes.TypeTransfer {
		t.Fatalf("unexpected outcome %+v", o)
	}

	got, _ := f.store.GetAnimal(ctx, a.ID)
	if got.ListingStatus != animals.ListingArchived || got.ArchiveReason != animals.ArchiveTransferred {
		t.Fatalf("expected ARCHIVED/TRANSFERRED, got %s/%s", got.ListingStatus, got.ArchiveReason)
	}
	for _, id := range []string{first.ID, second.ID} {
		app, _ := f.apps.Get(ctx, id)
		if app.Status != applications.StatusRejected || app.StatusReason != applications.ReasonNoLongerAvailable {
			t.Fatalf("expected REJECTED with %q, got %s %q", applications.ReasonNoLongerAvailable, app.Status, app.StatusReason)
		}
	}

	entries, _ := f.store.ListAuditEntries(ctx, a.ID)
	if len(entries) != 1 || entries[0].Action != audit.ActionOutcomeRecorded || entries[0].EntityID != o.ID {
		t.Fatalf("expected one outcome audit entry, got %+v", entries)
	}
	list, _ := f.svc.ListByAnimal(ctx, a.ID)
	if len(list) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(list))
	}
}

func TestRecord_AlreadyArchivedIsConflictAndWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingArchived)

	_, err := f.svc.Record(ctx, "staff-1", a.ID, outcomes.RecordInput{Type: outcomes.TypeDeceased})
	if !errors.Is(err, applications.ErrAnimalArchived) {
		t.Fatalf("expected ErrAnimalArchived, got %v", err)
	}
	if list, _ := f.svc.ListByAnimal(ctx, a.ID); len(list) != 0 {
		t.Fatalf("no outcome must be stored, got %d", len(list))
	}
	if entries, _ := f.store.ListAuditEntries(ctx, a.ID); len(entries) != 0 {
		t.Fatalf("no audit entry must be stored, got %d", len(entries))
	}
}

func TestRecord_AdoptionWithApplicationRunsCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	winner := f.submit(t, a.ID, "user-1")
	other := f.submit(t, a.ID, "user-2")

	_, err := f.svc.Record(ctx, "staff-1", a.ID, outcomes.RecordInput{
		Type:          outcomes.TypeAdoption,
		ApplicationID: winner.ID,
	})
	if err != nil {
		t.Fatalf("record adoption: %v", err)
	}

	w, _ := f.apps.Get(ctx, winner.ID)
	if w.Status != applications.StatusAdopted {
		t.Fatalf("expected ADOPTED, got %s", w.Status)
	}
	o, _ := f.apps.Get(ctx, other.ID)
	if o.Status != applications.StatusRejected || o.StatusReason != applications.ReasonAdoptedElsewhere {
		t.Fatalf("expected cascade rejection, got %s %q", o.Status, o.StatusReason)
	}
	got, _ := f.store.GetAnimal(ctx, a.ID)
	if got.ArchiveReason != animals.ArchiveAdopted {
		t.Fatalf("expected ADOPTED archive reason, got %s", got.ArchiveReason)
	}
}

func TestRecord_LinkedApplicationValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	b := f.animal(t, animals.ListingPublished)
	appForB := f.submit(t, b.ID, "user-1")

	_, err := f.svc.Record(ctx, "staff-1", a.ID, outcomes.RecordInput{Type: outcomes.TypeAdoption, ApplicationID: appForB.ID})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for foreign application, got %v", err)
	}

	_, err = f.svc.Record(ctx, "staff-1", b.ID, outcomes.RecordInput{Type: outcomes.TypeTransfer, ApplicationID: appForB.ID})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for non-adoption link, got %v", err)
	}

	future := time.Now().Add(48 * time.Hour)
	_, err = f.svc.Record(ctx, "staff-1", b.ID, outcomes.RecordInput{Type: outcomes.TypeTransfer, OccurredAt: &future})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for future date, got %v", err)
	}

	got, _ := f.store.GetAnimal(ctx, b.ID)
	if got.ListingStatus != animals.ListingPublished {
		t.Fatalf("animal must be untouched, got %s", got.ListingStatus)
	}
}

func TestRecord_ClosedApplicationIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")
	if _, err := f.apps.Withdraw(ctx, "user-1", app.ID, ""); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	_, err := f.svc.Record(ctx, "staff-1", a.ID, outcomes.RecordInput{Type: outcomes.TypeAdoption, ApplicationID: app.ID})
	if !errors.Is(err, outcomes.ErrApplicationNotOpen) {
		t.Fatalf("expected ErrApplicationNotOpen, got %v", err)
	}
}
