package applications_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/applications"
	"animal-shelter/internal/platform/logger"

	"github.com/google/uuid"
)

type fixture struct {
	store *memory.Store
	svc   *applications.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	effects := applications.NewEffects(nil, nil, logger.NewTest(t))
	return &fixture{
		store: store,
		svc:   applications.NewService(store, memory.NewUnitOfWork[applications.Tx](store), effects),
	}
}

func (f *fixture) animal(t *testing.T, status animals.ListingStatus) animals.Animal {
	t.Helper()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := animals.Animal{
		ID:            uuid.NewString(),
		Name:          "Luna",
		SpeciesID:     "species-dog",
		Sex:           animals.SexFemale,
		HealthStatus:  animals.HealthHealthy,
		ListingStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := f.store.CreateAnimal(context.Background(), a); err != nil {
		t.Fatalf("create animal: %v", err)
	}
	return a
}

func (f *fixture) submit(t *testing.T, animalID, applicantID string) applications.Application {
	t.Helper()
	app, err := f.svc.Submit(context.Background(), applicantID, animalID, applications.Profile{
		FullName:    "Ana Pérez",
		Email:       applicantID + "@example.com",
		HousingType: applications.HousingHouse,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return app
}

func (f *fixture) listing(t *testing.T, animalID string) animals.Animal {
	t.Helper()
	a, err := f.store.GetAnimal(context.Background(), animalID)
	if err != nil {
		t.Fatalf("get animal: %v", err)
	}
	return a
}

func boolPtr(b bool) *bool { return &b }

func TestSubmit_RequiresListedAnimalAndOneOpenPerApplicant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.animal(t, animals.ListingDraft)
	_, err := f.svc.Submit(ctx, "user-1", draft.ID, applications.Profile{FullName: "Ana", Email: "ana@example.com"})
	if !errors.Is(err, applications.ErrAnimalNotListing) {
		t.Fatalf("expected ErrAnimalNotListing for draft animal, got %v", err)
	}

	live := f.animal(t, animals.ListingPublished)
	f.submit(t, live.ID, "user-1")

	_, err = f.svc.Submit(ctx, "user-1", live.ID, applications.Profile{FullName: "Ana", Email: "ana@example.com"})
	if !errors.Is(err, applications.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}

	if _, err := f.svc.Submit(ctx, "user-1", live.ID, applications.Profile{FullName: "Ana", Email: "not-an-email"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}
}

func TestUpdateStatus_ReasonRequiredExceptPendingToReviewing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")

	got, err := f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{Status: applications.StatusReviewing})
	if err != nil {
		t.Fatalf("PENDING->REVIEWING without reason: %v", err)
	}
	if got.Status != applications.StatusReviewing {
		t.Fatalf("expected REVIEWING, got %s", got.Status)
	}

	_, err = f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{Status: applications.StatusApproved, Reason: "   "})
	if !errors.Is(err, applications.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	hist, err := f.svc.History(ctx, app.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(hist))
	}
}

func TestUpdateStatus_PrimaryOnlyWithApproved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")

	_, err := f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{
		Status:     applications.StatusRejected,
		Reason:     "not a fit",
		SetPrimary: boolPtr(true),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// sin estado, marcar primaria una PENDING tampoco vale
	_, err = f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{SetPrimary: boolPtr(true)})
	if !errors.Is(err, applications.ErrPrimaryNotApproved) {
		t.Fatalf("expected ErrPrimaryNotApproved, got %v", err)
	}

	cur, _ := f.svc.Get(ctx, app.ID)
	if cur.Status != applications.StatusPending || cur.IsPrimary {
		t.Fatalf("application must be untouched, got %+v", cur)
	}
	if f.listing(t, a.ID).ListingStatus != animals.ListingPublished {
		t.Fatalf("animal must stay PUBLISHED")
	}
}

func TestUpdateStatus_IllegalTransitionIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")

	if _, err := f.svc.Withdraw(ctx, "user-1", app.ID, ""); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	_, err := f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{Status: applications.StatusReviewing, Reason: "reopen"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for WITHDRAWN->REVIEWING, got %v", err)
	}
}

func TestApprovePrimary_ReservesAnimalAndDemoteReleasesIt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")

	got, err := f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{
		Status:     applications.StatusApproved,
		Reason:     "home visit ok",
		SetPrimary: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("approve primary: %v", err)
	}
	if !got.IsPrimary || got.Status != applications.StatusApproved {
		t.Fatalf("expected primary APPROVED, got %+v", got)
	}
	if st := f.listing(t, a.ID).ListingStatus; st != animals.ListingPendingAdoption {
		t.Fatalf("expected PENDING_ADOPTION, got %s", st)
	}

	got, err = f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{
		Status: applications.StatusReviewing,
		Reason: "landlord did not confirm",
	})
	if err != nil {
		t.Fatalf("demote: %v", err)
	}
	if got.IsPrimary {
		t.Fatalf("leaving APPROVED must clear primary")
	}
	if st := f.listing(t, a.ID).ListingStatus; st != animals.ListingPublished {
		t.Fatalf("expected PUBLISHED after demote, got %s", st)
	}

	hist, _ := f.svc.History(ctx, app.ID)
	if len(hist) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(hist))
	}
	last := hist[1]
	if last.PreviousReason != "home visit ok" || last.PreviousChangedBy != "staff-1" || last.PreviousChangedAt == nil {
		t.Fatalf("history must keep the previous reason/actor/time, got %+v", last)
	}
}

func TestApprovePrimary_ConcurrentRequestsOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	first := f.submit(t, a.ID, "user-1")
	second := f.submit(t, a.ID, "user-2")

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.svc.UpdateStatus(ctx, "staff-1", id, applications.StatusInput{
				Status:     applications.StatusApproved,
				Reason:     "approved",
				SetPrimary: boolPtr(true),
			})
		}(i, id)
	}
	wg.Wait()

	var wins, conflicts int
	loser := ""
	for i, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, applications.ErrAnimalUnavailable):
			conflicts++
			loser = []string{first.ID, second.ID}[i]
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("expected one winner and one conflict, got wins=%d conflicts=%d", wins, conflicts)
	}

	lost, _ := f.svc.Get(ctx, loser)
	if lost.Status != applications.StatusPending || lost.IsPrimary {
		t.Fatalf("losing application must be unchanged, got %+v", lost)
	}
	if hist, _ := f.svc.History(ctx, loser); len(hist) != 0 {
		t.Fatalf("losing application must have no history, got %d rows", len(hist))
	}
	if st := f.listing(t, a.ID).ListingStatus; st != animals.ListingPendingAdoption {
		t.Fatalf("expected PENDING_ADOPTION, got %s", st)
	}
}

func TestAdopt_ArchivesAnimalAndRejectsOtherOpenApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	winner := f.submit(t, a.ID, "user-1")
	other := f.submit(t, a.ID, "user-2")
	reviewing := f.submit(t, a.ID, "user-3")
	withdrawn := f.submit(t, a.ID, "user-4")

	if _, err := f.svc.UpdateStatus(ctx, "staff-1", reviewing.ID, applications.StatusInput{Status: applications.StatusReviewing}); err != nil {
		t.Fatalf("review: %v", err)
	}
	if _, err := f.svc.Withdraw(ctx, "user-4", withdrawn.ID, ""); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	got, err := f.svc.UpdateStatus(ctx, "staff-1", winner.ID, applications.StatusInput{
		Status: applications.StatusAdopted,
		Reason: "contract signed",
	})
	if err != nil {
		t.Fatalf("adopt: %v", err)
	}
	if got.Status != applications.StatusAdopted {
		t.Fatalf("expected ADOPTED, got %s", got.Status)
	}

	animal := f.listing(t, a.ID)
	if animal.ListingStatus != animals.ListingArchived || animal.ArchiveReason != animals.ArchiveAdopted {
		t.Fatalf("expected ARCHIVED/ADOPTED, got %s/%s", animal.ListingStatus, animal.ArchiveReason)
	}

	// filas esperadas: la del rechazo en cascada más las previas propias
	wantRows := map[string]int{other.ID: 1, reviewing.ID: 2}
	for id, want := range wantRows {
		app, _ := f.svc.Get(ctx, id)
		if app.Status != applications.StatusRejected || app.StatusReason != applications.ReasonAdoptedElsewhere {
			t.Fatalf("expected %s REJECTED with cascade reason, got %s %q", id, app.Status, app.StatusReason)
		}
		hist, _ := f.svc.History(ctx, id)
		if len(hist) != want {
			t.Fatalf("expected %d history rows for %s, got %d", want, id, len(hist))
		}
		lastRow := hist[len(hist)-1]
		if lastRow.ToStatus != applications.StatusRejected || lastRow.Reason != applications.ReasonAdoptedElsewhere {
			t.Fatalf("expected cascade history row for %s, got %+v", id, lastRow)
		}
	}

	// la retirada no se toca
	w, _ := f.svc.Get(ctx, withdrawn.ID)
	if w.Status != applications.StatusWithdrawn {
		t.Fatalf("withdrawn application must stay WITHDRAWN, got %s", w.Status)
	}
	if hist, _ := f.svc.History(ctx, withdrawn.ID); len(hist) != 1 {
		t.Fatalf("withdrawn application must have only its own row, got %d", len(hist))
	}

	// un animal archivado no vuelve a recibir solicitudes activas
	_, err = f.svc.UpdateStatus(ctx, "staff-1", other.ID, applications.StatusInput{Status: applications.StatusReviewing, Reason: "retry"})
	if !errors.Is(err, applications.ErrAnimalNotListing) {
		t.Fatalf("expected ErrAnimalNotListing reopening on an archived animal, got %v", err)
	}
	again, _ := f.svc.Get(ctx, other.ID)
	if again.Status != applications.StatusRejected {
		t.Fatalf("failed reopen must roll back, got %s", again.Status)
	}
	if hist, _ := f.svc.History(ctx, other.ID); len(hist) != 1 {
		t.Fatalf("failed reopen must not add history, got %d rows", len(hist))
	}
}

func TestReopen_RejectsSecondOpenApplicationOfSameApplicant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	first := f.submit(t, a.ID, "user-1")

	if _, err := f.svc.UpdateStatus(ctx, "staff-1", first.ID, applications.StatusInput{
		Status: applications.StatusRejected, Reason: "incomplete form",
	}); err != nil {
		t.Fatalf("reject: %v", err)
	}
	second := f.submit(t, a.ID, "user-1")

	_, err := f.svc.UpdateStatus(ctx, "staff-1", first.ID, applications.StatusInput{
		Status: applications.StatusReviewing, Reason: "second look",
	})
	if !errors.Is(err, applications.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	cur, _ := f.svc.Get(ctx, first.ID)
	if cur.Status != applications.StatusRejected {
		t.Fatalf("first application must stay REJECTED, got %s", cur.Status)
	}

	// sin otra abierta, reabrir funciona
	if _, err := f.svc.Withdraw(ctx, "user-1", second.ID, ""); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	got, err := f.svc.UpdateStatus(ctx, "staff-1", first.ID, applications.StatusInput{
		Status: applications.StatusReviewing, Reason: "second look",
	})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got.Status != applications.StatusReviewing {
		t.Fatalf("expected REVIEWING, got %s", got.Status)
	}
}

func TestUpdateStatus_OpenMovesNeedListedAnimal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")

	// el animal se archiva por fuera (outcome)
	ok, err := f.store.ConditionalUpdateListingStatus(ctx, animals.ListingUpdate{
		AnimalID:      a.ID,
		From:          []animals.ListingStatus{animals.ListingPublished},
		To:            animals.ListingArchived,
		ArchiveReason: animals.ArchiveTransferred,
		At:            time.Now(),
	})
	if err != nil || !ok {
		t.Fatalf("archive: ok=%v err=%v", ok, err)
	}

	_, err = f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{Status: applications.StatusApproved, Reason: "ok"})
	if !errors.Is(err, applications.ErrAnimalNotListing) {
		t.Fatalf("expected ErrAnimalNotListing, got %v", err)
	}

	// cerrarla sigue permitido
	got, err := f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{Status: applications.StatusRejected, Reason: "transferred"})
	if err != nil || got.Status != applications.StatusRejected {
		t.Fatalf("reject on archived animal: %v %s", err, got.Status)
	}
}

func TestWithdraw_DefaultReasonAndOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")

	if _, err := f.svc.Withdraw(ctx, "user-2", app.ID, ""); !errors.Is(err, applications.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	got, err := f.svc.Withdraw(ctx, "user-1", app.ID, "")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got.StatusReason != applications.ReasonWithdrawnByApplicant {
		t.Fatalf("expected default reason, got %q", got.StatusReason)
	}
}

func TestWithdraw_PrimaryReleasesAnimal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")

	if _, err := f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{
		Status: applications.StatusApproved, Reason: "ok", SetPrimary: boolPtr(true),
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := f.svc.Withdraw(ctx, "user-1", app.ID, "moving abroad"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if st := f.listing(t, a.ID).ListingStatus; st != animals.ListingPublished {
		t.Fatalf("expected PUBLISHED, got %s", st)
	}
}

func TestUpdateProfile_OnlyWhileOpenForReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.animal(t, animals.ListingPublished)
	app := f.submit(t, a.ID, "user-1")

	p := app.Profile
	p.Phone = "555-0101"
	got, err := f.svc.UpdateProfile(ctx, "user-1", app.ID, p)
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if got.Profile.Phone != "555-0101" {
		t.Fatalf("expected phone to be updated")
	}

	if _, err := f.svc.UpdateProfile(ctx, "user-2", app.ID, p); !errors.Is(err, applications.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if _, err := f.svc.UpdateStatus(ctx, "staff-1", app.ID, applications.StatusInput{Status: applications.StatusApproved, Reason: "ok"}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := f.svc.UpdateProfile(ctx, "user-1", app.ID, p); !errors.Is(err, applications.ErrProfileLocked) {
		t.Fatalf("expected ErrProfileLocked, got %v", err)
	}
}
