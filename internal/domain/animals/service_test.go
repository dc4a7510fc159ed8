package animals_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-shelter/internal/adapters/cache/memorycache"
	"animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/references"
	"animal-shelter/internal/platform/logger"
)

type fixture struct {
	store   *memory.Store
	svc     *animals.Service
	species references.Reference
}

func newFixture(t *testing.T, opts ...animals.Option) *fixture {
	t.Helper()
	refs := references.NewService(memory.NewReferenceRepo())
	species, err := refs.Create(context.Background(), references.CreateInput{Kind: references.KindSpecies, Name: "Dog"})
	if err != nil {
		t.Fatalf("create species: %v", err)
	}
	store := memory.NewStore()
	opts = append(opts, animals.WithLogger(logger.NewTest(t)))
	return &fixture{
		store:   store,
		svc:     animals.NewService(store, refs, opts...),
		species: species,
	}
}

func (f *fixture) create(t *testing.T, name string) animals.Animal {
	t.Helper()
	a, err := f.svc.Create(context.Background(), animals.CreateInput{Name: name, SpeciesID: f.species.ID})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return a
}

func (f *fixture) published(t *testing.T, name string) animals.Animal {
	t.Helper()
	a := f.create(t, name)
	a, err := f.svc.Publish(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("publish %s: %v", name, err)
	}
	return a
}

func TestCreate_DefaultsAndDraft(t *testing.T) {
	f := newFixture(t)

	a := f.create(t, "  Luna ")
	if a.Name != "Luna" || a.ListingStatus != animals.ListingDraft {
		t.Fatalf("unexpected animal %+v", a)
	}
	if a.Sex != animals.SexUnknown || a.HealthStatus != animals.HealthHealthy {
		t.Fatalf("expected defaults, got sex=%s health=%s", a.Sex, a.HealthStatus)
	}
}

func TestCreate_UnknownSpeciesIsValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), animals.CreateInput{Name: "Luna", SpeciesID: "nope"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_NegativeWeightIsValidation(t *testing.T) {
	f := newFixture(t)
	w := -3.0

	_, err := f.svc.Create(context.Background(), animals.CreateInput{Name: "Luna", SpeciesID: f.species.ID, WeightKg: &w})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPublishUnpublish_ConditionalOnStoredStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "Rocky")

	if _, err := f.svc.Unpublish(ctx, a.ID); !errors.Is(err, animals.ErrUnpublishNotLive) {
		t.Fatalf("expected unpublish conflict on draft, got %v", err)
	}

	got, err := f.svc.Publish(ctx, a.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got.ListingStatus != animals.ListingPublished {
		t.Fatalf("expected PUBLISHED, got %s", got.ListingStatus)
	}
	if _, err := f.svc.Publish(ctx, a.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on second publish, got %v", err)
	}

	got, err = f.svc.Unpublish(ctx, a.ID)
	if err != nil || got.ListingStatus != animals.ListingDraft {
		t.Fatalf("unpublish: %v status=%s", err, got.ListingStatus)
	}
}

func TestPublish_MissingAnimalIsNotFound(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Publish(context.Background(), "missing"); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete_OnlyDrafts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	live := f.published(t, "Toby")
	if err := f.svc.Delete(ctx, live.ID); !errors.Is(err, animals.ErrOnlyDraftDelete) {
		t.Fatalf("expected draft-only conflict, got %v", err)
	}

	draft := f.create(t, "Kira")
	if err := f.svc.Delete(ctx, draft.ID); err != nil {
		t.Fatalf("delete draft: %v", err)
	}
	if _, err := f.svc.Get(ctx, draft.ID); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("deleted animal should be gone, got %v", err)
	}
}

func TestUpdate_KeepsListingStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.published(t, "Nala")

	name := "Nala II"
	got, err := f.svc.Update(ctx, a.ID, animals.UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, _ := f.svc.Get(ctx, a.ID)
	if got.Name != "Nala II" || stored.ListingStatus != animals.ListingPublished {
		t.Fatalf("unexpected stored animal %+v", stored)
	}
}

func TestBrowse_ServesFromCacheUntilRevalidated(t *testing.T) {
	f := newFixture(t, animals.WithCache(memorycache.New(64, time.Minute), time.Minute))
	ctx := context.Background()

	f.published(t, "Bruno")
	f.create(t, "Draft only")

	page, err := f.svc.Browse(ctx, animals.ListQuery{})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 listed animal, got %d", page.Total)
	}

	// escritura directa al store: no pasa por el revalidador
	now := time.Now()
	sneaky := animals.Animal{
		ID: "sneaky", Name: "Sneaky", SpeciesID: f.species.ID,
		Sex: animals.SexUnknown, HealthStatus: animals.HealthHealthy,
		ListingStatus: animals.ListingPublished, CreatedAt: now, UpdatedAt: now,
	}
	if err := f.store.CreateAnimal(ctx, sneaky); err != nil {
		t.Fatalf("seed: %v", err)
	}
	page, _ = f.svc.Browse(ctx, animals.ListQuery{})
	if page.Total != 1 {
		t.Fatalf("expected cached page, got total %d", page.Total)
	}

	// una mutación por el servicio invalida el catálogo
	f.published(t, "Max")
	page, _ = f.svc.Browse(ctx, animals.ListQuery{})
	if page.Total != 3 {
		t.Fatalf("expected fresh page with 3 animals, got %d", page.Total)
	}
}

type staticTags []animals.Tag

func (s staticTags) TagsForAnimal(ctx context.Context, animalID string) ([]animals.Tag, error) {
	return s, nil
}

func TestGetListed_HidesDraftsAndIncludesTags(t *testing.T) {
	f := newFixture(t, animals.WithTagSource(staticTags{{ID: "c1", Name: "Good with cats", Category: "SOCIAL"}}))
	ctx := context.Background()

	draft := f.create(t, "Hidden")
	if _, err := f.svc.GetListed(ctx, draft.ID); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("draft should not be public, got %v", err)
	}

	live := f.published(t, "Visible")
	got, err := f.svc.GetListed(ctx, live.ID)
	if err != nil {
		t.Fatalf("get listed: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].Name != "Good with cats" {
		t.Fatalf("unexpected tags %+v", got.Tags)
	}
}

func TestLike_OnlyListedAndIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.create(t, "Shy")
	if err := f.svc.Like(ctx, draft.ID, "u1"); !errors.Is(err, animals.ErrNotAccepting) {
		t.Fatalf("expected not accepting, got %v", err)
	}

	live := f.published(t, "Happy")
	for i := 0; i < 2; i++ {
		if err := f.svc.Like(ctx, live.ID, "u1"); err != nil {
			t.Fatalf("like: %v", err)
		}
	}
	liked, _ := f.svc.Liked(ctx, "u1")
	if len(liked) != 1 || liked[0].ID != live.ID {
		t.Fatalf("expected one liked animal, got %+v", liked)
	}

	if err := f.svc.Unlike(ctx, live.ID, "u1"); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	liked, _ = f.svc.Liked(ctx, "u1")
	if len(liked) != 0 {
		t.Fatalf("expected no likes, got %d", len(liked))
	}
}

// racyRepo corre onList una vez, después de leer y antes de que Browse
// cachee el resultado.
type racyRepo struct {
	animals.Repository
	onList func()
}

func (r *racyRepo) ListAnimals(ctx context.Context, q animals.ListQuery) ([]animals.Animal, int, error) {
	items, total, err := r.Repository.ListAnimals(ctx, q)
	if hook := r.onList; hook != nil {
		r.onList = nil
		hook()
	}
	return items, total, err
}

func TestBrowse_DoesNotCachePageReadBeforeInvalidation(t *testing.T) {
	refs := references.NewService(memory.NewReferenceRepo())
	ctx := context.Background()
	species, err := refs.Create(ctx, references.CreateInput{Kind: references.KindSpecies, Name: "Dog"})
	if err != nil {
		t.Fatalf("create species: %v", err)
	}
	repo := &racyRepo{Repository: memory.NewStore()}
	svc := animals.NewService(repo, refs, animals.WithCache(memorycache.New(64, time.Minute), time.Minute))

	first, _ := svc.Create(ctx, animals.CreateInput{Name: "Bruno", SpeciesID: species.ID})
	if _, err := svc.Publish(ctx, first.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	second, _ := svc.Create(ctx, animals.CreateInput{Name: "Max", SpeciesID: species.ID})

	// el segundo se publica entre la lectura y el cacheo
	repo.onList = func() {
		if _, err := svc.Publish(ctx, second.ID); err != nil {
			t.Errorf("publish during browse: %v", err)
		}
	}
	page, err := svc.Browse(ctx, animals.ListQuery{})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("in-flight read should see 1 animal, got %d", page.Total)
	}

	page, _ = svc.Browse(ctx, animals.ListQuery{})
	if page.Total != 2 {
		t.Fatalf("stale page was cached: expected 2 animals, got %d", page.Total)
	}
}
