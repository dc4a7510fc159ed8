package references

import (
	"context"
	"sort"
	"testing"
	"time"

	"animal-shelter/internal/apperr"
)

type testRepo struct {
	byID map[string]Reference
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Reference{}}
}

func (r *testRepo) Create(ctx context.Context, ref Reference) error {
	r.byID[ref.ID] = ref
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Reference, error) {
	ref, ok := r.byID[id]
	if !ok {
		return Reference{}, apperr.ErrRecordNotFound
	}
	return ref, nil
}

func (r *testRepo) List(ctx context.Context, kind Kind, parentID string) ([]Reference, error) {
	out := make([]Reference, 0)
	for _, ref := range r.byID {
		if kind != "" && ref.Kind != kind {
			continue
		}
		if parentID != "" && ref.ParentID != parentID {
			continue
		}
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func newTestService() *Service {
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreate_BreedNeedsSpeciesParent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	dog, err := svc.Create(ctx, CreateInput{Kind: KindSpecies, Name: "Dog"})
	if err != nil {
		t.Fatalf("create species: %v", err)
	}
	black, err := svc.Create(ctx, CreateInput{Kind: KindColor, Name: "Black"})
	if err != nil {
		t.Fatalf("create color: %v", err)
	}

	if _, err := svc.Create(ctx, CreateInput{Kind: KindBreed, Name: "Beagle"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error without parent, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Kind: KindBreed, Name: "Beagle", ParentID: black.ID}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error with color parent, got %v", err)
	}

	beagle, err := svc.Create(ctx, CreateInput{Kind: KindBreed, Name: "Beagle", ParentID: dog.ID})
	if err != nil {
		t.Fatalf("create breed: %v", err)
	}
	if beagle.ParentID != dog.ID {
		t.Fatalf("expected parent %s, got %s", dog.ID, beagle.ParentID)
	}
}

func TestCreate_DuplicateNameIsConflict(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Kind: KindSpecies, Name: "Cat"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, CreateInput{Kind: KindSpecies, Name: " cat "})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestExpect_WrongKindIsNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	color, _ := svc.Create(ctx, CreateInput{Kind: KindColor, Name: "White"})

	if _, err := svc.Expect(ctx, color.ID, KindSpecies); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Expect(ctx, "missing", KindColor); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Expect(ctx, color.ID, KindColor); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}
