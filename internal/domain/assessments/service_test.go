package assessments_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/assessments"
	"animal-shelter/internal/domain/references"
)

func newService(t *testing.T) (*assessments.Service, animals.Animal) {
	t.Helper()
	ctx := context.Background()
	refs := references.NewService(memory.NewReferenceRepo())
	species, err := refs.Create(ctx, references.CreateInput{Kind: references.KindSpecies, Name: "Dog"})
	if err != nil {
		t.Fatalf("create species: %v", err)
	}
	animalsSvc := animals.NewService(memory.NewStore(), refs)
	a, err := animalsSvc.Create(ctx, animals.CreateInput{Name: "Lola", SpeciesID: species.ID})
	if err != nil {
		t.Fatalf("create animal: %v", err)
	}
	return assessments.NewService(memory.NewAssessmentRepo(), animalsSvc), a
}

func TestCreate_ScoreRange(t *testing.T) {
	svc, a := newService(t)
	ctx := context.Background()

	for _, score := range []int{0, 6} {
		_, err := svc.Create(ctx, "staff-1", a.ID, assessments.CreateInput{
			Kind: assessments.KindBehavior, Score: score, Summary: "ok",
		})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("score %d: expected validation, got %v", score, err)
		}
	}

	got, err := svc.Create(ctx, "staff-1", a.ID, assessments.CreateInput{
		Kind: assessments.KindTemperament, Score: 5, Summary: "Muy sociable",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.AssessedBy != "staff-1" || got.AssessedAt.IsZero() {
		t.Fatalf("unexpected assessment %+v", got)
	}
}

func TestCreate_FutureDateAndKind(t *testing.T) {
	svc, a := newService(t)
	future := time.Now().Add(48 * time.Hour)

	_, err := svc.Create(context.Background(), "staff-1", a.ID, assessments.CreateInput{
		Kind: "MOOD", Score: 3, Summary: "x", AssessedAt: &future,
	})
	var e *apperr.Error
	if !errors.As(err, &e) || e.Kind != apperr.KindValidation {
		t.Fatalf("expected validation, got %v", err)
	}
	if len(e.Fields["kind"]) == 0 || len(e.Fields["assessed_at"]) == 0 {
		t.Fatalf("expected kind and assessed_at errors, got %v", e.Fields)
	}
}

func TestUpdateDeleteAndListByKind(t *testing.T) {
	svc, a := newService(t)
	ctx := context.Background()

	med, _ := svc.Create(ctx, "staff-1", a.ID, assessments.CreateInput{Kind: assessments.KindMedical, Score: 2, Summary: "Otitis"})
	svc.Create(ctx, "staff-1", a.ID, assessments.CreateInput{Kind: assessments.KindBehavior, Score: 4, Summary: "Tranquila"})

	score := 4
	got, err := svc.Update(ctx, med.ID, assessments.UpdateInput{Score: &score})
	if err != nil || got.Score != 4 {
		t.Fatalf("update: %v score=%d", err, got.Score)
	}
	bad := 9
	if _, err := svc.Update(ctx, med.ID, assessments.UpdateInput{Score: &bad}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation, got %v", err)
	}

	list, _ := svc.ListByAnimal(ctx, a.ID, assessments.KindMedical)
	if len(list) != 1 {
		t.Fatalf("expected 1 medical assessment, got %d", len(list))
	}

	if err := svc.Delete(ctx, med.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = svc.ListByAnimal(ctx, a.ID, "")
	if len(list) != 1 || list[0].Kind != assessments.KindBehavior {
		t.Fatalf("unexpected list after delete %+v", list)
	}
}
