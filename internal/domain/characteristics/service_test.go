package characteristics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-shelter/internal/adapters/cache/memorycache"
	"animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/characteristics"
	"animal-shelter/internal/domain/references"
)

type fixture struct {
	animals *animals.Service
	svc     *characteristics.Service
	animal  animals.Animal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	refs := references.NewService(memory.NewReferenceRepo())
	species, err := refs.Create(ctx, references.CreateInput{Kind: references.KindSpecies, Name: "Dog"})
	if err != nil {
		t.Fatalf("create species: %v", err)
	}
	animalsSvc := animals.NewService(memory.NewStore(), refs,
		animals.WithCache(memorycache.New(64, time.Minute), time.Minute))
	svc := characteristics.NewService(memory.NewCharacteristicRepo(), animalsSvc, animalsSvc.Revalidator())
	animalsSvc.SetTagSource(svc)

	a, err := animalsSvc.Create(ctx, animals.CreateInput{Name: "Coco", SpeciesID: species.ID})
	if err != nil {
		t.Fatalf("create animal: %v", err)
	}
	if a, err = animalsSvc.Publish(ctx, a.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	return &fixture{animals: animalsSvc, svc: svc, animal: a}
}

func TestCreate_DuplicateNameIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, characteristics.Input{Name: "Good with kids"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Category != "GENERAL" {
		t.Fatalf("expected default category, got %q", c.Category)
	}
	if _, err := f.svc.Create(ctx, characteristics.Input{Name: "good with KIDS"}); !errors.Is(err, characteristics.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	// renombrarse a sí misma no es duplicado
	if _, err := f.svc.Update(ctx, c.ID, characteristics.Input{Name: "Good with kids", Category: "SOCIAL"}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestAssign_IdempotentAndUnassign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, _ := f.svc.Create(ctx, characteristics.Input{Name: "House trained", Category: "BEHAVIOR"})

	for i := 0; i < 2; i++ {
		if err := f.svc.Assign(ctx, "staff-1", f.animal.ID, c.ID); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}
	list, _ := f.svc.ListByAnimal(ctx, f.animal.ID)
	if len(list) != 1 {
		t.Fatalf("expected one assignment, got %d", len(list))
	}

	if err := f.svc.Unassign(ctx, f.animal.ID, c.ID); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if err := f.svc.Unassign(ctx, f.animal.ID, c.ID); !errors.Is(err, characteristics.ErrNotAssigned) {
		t.Fatalf("expected not assigned, got %v", err)
	}
}

func TestAssign_RevalidatesPublicDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.animals.GetListed(ctx, f.animal.ID)
	if err != nil {
		t.Fatalf("get listed: %v", err)
	}
	if len(before.Tags) != 0 {
		t.Fatalf("expected no tags, got %+v", before.Tags)
	}

	c, _ := f.svc.Create(ctx, characteristics.Input{Name: "Loves water"})
	if err := f.svc.Assign(ctx, "staff-1", f.animal.ID, c.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	after, _ := f.animals.GetListed(ctx, f.animal.ID)
	if len(after.Tags) != 1 || after.Tags[0].Name != "Loves water" {
		t.Fatalf("expected fresh detail with tag, got %+v", after.Tags)
	}
}

func TestAssign_UnknownCharacteristic(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Assign(context.Background(), "staff-1", f.animal.ID, "missing")
	if !errors.Is(err, characteristics.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
