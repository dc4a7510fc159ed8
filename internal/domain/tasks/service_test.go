package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/apperr"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/references"
	"animal-shelter/internal/domain/tasks"
)

func newService(t *testing.T) (*tasks.Service, animals.Animal) {
	t.Helper()
	ctx := context.Background()
	refs := references.NewService(memory.NewReferenceRepo())
	species, err := refs.Create(ctx, references.CreateInput{Kind: references.KindSpecies, Name: "Cat"})
	if err != nil {
		t.Fatalf("create species: %v", err)
	}
	animalsSvc := animals.NewService(memory.NewStore(), refs)
	a, err := animalsSvc.Create(ctx, animals.CreateInput{Name: "Michi", SpeciesID: species.ID})
	if err != nil {
		t.Fatalf("create animal: %v", err)
	}
	return tasks.NewService(memory.NewTaskRepo(), animalsSvc), a
}

func TestCreate_DefaultsToMediumTodo(t *testing.T) {
	svc, a := newService(t)

	task, err := svc.Create(context.Background(), "staff-1", tasks.CreateInput{AnimalID: a.ID, Title: " Vacunar "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Title != "Vacunar" || task.Priority != tasks.PriorityMedium || task.Status != tasks.StatusTodo {
		t.Fatalf("unexpected task %+v", task)
	}
	if task.CreatedBy != "staff-1" {
		t.Fatalf("expected created by staff-1, got %q", task.CreatedBy)
	}
}

func TestCreate_RejectsUnknownAnimal(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), "staff-1", tasks.CreateInput{AnimalID: "ghost", Title: "x"})
	if !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected animal not found, got %v", err)
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), "staff-1", tasks.CreateInput{Title: "  "})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
}

func TestUpdate_CompletedAtFollowsStatus(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	task, _ := svc.Create(ctx, "staff-1", tasks.CreateInput{Title: "Limpiar caniles"})

	done := tasks.StatusDone
	task, err := svc.Update(ctx, task.ID, tasks.UpdateInput{Status: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("expected completed_at when DONE")
	}

	back := tasks.StatusInProgress
	task, _ = svc.Update(ctx, task.ID, tasks.UpdateInput{Status: &back})
	if task.CompletedAt != nil {
		t.Fatal("completed_at should be cleared when leaving DONE")
	}
}

func TestDelete_HidesTask(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	task, _ := svc.Create(ctx, "staff-1", tasks.CreateInput{Title: "Comprar alimento"})

	if err := svc.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, task.ID); !errors.Is(err, tasks.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	list, _ := svc.List(ctx, tasks.Filter{})
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestList_DueDateFirstAndFilters(t *testing.T) {
	svc, a := newService(t)
	ctx := context.Background()
	soon := time.Now().Add(time.Hour)

	svc.Create(ctx, "staff-1", tasks.CreateInput{Title: "Sin fecha", AnimalID: a.ID})
	svc.Create(ctx, "staff-1", tasks.CreateInput{Title: "Con fecha", AnimalID: a.ID, DueDate: &soon, AssigneeID: "vol-1"})
	svc.Create(ctx, "staff-1", tasks.CreateInput{Title: "General"})

	list, err := svc.ListByAnimal(ctx, a.ID, tasks.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Con fecha" {
		t.Fatalf("unexpected order %+v", list)
	}

	mine, _ := svc.List(ctx, tasks.Filter{AssigneeID: "vol-1"})
	if len(mine) != 1 {
		t.Fatalf("expected 1 assigned task, got %d", len(mine))
	}

	if _, err := svc.List(ctx, tasks.Filter{Status: "LATER"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation on bad status, got %v", err)
	}
}
