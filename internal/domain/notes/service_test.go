package notes_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/notes"
	"animal-shelter/internal/domain/references"
)

func newService(t *testing.T) (*notes.Service, animals.Animal) {
	t.Helper()
	ctx := context.Background()
	refs := references.NewService(memory.NewReferenceRepo())
	species, err := refs.Create(ctx, references.CreateInput{Kind: references.KindSpecies, Name: "Dog"})
	if err != nil {
		t.Fatalf("create species: %v", err)
	}
	animalsSvc := animals.NewService(memory.NewStore(), refs)
	a, err := animalsSvc.Create(ctx, animals.CreateInput{Name: "Firulais", SpeciesID: species.ID})
	if err != nil {
		t.Fatalf("create animal: %v", err)
	}
	return notes.NewService(memory.NewNoteRepo(), animalsSvc), a
}

var (
	author = notes.Actor{ID: "vol-1", Role: authz.RoleVolunteer}
	other  = notes.Actor{ID: "staff-2", Role: authz.RoleStaff}
	admin  = notes.Actor{ID: "admin-1", Role: authz.RoleAdmin}
)

func TestUpdate_OnlyAuthorOrAdmin(t *testing.T) {
	svc, a := newService(t)
	ctx := context.Background()

	n, err := svc.Create(ctx, author, a.ID, "Come bien")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, other, n.ID, "Cambiado"); !errors.Is(err, notes.ErrNotAuthor) {
		t.Fatalf("expected forbidden for another staff member, got %v", err)
	}
	if _, err := svc.Update(ctx, author, n.ID, "Come bien, duerme mucho"); err != nil {
		t.Fatalf("author update: %v", err)
	}
	got, err := svc.Update(ctx, admin, n.ID, "Revisado")
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if got.Body != "Revisado" || got.AuthorID != author.ID {
		t.Fatalf("unexpected note %+v", got)
	}
}

func TestDelete_RemovesFromList(t *testing.T) {
	svc, a := newService(t)
	ctx := context.Background()
	n, _ := svc.Create(ctx, author, a.ID, "Primera")
	svc.Create(ctx, author, a.ID, "Segunda")

	if err := svc.Delete(ctx, other, n.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, author, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := svc.ListByAnimal(ctx, a.ID)
	if len(list) != 1 || list[0].Body != "Segunda" {
		t.Fatalf("unexpected notes %+v", list)
	}
}

func TestCreate_BodyRules(t *testing.T) {
	svc, a := newService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, author, a.ID, "   "); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation on empty body, got %v", err)
	}
	if _, err := svc.Create(ctx, author, a.ID, strings.Repeat("a", 10001)); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation on long body, got %v", err)
	}
	if _, err := svc.Create(ctx, author, "ghost", "hola"); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected animal not found, got %v", err)
	}
}
