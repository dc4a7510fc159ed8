package intakes

import (
	"context"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/audit"
)

type Repository interface {
	ListIntakesByAnimal(ctx context.Context, animalID string) ([]Intake, error)
}

type Tx interface {
	audit.Writer

	CreateAnimal(ctx context.Context, a animals.Animal) error
	LockAnimal(ctx context.Context, animalID string) (animals.Animal, error)
	ConditionalUpdateListingStatus(ctx context.Context, u animals.ListingUpdate) (bool, error)
	CreateIntake(ctx context.Context, in Intake) error
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Tx) error) error
}
