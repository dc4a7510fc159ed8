package applications

import (
	"context"

	"animal-shelter/internal/domain/animals"
)

// Repository cubre las lecturas fuera de transacción.
type Repository interface {
	GetApplication(ctx context.Context, id string) (Application, error)
	ListApplications(ctx context.Context, q ListQuery) ([]Application, int, error)
	ListStatusHistory(ctx context.Context, applicationID string) ([]StatusHistory, error)
}

// Tx son las operaciones disponibles dentro de una transacción.
type Tx interface {
	CreateApplication(ctx context.Context, a Application) error
	UpdateApplication(ctx context.Context, a Application) error

	// LockApplicationWithAnimal relee la solicitud y su animal bloqueando
	// primero el animal y después la solicitud (mismo orden en todas las tx).
	LockApplicationWithAnimal(ctx context.Context, id string) (Application, animals.Animal, error)
	// LockAnimal bloquea el animal (alta de solicitud, outcomes).
	LockAnimal(ctx context.Context, animalID string) (animals.Animal, error)
	ListOpenApplicationsByAnimal(ctx context.Context, animalID string) ([]Application, error)

	AppendStatusHistory(ctx context.Context, h StatusHistory) error

	ConditionalUpdateListingStatus(ctx context.Context, u animals.ListingUpdate) (bool, error)
}

// UnitOfWork corre fn en una transacción: si fn devuelve error, nada se persiste.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Tx) error) error
}
