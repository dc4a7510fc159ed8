package animals

import (
	"context"
	"time"
)

// Repository de animales y likes.
// Los adapters devuelven apperr.ErrRecordNotFound cuando no hay fila
// (los soft-deleted cuentan como inexistentes).
type Repository interface {
	CreateAnimal(ctx context.Context, a Animal) error
	// UpdateAnimal persiste el perfil. Nunca toca listing_status ni archive_reason.
	UpdateAnimal(ctx context.Context, a Animal) error
	GetAnimal(ctx context.Context, id string) (Animal, error)
	ListAnimals(ctx context.Context, q ListQuery) ([]Animal, int, error)

	// ConditionalUpdateListingStatus aplica el cambio solo si el estado
	// guardado sigue en u.From. false = ninguna fila afectada.
	ConditionalUpdateListingStatus(ctx context.Context, u ListingUpdate) (bool, error)
	// SoftDeleteAnimal marca deleted_at solo si el estado guardado está en from.
	SoftDeleteAnimal(ctx context.Context, id string, from []ListingStatus, at time.Time) (bool, error)

	// AddLike es idempotente.
	AddLike(ctx context.Context, l Like) error
	RemoveLike(ctx context.Context, animalID, userID string) error
	ListLikedAnimals(ctx context.Context, userID string) ([]Animal, error)
}
