package notes

import "context"

type Repository interface {
	Create(ctx context.Context, n Note) error
	Update(ctx context.Context, n Note) error
	GetByID(ctx context.Context, id string) (Note, error)
	// ListByAnimal excluye borradas, más nuevas primero.
	ListByAnimal(ctx context.Context, animalID string) ([]Note, error)
}
