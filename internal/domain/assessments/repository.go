package assessments

import "context"

type Repository interface {
	Create(ctx context.Context, a Assessment) error
	Update(ctx context.Context, a Assessment) error
	GetByID(ctx context.Context, id string) (Assessment, error)
	// ListByAnimal filtra por kind si no es vacío; más recientes primero.
	ListByAnimal(ctx context.Context, animalID string, kind Kind) ([]Assessment, error)
}
