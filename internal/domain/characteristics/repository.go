package characteristics

import "context"

type Repository interface {
	Create(ctx context.Context, c Characteristic) error
	Update(ctx context.Context, c Characteristic) error
	GetByID(ctx context.Context, id string) (Characteristic, error)
	// List excluye borradas; orden por categoría y nombre.
	List(ctx context.Context, category string) ([]Characteristic, error)

	// Assign no falla si la asignación ya existe.
	Assign(ctx context.Context, a Assignment) error
	// Unassign devuelve false si no había asignación.
	Unassign(ctx context.Context, animalID, characteristicID string) (bool, error)
	// ListByAnimal solo devuelve características no borradas.
	ListByAnimal(ctx context.Context, animalID string) ([]Characteristic, error)
}
