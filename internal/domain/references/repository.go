package references

import "context"

type Repository interface {
	Create(ctx context.Context, ref Reference) error
	GetByID(ctx context.Context, id string) (Reference, error)
	// List filtra por kind y parentID si vienen no vacíos. Orden por nombre.
	List(ctx context.Context, kind Kind, parentID string) ([]Reference, error)
}
