package tasks

import "context"

type Repository interface {
	Create(ctx context.Context, t Task) error
	Update(ctx context.Context, t Task) error
	// GetByID no devuelve tareas borradas.
	GetByID(ctx context.Context, id string) (Task, error)
	// List ordena por due date (nulos al final) y después por creación.
	List(ctx context.Context, f Filter) ([]Task, error)
}
