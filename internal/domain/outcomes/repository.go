package outcomes

import (
	"context"

	"animal-shelter/internal/domain/applications"
	"animal-shelter/internal/domain/audit"
)

type Repository interface {
	ListOutcomesByAnimal(ctx context.Context, animalID string) ([]Outcome, error)
}

// Tx extiende la transacción de solicitudes: registrar una adopción
// reutiliza el orquestador dentro de la misma unidad de trabajo.
type Tx interface {
	applications.Tx
	audit.Writer
	CreateOutcome(ctx context.Context, o Outcome) error
}

type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Tx) error) error
}
