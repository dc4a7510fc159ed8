package audit

import "context"

type Repository interface {
	// ListAuditEntries devuelve lo más reciente primero.
	ListAuditEntries(ctx context.Context, animalID string) ([]Entry, error)
}

// Writer lo implementan las transacciones de intakes y outcomes.
type Writer interface {
	AppendAuditEntry(ctx context.Context, e Entry) error
}
