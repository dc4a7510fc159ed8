package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/applications"
	"animal-shelter/internal/domain/assessments"
	"animal-shelter/internal/domain/audit"
	"animal-shelter/internal/domain/characteristics"
	"animal-shelter/internal/domain/intakes"
	"animal-shelter/internal/domain/notes"
	"animal-shelter/internal/domain/outcomes"
	"animal-shelter/internal/domain/references"
	"animal-shelter/internal/domain/tasks"
)

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries implementa repos y Tx de los dominios transaccionales.
// Sobre *sql.DB cada sentencia es su propia transacción; dentro de Do
// todas comparten la misma.
type Queries struct {
	q querier
}

type Store struct {
	*Queries
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{Queries: &Queries{q: db}, db: db}
}

// Do corre fn en una transacción READ COMMITTED. Los locks FOR UPDATE
// siempre se toman animal primero, solicitud después.
func (s *Store) Do(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Queries{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type UnitOfWork[T any] struct {
	store *Store
}

func NewUnitOfWork[T any](s *Store) UnitOfWork[T] {
	return UnitOfWork[T]{store: s}
}

func (u UnitOfWork[T]) Do(ctx context.Context, fn func(tx T) error) error {
	return u.store.Do(ctx, func(q *Queries) error {
		return fn(any(q).(T))
	})
}

var (
	_ animals.Repository      = (*Store)(nil)
	_ applications.Repository = (*Store)(nil)
	_ audit.Repository        = (*Store)(nil)
	_ intakes.Repository      = (*Store)(nil)
	_ outcomes.Repository     = (*Store)(nil)

	_ applications.Tx = (*Queries)(nil)
	_ intakes.Tx      = (*Queries)(nil)
	_ outcomes.Tx     = (*Queries)(nil)

	_ applications.UnitOfWork = UnitOfWork[applications.Tx]{}
	_ intakes.UnitOfWork      = UnitOfWork[intakes.Tx]{}
	_ outcomes.UnitOfWork     = UnitOfWork[outcomes.Tx]{}
)

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// textArray convierte enums a []string para ANY($n).
func textArray[S ~string](in []S) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

var (
	_ references.Repository      = (*ReferencesRepo)(nil)
	_ tasks.Repository           = (*TasksRepo)(nil)
	_ notes.Repository           = (*NotesRepo)(nil)
	_ assessments.Repository     = (*AssessmentsRepo)(nil)
	_ characteristics.Repository = (*CharacteristicsRepo)(nil)
)
