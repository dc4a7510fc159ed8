package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/applications"
	"animal-shelter/internal/domain/audit"
	"animal-shelter/internal/domain/intakes"
	"animal-shelter/internal/domain/outcomes"
)

// state es todo lo que participa de transacciones entre dominios.
type state struct {
	animals      map[string]animals.Animal
	likes        map[string]map[string]animals.Like // animal -> user
	applications map[string]applications.Application
	history      []applications.StatusHistory
	intakes      []intakes.Intake
	outcomes     []outcomes.Outcome
	audit        []audit.Entry
}

func newState() *state {
	return &state{
		animals:      make(map[string]animals.Animal),
		likes:        make(map[string]map[string]animals.Like),
		applications: make(map[string]applications.Application),
	}
}

// clone copia lo necesario para poder descartar una tx fallida.
// Los slices son append-only, alcanza con copiarlos.
func (s *state) clone() *state {
	likes := make(map[string]map[string]animals.Like, len(s.likes))
	for k, v := range s.likes {
		likes[k] = maps.Clone(v)
	}
	return &state{
		animals:      maps.Clone(s.animals),
		likes:        likes,
		applications: maps.Clone(s.applications),
		history:      slices.Clone(s.history),
		intakes:      slices.Clone(s.intakes),
		outcomes:     slices.Clone(s.outcomes),
		audit:        slices.Clone(s.audit),
	}
}

// Store es el storage en memoria para dev y tests.
// Un único mutex serializa las transacciones: Do trabaja sobre una copia y
// la publica solo si fn no devolvió error.
type Store struct {
	*view

	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	s := &Store{st: newState()}
	s.view = &view{store: s}
	return s
}

// Do corre fn con una vista transaccional.
func (s *Store) Do(ctx context.Context, fn func(*view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(&view{store: s, tx: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// view implementa los repos y las Tx de todos los dominios transaccionales.
// Fuera de Do cada método toma el lock del store.
type view struct {
	store *Store
	tx    *state
}

func (v *view) begin() (*state, func()) {
	if v.tx != nil {
		return v.tx, func() {}
	}
	v.store.mu.Lock()
	return v.store.st, v.store.mu.Unlock
}

// UnitOfWork adapta Store.Do a la interfaz de cada dominio.
type UnitOfWork[T any] struct {
	store *Store
}

func NewUnitOfWork[T any](s *Store) UnitOfWork[T] {
	return UnitOfWork[T]{store: s}
}

func (u UnitOfWork[T]) Do(ctx context.Context, fn func(tx T) error) error {
	return u.store.Do(ctx, func(v *view) error {
		return fn(any(v).(T))
	})
}

var (
	_ animals.Repository      = (*Store)(nil)
	_ applications.Repository = (*Store)(nil)
	_ audit.Repository        = (*Store)(nil)
	_ intakes.Repository      = (*Store)(nil)
	_ outcomes.Repository     = (*Store)(nil)

	_ applications.Tx = (*view)(nil)
	_ intakes.Tx      = (*view)(nil)
	_ outcomes.Tx     = (*view)(nil)

	_ applications.UnitOfWork = UnitOfWork[applications.Tx]{}
	_ intakes.UnitOfWork      = UnitOfWork[intakes.Tx]{}
	_ outcomes.UnitOfWork     = UnitOfWork[outcomes.Tx]{}
)
