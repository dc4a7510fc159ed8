package authz

import (
	"context"
	"net/http"
	"strings"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
)

// Gate resuelve el rol del caller y lo compara contra la tabla.
// No loguea ni audita: solo decide.
type Gate struct {
	table *Table
	log   logger.Logger
}

func NewGate(table *Table, log logger.Logger) *Gate {
	if log == nil {
		log = logger.NewNop()
	}
	return &Gate{table: table, log: log}
}

func (g *Gate) Table() *Table { return g.table }

// Check devuelve Unauthorized sin identidad y Forbidden sin permiso.
func (g *Gate) Check(ctx context.Context, perm Permission) error {
	claims, ok := middleware.GetClaims(ctx)
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return apperr.Unauthorized("authentication required")
	}
	role, ok := ParseRole(claims.Role)
	if !ok || !g.table.Allows(role, perm) {
		return apperr.Forbidden("you do not have permission to perform this action")
	}
	return nil
}

// Require antepone Check al handler. Si se deniega, next no se ejecuta.
func (g *Gate) Require(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.Check(r.Context(), perm); err != nil {
				apperr.WriteHTTP(w, r, g.log, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guard es la variante para llamadas in-process (sin HTTP).
func Guard[In, Out any](g *Gate, perm Permission, op func(context.Context, In) (Out, error)) func(context.Context, In) (Out, error) {
	return func(ctx context.Context, in In) (Out, error) {
		if err := g.Check(ctx, perm); err != nil {
			var zero Out
			return zero, err
		}
		return op(ctx, in)
	}
}
