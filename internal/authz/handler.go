package authz

import (
	"encoding/json"
	"net/http"
	"strings"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, gate *Gate, log logger.Logger) {
	r.Get("/me", meHandler(gate, log))
}

type meResponse struct {
	UserID      string       `json:"user_id"`
	Email       string       `json:"email,omitempty"`
	Role        Role         `json:"role,omitempty"`
	Permissions []Permission `json:"permissions"`
	Dashboard   bool         `json:"dashboard"`
}

// meHandler godoc
// @Summary Identidad y permisos del usuario actual
// @Tags me
// @Produce json
// @Success 200 {object} meResponse
// @Failure 401 {object} apperr.Error
// @Router /me [get]
func meHandler(gate *Gate, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}

		// un rol desconocido no tiene permisos, pero la identidad es válida
		role, _ := ParseRole(claims.Role)
		perms := gate.Table().Permissions(role)
		if perms == nil {
			perms = []Permission{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(meResponse{
			UserID:      claims.UserID,
			Email:       claims.Email,
			Role:        role,
			Permissions: perms,
			Dashboard:   gate.Table().Allows(role, PermDashboardAccess),
		})
	}
}
