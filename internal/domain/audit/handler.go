package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	// el permiso envuelve la operación misma, no solo la ruta
	list := authz.Guard(gate, authz.PermActivityRead, svc.ListByAnimal)
	r.Get("/staff/animals/{animalID}/activity", listActivityHandler(list, log))
}

type entryResponse struct {
	ID         string            `json:"id"`
	EntityType EntityType        `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Action     Action            `json:"action"`
	ActorID    string            `json:"actor_id"`
	Details    map[string]string `json:"details"`
	CreatedAt  time.Time         `json:"created_at"`
}

// listActivityHandler godoc
// @Summary Registro de actividad de un animal
// @Tags staff-animals
// @Param animalID path string true "Animal"
// @Success 200 {array} entryResponse
// @Router /staff/animals/{animalID}/activity [get]
func listActivityHandler(list func(context.Context, string) ([]Entry, error), log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, entryResponse{
				ID:         e.ID,
				EntityType: e.EntityType,
				EntityID:   e.EntityID,
				Action:     e.Action,
				ActorID:    e.ActorID,
				Details:    e.Details,
				CreatedAt:  e.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
