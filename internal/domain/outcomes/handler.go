package outcomes

import (
	"encoding/json"
	"net/http"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/validation"

	"github.com/go-chi/chi/v5"
)

var recordSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["type"],
	"additionalProperties": false,
	"properties": {
		"type": {"type": "string", "enum": ["ADOPTION", "TRANSFER", "RETURN_TO_OWNER", "DECEASED"]},
		"occurred_at": {"type": "string", "format": "date-time"},
		"application_id": {"type": "string"},
		"destination": {"type": "string", "maxLength": 300},
		"notes": {"type": "string", "maxLength": 5000}
	}
}`)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	r.With(gate.Require(authz.PermOutcomesRead)).Get("/staff/animals/{animalID}/outcomes", listOutcomesHandler(svc, log))
	r.With(gate.Require(authz.PermOutcomesWrite)).Post("/staff/animals/{animalID}/outcomes", recordOutcomeHandler(svc, log))
}

type recordOutcomeRequest struct {
	Type          Type       `json:"type"`
	OccurredAt    *time.Time `json:"occurred_at"`
	ApplicationID string     `json:"application_id"`
	Destination   string     `json:"destination"`
	Notes         string     `json:"notes"`
}

type outcomeResponse struct {
	ID            string    `json:"id"`
	AnimalID      string    `json:"animal_id"`
	Type          Type      `json:"type"`
	OccurredAt    time.Time `json:"occurred_at"`
	ApplicationID string    `json:"application_id,omitempty"`
	Destination   string    `json:"destination,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	RecordedBy    string    `json:"recorded_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// recordOutcomeHandler godoc
// @Summary Registrar la salida de un animal
// @Description Archiva el animal y rechaza las solicitudes abiertas. Con application_id adopta vía esa solicitud.
// @Tags staff-outcomes
// @Accept json
// @Produce json
// @Param animalID path string true "Animal"
// @Param body body recordOutcomeRequest true "Outcome"
// @Success 201 {object} outcomeResponse
// @Failure 409 {object} apperr.Error
// @Router /staff/animals/{animalID}/outcomes [post]
func recordOutcomeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req recordOutcomeRequest
		if err := recordSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		o, err := svc.Record(r.Context(), claims.UserID, chi.URLParam(r, "animalID"), RecordInput{
			Type:          req.Type,
			OccurredAt:    req.OccurredAt,
			ApplicationID: req.ApplicationID,
			Destination:   req.Destination,
			Notes:         req.Notes,
		})
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toOutcomeResponse(o))
	}
}

// listOutcomesHandler godoc
// @Summary Salidas registradas de un animal
// @Tags staff-outcomes
// @Param animalID path string true "Animal"
// @Success 200 {array} outcomeResponse
// @Router /staff/animals/{animalID}/outcomes [get]
func listOutcomesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		out := make([]outcomeResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOutcomeResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toOutcomeResponse(o Outcome) outcomeResponse {
	return outcomeResponse{
		ID:            o.ID,
		AnimalID:      o.AnimalID,
		Type:          o.Type,
		OccurredAt:    o.OccurredAt,
		ApplicationID: o.ApplicationID,
		Destination:   o.Destination,
		Notes:         o.Notes,
		RecordedBy:    o.RecordedBy,
		CreatedAt:     o.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
