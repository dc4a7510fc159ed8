package characteristics

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

var characteristicSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["name"],
	"additionalProperties": false,
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 80},
		"category": {"type": "string", "maxLength": 40},
		"description": {"type": "string", "maxLength": 1000}
	}
}`)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	read := gate.Require(authz.PermCharacteristicsRead)
	write := gate.Require(authz.PermCharacteristicsWrite)

	r.With(read).Get("/staff/characteristics", listCharacteristicsHandler(svc, log))
	r.With(write).Post("/staff/characteristics", createCharacteristicHandler(svc, log))
	r.With(write).Patch("/staff/characteristics/{characteristicID}", updateCharacteristicHandler(svc, log))
	r.With(write).Delete("/staff/characteristics/{characteristicID}", deleteCharacteristicHandler(svc, log))

	r.With(read).Get("/staff/animals/{animalID}/characteristics", listAnimalCharacteristicsHandler(svc, log))
	r.With(write).Put("/staff/animals/{animalID}/characteristics/{characteristicID}", assignHandler(svc, log))
	r.With(write).Delete("/staff/animals/{animalID}/characteristics/{characteristicID}", unassignHandler(svc, log))
}

type characteristicRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type characteristicResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// listCharacteristicsHandler godoc
// @Summary Catálogo de características
// @Tags staff-characteristics
// @Param category query string false "Categoría"
// @Success 200 {array} characteristicResponse
// @Router /staff/characteristics [get]
func listCharacteristicsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCharacteristicList(items))
	}
}

// createCharacteristicHandler godoc
// @Summary Crea una característica
// @Tags staff-characteristics
// @Accept json
// @Param body body characteristicRequest true "Característica"
// @Success 201 {object} characteristicResponse
// @Failure 409 {object} apperr.Error
// @Router /staff/characteristics [post]
func createCharacteristicHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req characteristicRequest
		if err := characteristicSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		c, err := svc.Create(r.Context(), Input(req))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCharacteristicResponse(c))
	}
}

func updateCharacteristicHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req characteristicRequest
		if err := characteristicSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		c, err := svc.Update(r.Context(), chi.URLParam(r, "characteristicID"), Input(req))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCharacteristicResponse(c))
	}
}

func deleteCharacteristicHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "characteristicID")); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listAnimalCharacteristicsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toCharacteristicList(items))
	}
}

// assignHandler godoc
// @Summary Asigna una característica a un animal (idempotente)
// @Tags staff-characteristics
// @Param animalID path string true "Animal"
// @Param characteristicID path string true "Característica"
// @Success 204
// @Router /staff/animals/{animalID}/characteristics/{characteristicID} [put]
func assignHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		err := svc.Assign(r.Context(), claims.UserID, chi.URLParam(r, "animalID"), chi.URLParam(r, "characteristicID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func unassignHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Unassign(r.Context(), chi.URLParam(r, "animalID"), chi.URLParam(r, "characteristicID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCharacteristicList(items []Characteristic) []characteristicResponse {
	out := make([]characteristicResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCharacteristicResponse(c))
	}
	return out
}

func toCharacteristicResponse(c Characteristic) characteristicResponse {
	return characteristicResponse{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
