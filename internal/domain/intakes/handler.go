package intakes

import (
	"encoding/json"
	"net/http"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/validation"

	"github.com/go-chi/chi/v5"
)

const intakeSchemaJSON = `{
	"type": "object",
	"required": ["type"],
	"additionalProperties": false,
	"properties": {
		"type": {"type": "string", "enum": ["STRAY", "SURRENDER", "TRANSFER", "RETURN", "BORN_IN_CARE", "SEIZED"]},
		"intake_date": {"type": "string", "format": "date-time"},
		"source": {"type": "string", "maxLength": 300},
		"contact": {"type": "string", "maxLength": 300},
		"notes": {"type": "string", "maxLength": 5000}
	}
}`

var (
	intakeSchema = validation.MustCompile(intakeSchemaJSON)
	admitSchema  = validation.MustCompile(`{
	"type": "object",
	"required": ["animal", "intake"],
	"additionalProperties": false,
	"properties": {
		"animal": ` + animals.CreateSchemaJSON + `,
		"intake": ` + intakeSchemaJSON + `
	}
}`)
)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	r.With(gate.Require(authz.PermIntakesWrite)).Post("/staff/intakes", admitHandler(svc, log))
	r.With(gate.Require(authz.PermIntakesWrite)).Post("/staff/animals/{animalID}/intakes", readmitHandler(svc, log))
	r.With(gate.Require(authz.PermIntakesRead)).Get("/staff/animals/{animalID}/intakes", listIntakesHandler(svc, log))
}

type intakeRequest struct {
	Type       Type       `json:"type"`
	IntakeDate *time.Time `json:"intake_date"`
	Source     string     `json:"source"`
	Contact    string     `json:"contact"`
	Notes      string     `json:"notes"`
}

func (req intakeRequest) toInput() Input {
	return Input{
		Type:       req.Type,
		IntakeDate: req.IntakeDate,
		Source:     req.Source,
		Contact:    req.Contact,
		Notes:      req.Notes,
	}
}

type admitRequest struct {
	Animal animals.CreateRequest `json:"animal"`
	Intake intakeRequest         `json:"intake"`
}

type intakeResponse struct {
	ID         string    `json:"id"`
	AnimalID   string    `json:"animal_id"`
	Type       Type      `json:"type"`
	IntakeDate time.Time `json:"intake_date"`
	Source     string    `json:"source,omitempty"`
	Contact    string    `json:"contact,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type admitResponse struct {
	Animal animals.Response `json:"animal"`
	Intake intakeResponse   `json:"intake"`
}

// admitHandler godoc
// @Summary Ingreso de un animal nuevo
// @Description Crea el animal en DRAFT y su primer ingreso.
// @Tags staff-intakes
// @Accept json
// @Produce json
// @Param body body admitRequest true "Animal + ingreso"
// @Success 201 {object} admitResponse
// @Failure 400 {object} apperr.Error
// @Router /staff/intakes [post]
func admitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req admitRequest
		if err := admitSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		animalIn, err := req.Animal.ToInput()
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		it, a, err := svc.Admit(r.Context(), claims.UserID, animalIn, req.Intake.toInput())
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, admitResponse{
			Animal: animals.ToResponse(a),
			Intake: toIntakeResponse(it),
		})
	}
}

// readmitHandler godoc
// @Summary Reingreso de un animal archivado
// @Tags staff-intakes
// @Accept json
// @Produce json
// @Param animalID path string true "Animal"
// @Param body body intakeRequest true "Ingreso"
// @Success 201 {object} intakeResponse
// @Failure 409 {object} apperr.Error
// @Router /staff/animals/{animalID}/intakes [post]
func readmitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req intakeRequest
		if err := intakeSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		it, err := svc.Readmit(r.Context(), claims.UserID, chi.URLParam(r, "animalID"), req.toInput())
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toIntakeResponse(it))
	}
}

// listIntakesHandler godoc
// @Summary Ingresos de un animal
// @Tags staff-intakes
// @Param animalID path string true "Animal"
// @Success 200 {array} intakeResponse
// @Router /staff/animals/{animalID}/intakes [get]
func listIntakesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		out := make([]intakeResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toIntakeResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toIntakeResponse(it Intake) intakeResponse {
	return intakeResponse{
		ID:         it.ID,
		AnimalID:   it.AnimalID,
		Type:       it.Type,
		IntakeDate: it.IntakeDate,
		Source:     it.Source,
		Contact:    it.Contact,
		Notes:      it.Notes,
		RecordedBy: it.RecordedBy,
		CreatedAt:  it.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
