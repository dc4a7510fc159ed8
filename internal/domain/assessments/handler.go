package assessments

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/validation"

	"github.com/go-chi/chi/v5"
)

var createSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["kind", "score", "summary"],
	"additionalProperties": false,
	"properties": {
		"kind": {"type": "string", "enum": ["BEHAVIOR", "MEDICAL", "TEMPERAMENT"]},
		"score": {"type": "integer", "minimum": 1, "maximum": 5},
		"summary": {"type": "string", "minLength": 1, "maxLength": 500},
		"details": {"type": "string", "maxLength": 10000},
		"assessed_at": {"type": "string", "format": "date-time"}
	}
}`)

var updateSchema = validation.MustCompile(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"kind": {"type": "string", "enum": ["BEHAVIOR", "MEDICAL", "TEMPERAMENT"]},
		"score": {"type": "integer", "minimum": 1, "maximum": 5},
		"summary": {"type": "string", "minLength": 1, "maxLength": 500},
		"details": {"type": "string", "maxLength": 10000}
	}
}`)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	r.With(gate.Require(authz.PermAssessmentsRead)).Get("/staff/animals/{animalID}/assessments", listAssessmentsHandler(svc, log))
	r.With(gate.Require(authz.PermAssessmentsWrite)).Post("/staff/animals/{animalID}/assessments", createAssessmentHandler(svc, log))
	r.With(gate.Require(authz.PermAssessmentsWrite)).Patch("/staff/assessments/{assessmentID}", updateAssessmentHandler(svc, log))
	r.With(gate.Require(authz.PermAssessmentsWrite)).Delete("/staff/assessments/{assessmentID}", deleteAssessmentHandler(svc, log))
}

type createAssessmentRequest struct {
	Kind       Kind       `json:"kind"`
	Score      int        `json:"score"`
	Summary    string     `json:"summary"`
	Details    string     `json:"details"`
	AssessedAt *time.Time `json:"assessed_at"`
}

type updateAssessmentRequest struct {
	Kind    *Kind   `json:"kind"`
	Score   *int    `json:"score"`
	Summary *string `json:"summary"`
	Details *string `json:"details"`
}

type assessmentResponse struct {
	ID         string    `json:"id"`
	AnimalID   string    `json:"animal_id"`
	Kind       Kind      `json:"kind"`
	Score      int       `json:"score"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details,omitempty"`
	AssessedAt time.Time `json:"assessed_at"`
	AssessedBy string    `json:"assessed_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// listAssessmentsHandler godoc
// @Summary Evaluaciones de un animal
// @Tags staff-assessments
// @Param animalID path string true "Animal"
// @Param kind query string false "BEHAVIOR | MEDICAL | TEMPERAMENT"
// @Success 200 {array} assessmentResponse
// @Router /staff/animals/{animalID}/assessments [get]
func listAssessmentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := Kind(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("kind"))))
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"), kind)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		out := make([]assessmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAssessmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createAssessmentHandler godoc
// @Summary Registra una evaluación
// @Tags staff-assessments
// @Accept json
// @Param animalID path string true "Animal"
// @Param body body createAssessmentRequest true "Evaluación"
// @Success 201 {object} assessmentResponse
// @Router /staff/animals/{animalID}/assessments [post]
func createAssessmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createAssessmentRequest
		if err := createSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, chi.URLParam(r, "animalID"), CreateInput{
			Kind:       req.Kind,
			Score:      req.Score,
			Summary:    req.Summary,
			Details:    req.Details,
			AssessedAt: req.AssessedAt,
		})
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAssessmentResponse(a))
	}
}

func updateAssessmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAssessmentRequest
		if err := updateSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "assessmentID"), UpdateInput{
			Kind:    req.Kind,
			Score:   req.Score,
			Summary: req.Summary,
			Details: req.Details,
		})
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAssessmentResponse(a))
	}
}

func deleteAssessmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "assessmentID")); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toAssessmentResponse(a Assessment) assessmentResponse {
	return assessmentResponse{
		ID:         a.ID,
		AnimalID:   a.AnimalID,
		Kind:       a.Kind,
		Score:      a.Score,
		Summary:    a.Summary,
		Details:    a.Details,
		AssessedAt: a.AssessedAt,
		AssessedBy: a.AssessedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
