package notes

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

var bodySchema = validation.MustCompile(`{
	"type": "object",
	"required": ["body"],
	"additionalProperties": false,
	"properties": {
		"body": {"type": "string", "minLength": 1, "maxLength": 10000}
	}
}`)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	r.With(gate.Require(authz.PermNotesRead)).Get("/staff/animals/{animalID}/notes", listNotesHandler(svc, log))
	r.With(gate.Require(authz.PermNotesWrite)).Post("/staff/animals/{animalID}/notes", createNoteHandler(svc, log))
	r.With(gate.Require(authz.PermNotesWrite)).Patch("/staff/notes/{noteID}", updateNoteHandler(svc, log))
	r.With(gate.Require(authz.PermNotesWrite)).Delete("/staff/notes/{noteID}", deleteNoteHandler(svc, log))
}

type noteRequest struct {
	Body string `json:"body"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animal_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func actorFromRequest(r *http.Request) Actor {
	c, _ := middleware.GetClaims(r.Context())
	role, _ := authz.ParseRole(c.Role)
	return Actor{ID: c.UserID, Role: role}
}

// listNotesHandler godoc
// @Summary Notas de un animal
// @Tags staff-notes
// @Param animalID path string true "Animal"
// @Success 200 {array} noteResponse
// @Router /staff/animals/{animalID}/notes [get]
func listNotesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		out := make([]noteResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNoteResponse(n))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createNoteHandler godoc
// @Summary Agrega una nota
// @Tags staff-notes
// @Accept json
// @Param animalID path string true "Animal"
// @Param body body noteRequest true "Nota"
// @Success 201 {object} noteResponse
// @Router /staff/animals/{animalID}/notes [post]
func createNoteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req noteRequest
		if err := bodySchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		n, err := svc.Create(r.Context(), actorFromRequest(r), chi.URLParam(r, "animalID"), req.Body)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toNoteResponse(n))
	}
}

// updateNoteHandler godoc
// @Summary Edita una nota (autor o admin)
// @Tags staff-notes
// @Accept json
// @Param noteID path string true "Nota"
// @Param body body noteRequest true "Nota"
// @Success 200 {object} noteResponse
// @Failure 403 {object} apperr.Error
// @Router /staff/notes/{noteID} [patch]
func updateNoteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req noteRequest
		if err := bodySchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		n, err := svc.Update(r.Context(), actorFromRequest(r), chi.URLParam(r, "noteID"), req.Body)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toNoteResponse(n))
	}
}

func deleteNoteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "noteID")); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toNoteResponse(n Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		AnimalID:  n.AnimalID,
		AuthorID:  n.AuthorID,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
