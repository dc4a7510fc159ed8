package references

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/validation"

	"github.com/go-chi/chi/v5"
)

var createSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["kind", "name"],
	"additionalProperties": false,
	"properties": {
		"kind": {"type": "string", "enum": ["SPECIES", "BREED", "COLOR"]},
		"name": {"type": "string", "minLength": 1, "maxLength": 80},
		"parent_id": {"type": "string"}
	}
}`)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	// Catálogo público
	r.Get("/references", listReferencesHandler(svc, log))

	r.With(gate.Require(authz.PermReferencesWrite)).
		Post("/staff/references", createReferenceHandler(svc, log))
}

type createReferenceRequest struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

type referenceResponse struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// listReferencesHandler godoc
// @Summary Lista el catálogo de referencias
// @Tags references
// @Param kind query string false "SPECIES | BREED | COLOR"
// @Param parent_id query string false "Especie (para razas)"
// @Success 200 {array} referenceResponse
// @Router /references [get]
func listReferencesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := Kind(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("kind"))))
		items, err := svc.List(r.Context(), kind, r.URL.Query().Get("parent_id"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		out := make([]referenceResponse, 0, len(items))
		for _, ref := range items {
			out = append(out, toReferenceResponse(ref))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createReferenceHandler godoc
// @Summary Crea una especie, raza o color
// @Tags references
// @Accept json
// @Param body body createReferenceRequest true "Referencia"
// @Success 201 {object} referenceResponse
// @Router /staff/references [post]
func createReferenceHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReferenceRequest
		if err := createSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		ref, err := svc.Create(r.Context(), CreateInput{
			Kind:     req.Kind,
			Name:     req.Name,
			ParentID: req.ParentID,
		})
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReferenceResponse(ref))
	}
}

func toReferenceResponse(ref Reference) referenceResponse {
	return referenceResponse{
		ID:        ref.ID,
		Kind:      ref.Kind,
		Name:      ref.Name,
		ParentID:  ref.ParentID,
		CreatedAt: ref.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
