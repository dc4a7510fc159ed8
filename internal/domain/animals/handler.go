package animals

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"animal-shelter/internal/apperr"
	"animal-shelter/internal/authz"
	"animal-shelter/internal/middleware"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/platform/paging"
	"animal-shelter/internal/validation"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// CreateSchemaJSON es el schema del alta; intakes lo embebe en el suyo.
const CreateSchemaJSON = `{
	"type": "object",
	"required": ["name", "species_id"],
	"additionalProperties": false,
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 120},
		"species_id": {"type": "string", "minLength": 1},
		"breed_id": {"type": "string"},
		"color_id": {"type": "string"},
		"sex": {"type": "string", "enum": ["MALE", "FEMALE", "UNKNOWN"]},
		"birth_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"weight_kg": {"type": "number", "minimum": 0},
		"height_cm": {"type": "number", "minimum": 0},
		"health_status": {"type": "string", "enum": ["HEALTHY", "UNDER_TREATMENT", "SPECIAL_NEEDS", "CRITICAL"]},
		"location": {"type": "string", "maxLength": 200},
		"description": {"type": "string", "maxLength": 5000}
	}
}`

var createSchema = validation.MustCompile(CreateSchemaJSON)

var updateSchema = validation.MustCompile(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"name": {"type": "string", "minLength": 1, "maxLength": 120},
		"species_id": {"type": "string", "minLength": 1},
		"breed_id": {"type": "string"},
		"color_id": {"type": "string"},
		"sex": {"type": "string", "enum": ["MALE", "FEMALE", "UNKNOWN"]},
		"birth_date": {"type": "string", "pattern": "^(\\d{4}-\\d{2}-\\d{2})?$"},
		"weight_kg": {"type": "number", "minimum": 0},
		"height_cm": {"type": "number", "minimum": 0},
		"health_status": {"type": "string", "enum": ["HEALTHY", "UNDER_TREATMENT", "SPECIAL_NEEDS", "CRITICAL"]},
		"location": {"type": "string", "maxLength": 200},
		"description": {"type": "string", "maxLength": 5000}
	}
}`)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	// Catálogo público
	r.Get("/animals", browseAnimalsHandler(svc, log))
	r.Get("/animals/{animalID}", getListedAnimalHandler(svc, log))

	// Solicitante autenticado
	r.Post("/animals/{animalID}/likes", likeAnimalHandler(svc, log))
	r.Delete("/animals/{animalID}/likes", unlikeAnimalHandler(svc, log))
	r.Get("/me/likes", listMyLikesHandler(svc, log))

	// Staff
	r.With(gate.Require(authz.PermAnimalsRead)).Get("/staff/animals", listAnimalsHandler(svc, log))
	r.With(gate.Require(authz.PermAnimalsWrite)).Post("/staff/animals", createAnimalHandler(svc, log))
	r.With(gate.Require(authz.PermAnimalsRead)).Get("/staff/animals/{animalID}", getAnimalHandler(svc, log))
	r.With(gate.Require(authz.PermAnimalsWrite)).Patch("/staff/animals/{animalID}", updateAnimalHandler(svc, log))
	r.With(gate.Require(authz.PermAnimalsDelete)).Delete("/staff/animals/{animalID}", deleteAnimalHandler(svc, log))
	r.With(gate.Require(authz.PermAnimalsPublish)).Post("/staff/animals/{animalID}/publish", publishAnimalHandler(svc, log))
	r.With(gate.Require(authz.PermAnimalsPublish)).Post("/staff/animals/{animalID}/unpublish", unpublishAnimalHandler(svc, log))
}

// CreateRequest es el body de alta de un animal.
type CreateRequest struct {
	Name         string       `json:"name"`
	SpeciesID    string       `json:"species_id"`
	BreedID      string       `json:"breed_id"`
	ColorID      string       `json:"color_id"`
	Sex          Sex          `json:"sex"`
	BirthDate    string       `json:"birth_date"` // YYYY-MM-DD opcional
	WeightKg     *float64     `json:"weight_kg"`
	HeightCm     *float64     `json:"height_cm"`
	HealthStatus HealthStatus `json:"health_status"`
	Location     string       `json:"location"`
	Description  string       `json:"description"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string       `json:"name"`
	SpeciesID    *string       `json:"species_id"`
	BreedID      *string       `json:"breed_id"`
	ColorID      *string       `json:"color_id"`
	Sex          *Sex          `json:"sex"`
	BirthDate    *string       `json:"birth_date"` // "" limpia
	WeightKg     *float64      `json:"weight_kg"`
	HeightCm     *float64      `json:"height_cm"`
	HealthStatus *HealthStatus `json:"health_status"`
	Location     *string       `json:"location"`
	Description  *string       `json:"description"`
}

// Response es la vista JSON de un animal para staff.
type Response struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	SpeciesID     string        `json:"species_id"`
	BreedID       string        `json:"breed_id,omitempty"`
	ColorID       string        `json:"color_id,omitempty"`
	Sex           Sex           `json:"sex"`
	BirthDate     string        `json:"birth_date,omitempty"`
	WeightKg      *float64      `json:"weight_kg,omitempty"`
	HeightCm      *float64      `json:"height_cm,omitempty"`
	HealthStatus  HealthStatus  `json:"health_status"`
	ListingStatus ListingStatus `json:"listing_status"`
	ArchiveReason ArchiveReason `json:"archive_reason,omitempty"`
	Location      string        `json:"location"`
	Description   string        `json:"description"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type tagResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type publicAnimalResponse struct {
	Response
	Characteristics []tagResponse `json:"characteristics"`
}

// browseAnimalsHandler godoc
// @Summary Catálogo público de animales en adopción
// @Tags animals
// @Param species_id query string false "Especie"
// @Param sex query string false "MALE | FEMALE | UNKNOWN"
// @Param health_status query string false "Estado de salud"
// @Param q query string false "Texto libre"
// @Param sort query string false "name | created_at | updated_at"
// @Param order query string false "asc | desc"
// @Param page query int false "Página (1-based)"
// @Param page_size query int false "Tamaño de página (máx 100)"
// @Success 200 {object} paging.Result[Response]
// @Router /animals [get]
func browseAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Browse(r.Context(), listQueryFromRequest(r))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalPage(res))
	}
}

// getListedAnimalHandler godoc
// @Summary Detalle público de un animal
// @Tags animals
// @Param animalID path string true "Animal"
// @Success 200 {object} publicAnimalResponse
// @Failure 404 {object} apperr.Error
// @Router /animals/{animalID} [get]
func getListedAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pa, err := svc.GetListed(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		tags := make([]tagResponse, 0, len(pa.Tags))
		for _, t := range pa.Tags {
			tags = append(tags, tagResponse{ID: t.ID, Name: t.Name, Category: t.Category})
		}
		writeJSON(w, http.StatusOK, publicAnimalResponse{
			Response:        ToResponse(pa.Animal),
			Characteristics: tags,
		})
	}
}

func likeAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}
		if err := svc.Like(r.Context(), chi.URLParam(r, "animalID"), claims.UserID); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func unlikeAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}
		if err := svc.Unlike(r.Context(), chi.URLParam(r, "animalID"), claims.UserID); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listMyLikesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}
		items, err := svc.Liked(r.Context(), claims.UserID)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		out := make([]Response, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listAnimalsHandler godoc
// @Summary Listado de animales (staff)
// @Tags staff-animals
// @Param status query string false "DRAFT,PUBLISHED,... (separados por coma)"
// @Success 200 {object} paging.Result[Response]
// @Router /staff/animals [get]
func listAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := listQueryFromRequest(r)
		for _, raw := range strings.Split(r.URL.Query().Get("status"), ",") {
			st := ListingStatus(strings.ToUpper(strings.TrimSpace(raw)))
			if st == "" {
				continue
			}
			if !st.Valid() {
				apperr.WriteHTTP(w, r, log, apperr.FieldError("status", "invalid listing status"))
				return
			}
			q.Statuses = append(q.Statuses, st)
		}

		res, err := svc.List(r.Context(), q)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalPage(res))
	}
}

// createAnimalHandler godoc
// @Summary Crea un animal en borrador
// @Tags staff-animals
// @Accept json
// @Param body body CreateRequest true "Animal"
// @Success 201 {object} Response
// @Failure 400 {object} apperr.Error
// @Router /staff/animals [post]
func createAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := createSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		in, err := req.ToInput()
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		a, err := svc.Create(r.Context(), in)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToResponse(a))
	}
}

func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

// updateAnimalHandler godoc
// @Summary Actualiza el perfil de un animal
// @Tags staff-animals
// @Accept json
// @Param animalID path string true "Animal"
// @Param body body updateAnimalRequest true "Campos a cambiar"
// @Success 200 {object} Response
// @Router /staff/animals/{animalID} [patch]
func updateAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if err := updateSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		in := UpdateInput{
			Name:         req.Name,
			SpeciesID:    req.SpeciesID,
			BreedID:      req.BreedID,
			ColorID:      req.ColorID,
			Sex:          req.Sex,
			WeightKg:     req.WeightKg,
			HeightCm:     req.HeightCm,
			HealthStatus: req.HealthStatus,
			Location:     req.Location,
			Description:  req.Description,
		}
		if req.BirthDate != nil {
			if strings.TrimSpace(*req.BirthDate) == "" {
				in.ClearBirthDate = true
			} else {
				bd, err := time.Parse(dateLayout, *req.BirthDate)
				if err != nil {
					apperr.WriteHTTP(w, r, log, apperr.FieldError("birth_date", "must be YYYY-MM-DD"))
					return
				}
				in.BirthDate = &bd
			}
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), in)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

func deleteAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "animalID")); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// publishAnimalHandler godoc
// @Summary Publica un borrador (DRAFT -> PUBLISHED)
// @Tags staff-animals
// @Param animalID path string true "Animal"
// @Success 200 {object} Response
// @Failure 409 {object} apperr.Error
// @Router /staff/animals/{animalID}/publish [post]
func publishAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Publish(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

func unpublishAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Unpublish(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

// ToInput convierte el body de alta (fecha YYYY-MM-DD).
func (req CreateRequest) ToInput() (CreateInput, error) {
	var bd *time.Time
	if strings.TrimSpace(req.BirthDate) != "" {
		t, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			return CreateInput{}, apperr.FieldError("birth_date", "must be YYYY-MM-DD")
		}
		bd = &t
	}
	return CreateInput{
		Name:         req.Name,
		SpeciesID:    req.SpeciesID,
		BreedID:      req.BreedID,
		ColorID:      req.ColorID,
		Sex:          req.Sex,
		BirthDate:    bd,
		WeightKg:     req.WeightKg,
		HeightCm:     req.HeightCm,
		HealthStatus: req.HealthStatus,
		Location:     req.Location,
		Description:  req.Description,
	}, nil
}

func listQueryFromRequest(r *http.Request) ListQuery {
	qs := r.URL.Query()
	field, desc := paging.SortFromRequest(r)
	return ListQuery{
		SpeciesID:    strings.TrimSpace(qs.Get("species_id")),
		Sex:          Sex(strings.ToUpper(strings.TrimSpace(qs.Get("sex")))),
		HealthStatus: HealthStatus(strings.ToUpper(strings.TrimSpace(qs.Get("health_status")))),
		Search:       strings.TrimSpace(qs.Get("q")),
		Sort:         ParseSortField(field),
		Desc:         desc,
		Paging:       paging.FromRequest(r),
	}
}

func toAnimalPage(res paging.Result[Animal]) paging.Result[Response] {
	out := make([]Response, 0, len(res.Items))
	for _, a := range res.Items {
		out = append(out, ToResponse(a))
	}
	return paging.Result[Response]{Items: out, Total: res.Total, Page: res.Page, PageSize: res.PageSize}
}

func ToResponse(a Animal) Response {
	out := Response{
		ID:            a.ID,
		Name:          a.Name,
		SpeciesID:     a.SpeciesID,
		BreedID:       a.BreedID,
		ColorID:       a.ColorID,
		Sex:           a.Sex,
		WeightKg:      a.WeightKg,
		HeightCm:      a.HeightCm,
		HealthStatus:  a.HealthStatus,
		ListingStatus: a.ListingStatus,
		ArchiveReason: a.ArchiveReason,
		Location:      a.Location,
		Description:   a.Description,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.BirthDate != nil {
		out.BirthDate = a.BirthDate.Format(dateLayout)
	}
	return out
}

// writeJSON está duplicado intencionalmente en cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
