package applications

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

const profileProps = `
		"full_name": {"type": "string", "minLength": 1, "maxLength": 120},
		"email": {"type": "string", "minLength": 3, "maxLength": 200},
		"phone": {"type": "string", "maxLength": 40},
		"address": {"type": "string", "maxLength": 300},
		"housing_type": {"type": "string", "enum": ["HOUSE", "APARTMENT", "FARM", "OTHER"]},
		"has_yard": {"type": "boolean"},
		"other_pets": {"type": "string", "maxLength": 1000},
		"experience": {"type": "string", "maxLength": 2000},
		"message": {"type": "string", "maxLength": 2000}`

var profileSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["full_name", "email"],
	"additionalProperties": false,
	"properties": {` + profileProps + `
	}
}`)

var statusSchema = validation.MustCompile(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"status": {"type": "string", "enum": ["PENDING", "REVIEWING", "APPROVED", "REJECTED", "WITHDRAWN", "ADOPTED"]},
		"reason": {"type": "string", "maxLength": 1000},
		"is_primary": {"type": "boolean"},
		"internal_notes": {"type": "string", "maxLength": 5000}
	}
}`)

var withdrawSchema = validation.MustCompile(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"reason": {"type": "string", "maxLength": 1000}
	}
}`)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	// Solicitante
	r.Post("/animals/{animalID}/applications", submitApplicationHandler(svc, log))
	r.Get("/me/applications", listMyApplicationsHandler(svc, log))
	r.Get("/me/applications/{applicationID}", getMyApplicationHandler(svc, log))
	r.Patch("/me/applications/{applicationID}", updateMyApplicationHandler(svc, log))
	r.Post("/me/applications/{applicationID}/withdraw", withdrawApplicationHandler(svc, log))

	// Staff
	r.With(gate.Require(authz.PermApplicationsRead)).Get("/staff/applications", listApplicationsHandler(svc, log))
	r.With(gate.Require(authz.PermApplicationsRead)).Get("/staff/applications/{applicationID}", getApplicationHandler(svc, log))
	r.With(gate.Require(authz.PermApplicationsRead)).Get("/staff/applications/{applicationID}/history", applicationHistoryHandler(svc, log))
	r.With(gate.Require(authz.PermApplicationsReview)).Patch("/staff/applications/{applicationID}/status", updateStatusHandler(svc, log))
}

type profileRequest struct {
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	HousingType HousingType `json:"housing_type"`
	HasYard     bool        `json:"has_yard"`
	OtherPets   string      `json:"other_pets"`
	Experience  string      `json:"experience"`
	Message     string      `json:"message"`
}

type updateStatusRequest struct {
	Status        Status  `json:"status"`
	Reason        string  `json:"reason"`
	IsPrimary     *bool   `json:"is_primary"`
	InternalNotes *string `json:"internal_notes"`
}

type withdrawRequest struct {
	Reason string `json:"reason"`
}

type profileResponse struct {
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	HousingType HousingType `json:"housing_type"`
	HasYard     bool        `json:"has_yard"`
	OtherPets   string      `json:"other_pets"`
	Experience  string      `json:"experience"`
	Message     string      `json:"message"`
}

type applicationResponse struct {
	ID              string          `json:"id"`
	AnimalID        string          `json:"animal_id"`
	ApplicantID     string          `json:"applicant_id"`
	Profile         profileResponse `json:"profile"`
	Status          Status          `json:"status"`
	IsPrimary       bool            `json:"is_primary"`
	SubmittedAt     time.Time       `json:"submitted_at"`
	StatusReason    string          `json:"status_reason,omitempty"`
	StatusChangedAt *time.Time      `json:"status_changed_at,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// staffApplicationResponse agrega lo que el solicitante no ve.
type staffApplicationResponse struct {
	applicationResponse
	InternalNotes   string `json:"internal_notes"`
	StatusChangedBy string `json:"status_changed_by,omitempty"`
}

type historyResponse struct {
	ID                string     `json:"id"`
	FromStatus        Status     `json:"from_status"`
	ToStatus          Status     `json:"to_status"`
	Reason            string     `json:"reason"`
	ChangedBy         string     `json:"changed_by"`
	ChangedAt         time.Time  `json:"changed_at"`
	PreviousReason    string     `json:"previous_reason,omitempty"`
	PreviousChangedBy string     `json:"previous_changed_by,omitempty"`
	PreviousChangedAt *time.Time `json:"previous_changed_at,omitempty"`
}

// submitApplicationHandler godoc
// @Summary Envía una solicitud de adopción
// @Tags applications
// @Accept json
// @Param animalID path string true "Animal"
// @Param body body profileRequest true "Datos del solicitante"
// @Success 201 {object} applicationResponse
// @Failure 409 {object} apperr.Error
// @Router /animals/{animalID}/applications [post]
func submitApplicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}

		var req profileRequest
		if err := profileSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		a, err := svc.Submit(r.Context(), claims.UserID, chi.URLParam(r, "animalID"), req.toProfile())
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

func listMyApplicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}

		res, err := svc.ListMine(r.Context(), claims.UserID, paging.FromRequest(r))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		out := make([]applicationResponse, 0, len(res.Items))
		for _, a := range res.Items {
			out = append(out, toApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, paging.Result[applicationResponse]{
			Items: out, Total: res.Total, Page: res.Page, PageSize: res.PageSize,
		})
	}
}

func getMyApplicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}

		a, err := svc.GetMine(r.Context(), claims.UserID, chi.URLParam(r, "applicationID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func updateMyApplicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}

		var req profileRequest
		if err := profileSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		a, err := svc.UpdateProfile(r.Context(), claims.UserID, chi.URLParam(r, "applicationID"), req.toProfile())
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// withdrawApplicationHandler godoc
// @Summary Retira una solicitud propia
// @Tags applications
// @Param applicationID path string true "Solicitud"
// @Param body body withdrawRequest false "Motivo opcional"
// @Success 200 {object} applicationResponse
// @Router /me/applications/{applicationID}/withdraw [post]
func withdrawApplicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteHTTP(w, r, log, apperr.Unauthorized("authentication required"))
			return
		}

		var req withdrawRequest
		if err := withdrawSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		a, err := svc.Withdraw(r.Context(), claims.UserID, chi.URLParam(r, "applicationID"), req.Reason)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// listApplicationsHandler godoc
// @Summary Lista solicitudes (staff)
// @Tags staff-applications
// @Param status query string false "Estados separados por coma"
// @Param animal_id query string false "Animal"
// @Param applicant_id query string false "Solicitante"
// @Param q query string false "Nombre o email"
// @Param sort query string false "submitted_at | updated_at | status"
// @Success 200 {object} paging.Result[staffApplicationResponse]
// @Router /staff/applications [get]
func listApplicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs := r.URL.Query()
		field, desc := paging.SortFromRequest(r)
		q := ListQuery{
			AnimalID:    strings.TrimSpace(qs.Get("animal_id")),
			ApplicantID: strings.TrimSpace(qs.Get("applicant_id")),
			Search:      strings.TrimSpace(qs.Get("q")),
			Sort:        ParseSortField(field),
			Desc:        desc,
			Paging:      paging.FromRequest(r),
		}
		for _, raw := range strings.Split(qs.Get("status"), ",") {
			if st := Status(strings.ToUpper(strings.TrimSpace(raw))); st != "" {
				q.Statuses = append(q.Statuses, st)
			}
		}

		res, err := svc.List(r.Context(), q)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		out := make([]staffApplicationResponse, 0, len(res.Items))
		for _, a := range res.Items {
			out = append(out, toStaffApplicationResponse(a))
		}
		writeJSON(w, http.StatusOK, paging.Result[staffApplicationResponse]{
			Items: out, Total: res.Total, Page: res.Page, PageSize: res.PageSize,
		})
	}
}

func getApplicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "applicationID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffApplicationResponse(a))
	}
}

func applicationHistoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.History(r.Context(), chi.URLParam(r, "applicationID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		out := make([]historyResponse, 0, len(rows))
		for _, h := range rows {
			out = append(out, historyResponse{
				ID:                h.ID,
				FromStatus:        h.FromStatus,
				ToStatus:          h.ToStatus,
				Reason:            h.Reason,
				ChangedBy:         h.ChangedBy,
				ChangedAt:         h.ChangedAt,
				PreviousReason:    h.PreviousReason,
				PreviousChangedBy: h.PreviousChangedBy,
				PreviousChangedAt: h.PreviousChangedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateStatusHandler godoc
// @Summary Cambia el estado de una solicitud
// @Description Aprobar como primaria reserva el animal (PENDING_ADOPTION). ADOPTED archiva el animal y rechaza las demás solicitudes abiertas.
// @Tags staff-applications
// @Accept json
// @Param applicationID path string true "Solicitud"
// @Param body body updateStatusRequest true "Cambio"
// @Success 200 {object} staffApplicationResponse
// @Failure 400 {object} apperr.Error
// @Failure 409 {object} apperr.Error
// @Router /staff/applications/{applicationID}/status [patch]
func updateStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateStatusRequest
		if err := statusSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		a, err := svc.UpdateStatus(r.Context(), claims.UserID, chi.URLParam(r, "applicationID"), StatusInput{
			Status:        req.Status,
			Reason:        req.Reason,
			SetPrimary:    req.IsPrimary,
			InternalNotes: req.InternalNotes,
		})
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toStaffApplicationResponse(a))
	}
}

func (req profileRequest) toProfile() Profile {
	return Profile{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		HousingType: req.HousingType,
		HasYard:     req.HasYard,
		OtherPets:   req.OtherPets,
		Experience:  req.Experience,
		Message:     req.Message,
	}
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		AnimalID:    a.AnimalID,
		ApplicantID: a.ApplicantID,
		Profile: profileResponse{
			FullName:    a.Profile.FullName,
			Email:       a.Profile.Email,
			Phone:       a.Profile.Phone,
			Address:     a.Profile.Address,
			HousingType: a.Profile.HousingType,
			HasYard:     a.Profile.HasYard,
			OtherPets:   a.Profile.OtherPets,
			Experience:  a.Profile.Experience,
			Message:     a.Profile.Message,
		},
		Status:          a.Status,
		IsPrimary:       a.IsPrimary,
		SubmittedAt:     a.SubmittedAt,
		StatusReason:    a.StatusReason,
		StatusChangedAt: a.StatusChangedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toStaffApplicationResponse(a Application) staffApplicationResponse {
	return staffApplicationResponse{
		applicationResponse: toApplicationResponse(a),
		InternalNotes:       a.InternalNotes,
		StatusChangedBy:     a.StatusChangedBy,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
