package tasks

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
	"required": ["title"],
	"additionalProperties": false,
	"properties": {
		"animal_id": {"type": "string"},
		"title": {"type": "string", "minLength": 1, "maxLength": 200},
		"description": {"type": "string", "maxLength": 5000},
		"priority": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
		"assignee_id": {"type": "string"},
		"due_date": {"type": "string", "format": "date-time"}
	}
}`)

var updateSchema = validation.MustCompile(`{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"title": {"type": "string", "minLength": 1, "maxLength": 200},
		"description": {"type": "string", "maxLength": 5000},
		"status": {"type": "string", "enum": ["TODO", "IN_PROGRESS", "DONE"]},
		"priority": {"type": "string", "enum": ["LOW", "MEDIUM", "HIGH"]},
		"assignee_id": {"type": "string"},
		"due_date": {"type": ["string", "null"], "format": "date-time"}
	}
}`)

func RegisterRoutes(r chi.Router, svc *Service, gate *authz.Gate, log logger.Logger) {
	r.With(gate.Require(authz.PermTasksRead)).Get("/staff/tasks", listTasksHandler(svc, log))
	r.With(gate.Require(authz.PermTasksWrite)).Post("/staff/tasks", createTaskHandler(svc, log))
	r.With(gate.Require(authz.PermTasksRead)).Get("/staff/tasks/{taskID}", getTaskHandler(svc, log))
	r.With(gate.Require(authz.PermTasksWrite)).Patch("/staff/tasks/{taskID}", updateTaskHandler(svc, log))
	r.With(gate.Require(authz.PermTasksWrite)).Delete("/staff/tasks/{taskID}", deleteTaskHandler(svc, log))
	r.With(gate.Require(authz.PermTasksRead)).Get("/staff/animals/{animalID}/tasks", listAnimalTasksHandler(svc, log))
}

type createTaskRequest struct {
	AnimalID    string     `json:"animal_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	AssigneeID  string     `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *Status         `json:"status"`
	Priority    *Priority       `json:"priority"`
	AssigneeID  *string         `json:"assignee_id"`
	DueDate     json.RawMessage `json:"due_date"` // null limpia
}

type taskResponse struct {
	ID          string     `json:"id"`
	AnimalID    string     `json:"animal_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// listTasksHandler godoc
// @Summary Tareas del refugio
// @Tags staff-tasks
// @Param status query string false "TODO | IN_PROGRESS | DONE"
// @Param assignee_id query string false "Responsable"
// @Param animal_id query string false "Animal"
// @Success 200 {array} taskResponse
// @Router /staff/tasks [get]
func listTasksHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), filterFromRequest(r))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskList(items))
	}
}

func listAnimalTasksHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"), filterFromRequest(r))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskList(items))
	}
}

// createTaskHandler godoc
// @Summary Crea una tarea
// @Tags staff-tasks
// @Accept json
// @Param body body createTaskRequest true "Tarea"
// @Success 201 {object} taskResponse
// @Router /staff/tasks [post]
func createTaskHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createTaskRequest
		if err := createSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		t, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			AnimalID:    req.AnimalID,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			AssigneeID:  req.AssigneeID,
			DueDate:     req.DueDate,
		})
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTaskResponse(t))
	}
}

func getTaskHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.Get(r.Context(), chi.URLParam(r, "taskID"))
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskResponse(t))
	}
}

// updateTaskHandler godoc
// @Summary Actualiza una tarea
// @Tags staff-tasks
// @Accept json
// @Param taskID path string true "Tarea"
// @Param body body updateTaskRequest true "Cambios"
// @Success 200 {object} taskResponse
// @Router /staff/tasks/{taskID} [patch]
func updateTaskHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateTaskRequest
		if err := updateSchema.Decode(r.Body, &req); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}

		in := UpdateInput{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			AssigneeID:  req.AssigneeID,
		}
		switch raw := strings.TrimSpace(string(req.DueDate)); raw {
		case "":
		case "null":
			in.ClearDue = true
		default:
			var due time.Time
			if err := json.Unmarshal(req.DueDate, &due); err != nil {
				apperr.WriteHTTP(w, r, log, apperr.FieldError("due_date", "must be an RFC 3339 timestamp"))
				return
			}
			in.DueDate = &due
		}

		t, err := svc.Update(r.Context(), chi.URLParam(r, "taskID"), in)
		if err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskResponse(t))
	}
}

func deleteTaskHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "taskID")); err != nil {
			apperr.WriteHTTP(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func filterFromRequest(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		AnimalID:   q.Get("animal_id"),
		Status:     Status(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
		AssigneeID: q.Get("assignee_id"),
	}
}

func toTaskList(items []Task) []taskResponse {
	out := make([]taskResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func toTaskResponse(t Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		AnimalID:    t.AnimalID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		CreatedBy:   t.CreatedBy,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
