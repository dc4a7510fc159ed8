package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"animal-shelter/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type errorBody struct {
	Kind    Kind                `json:"kind"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// StatusCode mapea la clase de error a HTTP.
func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WriteHTTP responde el error con el shape {"error":{...}}.
// Los errores internos se loguean acá y salen con mensaje genérico.
func WriteHTTP(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}

	if e.Kind == KindInternal && log != nil {
		log.Error("request failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"error":      err.Error(),
		})
	}

	body := errorBody{Kind: e.Kind, Message: e.Message, Fields: e.Fields}
	if e.Kind == KindInternal {
		body = errorBody{Kind: KindInternal, Message: "something went wrong"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(e.Kind))
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: body})
}
