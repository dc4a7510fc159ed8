// Package apperr define la taxonomía de errores que cruza servicios y handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "internal"
)

// ErrRecordNotFound lo devuelven los adapters de storage cuando no hay fila.
// Los servicios lo traducen a su propio error NotFound con mensaje de usuario.
var ErrRecordNotFound = errors.New("record not found")

// Error es el error estructurado que ve el caller.
// Fields lleva errores por campo (solo para validación).
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// FieldError es un atajo para el caso típico de un solo campo inválido.
func FieldError(field, msg string) *Error {
	return Validation("invalid input", map[string][]string{field: {msg}})
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func RateLimited(msg string) *Error {
	return &Error{Kind: KindRateLimited, Message: msg}
}

// Internal envuelve un error inesperado. El mensaje nunca expone detalles.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "something went wrong", Err: err}
}

// KindOf clasifica cualquier error; lo que no sea *Error es interno.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reporta si err es un *Error de la clase indicada.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
