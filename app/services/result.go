package services

import (
	"errors"
	"log"

	"github.com/Rakhulsr/clothing-catalog-admin/app/helpers"
)

type ErrorKind string

const (
	ErrorValidation ErrorKind = "validation"
	ErrorNotFound   ErrorKind = "not_found"
	ErrorDuplicate  ErrorKind = "duplicate"
	ErrorConflict   ErrorKind = "conflict"
	ErrorBadRequest ErrorKind = "bad_request"
	ErrorInternal   ErrorKind = "internal"

	// ErrorUnauthorized is only produced by the HTTP layer.
	ErrorUnauthorized ErrorKind = "unauthorized"
)

const unexpectedMessage = "Unexpected error occurred"

// Result is the envelope every catalog operation returns.
type Result[D any] struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Data        D                   `json:"data"`
	Error       string              `json:"error,omitempty"`
	ErrorKind   ErrorKind           `json:"errorKind,omitempty"`
	FieldErrors helpers.FieldErrors `json:"fieldErrors,omitempty"`
}

// failure is an expected, caller-facing error. Anything else reaching the
// envelope boundary is reported as internal.
type failure struct {
	kind    ErrorKind
	message string
	fields  helpers.FieldErrors
}

func (f *failure) Error() string {
	return f.message
}

func newFailure(kind ErrorKind, message string) *failure {
	return &failure{kind: kind, message: message}
}

func succeed[D any](message string, data D) Result[D] {
	return Result[D]{Success: true, Message: message, Data: data}
}

// fromError turns err into a failed envelope. op names the operation in logs.
func fromError[D any](op string, err error) Result[D] {
	var f *failure
	if errors.As(err, &f) {
		return Result[D]{Message: f.message, Error: f.message, ErrorKind: f.kind, FieldErrors: f.fields}
	}
	log.Printf("%s: %v", op, err)
	return Result[D]{Message: unexpectedMessage, Error: unexpectedMessage, ErrorKind: ErrorInternal}
}

// Failure builds a failed envelope outside of a catalog operation.
func Failure[D any](kind ErrorKind, message string) Result[D] {
	return Result[D]{Message: message, Error: message, ErrorKind: kind}
}

// Failed reports whether r failed with the given kind.
func (r Result[D]) Failed(kind ErrorKind) bool {
	return !r.Success && r.ErrorKind == kind
}
