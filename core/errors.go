package core

import "github.com/pkg/errors"

// FieldError pins a validation failure to a named field of the offending
// payload.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries field-level failures behind a single error; the
// API layer unpacks Fields into the response body.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks an error as unrecoverable; the server stops instead of
// answering 500s forever.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
