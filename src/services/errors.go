package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrArtifactInUse blocks artifact deletion while interpolations still
	// reference it.
	ErrArtifactInUse = errors.New("artifact is referenced by one or more interpolations")
)

// ValidationError marks input the caller can correct; controllers surface it
// as a 400 instead of a server error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
