package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors recovered at the request boundary. Handlers map them to
// HTTP status codes; everything else surfaces as an internal error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("operation not allowed")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Validationf wraps ErrValidation with a field-level detail message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
