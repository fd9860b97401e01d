package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the business layer. Handlers map these to HTTP
// statuses; services wrap them with context via Wrap.
var (
	ErrValidation             = errors.New("validation failed")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrNotFound               = errors.New("not found")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrDuplicateStockRow      = errors.New("duplicate stock row")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrReferentialIntegrity   = errors.New("referential integrity violation")
)

// Wrap attaches a message to a sentinel while keeping errors.Is working.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// HTTPStatus maps a business error to a transport status code.
// InsufficientStock and InvalidStateTransition are legitimate business
// outcomes surfaced as conflicts, not server faults.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return 400
	case errors.Is(err, ErrPermissionDenied):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrDuplicateStockRow),
		errors.Is(err, ErrInvalidStateTransition),
		errors.Is(err, ErrReferentialIntegrity):
		return 409
	default:
		return 500
	}
}
