package contact

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("contact not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageRead        = errors.New("storage read failed")
	ErrStorageWrite       = errors.New("storage write failed")
	ErrSubmitFailed       = errors.New("submit failed")
)

// Kind returns a short, stable name for the error kind err matches.
// Returns "" for nil and "unknown" for errors of no known kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	case errors.Is(err, ErrSubmitFailed):
		return "submit_failed"
	case errors.Is(err, ErrStorageRead):
		return "storage_read"
	case errors.Is(err, ErrStorageWrite):
		return "storage_write"
	default:
		return "unknown"
	}
}
