package errs

import "errors"

// Error kinds shared across usecase layers. Every operation-specific
// sentinel is Marked with exactly one kind so the HTTP layer can map
// status codes without knowing individual sentinels.
var (
	// ErrValidation: malformed or missing input, caller's fault, never retried.
	ErrValidation = errors.New("validation failed")

	// ErrAuthorization: the actor lacks permission for the target entity.
	ErrAuthorization = errors.New("not allowed")

	// ErrConflict: state changed concurrently; caller may re-fetch and re-decide.
	ErrConflict = errors.New("conflict")

	// ErrNotFound: referenced entity does not exist.
	ErrNotFound = errors.New("not found")
)
