package commands

import "bookswap/internal/pkg/errs"

// Operation-specific sentinels for the command layer. Each one is tied
// to exactly one error kind; handlers map kinds to HTTP statuses.
var (
	// Books
	ErrBookNotFound           = errs.Kind(errs.ErrNotFound, "book not found")
	ErrBookNotOwned           = errs.Kind(errs.ErrAuthorization, "book is not owned by you")
	ErrBookHasPendingRequests = errs.Kind(errs.ErrConflict, "book is referenced by a pending exchange request")
	ErrBookValidation         = errs.Kind(errs.ErrValidation, "invalid book attributes")

	// Exchanges
	ErrExchangeNotFound      = errs.Kind(errs.ErrNotFound, "exchange request not found")
	ErrSameBookExchange      = errs.Kind(errs.ErrValidation, "requested and offered books must differ")
	ErrMessageTooLong        = errs.Kind(errs.ErrValidation, "message exceeds maximum length")
	ErrInvalidAction         = errs.Kind(errs.ErrValidation, "action must be accept or decline")
	ErrOfferedBookNotOwned   = errs.Kind(errs.ErrAuthorization, "offered book is not owned by you")
	ErrSelfExchange          = errs.Kind(errs.ErrAuthorization, "cannot request your own book")
	ErrNotRequestOwner       = errs.Kind(errs.ErrAuthorization, "only the owner of the requested book may respond")
	ErrBookNotAvailable      = errs.Kind(errs.ErrConflict, "book is no longer available")
	ErrExchangeNotPending    = errs.Kind(errs.ErrConflict, "exchange request is already resolved")

	// Auth
	ErrUserNotFound       = errs.Kind(errs.ErrNotFound, "user not found")
	ErrEmailTaken         = errs.Kind(errs.ErrConflict, "email is already registered")
	ErrInvalidCredentials = errs.Kind(errs.ErrAuthorization, "invalid email or password")
	ErrUserValidation     = errs.Kind(errs.ErrValidation, "invalid user attributes")

	// Operation errors
	ErrTokenGeneration         = errs.New("token generation failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
