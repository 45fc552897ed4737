package shared

import (
	"context"
	"time"

	"bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork runs a function inside one atomic transaction. Everything
// the function does through the Tx repositories commits or rolls back
// together; the accept path of an exchange relies on this for its
// first-committer-wins guarantee.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Books() BookRepository
	Exchanges() ExchangeRepository
	Users() UserRepository
}

type BookRepository interface {
	Create(ctx context.Context, b *book.Book) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookSnapshot, error)
	// FindPairForUpdate locks both book rows for the remainder of the
	// transaction, acquiring the locks in ascending id order regardless
	// of argument order. Snapshots are returned in argument order.
	FindPairForUpdate(ctx context.Context, firstID, secondID uuid.UUID) (*BookSnapshot, *BookSnapshot, error)
	// UpdateOwnership is the transfer step of an accepted exchange. It is
	// reachable only through the accept unit of work, never as a public
	// operation.
	UpdateOwnership(ctx context.Context, bookID, newOwnerID uuid.UUID, status book.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ExchangeRepository interface {
	Create(ctx context.Context, req *exchange.Request) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ExchangeSnapshot, error)
	// Resolve moves a pending request into a terminal state.
	Resolve(ctx context.Context, id uuid.UUID, status exchange.Status, respondedAt time.Time, reason exchange.DeclineReason) error
	// DeclineCompeting cascade-declines every other pending request that
	// references any of the given books on either side, tagging them so
	// callers can tell a cascade from a manual decline. Returns the number
	// of requests declined.
	DeclineCompeting(ctx context.Context, winnerID uuid.UUID, bookIDs []uuid.UUID, respondedAt time.Time) (int64, error)
	// HasPendingReferencing reports whether any pending request names the
	// book as its requested or offered side.
	HasPendingReferencing(ctx context.Context, bookID uuid.UUID) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	FindByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}
