package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookView struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre"`
	Condition   string    `json:"condition"`
	Description *string   `json:"description,omitempty"`
	CoverURL    *string   `json:"cover_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExchangeBookView is the book summary embedded in an exchange view,
// enough for a client to render both sides of the proposal.
type ExchangeBookView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Condition string    `json:"condition"`
	Status    string    `json:"status"`
}

type ExchangeView struct {
	ID            uuid.UUID        `json:"id"`
	RequestedBook ExchangeBookView `json:"requested_book"`
	OfferedBook   ExchangeBookView `json:"offered_book"`
	RequesterID   uuid.UUID        `json:"requester_id"`
	RequesterName string           `json:"requester_name"`
	OwnerID       uuid.UUID        `json:"owner_id"`
	OwnerName     string           `json:"owner_name"`
	Message       *string          `json:"message,omitempty"`
	Status        string           `json:"status"`
	DeclineReason *string          `json:"decline_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	RespondedAt   *time.Time       `json:"responded_at,omitempty"`
}

type UserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookFilter narrows the public catalogue listing. Zero values mean no
// filtering; Text matches title and author, case-insensitively.
type BookFilter struct {
	Genre     string
	Condition string
	Text      string
}

func (f BookFilter) IsZero() bool {
	return f.Genre == "" && f.Condition == "" && f.Text == ""
}

type BookQueries interface {
	List(ctx context.Context, filter BookFilter) ([]*BookView, error)
	ListOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]*BookView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookView, error)
}

type ExchangeQueries interface {
	ListReceived(ctx context.Context, ownerID uuid.UUID) ([]*ExchangeView, error)
	ListSent(ctx context.Context, requesterID uuid.UUID) ([]*ExchangeView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ExchangeView, error)
}

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
}
