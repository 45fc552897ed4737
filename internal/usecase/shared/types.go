package shared

import (
	"time"

	"bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"

	"github.com/google/uuid"
)

// BookSnapshot is the write-side projection of a book row, read inside
// a unit of work before mutating it.
type BookSnapshot struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Title   string
	Status  book.Status
}

func (s *BookSnapshot) Spec() exchange.BookSpec {
	return exchange.BookSpec{
		ID:      s.ID,
		OwnerID: s.OwnerID,
		Status:  s.Status,
	}
}

type ExchangeSnapshot struct {
	ID              uuid.UUID
	RequestedBookID uuid.UUID
	OfferedBookID   uuid.UUID
	RequesterID     uuid.UUID
	OwnerID         uuid.UUID
	Status          exchange.Status
	CreatedAt       time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}
