//go:build unit || e2e

package builder

import (
	"time"

	dombook "bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	reqdto "bookswap/internal/handler/dto/request"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExchangeBuilder struct {
	ID              uuid.UUID
	RequesterID     uuid.UUID
	RequesterName   string
	OwnerID         uuid.UUID
	OwnerName       string
	RequestedBookID uuid.UUID
	OfferedBookID   uuid.UUID
	RequestedStatus dombook.Status
	OfferedStatus   dombook.Status
	Message         string
	Status          exchange.Status
	CreatedAt       time.Time
}

func NewExchangeBuilder() *ExchangeBuilder {
	return &ExchangeBuilder{
		ID:              uuid.New(),
		RequesterID:     uuid.New(),
		RequesterName:   "Requesting Reader",
		OwnerID:         uuid.New(),
		OwnerName:       "Shelf Owner",
		RequestedBookID: uuid.New(),
		OfferedBookID:   uuid.New(),
		RequestedStatus: dombook.StatusAvailable,
		OfferedStatus:   dombook.StatusAvailable,
		Message:         "Would love to trade for this one.",
		Status:          exchange.StatusPending,
		CreatedAt:       time.Now(),
	}
}

func (e *ExchangeBuilder) With(mutate func(*ExchangeBuilder)) *ExchangeBuilder {
	mutate(e)
	return e
}

// Build methods
func (e *ExchangeBuilder) RequestedSpec() exchange.BookSpec {
	return exchange.BookSpec{
		ID:      e.RequestedBookID,
		OwnerID: e.OwnerID,
		Status:  e.RequestedStatus,
	}
}

func (e *ExchangeBuilder) OfferedSpec() exchange.BookSpec {
	return exchange.BookSpec{
		ID:      e.OfferedBookID,
		OwnerID: e.RequesterID,
		Status:  e.OfferedStatus,
	}
}

func (e *ExchangeBuilder) BuildDomain() (*exchange.Request, error) {
	message, err := exchange.NewMessage(e.Message, exchange.DefaultMaxMessageLen)
	if err != nil {
		return nil, err
	}
	return exchange.NewRequest(e.RequesterID, e.RequestedSpec(), e.OfferedSpec(), message)
}

func (e *ExchangeBuilder) BuildCreateInput() commands.CreateExchangeInput {
	return commands.CreateExchangeInput{
		RequestedBookID: e.RequestedBookID,
		OfferedBookID:   e.OfferedBookID,
		Message:         e.Message,
	}
}

func (e *ExchangeBuilder) BuildCreateRequestDTO() reqdto.CreateExchangeRequest {
	message := e.Message
	return reqdto.CreateExchangeRequest{
		RequestedBookID: e.RequestedBookID,
		OfferedBookID:   e.OfferedBookID,
		Message:         &message,
	}
}

func (e *ExchangeBuilder) BuildSnapshot() *shared.ExchangeSnapshot {
	return &shared.ExchangeSnapshot{
		ID:              e.ID,
		RequestedBookID: e.RequestedBookID,
		OfferedBookID:   e.OfferedBookID,
		RequesterID:     e.RequesterID,
		OwnerID:         e.OwnerID,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
	}
}

func (e *ExchangeBuilder) BuildView() *queries.ExchangeView {
	message := e.Message
	return &queries.ExchangeView{
		ID: e.ID,
		RequestedBook: queries.ExchangeBookView{
			ID:     e.RequestedBookID,
			Title:  "The Left Hand of Darkness",
			Status: e.RequestedStatus.String(),
		},
		OfferedBook: queries.ExchangeBookView{
			ID:     e.OfferedBookID,
			Title:  "Kafka on the Shore",
			Status: e.OfferedStatus.String(),
		},
		RequesterID:   e.RequesterID,
		RequesterName: e.RequesterName,
		OwnerID:       e.OwnerID,
		OwnerName:     e.OwnerName,
		Message:       &message,
		Status:        e.Status.String(),
		CreatedAt:     e.CreatedAt,
	}
}

// Fluent builder methods
func (e *ExchangeBuilder) WithRequesterID(id uuid.UUID) *ExchangeBuilder {
	e.RequesterID = id
	return e
}

func (e *ExchangeBuilder) WithOwnerID(id uuid.UUID) *ExchangeBuilder {
	e.OwnerID = id
	return e
}

func (e *ExchangeBuilder) WithRequestedBookID(id uuid.UUID) *ExchangeBuilder {
	e.RequestedBookID = id
	return e
}

func (e *ExchangeBuilder) WithOfferedBookID(id uuid.UUID) *ExchangeBuilder {
	e.OfferedBookID = id
	return e
}

func (e *ExchangeBuilder) WithMessage(message string) *ExchangeBuilder {
	e.Message = message
	return e
}

func (e *ExchangeBuilder) WithStatus(status exchange.Status) *ExchangeBuilder {
	e.Status = status
	return e
}

func (e *ExchangeBuilder) AsSelfExchange() *ExchangeBuilder {
	e.OwnerID = e.RequesterID
	return e
}

func (e *ExchangeBuilder) AsSameBook() *ExchangeBuilder {
	e.OfferedBookID = e.RequestedBookID
	return e
}
