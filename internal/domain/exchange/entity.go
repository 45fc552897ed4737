package exchange

import (
	"errors"
	"strings"
	"time"

	"bookswap/internal/domain/book"

	"github.com/google/uuid"
)

var (
	ErrSameBook         = errors.New("requested and offered books must differ")
	ErrMessageTooLong   = errors.New("message exceeds maximum length")
	ErrOfferedNotOwned  = errors.New("offered book is not owned by requester")
	ErrSelfExchange     = errors.New("cannot request a book you already own")
	ErrBookNotAvailable = errors.New("book is not available for exchange")
	ErrAlreadyResolved  = errors.New("request is already resolved")
)

// DefaultMaxMessageLen matches the length cap the listing form enforces.
const DefaultMaxMessageLen = 200

type Message struct {
	value string
}

func NewMessage(value string, maxLen int) (Message, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLen
	}
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxLen {
		return Message{}, ErrMessageTooLong
	}
	return Message{value: trimmed}, nil
}

func (m Message) String() string {
	return m.value
}

func (m Message) IsEmpty() bool {
	return m.value == ""
}

// BookSpec is the slice of book state the exchange rules depend on.
type BookSpec struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Status  book.Status
}

func (s BookSpec) available() bool {
	return s.Status == book.StatusAvailable
}

type Request struct {
	id              uuid.UUID
	requestedBookID uuid.UUID
	offeredBookID   uuid.UUID
	requesterID     uuid.UUID
	ownerID         uuid.UUID
	message         Message
	status          Status
	declineReason   DeclineReason
	createdAt       time.Time
	respondedAt     *time.Time
}

// NewRequest validates the exchange proposal against both book states.
// The owner recorded on the request is the owner of the requested book
// at creation time.
func NewRequest(requesterID uuid.UUID, requested, offered BookSpec, message Message) (*Request, error) {
	if requested.ID == offered.ID {
		return nil, ErrSameBook
	}
	if offered.OwnerID != requesterID {
		return nil, ErrOfferedNotOwned
	}
	if requested.OwnerID == requesterID {
		return nil, ErrSelfExchange
	}
	if !requested.available() || !offered.available() {
		return nil, ErrBookNotAvailable
	}

	return &Request{
		id:              uuid.New(),
		requestedBookID: requested.ID,
		offeredBookID:   offered.ID,
		requesterID:     requesterID,
		ownerID:         requested.OwnerID,
		message:         message,
		status:          StatusPending,
	}, nil
}

// Accept resolves the request in favour of the requester. Terminal.
func (r *Request) Accept(now time.Time) error {
	if r.status.IsTerminal() {
		return ErrAlreadyResolved
	}
	r.status = StatusAccepted
	r.respondedAt = &now
	return nil
}

// Decline resolves the request without touching any book. Terminal.
func (r *Request) Decline(now time.Time, reason DeclineReason) error {
	if r.status.IsTerminal() {
		return ErrAlreadyResolved
	}
	r.status = StatusDeclined
	r.declineReason = reason
	r.respondedAt = &now
	return nil
}

func (r *Request) IsPending() bool {
	return r.status == StatusPending
}

// References reports whether the request names the given book on either side.
func (r *Request) References(bookID uuid.UUID) bool {
	return r.requestedBookID == bookID || r.offeredBookID == bookID
}

func (r *Request) ID() uuid.UUID               { return r.id }
func (r *Request) RequestedBookID() uuid.UUID  { return r.requestedBookID }
func (r *Request) OfferedBookID() uuid.UUID    { return r.offeredBookID }
func (r *Request) RequesterID() uuid.UUID      { return r.requesterID }
func (r *Request) OwnerID() uuid.UUID          { return r.ownerID }
func (r *Request) Message() Message            { return r.message }
func (r *Request) Status() Status              { return r.status }
func (r *Request) DeclineReason() DeclineReason { return r.declineReason }
func (r *Request) CreatedAt() time.Time        { return r.createdAt }
func (r *Request) RespondedAt() *time.Time     { return r.respondedAt }
