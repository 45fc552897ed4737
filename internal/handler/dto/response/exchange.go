package response

import (
	"time"

	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ExchangeBookResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Condition string    `json:"condition"`
	Status    string    `json:"status"`
}

type ExchangeResponse struct {
	ID            uuid.UUID            `json:"id"`
	RequestedBook ExchangeBookResponse `json:"requestedBook"`
	OfferedBook   ExchangeBookResponse `json:"offeredBook"`
	RequesterID   uuid.UUID            `json:"requesterId"`
	RequesterName string               `json:"requesterName"`
	OwnerID       uuid.UUID            `json:"ownerId"`
	OwnerName     string               `json:"ownerName"`
	Message       *string              `json:"message,omitempty"`
	Status        string               `json:"status"`
	DeclineReason *string              `json:"declineReason,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	RespondedAt   *time.Time           `json:"respondedAt,omitempty"`
}

func FromExchangeView(v *queries.ExchangeView) *ExchangeResponse {
	var resp ExchangeResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromExchangeViews(views []*queries.ExchangeView) []*ExchangeResponse {
	resps := make([]*ExchangeResponse, 0, len(views))
	for _, v := range views {
		resps = append(resps, FromExchangeView(v))
	}
	return resps
}
