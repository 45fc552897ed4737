package request

import (
	"strings"

	"bookswap/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateExchangeRequest struct {
	RequestedBookID uuid.UUID `json:"requestedBookId" binding:"required"`
	OfferedBookID   uuid.UUID `json:"offeredBookId" binding:"required"`
	Message         *string   `json:"message,omitempty"`
}

func (r CreateExchangeRequest) ToInput() commands.CreateExchangeInput {
	return commands.CreateExchangeInput{
		RequestedBookID: r.RequestedBookID,
		OfferedBookID:   r.OfferedBookID,
		Message:         trimmedOrEmpty(r.Message),
	}
}

type RespondExchangeRequest struct {
	Action string `json:"action" binding:"required"`
}

func (r RespondExchangeRequest) NormalizedAction() string {
	return strings.ToLower(strings.TrimSpace(r.Action))
}
