package response

import (
	"time"

	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	OwnerName   string    `json:"ownerName"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre"`
	Condition   string    `json:"condition"`
	Description *string   `json:"description,omitempty"`
	CoverURL    *string   `json:"coverUrl,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Field names line up with the read model, so copier does the mapping.
func FromBookView(v *queries.BookView) *BookResponse {
	var resp BookResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromBookViews(views []*queries.BookView) []*BookResponse {
	resps := make([]*BookResponse, 0, len(views))
	for _, v := range views {
		resps = append(resps, FromBookView(v))
	}
	return resps
}
