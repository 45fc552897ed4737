package response

import (
	"time"

	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:          v.ID,
		Email:       v.Email,
		DisplayName: v.DisplayName,
		CreatedAt:   v.CreatedAt,
	}
}

func FromAuthResult(r *commands.AuthResult) *AuthResponse {
	return &AuthResponse{
		Token: r.Token,
		User:  *FromUserView(r.User),
	}
}
