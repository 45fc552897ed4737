//go:build unit || e2e

package builder

import (
	"time"

	domuser "bookswap/internal/domain/user"
	reqdto "bookswap/internal/handler/dto/request"
	"bookswap/internal/pkg/password"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Password    string
	CreatedAt   time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:          uuid.New(),
		Email:       "reader@example.com",
		DisplayName: "Avid Reader",
		Password:    "password123",
		CreatedAt:   time.Now(),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*domuser.User, error) {
	email, err := domuser.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	displayName, err := domuser.NewDisplayName(u.DisplayName)
	if err != nil {
		return nil, err
	}
	if _, err := domuser.NewPassword(u.Password); err != nil {
		return nil, err
	}
	hash, err := password.HashPassword(u.Password)
	if err != nil {
		return nil, err
	}
	return domuser.NewUser(email, displayName, hash), nil
}

func (u *UserBuilder) BuildRegisterInput() commands.RegisterInput {
	return commands.RegisterInput{
		Email:       u.Email,
		Password:    u.Password,
		DisplayName: u.DisplayName,
	}
}

func (u *UserBuilder) BuildLoginInput() commands.LoginInput {
	return commands.LoginInput{
		Email:    u.Email,
		Password: u.Password,
	}
}

func (u *UserBuilder) BuildRegisterRequestDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:       u.Email,
		Password:    u.Password,
		DisplayName: u.DisplayName,
	}
}

func (u *UserBuilder) BuildSnapshot() *shared.UserSnapshot {
	hash, _ := password.HashPassword(u.Password)
	return &shared.UserSnapshot{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: hash,
		CreatedAt:    u.CreatedAt,
	}
}

func (u *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithDisplayName(name string) *UserBuilder {
	u.DisplayName = name
	return u
}

func (u *UserBuilder) WithPassword(pw string) *UserBuilder {
	u.Password = pw
	return u
}
