package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	email        Email
	displayName  DisplayName
	passwordHash string
	createdAt    time.Time
}

func NewUser(email Email, displayName DisplayName, passwordHash string) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		displayName:  displayName,
		passwordHash: passwordHash,
	}
}

func (u *User) ID() uuid.UUID            { return u.id }
func (u *User) Email() Email             { return u.email }
func (u *User) DisplayName() DisplayName { return u.displayName }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
