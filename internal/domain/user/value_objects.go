package user

import (
	"errors"
	"regexp"
	"strings"
)

const (
	MaxDisplayNameLength = 100
	MinPasswordLength    = 8
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmptyDisplayName   = errors.New("display name is required")
	ErrDisplayNameTooLong = errors.New("display name exceeds maximum length")
	ErrPasswordTooShort   = errors.New("password is too short")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if !emailPattern.MatchString(trimmed) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: trimmed}, nil
}

func (e Email) String() string {
	return e.value
}

type DisplayName struct {
	value string
}

func NewDisplayName(value string) (DisplayName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DisplayName{}, ErrEmptyDisplayName
	}
	if len(trimmed) > MaxDisplayNameLength {
		return DisplayName{}, ErrDisplayNameTooLong
	}
	return DisplayName{value: trimmed}, nil
}

func (n DisplayName) String() string {
	return n.value
}

type Password struct {
	value string
}

func NewPassword(value string) (Password, error) {
	if len(value) < MinPasswordLength {
		return Password{}, ErrPasswordTooShort
	}
	return Password{value: value}, nil
}

func (p Password) Value() string {
	return p.value
}
