package book

import (
	"errors"
	"net/url"
	"strings"
)

const (
	MaxTitleLength       = 255
	MaxAuthorLength      = 255
	MaxGenreLength       = 100
	MaxDescriptionLength = 2000
)

var (
	ErrEmptyTitle         = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrEmptyAuthor        = errors.New("author is required")
	ErrAuthorTooLong      = errors.New("author exceeds maximum length")
	ErrEmptyGenre         = errors.New("genre is required")
	ErrGenreTooLong       = errors.New("genre exceeds maximum length")
	ErrInvalidCondition   = errors.New("invalid condition")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrInvalidCoverURL    = errors.New("cover url must be an absolute http(s) url")
)

type Title struct {
	value string
}

func NewTitle(value string) (Title, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Title{}, ErrEmptyTitle
	}
	if len(trimmed) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{value: trimmed}, nil
}

func (t Title) String() string {
	return t.value
}

type Author struct {
	value string
}

func NewAuthor(value string) (Author, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Author{}, ErrEmptyAuthor
	}
	if len(trimmed) > MaxAuthorLength {
		return Author{}, ErrAuthorTooLong
	}
	return Author{value: trimmed}, nil
}

func (a Author) String() string {
	return a.value
}

type Genre struct {
	value string
}

// The catalogue offers a fixed genre list ending in "Other", so any
// non-empty value is accepted here.
func NewGenre(value string) (Genre, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Genre{}, ErrEmptyGenre
	}
	if len(trimmed) > MaxGenreLength {
		return Genre{}, ErrGenreTooLong
	}
	return Genre{value: trimmed}, nil
}

func (g Genre) String() string {
	return g.value
}

type Condition string

const (
	ConditionLikeNew  Condition = "Like New"
	ConditionVeryGood Condition = "Very Good"
	ConditionGood     Condition = "Good"
	ConditionFair     Condition = "Fair"
	ConditionPoor     Condition = "Poor"
)

func NewCondition(value string) (Condition, error) {
	c := Condition(strings.TrimSpace(value))
	if !c.IsValid() {
		return "", ErrInvalidCondition
	}
	return c, nil
}

func (c Condition) IsValid() bool {
	switch c {
	case ConditionLikeNew, ConditionVeryGood, ConditionGood, ConditionFair, ConditionPoor:
		return true
	default:
		return false
	}
}

func (c Condition) String() string {
	return string(c)
}

type Description struct {
	value string
}

func NewDescription(value string) (Description, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{value: trimmed}, nil
}

func (d Description) String() string {
	return d.value
}

func (d Description) IsEmpty() bool {
	return d.value == ""
}

type CoverURL struct {
	value string
}

func NewCoverURL(value string) (CoverURL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return CoverURL{}, nil
	}
	u, err := url.Parse(trimmed)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return CoverURL{}, ErrInvalidCoverURL
	}
	return CoverURL{value: trimmed}, nil
}

func (u CoverURL) String() string {
	return u.value
}

func (u CoverURL) IsEmpty() bool {
	return u.value == ""
}
