package request

import (
	"strings"

	"bookswap/internal/usecase/commands"
)

type CreateBookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Genre       string  `json:"genre" binding:"required"`
	Condition   string  `json:"condition" binding:"required"`
	Description *string `json:"description,omitempty"`
	CoverURL    *string `json:"coverUrl,omitempty"`
}

func (r CreateBookRequest) ToInput() commands.CreateBookInput {
	return commands.CreateBookInput{
		Title:       r.Title,
		Author:      r.Author,
		Genre:       r.Genre,
		Condition:   r.Condition,
		Description: trimmedOrEmpty(r.Description),
		CoverURL:    trimmedOrEmpty(r.CoverURL),
	}
}

func trimmedOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
