//go:build unit || e2e

package builder

import (
	"time"

	dombook "bookswap/internal/domain/book"
	reqdto "bookswap/internal/handler/dto/request"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	OwnerName   string
	Title       string
	Author      string
	Genre       string
	Condition   string
	Description string
	CoverURL    string
	Status      dombook.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewBookBuilder() *BookBuilder {
	now := time.Now()
	return &BookBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		OwnerName:   "Shelf Owner",
		Title:       "The Left Hand of Darkness",
		Author:      "Ursula K. Le Guin",
		Genre:       "Science Fiction",
		Condition:   "Very Good",
		Description: "Hardcover, lightly read.",
		CoverURL:    "https://covers.example.com/darkness.jpg",
		Status:      dombook.StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookBuilder) BuildDomain() (*dombook.Book, error) {
	title, err := dombook.NewTitle(b.Title)
	if err != nil {
		return nil, err
	}
	author, err := dombook.NewAuthor(b.Author)
	if err != nil {
		return nil, err
	}
	genre, err := dombook.NewGenre(b.Genre)
	if err != nil {
		return nil, err
	}
	condition, err := dombook.NewCondition(b.Condition)
	if err != nil {
		return nil, err
	}
	description, err := dombook.NewDescription(b.Description)
	if err != nil {
		return nil, err
	}
	coverURL, err := dombook.NewCoverURL(b.CoverURL)
	if err != nil {
		return nil, err
	}
	return dombook.NewBook(b.OwnerID, title, author, genre, condition, description, coverURL), nil
}

func (b *BookBuilder) BuildCreateInput() commands.CreateBookInput {
	return commands.CreateBookInput{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Condition:   b.Condition,
		Description: b.Description,
		CoverURL:    b.CoverURL,
	}
}

func (b *BookBuilder) BuildCreateRequestDTO() reqdto.CreateBookRequest {
	description := b.Description
	coverURL := b.CoverURL
	return reqdto.CreateBookRequest{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Condition:   b.Condition,
		Description: &description,
		CoverURL:    &coverURL,
	}
}

func (b *BookBuilder) BuildSnapshot() *shared.BookSnapshot {
	return &shared.BookSnapshot{
		ID:      b.ID,
		OwnerID: b.OwnerID,
		Title:   b.Title,
		Status:  b.Status,
	}
}

func (b *BookBuilder) BuildView() *queries.BookView {
	description := b.Description
	coverURL := b.CoverURL
	return &queries.BookView{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		OwnerName:   b.OwnerName,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Condition:   b.Condition,
		Description: &description,
		CoverURL:    &coverURL,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *BookBuilder) WithID(id uuid.UUID) *BookBuilder {
	b.ID = id
	return b
}

func (b *BookBuilder) WithOwnerID(ownerID uuid.UUID) *BookBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.Title = title
	return b
}

func (b *BookBuilder) WithAuthor(author string) *BookBuilder {
	b.Author = author
	return b
}

func (b *BookBuilder) WithGenre(genre string) *BookBuilder {
	b.Genre = genre
	return b
}

func (b *BookBuilder) WithCondition(condition string) *BookBuilder {
	b.Condition = condition
	return b
}

func (b *BookBuilder) WithDescription(description string) *BookBuilder {
	b.Description = description
	return b
}

func (b *BookBuilder) WithCoverURL(coverURL string) *BookBuilder {
	b.CoverURL = coverURL
	return b
}

func (b *BookBuilder) AsExchanged() *BookBuilder {
	b.Status = dombook.StatusExchanged
	return b
}
