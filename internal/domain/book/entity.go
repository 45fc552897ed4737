package book

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotAvailable = errors.New("book is not available")

type Book struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	title       Title
	author      Author
	genre       Genre
	condition   Condition
	description Description
	coverURL    CoverURL
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewBook lists a book on its owner's shelf. New books always start available.
func NewBook(
	ownerID uuid.UUID,
	title Title,
	author Author,
	genre Genre,
	condition Condition,
	description Description,
	coverURL CoverURL,
) *Book {
	return &Book{
		id:          uuid.New(),
		ownerID:     ownerID,
		title:       title,
		author:      author,
		genre:       genre,
		condition:   condition,
		description: description,
		coverURL:    coverURL,
		status:      StatusAvailable,
	}
}

func (b *Book) IsAvailable() bool {
	return b.status == StatusAvailable
}

func (b *Book) IsOwnedBy(userID uuid.UUID) bool {
	return b.ownerID == userID
}

func (b *Book) ID() uuid.UUID            { return b.id }
func (b *Book) OwnerID() uuid.UUID       { return b.ownerID }
func (b *Book) Title() Title             { return b.title }
func (b *Book) Author() Author           { return b.author }
func (b *Book) Genre() Genre             { return b.genre }
func (b *Book) Condition() Condition     { return b.condition }
func (b *Book) Description() Description { return b.description }
func (b *Book) CoverURL() CoverURL       { return b.coverURL }
func (b *Book) Status() Status           { return b.status }
func (b *Book) CreatedAt() time.Time     { return b.createdAt }
func (b *Book) UpdatedAt() time.Time     { return b.updatedAt }
