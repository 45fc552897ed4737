//go:build unit

package book_test

import (
	"strings"
	"testing"

	"bookswap/internal/domain/book"
	"bookswap/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookBuilder)
	errIs  error
}

func TestBook(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, book.StatusAvailable, actual.Status())
		assert.True(t, actual.IsAvailable())
		assert.Equal(t, "The Left Hand of Darkness", actual.Title().String())
		assert.Equal(t, "Ursula K. Le Guin", actual.Author().String())
	})

	t.Run("title validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle("") },
				errIs:  book.ErrEmptyTitle,
			},
			{
				name:   "whitespace only title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle("   ") },
				errIs:  book.ErrEmptyTitle,
			},
			{
				name:   "maximum length title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle(strings.Repeat("a", book.MaxTitleLength)) },
			},
			{
				name:   "title exceeds maximum length",
				mutate: func(b *builder.BookBuilder) { b.WithTitle(strings.Repeat("a", book.MaxTitleLength+1)) },
				errIs:  book.ErrTitleTooLong,
			},
		})
	})

	t.Run("author validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty author",
				mutate: func(b *builder.BookBuilder) { b.WithAuthor("") },
				errIs:  book.ErrEmptyAuthor,
			},
			{
				name:   "author exceeds maximum length",
				mutate: func(b *builder.BookBuilder) { b.WithAuthor(strings.Repeat("a", book.MaxAuthorLength+1)) },
				errIs:  book.ErrAuthorTooLong,
			},
		})
	})

	t.Run("genre validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty genre",
				mutate: func(b *builder.BookBuilder) { b.WithGenre("") },
				errIs:  book.ErrEmptyGenre,
			},
			{
				name:   "free-form genre accepted",
				mutate: func(b *builder.BookBuilder) { b.WithGenre("Other") },
			},
		})
	})

	t.Run("condition validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "like new",
				mutate: func(b *builder.BookBuilder) { b.WithCondition("Like New") },
			},
			{
				name:   "poor",
				mutate: func(b *builder.BookBuilder) { b.WithCondition("Poor") },
			},
			{
				name:   "unknown condition",
				mutate: func(b *builder.BookBuilder) { b.WithCondition("Mint") },
				errIs:  book.ErrInvalidCondition,
			},
			{
				name:   "empty condition",
				mutate: func(b *builder.BookBuilder) { b.WithCondition("") },
				errIs:  book.ErrInvalidCondition,
			},
			{
				name:   "wrong casing",
				mutate: func(b *builder.BookBuilder) { b.WithCondition("like new") },
				errIs:  book.ErrInvalidCondition,
			},
		})
	})

	t.Run("description validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty description allowed",
				mutate: func(b *builder.BookBuilder) { b.WithDescription("") },
			},
			{
				name: "description exceeds maximum length",
				mutate: func(b *builder.BookBuilder) {
					b.WithDescription(strings.Repeat("a", book.MaxDescriptionLength+1))
				},
				errIs: book.ErrDescriptionTooLong,
			},
		})
	})

	t.Run("cover url validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty cover url allowed",
				mutate: func(b *builder.BookBuilder) { b.WithCoverURL("") },
			},
			{
				name:   "https url",
				mutate: func(b *builder.BookBuilder) { b.WithCoverURL("https://covers.example.com/x.jpg") },
			},
			{
				name:   "http url",
				mutate: func(b *builder.BookBuilder) { b.WithCoverURL("http://covers.example.com/x.jpg") },
			},
			{
				name:   "relative url",
				mutate: func(b *builder.BookBuilder) { b.WithCoverURL("/covers/x.jpg") },
				errIs:  book.ErrInvalidCoverURL,
			},
			{
				name:   "unsupported scheme",
				mutate: func(b *builder.BookBuilder) { b.WithCoverURL("ftp://covers.example.com/x.jpg") },
				errIs:  book.ErrInvalidCoverURL,
			},
		})
	})

	t.Run("values are trimmed", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().
			WithTitle("  Dune  ").
			WithAuthor("  Frank Herbert  ").
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Dune", actual.Title().String())
		assert.Equal(t, "Frank Herbert", actual.Author().String())
	})

	t.Run("ownership check", func(t *testing.T) {
		ownerID := uuid.New()
		actual, err := builder.NewBookBuilder().WithOwnerID(ownerID).BuildDomain()
		require.NoError(t, err)

		assert.True(t, actual.IsOwnedBy(ownerID))
		assert.False(t, actual.IsOwnedBy(uuid.New()))
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
