//go:build unit

package commands_test

import (
	"context"
	"testing"

	dombook "bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"
	"bookswap/tests/common/builder"
	"bookswap/tests/common/memstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookFixture struct {
	store *memstore.Store
	uc    commands.BookCommands
	owner *shared.UserSnapshot
}

func newBookFixture(t *testing.T) *bookFixture {
	t.Helper()

	store := memstore.New()
	owner := builder.NewUserBuilder().BuildSnapshot()
	store.AddUser(*owner)

	return &bookFixture{
		store: store,
		uc:    commands.NewBookUseCase(store, store.BookQueries()),
		owner: owner,
	}
}

func TestCreateBook(t *testing.T) {
	t.Run("returns the stored representation", func(t *testing.T) {
		f := newBookFixture(t)
		input := builder.NewBookBuilder().BuildCreateInput()

		view, err := f.uc.CreateBook(context.Background(), input, f.owner.ID)
		require.NoError(t, err)
		require.NotNil(t, view)

		assert.NotEqual(t, uuid.Nil, view.ID)
		assert.Equal(t, f.owner.ID, view.OwnerID)
		assert.Equal(t, input.Title, view.Title)
		assert.Equal(t, input.Author, view.Author)
		assert.Equal(t, dombook.StatusAvailable.String(), view.Status)

		stored, err := f.store.GetByID(context.Background(), view.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(stored, view); diff != "" {
			t.Errorf("view differs from stored book (-stored +returned):\n%s", diff)
		}
	})

	t.Run("validation failures carry the validation mark", func(t *testing.T) {
		f := newBookFixture(t)
		input := builder.NewBookBuilder().WithTitle("").BuildCreateInput()

		view, err := f.uc.CreateBook(context.Background(), input, f.owner.ID)
		require.Nil(t, view)
		assert.True(t, errs.Is(err, commands.ErrBookValidation), "got %v", err)
	})
}

func TestListBooks(t *testing.T) {
	f := newBookFixture(t)

	fantasy := builder.NewBookBuilder().WithOwnerID(f.owner.ID).WithGenre("Fantasy").WithTitle("A Wizard of Earthsea").BuildView()
	scifi := builder.NewBookBuilder().WithOwnerID(f.owner.ID).WithGenre("Science Fiction").WithTitle("Solaris").BuildView()
	f.store.AddBook(*fantasy)
	f.store.AddBook(*scifi)

	all, err := f.store.List(context.Background(), queries.BookFilter{})
	require.NoError(t, err)
	if diff := cmp.Diff(
		[]*queries.BookView{fantasy, scifi},
		all,
		cmpopts.SortSlices(func(a, b *queries.BookView) bool { return a.Title < b.Title }),
	); diff != "" {
		t.Errorf("unexpected listing (-want +got):\n%s", diff)
	}

	filtered, err := f.store.List(context.Background(), queries.BookFilter{Genre: "Fantasy"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, fantasy.ID, filtered[0].ID)
}

func TestDeleteBook(t *testing.T) {
	t.Run("owner deletes an unreferenced book", func(t *testing.T) {
		f := newBookFixture(t)
		view := builder.NewBookBuilder().WithOwnerID(f.owner.ID).BuildView()
		f.store.AddBook(*view)

		err := f.uc.DeleteBook(context.Background(), view.ID, f.owner.ID)
		require.NoError(t, err)

		_, ok := f.store.BookStatus(view.ID)
		assert.False(t, ok)
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newBookFixture(t)

		err := f.uc.DeleteBook(context.Background(), uuid.New(), f.owner.ID)
		assert.True(t, errs.Is(err, commands.ErrBookNotFound), "got %v", err)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		f := newBookFixture(t)
		view := builder.NewBookBuilder().WithOwnerID(f.owner.ID).BuildView()
		f.store.AddBook(*view)

		err := f.uc.DeleteBook(context.Background(), view.ID, uuid.New())
		assert.True(t, errs.Is(err, commands.ErrBookNotOwned), "got %v", err)

		_, ok := f.store.BookStatus(view.ID)
		assert.True(t, ok)
	})

	t.Run("pending requests block deletion", func(t *testing.T) {
		f := newBookFixture(t)
		view := builder.NewBookBuilder().WithOwnerID(f.owner.ID).BuildView()
		f.store.AddBook(*view)

		requester := builder.NewUserBuilder().WithEmail("requester@example.com").BuildSnapshot()
		offered := builder.NewBookBuilder().WithOwnerID(requester.ID).BuildView()
		f.store.AddUser(*requester)
		f.store.AddBook(*offered)

		snap := builder.NewExchangeBuilder().
			WithRequesterID(requester.ID).
			WithOwnerID(f.owner.ID).
			WithRequestedBookID(view.ID).
			WithOfferedBookID(offered.ID).
			BuildSnapshot()
		f.store.AddExchange(*snap)

		err := f.uc.DeleteBook(context.Background(), view.ID, f.owner.ID)
		assert.True(t, errs.Is(err, commands.ErrBookHasPendingRequests), "got %v", err)

		_, ok := f.store.BookStatus(view.ID)
		assert.True(t, ok)
	})

	t.Run("resolved requests do not block deletion", func(t *testing.T) {
		f := newBookFixture(t)
		view := builder.NewBookBuilder().WithOwnerID(f.owner.ID).BuildView()
		f.store.AddBook(*view)

		requester := builder.NewUserBuilder().WithEmail("requester@example.com").BuildSnapshot()
		offered := builder.NewBookBuilder().WithOwnerID(requester.ID).BuildView()
		f.store.AddUser(*requester)
		f.store.AddBook(*offered)

		snap := builder.NewExchangeBuilder().
			WithRequesterID(requester.ID).
			WithOwnerID(f.owner.ID).
			WithRequestedBookID(view.ID).
			WithOfferedBookID(offered.ID).
			WithStatus(exchange.StatusDeclined).
			BuildSnapshot()
		f.store.AddExchange(*snap)

		err := f.uc.DeleteBook(context.Background(), view.ID, f.owner.ID)
		require.NoError(t, err)
	})
}
