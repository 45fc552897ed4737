//go:build unit

package commands_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	dombook "bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"
	"bookswap/tests/common/builder"
	"bookswap/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exchangeFixture struct {
	store *memstore.Store
	uc    commands.ExchangeCommands
	clock *clock.MockClock

	owner     *shared.UserSnapshot
	requester *shared.UserSnapshot
	ownerBook *queries.BookView
	reqBook   *queries.BookView
}

// Two users, one available book each.
func newExchangeFixture(t *testing.T) *exchangeFixture {
	t.Helper()

	store := memstore.New()
	mockClock := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	owner := builder.NewUserBuilder().WithEmail("owner@example.com").WithDisplayName("Shelf Owner").BuildSnapshot()
	requester := builder.NewUserBuilder().WithEmail("requester@example.com").WithDisplayName("Requesting Reader").BuildSnapshot()
	store.AddUser(*owner)
	store.AddUser(*requester)

	ownerBook := builder.NewBookBuilder().WithOwnerID(owner.ID).WithTitle("The Left Hand of Darkness").BuildView()
	reqBook := builder.NewBookBuilder().WithOwnerID(requester.ID).WithTitle("Kafka on the Shore").BuildView()
	store.AddBook(*ownerBook)
	store.AddBook(*reqBook)

	uc := commands.NewExchangeUseCase(store, store.ExchangeQueries(), mockClock, exchange.DefaultMaxMessageLen)

	return &exchangeFixture{
		store:     store,
		uc:        uc,
		clock:     mockClock,
		owner:     owner,
		requester: requester,
		ownerBook: ownerBook,
		reqBook:   reqBook,
	}
}

func (f *exchangeFixture) createRequest(t *testing.T) *queries.ExchangeView {
	t.Helper()
	view, err := f.uc.CreateExchange(context.Background(), commands.CreateExchangeInput{
		RequestedBookID: f.ownerBook.ID,
		OfferedBookID:   f.reqBook.ID,
		Message:         "Trade?",
	}, f.requester.ID)
	require.NoError(t, err)
	require.NotNil(t, view)
	return view
}

func TestCreateExchange(t *testing.T) {
	t.Run("creates a pending request", func(t *testing.T) {
		f := newExchangeFixture(t)

		view := f.createRequest(t)

		assert.Equal(t, exchange.StatusPending.String(), view.Status)
		assert.Equal(t, f.requester.ID, view.RequesterID)
		assert.Equal(t, f.owner.ID, view.OwnerID)
		assert.Equal(t, f.ownerBook.ID, view.RequestedBook.ID)
		assert.Equal(t, f.reqBook.ID, view.OfferedBook.ID)
		require.NotNil(t, view.Message)
		assert.Equal(t, "Trade?", *view.Message)
		assert.Nil(t, view.RespondedAt)
		assert.Nil(t, view.DeclineReason)
	})

	t.Run("multiple pending requests may reference the same book", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.createRequest(t)

		second := builder.NewUserBuilder().WithEmail("second@example.com").BuildSnapshot()
		secondBook := builder.NewBookBuilder().WithOwnerID(second.ID).BuildView()
		f.store.AddUser(*second)
		f.store.AddBook(*secondBook)

		view, err := f.uc.CreateExchange(context.Background(), commands.CreateExchangeInput{
			RequestedBookID: f.ownerBook.ID,
			OfferedBookID:   secondBook.ID,
		}, second.ID)
		require.NoError(t, err)
		assert.Equal(t, exchange.StatusPending.String(), view.Status)
	})

	t.Run("rejections", func(t *testing.T) {
		cases := []struct {
			name  string
			input func(f *exchangeFixture) (commands.CreateExchangeInput, uuid.UUID)
			errIs error
		}{
			{
				name: "requested book missing",
				input: func(f *exchangeFixture) (commands.CreateExchangeInput, uuid.UUID) {
					return commands.CreateExchangeInput{RequestedBookID: uuid.New(), OfferedBookID: f.reqBook.ID}, f.requester.ID
				},
				errIs: commands.ErrBookNotFound,
			},
			{
				name: "offered book missing",
				input: func(f *exchangeFixture) (commands.CreateExchangeInput, uuid.UUID) {
					return commands.CreateExchangeInput{RequestedBookID: f.ownerBook.ID, OfferedBookID: uuid.New()}, f.requester.ID
				},
				errIs: commands.ErrBookNotFound,
			},
			{
				name: "same book on both sides",
				input: func(f *exchangeFixture) (commands.CreateExchangeInput, uuid.UUID) {
					return commands.CreateExchangeInput{RequestedBookID: f.ownerBook.ID, OfferedBookID: f.ownerBook.ID}, f.requester.ID
				},
				errIs: commands.ErrSameBookExchange,
			},
			{
				name: "message too long",
				input: func(f *exchangeFixture) (commands.CreateExchangeInput, uuid.UUID) {
					return commands.CreateExchangeInput{
						RequestedBookID: f.ownerBook.ID,
						OfferedBookID:   f.reqBook.ID,
						Message:         strings.Repeat("a", exchange.DefaultMaxMessageLen+1),
					}, f.requester.ID
				},
				errIs: commands.ErrMessageTooLong,
			},
			{
				name: "offered book not owned by requester",
				input: func(f *exchangeFixture) (commands.CreateExchangeInput, uuid.UUID) {
					stranger := builder.NewUserBuilder().WithEmail("stranger@example.com").BuildSnapshot()
					strangerBook := builder.NewBookBuilder().WithOwnerID(stranger.ID).BuildView()
					f.store.AddUser(*stranger)
					f.store.AddBook(*strangerBook)
					return commands.CreateExchangeInput{RequestedBookID: f.ownerBook.ID, OfferedBookID: strangerBook.ID}, f.requester.ID
				},
				errIs: commands.ErrOfferedBookNotOwned,
			},
			{
				name: "requesting own book",
				input: func(f *exchangeFixture) (commands.CreateExchangeInput, uuid.UUID) {
					secondOwn := builder.NewBookBuilder().WithOwnerID(f.owner.ID).BuildView()
					f.store.AddBook(*secondOwn)
					return commands.CreateExchangeInput{RequestedBookID: f.ownerBook.ID, OfferedBookID: secondOwn.ID}, f.owner.ID
				},
				errIs: commands.ErrSelfExchange,
			},
			{
				name: "requested book already exchanged",
				input: func(f *exchangeFixture) (commands.CreateExchangeInput, uuid.UUID) {
					exchanged := builder.NewBookBuilder().WithOwnerID(f.owner.ID).AsExchanged().BuildView()
					f.store.AddBook(*exchanged)
					return commands.CreateExchangeInput{RequestedBookID: exchanged.ID, OfferedBookID: f.reqBook.ID}, f.requester.ID
				},
				errIs: commands.ErrBookNotAvailable,
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				f := newExchangeFixture(t)
				input, requesterID := c.input(f)

				view, err := f.uc.CreateExchange(context.Background(), input, requesterID)
				require.Nil(t, view)
				require.Error(t, err)
				assert.True(t, errs.Is(err, c.errIs), "expected %v, got %v", c.errIs, err)
			})
		}
	})
}

func TestRespond(t *testing.T) {
	t.Run("accept swaps ownership exactly", func(t *testing.T) {
		f := newExchangeFixture(t)
		req := f.createRequest(t)

		view, err := f.uc.Respond(context.Background(), req.ID, f.owner.ID, exchange.ActionAccept)
		require.NoError(t, err)

		assert.Equal(t, exchange.StatusAccepted.String(), view.Status)
		require.NotNil(t, view.RespondedAt)
		assert.Equal(t, f.clock.Now(), *view.RespondedAt)

		requested, err := f.store.GetByID(context.Background(), f.ownerBook.ID)
		require.NoError(t, err)
		offered, err := f.store.GetByID(context.Background(), f.reqBook.ID)
		require.NoError(t, err)

		assert.Equal(t, f.requester.ID, requested.OwnerID)
		assert.Equal(t, f.owner.ID, offered.OwnerID)
		assert.Equal(t, dombook.StatusExchanged.String(), requested.Status)
		assert.Equal(t, dombook.StatusExchanged.String(), offered.Status)
	})

	t.Run("decline never touches the books", func(t *testing.T) {
		f := newExchangeFixture(t)
		req := f.createRequest(t)

		view, err := f.uc.Respond(context.Background(), req.ID, f.owner.ID, exchange.ActionDecline)
		require.NoError(t, err)

		assert.Equal(t, exchange.StatusDeclined.String(), view.Status)
		assert.Nil(t, view.DeclineReason)

		requested, err := f.store.GetByID(context.Background(), f.ownerBook.ID)
		require.NoError(t, err)
		offered, err := f.store.GetByID(context.Background(), f.reqBook.ID)
		require.NoError(t, err)

		assert.Equal(t, f.owner.ID, requested.OwnerID)
		assert.Equal(t, f.requester.ID, offered.OwnerID)
		assert.Equal(t, dombook.StatusAvailable.String(), requested.Status)
		assert.Equal(t, dombook.StatusAvailable.String(), offered.Status)
	})

	t.Run("responding to a resolved request fails", func(t *testing.T) {
		f := newExchangeFixture(t)
		req := f.createRequest(t)

		_, err := f.uc.Respond(context.Background(), req.ID, f.owner.ID, exchange.ActionDecline)
		require.NoError(t, err)

		_, err = f.uc.Respond(context.Background(), req.ID, f.owner.ID, exchange.ActionAccept)
		assert.True(t, errs.Is(err, commands.ErrExchangeNotPending), "got %v", err)
	})

	t.Run("only the owner of the requested book may respond", func(t *testing.T) {
		f := newExchangeFixture(t)
		req := f.createRequest(t)

		_, err := f.uc.Respond(context.Background(), req.ID, f.requester.ID, exchange.ActionAccept)
		assert.True(t, errs.Is(err, commands.ErrNotRequestOwner), "got %v", err)

		status, ok := f.store.ExchangeStatus(req.ID)
		require.True(t, ok)
		assert.Equal(t, exchange.StatusPending, status)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newExchangeFixture(t)

		_, err := f.uc.Respond(context.Background(), uuid.New(), f.owner.ID, exchange.ActionAccept)
		assert.True(t, errs.Is(err, commands.ErrExchangeNotFound), "got %v", err)
	})

	t.Run("invalid action", func(t *testing.T) {
		f := newExchangeFixture(t)
		req := f.createRequest(t)

		_, err := f.uc.Respond(context.Background(), req.ID, f.owner.ID, exchange.Action("approve"))
		assert.True(t, errs.Is(err, commands.ErrInvalidAction), "got %v", err)
	})

	t.Run("accept fails when a book was consumed by an earlier exchange", func(t *testing.T) {
		f := newExchangeFixture(t)
		req := f.createRequest(t)

		// A second requester trades for the same owner book first.
		second := builder.NewUserBuilder().WithEmail("second@example.com").BuildSnapshot()
		secondBook := builder.NewBookBuilder().WithOwnerID(second.ID).BuildView()
		f.store.AddUser(*second)
		f.store.AddBook(*secondBook)

		competing, err := f.uc.CreateExchange(context.Background(), commands.CreateExchangeInput{
			RequestedBookID: f.ownerBook.ID,
			OfferedBookID:   secondBook.ID,
		}, second.ID)
		require.NoError(t, err)

		_, err = f.uc.Respond(context.Background(), competing.ID, f.owner.ID, exchange.ActionAccept)
		require.NoError(t, err)

		// The first request was cascade-declined by the accept.
		view, err := f.store.GetExchangeByID(context.Background(), req.ID)
		require.NoError(t, err)
		assert.Equal(t, exchange.StatusDeclined.String(), view.Status)
		require.NotNil(t, view.DeclineReason)
		assert.Equal(t, exchange.DeclineReasonBookUnavailable.String(), *view.DeclineReason)
	})
}

func TestCascadeDecline(t *testing.T) {
	f := newExchangeFixture(t)
	winner := f.createRequest(t)

	// Competing requests on both sides of the winning pair.
	second := builder.NewUserBuilder().WithEmail("second@example.com").BuildSnapshot()
	secondBook := builder.NewBookBuilder().WithOwnerID(second.ID).BuildView()
	f.store.AddUser(*second)
	f.store.AddBook(*secondBook)

	onRequested, err := f.uc.CreateExchange(context.Background(), commands.CreateExchangeInput{
		RequestedBookID: f.ownerBook.ID,
		OfferedBookID:   secondBook.ID,
	}, second.ID)
	require.NoError(t, err)

	onOffered, err := f.uc.CreateExchange(context.Background(), commands.CreateExchangeInput{
		RequestedBookID: f.reqBook.ID,
		OfferedBookID:   secondBook.ID,
	}, second.ID)
	require.NoError(t, err)

	// An unrelated pending request must survive.
	third := builder.NewUserBuilder().WithEmail("third@example.com").BuildSnapshot()
	thirdBook := builder.NewBookBuilder().WithOwnerID(third.ID).BuildView()
	f.store.AddUser(*third)
	f.store.AddBook(*thirdBook)

	unrelated, err := f.uc.CreateExchange(context.Background(), commands.CreateExchangeInput{
		RequestedBookID: secondBook.ID,
		OfferedBookID:   thirdBook.ID,
	}, third.ID)
	require.NoError(t, err)

	_, err = f.uc.Respond(context.Background(), winner.ID, f.owner.ID, exchange.ActionAccept)
	require.NoError(t, err)

	for _, id := range []uuid.UUID{onRequested.ID, onOffered.ID} {
		view, err := f.store.GetExchangeByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, exchange.StatusDeclined.String(), view.Status)
		require.NotNil(t, view.DeclineReason)
		assert.Equal(t, exchange.DeclineReasonBookUnavailable.String(), *view.DeclineReason)
	}

	status, ok := f.store.ExchangeStatus(unrelated.ID)
	require.True(t, ok)
	assert.Equal(t, exchange.StatusPending, status)
}

// Two accepts race for the same book; exactly one may win.
func TestConcurrentAccept(t *testing.T) {
	f := newExchangeFixture(t)
	first := f.createRequest(t)

	second := builder.NewUserBuilder().WithEmail("second@example.com").BuildSnapshot()
	secondBook := builder.NewBookBuilder().WithOwnerID(second.ID).BuildView()
	f.store.AddUser(*second)
	f.store.AddBook(*secondBook)

	competing, err := f.uc.CreateExchange(context.Background(), commands.CreateExchangeInput{
		RequestedBookID: f.ownerBook.ID,
		OfferedBookID:   secondBook.ID,
	}, second.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, id := range []uuid.UUID{first.ID, competing.ID} {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, err := f.uc.Respond(context.Background(), id, f.owner.ID, exchange.ActionAccept)
			results[i] = err
		}(i, id)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errs.Is(err, commands.ErrExchangeNotPending) || errs.Is(err, commands.ErrBookNotAvailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one accept must win")
	assert.Equal(t, 1, conflicts, "the loser must observe a conflict")

	// The contested book changed hands exactly once.
	contested, err := f.store.GetByID(context.Background(), f.ownerBook.ID)
	require.NoError(t, err)
	assert.Equal(t, dombook.StatusExchanged.String(), contested.Status)
	assert.Contains(t, []uuid.UUID{f.requester.ID, second.ID}, contested.OwnerID)
}
