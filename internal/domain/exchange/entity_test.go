//go:build unit

package exchange_test

import (
	"strings"
	"testing"
	"time"

	dombook "bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ExchangeBuilder)
	errIs  error
}

func TestNewRequest(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewExchangeBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, exchange.StatusPending, actual.Status())
		assert.True(t, actual.IsPending())
		assert.Equal(t, b.RequesterID, actual.RequesterID())
		assert.Equal(t, b.OwnerID, actual.OwnerID())
		assert.Equal(t, b.RequestedBookID, actual.RequestedBookID())
		assert.Equal(t, b.OfferedBookID, actual.OfferedBookID())
		assert.Nil(t, actual.RespondedAt())
	})

	t.Run("proposal validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "same book on both sides",
				mutate: func(b *builder.ExchangeBuilder) { b.AsSameBook() },
				errIs:  exchange.ErrSameBook,
			},
			{
				name:   "requesting own book",
				mutate: func(b *builder.ExchangeBuilder) { b.AsSelfExchange() },
				errIs:  exchange.ErrSelfExchange,
			},
			{
				name: "requested book not available",
				mutate: func(b *builder.ExchangeBuilder) {
					b.RequestedStatus = dombook.StatusExchanged
				},
				errIs: exchange.ErrBookNotAvailable,
			},
			{
				name: "offered book not available",
				mutate: func(b *builder.ExchangeBuilder) {
					b.OfferedStatus = dombook.StatusExchanged
				},
				errIs: exchange.ErrBookNotAvailable,
			},
		})
	})

	t.Run("offered book must belong to requester", func(t *testing.T) {
		b := builder.NewExchangeBuilder()
		offered := b.OfferedSpec()
		offered.OwnerID = uuid.New()

		message, err := exchange.NewMessage(b.Message, exchange.DefaultMaxMessageLen)
		require.NoError(t, err)

		actual, err := exchange.NewRequest(b.RequesterID, b.RequestedSpec(), offered, message)
		require.Nil(t, actual)
		require.ErrorIs(t, err, exchange.ErrOfferedNotOwned)
	})
}

func TestMessage(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		m, err := exchange.NewMessage("  hello  ", exchange.DefaultMaxMessageLen)
		require.NoError(t, err)
		assert.Equal(t, "hello", m.String())
	})

	t.Run("empty is allowed", func(t *testing.T) {
		m, err := exchange.NewMessage("", exchange.DefaultMaxMessageLen)
		require.NoError(t, err)
		assert.True(t, m.IsEmpty())
	})

	t.Run("maximum length", func(t *testing.T) {
		_, err := exchange.NewMessage(strings.Repeat("a", exchange.DefaultMaxMessageLen), exchange.DefaultMaxMessageLen)
		require.NoError(t, err)
	})

	t.Run("exceeds maximum length", func(t *testing.T) {
		_, err := exchange.NewMessage(strings.Repeat("a", exchange.DefaultMaxMessageLen+1), exchange.DefaultMaxMessageLen)
		require.ErrorIs(t, err, exchange.ErrMessageTooLong)
	})
}

func TestRequestTransitions(t *testing.T) {
	now := time.Now()

	t.Run("accept resolves the request", func(t *testing.T) {
		req, err := builder.NewExchangeBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, req.Accept(now))
		assert.Equal(t, exchange.StatusAccepted, req.Status())
		assert.False(t, req.IsPending())
		require.NotNil(t, req.RespondedAt())
		assert.Equal(t, now, *req.RespondedAt())
	})

	t.Run("decline resolves the request with a reason", func(t *testing.T) {
		req, err := builder.NewExchangeBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, req.Decline(now, exchange.DeclineReasonBookUnavailable))
		assert.Equal(t, exchange.StatusDeclined, req.Status())
		assert.Equal(t, exchange.DeclineReasonBookUnavailable, req.DeclineReason())
	})

	t.Run("manual decline carries no reason", func(t *testing.T) {
		req, err := builder.NewExchangeBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, req.Decline(now, ""))
		assert.True(t, req.DeclineReason().IsEmpty())
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		accepted, err := builder.NewExchangeBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, accepted.Accept(now))

		assert.ErrorIs(t, accepted.Accept(now), exchange.ErrAlreadyResolved)
		assert.ErrorIs(t, accepted.Decline(now, ""), exchange.ErrAlreadyResolved)

		declined, err := builder.NewExchangeBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, declined.Decline(now, ""))

		assert.ErrorIs(t, declined.Accept(now), exchange.ErrAlreadyResolved)
		assert.ErrorIs(t, declined.Decline(now, ""), exchange.ErrAlreadyResolved)
	})
}

func TestRequestReferences(t *testing.T) {
	b := builder.NewExchangeBuilder()
	req, err := b.BuildDomain()
	require.NoError(t, err)

	assert.True(t, req.References(b.RequestedBookID))
	assert.True(t, req.References(b.OfferedBookID))
	assert.False(t, req.References(uuid.New()))
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewExchangeBuilder().With(c.mutate).BuildDomain()

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
