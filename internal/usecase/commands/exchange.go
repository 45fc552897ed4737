package commands

import (
	"context"
	"errors"
	"log/slog"

	"bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateExchangeInput struct {
	RequestedBookID uuid.UUID
	OfferedBookID   uuid.UUID
	Message         string
}

type ExchangeCommands interface {
	CreateExchange(ctx context.Context, input CreateExchangeInput, requesterID uuid.UUID) (*queries.ExchangeView, error)
	Respond(ctx context.Context, requestID, responderID uuid.UUID, action exchange.Action) (*queries.ExchangeView, error)
}

type exchangeUseCaseImpl struct {
	uow             shared.UnitOfWork
	exchangeQueries queries.ExchangeQueries
	clock           clock.Clock
	maxMessageLen   int
}

func NewExchangeUseCase(
	uow shared.UnitOfWork,
	exchangeQueries queries.ExchangeQueries,
	clk clock.Clock,
	maxMessageLen int,
) ExchangeCommands {
	return &exchangeUseCaseImpl{
		uow:             uow,
		exchangeQueries: exchangeQueries,
		clock:           clk,
		maxMessageLen:   maxMessageLen,
	}
}

func (uc *exchangeUseCaseImpl) CreateExchange(ctx context.Context, input CreateExchangeInput, requesterID uuid.UUID) (*queries.ExchangeView, error) {
	message, err := exchange.NewMessage(input.Message, uc.maxMessageLen)
	if err != nil {
		return nil, ErrMessageTooLong
	}
	if input.RequestedBookID == input.OfferedBookID {
		return nil, ErrSameBookExchange
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		requested, txErr := uc.findBook(ctx, tx, input.RequestedBookID)
		if txErr != nil {
			return txErr
		}
		offered, txErr := uc.findBook(ctx, tx, input.OfferedBookID)
		if txErr != nil {
			return txErr
		}

		req, domErr := exchange.NewRequest(requesterID, requested.Spec(), offered.Spec(), message)
		if domErr != nil {
			return mapExchangeDomainErr(domErr)
		}

		id, txErr := tx.Exchanges().Create(ctx, req)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.exchangeQueries.GetByID(ctx, createdID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (uc *exchangeUseCaseImpl) Respond(ctx context.Context, requestID, responderID uuid.UUID, action exchange.Action) (*queries.ExchangeView, error) {
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, txErr := tx.Exchanges().FindByID(ctx, requestID)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		if snap == nil {
			return ErrExchangeNotFound
		}
		if snap.OwnerID != responderID {
			return ErrNotRequestOwner
		}
		if snap.Status != exchange.StatusPending {
			return ErrExchangeNotPending
		}

		if action == exchange.ActionDecline {
			return uc.decline(ctx, tx, snap)
		}
		return uc.accept(ctx, tx, snap)
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.exchangeQueries.GetByID(ctx, requestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// decline never touches any book.
func (uc *exchangeUseCaseImpl) decline(ctx context.Context, tx shared.Tx, snap *shared.ExchangeSnapshot) error {
	err := tx.Exchanges().Resolve(ctx, snap.ID, exchange.StatusDeclined, uc.clock.Now(), "")
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// accept is the single serializable unit of work of the whole engine:
// both book rows stay locked until commit, so two accepts competing for
// a book serialize and the second one fails the availability re-check.
func (uc *exchangeUseCaseImpl) accept(ctx context.Context, tx shared.Tx, snap *shared.ExchangeSnapshot) error {
	requested, offered, err := tx.Books().FindPairForUpdate(ctx, snap.RequestedBookID, snap.OfferedBookID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Re-check under lock: a concurrent accept may have consumed either
	// book since this request was created.
	if requested == nil || offered == nil ||
		requested.Status != book.StatusAvailable || offered.Status != book.StatusAvailable {
		return ErrBookNotAvailable
	}

	now := uc.clock.Now()

	if err := tx.Books().UpdateOwnership(ctx, requested.ID, snap.RequesterID, book.StatusExchanged); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Books().UpdateOwnership(ctx, offered.ID, snap.OwnerID, book.StatusExchanged); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Exchanges().Resolve(ctx, snap.ID, exchange.StatusAccepted, now, ""); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	declined, err := tx.Exchanges().DeclineCompeting(ctx, snap.ID, []uuid.UUID{requested.ID, offered.ID}, now)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if declined > 0 {
		slog.Info("cascade-declined competing exchange requests",
			"accepted_request_id", snap.ID.String(),
			"declined_count", declined)
	}
	return nil
}

func (uc *exchangeUseCaseImpl) findBook(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.BookSnapshot, error) {
	snap, err := tx.Books().FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap == nil {
		return nil, ErrBookNotFound
	}
	return snap, nil
}

func mapExchangeDomainErr(err error) error {
	switch {
	case errors.Is(err, exchange.ErrSameBook):
		return ErrSameBookExchange
	case errors.Is(err, exchange.ErrOfferedNotOwned):
		return ErrOfferedBookNotOwned
	case errors.Is(err, exchange.ErrSelfExchange):
		return ErrSelfExchange
	case errors.Is(err, exchange.ErrBookNotAvailable):
		return ErrBookNotAvailable
	default:
		return errs.Mark(err, ErrBookValidation)
	}
}
