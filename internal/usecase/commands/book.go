package commands

import (
	"context"

	"bookswap/internal/domain/book"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookInput struct {
	Title       string
	Author      string
	Genre       string
	Condition   string
	Description string
	CoverURL    string
}

type BookCommands interface {
	CreateBook(ctx context.Context, input CreateBookInput, ownerID uuid.UUID) (*queries.BookView, error)
	DeleteBook(ctx context.Context, bookID, requesterID uuid.UUID) error
}

type bookUseCaseImpl struct {
	uow         shared.UnitOfWork
	bookQueries queries.BookQueries
}

func NewBookUseCase(uow shared.UnitOfWork, bookQueries queries.BookQueries) BookCommands {
	return &bookUseCaseImpl{
		uow:         uow,
		bookQueries: bookQueries,
	}
}

func (uc *bookUseCaseImpl) CreateBook(ctx context.Context, input CreateBookInput, ownerID uuid.UUID) (*queries.BookView, error) {
	entity, err := buildBook(input, ownerID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookValidation)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, txErr := tx.Books().Create(ctx, entity)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write so the response carries the stored representation.
	view, err := uc.bookQueries.GetByID(ctx, createdID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (uc *bookUseCaseImpl) DeleteBook(ctx context.Context, bookID, requesterID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Books().FindByID(ctx, bookID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if snap == nil {
			return ErrBookNotFound
		}
		if snap.OwnerID != requesterID {
			return ErrBookNotOwned
		}

		// Pending requests keep the book alive to avoid dangling references.
		pending, err := tx.Exchanges().HasPendingReferencing(ctx, bookID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if pending {
			return ErrBookHasPendingRequests
		}

		if err := tx.Books().Delete(ctx, bookID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func buildBook(input CreateBookInput, ownerID uuid.UUID) (*book.Book, error) {
	title, err := book.NewTitle(input.Title)
	if err != nil {
		return nil, err
	}
	author, err := book.NewAuthor(input.Author)
	if err != nil {
		return nil, err
	}
	genre, err := book.NewGenre(input.Genre)
	if err != nil {
		return nil, err
	}
	condition, err := book.NewCondition(input.Condition)
	if err != nil {
		return nil, err
	}
	description, err := book.NewDescription(input.Description)
	if err != nil {
		return nil, err
	}
	coverURL, err := book.NewCoverURL(input.CoverURL)
	if err != nil {
		return nil, err
	}
	return book.NewBook(ownerID, title, author, genre, condition, description, coverURL), nil
}
