package repository

import (
	"context"
	"errors"
	"time"

	"bookswap/internal/domain/exchange"
	"bookswap/internal/infra"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ExchangeRepository struct {
	db infra.DBTX
}

func NewExchangeRepository(db infra.DBTX) *ExchangeRepository {
	return &ExchangeRepository{db: db}
}

func (r *ExchangeRepository) Create(ctx context.Context, req *exchange.Request) (uuid.UUID, error) {
	const query = `
		INSERT INTO exchange_requests
			(id, requested_book_id, offered_book_id, requester_id, owner_id, message, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		req.ID(), req.RequestedBookID(), req.OfferedBookID(),
		req.RequesterID(), req.OwnerID(),
		req.Message().String(), req.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create exchange request", err)
	}
	return id, nil
}

func (r *ExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.ExchangeSnapshot, error) {
	const query = `
		SELECT id, requested_book_id, offered_book_id, requester_id, owner_id, status, created_at
		FROM exchange_requests
		WHERE id = $1`

	var (
		snap   shared.ExchangeSnapshot
		status string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.RequestedBookID, &snap.OfferedBookID,
		&snap.RequesterID, &snap.OwnerID, &status, &snap.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find exchange request", err)
	}
	snap.Status = exchange.Status(status)
	return &snap, nil
}

func (r *ExchangeRepository) Resolve(ctx context.Context, id uuid.UUID, status exchange.Status, respondedAt time.Time, reason exchange.DeclineReason) error {
	const query = `
		UPDATE exchange_requests
		SET status = $2, responded_at = $3, decline_reason = NULLIF($4, '')
		WHERE id = $1 AND status = 'pending'`

	tag, err := r.db.Exec(ctx, query, id, status.String(), respondedAt, reason.String())
	if err != nil {
		return infra.WrapRepoErr("failed to resolve exchange request", err)
	}
	// The status guard makes terminal states unrevisitable even if a
	// caller races past the usecase-level pending check.
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("exchange request is no longer pending", pgx.ErrNoRows)
	}
	return nil
}

func (r *ExchangeRepository) DeclineCompeting(ctx context.Context, winnerID uuid.UUID, bookIDs []uuid.UUID, respondedAt time.Time) (int64, error) {
	const query = `
		UPDATE exchange_requests
		SET status = 'declined', responded_at = $3, decline_reason = $4
		WHERE status = 'pending'
		  AND id <> $1
		  AND (requested_book_id = ANY($2) OR offered_book_id = ANY($2))`

	tag, err := r.db.Exec(ctx, query, winnerID, bookIDs, respondedAt, string(exchange.DeclineReasonBookUnavailable))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cascade-decline competing requests", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ExchangeRepository) HasPendingReferencing(ctx context.Context, bookID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM exchange_requests
			WHERE status = 'pending'
			  AND (requested_book_id = $1 OR offered_book_id = $1)
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, bookID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check pending requests", err)
	}
	return exists, nil
}
