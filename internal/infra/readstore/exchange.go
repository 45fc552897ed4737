package readstore

import (
	"context"
	"errors"
	"fmt"

	"bookswap/internal/infra"
	"bookswap/internal/pkg/pgconv"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Books are LEFT-joined: a resolved request survives the deletion of the
// books it referenced, so the view falls back to placeholder fields.
const exchangeViewColumns = `
	e.id,
	e.requested_book_id, COALESCE(rb.title, ''), COALESCE(rb.author, ''),
	COALESCE(rb.condition, ''), COALESCE(rb.status, ''),
	e.offered_book_id, COALESCE(ob.title, ''), COALESCE(ob.author, ''),
	COALESCE(ob.condition, ''), COALESCE(ob.status, ''),
	e.requester_id, ru.display_name,
	e.owner_id, ou.display_name,
	e.message, e.status, e.decline_reason, e.created_at, e.responded_at`

const exchangeViewJoins = `
	FROM exchange_requests e
	JOIN users ru ON ru.id = e.requester_id
	JOIN users ou ON ou.id = e.owner_id
	LEFT JOIN books rb ON rb.id = e.requested_book_id
	LEFT JOIN books ob ON ob.id = e.offered_book_id`

type ExchangeReadStore struct {
	db infra.DBTX
}

func NewExchangeReadStore(db infra.DBTX) *ExchangeReadStore {
	return &ExchangeReadStore{db: db}
}

func (s *ExchangeReadStore) ListReceived(ctx context.Context, ownerID uuid.UUID) ([]*queries.ExchangeView, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.owner_id = $1 ORDER BY e.created_at DESC, e.id`,
		exchangeViewColumns, exchangeViewJoins)
	return s.queryExchangeViews(ctx, query, ownerID)
}

func (s *ExchangeReadStore) ListSent(ctx context.Context, requesterID uuid.UUID) ([]*queries.ExchangeView, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.requester_id = $1 ORDER BY e.created_at DESC, e.id`,
		exchangeViewColumns, exchangeViewJoins)
	return s.queryExchangeViews(ctx, query, requesterID)
}

func (s *ExchangeReadStore) GetByID(ctx context.Context, id uuid.UUID) (*queries.ExchangeView, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE e.id = $1`, exchangeViewColumns, exchangeViewJoins)

	view, err := scanExchangeView(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get exchange view", err)
	}
	return view, nil
}

func (s *ExchangeReadStore) queryExchangeViews(ctx context.Context, query string, args ...any) ([]*queries.ExchangeView, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list exchanges", err)
	}
	defer rows.Close()

	views := []*queries.ExchangeView{}
	for rows.Next() {
		view, scanErr := scanExchangeView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan exchange view", scanErr)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read exchange rows", err)
	}
	return views, nil
}

func scanExchangeView(row pgx.Row) (*queries.ExchangeView, error) {
	var (
		view          queries.ExchangeView
		message       pgtype.Text
		declineReason pgtype.Text
		respondedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID,
		&view.RequestedBook.ID, &view.RequestedBook.Title, &view.RequestedBook.Author,
		&view.RequestedBook.Condition, &view.RequestedBook.Status,
		&view.OfferedBook.ID, &view.OfferedBook.Title, &view.OfferedBook.Author,
		&view.OfferedBook.Condition, &view.OfferedBook.Status,
		&view.RequesterID, &view.RequesterName,
		&view.OwnerID, &view.OwnerName,
		&message, &view.Status, &declineReason, &view.CreatedAt, &respondedAt,
	)
	if err != nil {
		return nil, err
	}
	view.Message = pgconv.StringPtrFromPgtype(message)
	view.DeclineReason = pgconv.StringPtrFromPgtype(declineReason)
	view.RespondedAt = pgconv.TimePtrFromPgtype(respondedAt)
	return &view, nil
}
