package readstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookswap/internal/infra"
	"bookswap/internal/pkg/pgconv"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookViewColumns = `
	b.id, b.owner_id, u.display_name, b.title, b.author, b.genre, b.condition,
	b.description, b.cover_url, b.status, b.created_at, b.updated_at`

type BookReadStore struct {
	db infra.DBTX
}

func NewBookReadStore(db infra.DBTX) *BookReadStore {
	return &BookReadStore{db: db}
}

// List returns the catalogue in insertion order. Filters are ANDed; the
// free-text filter matches title and author case-insensitively.
func (s *BookReadStore) List(ctx context.Context, filter queries.BookFilter) ([]*queries.BookView, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if filter.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("b.genre = $%d", argn))
		args = append(args, filter.Genre)
		argn++
	}
	if filter.Condition != "" {
		clauses = append(clauses, fmt.Sprintf("b.condition = $%d", argn))
		args = append(args, filter.Condition)
		argn++
	}
	if filter.Text != "" {
		clauses = append(clauses, fmt.Sprintf("(b.title ILIKE $%d OR b.author ILIKE $%d)", argn, argn+1))
		pattern := "%" + filter.Text + "%"
		args = append(args, pattern, pattern)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN users u ON u.id = b.owner_id
		WHERE %s
		ORDER BY b.created_at, b.id`,
		bookViewColumns, strings.Join(clauses, " AND "))

	return s.queryBookViews(ctx, query, args...)
}

func (s *BookReadStore) ListOwnedBy(ctx context.Context, ownerID uuid.UUID) ([]*queries.BookView, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN users u ON u.id = b.owner_id
		WHERE b.owner_id = $1
		ORDER BY b.created_at, b.id`,
		bookViewColumns)

	return s.queryBookViews(ctx, query, ownerID)
}

func (s *BookReadStore) GetByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN users u ON u.id = b.owner_id
		WHERE b.id = $1`,
		bookViewColumns)

	view, err := scanBookView(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get book view", err)
	}
	return view, nil
}

func (s *BookReadStore) queryBookViews(ctx context.Context, query string, args ...any) ([]*queries.BookView, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list books", err)
	}
	defer rows.Close()

	views := []*queries.BookView{}
	for rows.Next() {
		view, scanErr := scanBookView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan book view", scanErr)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read book rows", err)
	}
	return views, nil
}

func scanBookView(row pgx.Row) (*queries.BookView, error) {
	var (
		view        queries.BookView
		description pgtype.Text
		coverURL    pgtype.Text
	)
	err := row.Scan(
		&view.ID, &view.OwnerID, &view.OwnerName,
		&view.Title, &view.Author, &view.Genre, &view.Condition,
		&description, &coverURL, &view.Status,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.Description = pgconv.StringPtrFromPgtype(description)
	view.CoverURL = pgconv.StringPtrFromPgtype(coverURL)
	return &view, nil
}
