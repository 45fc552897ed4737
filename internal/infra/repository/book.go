package repository

import (
	"context"
	"errors"

	"bookswap/internal/domain/book"
	"bookswap/internal/infra"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookRepository struct {
	db infra.DBTX
}

func NewBookRepository(db infra.DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) (uuid.UUID, error) {
	const query = `
		INSERT INTO books (id, owner_id, title, author, genre, condition, description, cover_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		b.ID(), b.OwnerID(),
		b.Title().String(), b.Author().String(), b.Genre().String(), b.Condition().String(),
		b.Description().String(), b.CoverURL().String(),
		b.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create book", err)
	}
	return id, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.BookSnapshot, error) {
	const query = `SELECT id, owner_id, title, status FROM books WHERE id = $1`

	snap, err := scanBookSnapshot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find book", err)
	}
	return snap, nil
}

// FindPairForUpdate locks both rows until the surrounding transaction
// ends. ORDER BY id keeps the lock acquisition order global, so two
// transactions touching the same pair cannot deadlock.
func (r *BookRepository) FindPairForUpdate(ctx context.Context, firstID, secondID uuid.UUID) (*shared.BookSnapshot, *shared.BookSnapshot, error) {
	const query = `
		SELECT id, owner_id, title, status
		FROM books
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`

	rows, err := r.db.Query(ctx, query, []uuid.UUID{firstID, secondID})
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to lock book pair", err)
	}
	defer rows.Close()

	found := make(map[uuid.UUID]*shared.BookSnapshot, 2)
	for rows.Next() {
		snap, scanErr := scanBookSnapshot(rows)
		if scanErr != nil {
			return nil, nil, infra.WrapRepoErr("failed to scan book pair", scanErr)
		}
		found[snap.ID] = snap
	}
	if err := rows.Err(); err != nil {
		return nil, nil, infra.WrapRepoErr("failed to read book pair", err)
	}

	return found[firstID], found[secondID], nil
}

func (r *BookRepository) UpdateOwnership(ctx context.Context, bookID, newOwnerID uuid.UUID, status book.Status) error {
	const query = `UPDATE books SET owner_id = $2, status = $3, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, bookID, newOwnerID, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update book ownership", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book disappeared during ownership update", pgx.ErrNoRows)
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM books WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to delete book", err)
	}
	return nil
}

func scanBookSnapshot(row pgx.Row) (*shared.BookSnapshot, error) {
	var (
		snap   shared.BookSnapshot
		status string
	)
	if err := row.Scan(&snap.ID, &snap.OwnerID, &snap.Title, &status); err != nil {
		return nil, err
	}
	snap.Status = book.Status(status)
	return &snap, nil
}
