//go:build unit

// Package memstore is an in-memory stand-in for the Postgres persistence
// layer. Within holds one mutex for the whole unit of work, which mirrors
// the serialization the real row locks provide: competing accepts run one
// after the other and the loser sees the winner's writes.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/domain/user"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

var errNotPending = errs.New("exchange request is no longer pending")

type exchangeRow struct {
	shared.ExchangeSnapshot
	Message       string
	DeclineReason exchange.DeclineReason
	RespondedAt   *time.Time
}

type Store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]shared.UserSnapshot
	books     map[uuid.UUID]queries.BookView
	exchanges map[uuid.UUID]exchangeRow
}

func New() *Store {
	return &Store{
		users:     make(map[uuid.UUID]shared.UserSnapshot),
		books:     make(map[uuid.UUID]queries.BookView),
		exchanges: make(map[uuid.UUID]exchangeRow),
	}
}

// --- seeding helpers ---

func (s *Store) AddUser(snap shared.UserSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[snap.ID] = snap
}

func (s *Store) AddBook(view queries.BookView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[view.OwnerID]; ok {
		view.OwnerName = u.DisplayName
	}
	s.books[view.ID] = view
}

func (s *Store) AddExchange(snap shared.ExchangeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges[snap.ID] = exchangeRow{ExchangeSnapshot: snap}
}

func (s *Store) BookStatus(id uuid.UUID) (book.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.books[id]
	return book.Status(v.Status), ok
}

func (s *Store) ExchangeStatus(id uuid.UUID) (exchange.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.exchanges[id]
	return row.Status, ok
}

// --- shared.UnitOfWork ---

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot for rollback; rows are stored by value so a shallow
	// clone is enough.
	usersBackup := maps.Clone(s.users)
	booksBackup := maps.Clone(s.books)
	exchangesBackup := maps.Clone(s.exchanges)

	if err := fn(ctx, &memTx{store: s}); err != nil {
		s.users = usersBackup
		s.books = booksBackup
		s.exchanges = exchangesBackup
		return err
	}
	return nil
}

type memTx struct {
	store *Store
}

func (t *memTx) Books() shared.BookRepository         { return &bookRepo{store: t.store} }
func (t *memTx) Exchanges() shared.ExchangeRepository { return &exchangeRepo{store: t.store} }
func (t *memTx) Users() shared.UserRepository         { return &userRepo{store: t.store} }

// --- write side ---

type bookRepo struct {
	store *Store
}

func (r *bookRepo) Create(_ context.Context, b *book.Book) (uuid.UUID, error) {
	now := time.Now()
	description := b.Description().String()
	coverURL := b.CoverURL().String()
	view := queries.BookView{
		ID:        b.ID(),
		OwnerID:   b.OwnerID(),
		Title:     b.Title().String(),
		Author:    b.Author().String(),
		Genre:     b.Genre().String(),
		Condition: b.Condition().String(),
		Status:    b.Status().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if description != "" {
		view.Description = &description
	}
	if coverURL != "" {
		view.CoverURL = &coverURL
	}
	if u, ok := r.store.users[b.OwnerID()]; ok {
		view.OwnerName = u.DisplayName
	}
	r.store.books[view.ID] = view
	return view.ID, nil
}

func (r *bookRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.BookSnapshot, error) {
	view, ok := r.store.books[id]
	if !ok {
		return nil, nil
	}
	return bookSnapshot(view), nil
}

func (r *bookRepo) FindPairForUpdate(_ context.Context, firstID, secondID uuid.UUID) (*shared.BookSnapshot, *shared.BookSnapshot, error) {
	var first, second *shared.BookSnapshot
	if view, ok := r.store.books[firstID]; ok {
		first = bookSnapshot(view)
	}
	if view, ok := r.store.books[secondID]; ok {
		second = bookSnapshot(view)
	}
	return first, second, nil
}

func (r *bookRepo) UpdateOwnership(_ context.Context, bookID, newOwnerID uuid.UUID, status book.Status) error {
	view, ok := r.store.books[bookID]
	if !ok {
		return errs.New("book not found")
	}
	view.OwnerID = newOwnerID
	view.Status = status.String()
	view.UpdatedAt = time.Now()
	if u, ok := r.store.users[newOwnerID]; ok {
		view.OwnerName = u.DisplayName
	}
	r.store.books[bookID] = view
	return nil
}

func (r *bookRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.books, id)
	return nil
}

func bookSnapshot(view queries.BookView) *shared.BookSnapshot {
	return &shared.BookSnapshot{
		ID:      view.ID,
		OwnerID: view.OwnerID,
		Title:   view.Title,
		Status:  book.Status(view.Status),
	}
}

type exchangeRepo struct {
	store *Store
}

func (r *exchangeRepo) Create(_ context.Context, req *exchange.Request) (uuid.UUID, error) {
	row := exchangeRow{
		ExchangeSnapshot: shared.ExchangeSnapshot{
			ID:              req.ID(),
			RequestedBookID: req.RequestedBookID(),
			OfferedBookID:   req.OfferedBookID(),
			RequesterID:     req.RequesterID(),
			OwnerID:         req.OwnerID(),
			Status:          req.Status(),
			CreatedAt:       time.Now(),
		},
		Message: req.Message().String(),
	}
	r.store.exchanges[row.ID] = row
	return row.ID, nil
}

func (r *exchangeRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.ExchangeSnapshot, error) {
	row, ok := r.store.exchanges[id]
	if !ok {
		return nil, nil
	}
	snap := row.ExchangeSnapshot
	return &snap, nil
}

func (r *exchangeRepo) Resolve(_ context.Context, id uuid.UUID, status exchange.Status, respondedAt time.Time, reason exchange.DeclineReason) error {
	row, ok := r.store.exchanges[id]
	if !ok || row.Status != exchange.StatusPending {
		return errNotPending
	}
	row.Status = status
	row.DeclineReason = reason
	row.RespondedAt = &respondedAt
	r.store.exchanges[id] = row
	return nil
}

func (r *exchangeRepo) DeclineCompeting(_ context.Context, winnerID uuid.UUID, bookIDs []uuid.UUID, respondedAt time.Time) (int64, error) {
	var declined int64
	for id, row := range r.store.exchanges {
		if id == winnerID || row.Status != exchange.StatusPending {
			continue
		}
		if !referencesAny(row, bookIDs) {
			continue
		}
		row.Status = exchange.StatusDeclined
		row.DeclineReason = exchange.DeclineReasonBookUnavailable
		row.RespondedAt = &respondedAt
		r.store.exchanges[id] = row
		declined++
	}
	return declined, nil
}

func (r *exchangeRepo) HasPendingReferencing(_ context.Context, bookID uuid.UUID) (bool, error) {
	for _, row := range r.store.exchanges {
		if row.Status == exchange.StatusPending && referencesAny(row, []uuid.UUID{bookID}) {
			return true, nil
		}
	}
	return false, nil
}

func referencesAny(row exchangeRow, bookIDs []uuid.UUID) bool {
	for _, id := range bookIDs {
		if row.RequestedBookID == id || row.OfferedBookID == id {
			return true
		}
	}
	return false
}

type userRepo struct {
	store *Store
}

func (r *userRepo) Create(_ context.Context, u *user.User) (uuid.UUID, error) {
	snap := shared.UserSnapshot{
		ID:           u.ID(),
		Email:        u.Email().String(),
		DisplayName:  u.DisplayName().String(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    time.Now(),
	}
	r.store.users[snap.ID] = snap
	return snap.ID, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	for _, snap := range r.store.users {
		if snap.Email == email {
			s := snap
			return &s, nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	snap, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}
