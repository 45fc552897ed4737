//go:build unit

package memstore

import (
	"context"
	"sort"
	"strings"

	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

// Read-side implementations over the same maps, so command tests can use
// one Store as both the unit of work and the query surface.

// Store itself satisfies queries.BookQueries; the exchange and user query
// interfaces reuse the GetByID name, so they get thin adapters.

func (s *Store) BookQueries() queries.BookQueries         { return s }
func (s *Store) ExchangeQueries() queries.ExchangeQueries { return exchangeQueriesAdapter{s} }
func (s *Store) UserQueries() queries.UserQueries         { return userQueriesAdapter{s} }

type exchangeQueriesAdapter struct {
	store *Store
}

func (a exchangeQueriesAdapter) ListReceived(ctx context.Context, ownerID uuid.UUID) ([]*queries.ExchangeView, error) {
	return a.store.ListReceived(ctx, ownerID)
}

func (a exchangeQueriesAdapter) ListSent(ctx context.Context, requesterID uuid.UUID) ([]*queries.ExchangeView, error) {
	return a.store.ListSent(ctx, requesterID)
}

func (a exchangeQueriesAdapter) GetByID(ctx context.Context, id uuid.UUID) (*queries.ExchangeView, error) {
	return a.store.GetExchangeByID(ctx, id)
}

type userQueriesAdapter struct {
	store *Store
}

func (a userQueriesAdapter) GetByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	return a.store.GetUserByID(ctx, id)
}

func (s *Store) List(_ context.Context, filter queries.BookFilter) ([]*queries.BookView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := []*queries.BookView{}
	for _, view := range s.books {
		if filter.Genre != "" && view.Genre != filter.Genre {
			continue
		}
		if filter.Condition != "" && view.Condition != filter.Condition {
			continue
		}
		if filter.Text != "" && !matchesText(view, filter.Text) {
			continue
		}
		v := view
		views = append(views, &v)
	}
	sortBookViews(views)
	return views, nil
}

func (s *Store) ListOwnedBy(_ context.Context, ownerID uuid.UUID) ([]*queries.BookView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := []*queries.BookView{}
	for _, view := range s.books {
		if view.OwnerID != ownerID {
			continue
		}
		v := view
		views = append(views, &v)
	}
	sortBookViews(views)
	return views, nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*queries.BookView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	return &view, nil
}

func (s *Store) ListReceived(_ context.Context, ownerID uuid.UUID) ([]*queries.ExchangeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listExchanges(func(row exchangeRow) bool { return row.OwnerID == ownerID }), nil
}

func (s *Store) ListSent(_ context.Context, requesterID uuid.UUID) ([]*queries.ExchangeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listExchanges(func(row exchangeRow) bool { return row.RequesterID == requesterID }), nil
}

func (s *Store) GetExchangeByID(ctx context.Context, id uuid.UUID) (*queries.ExchangeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.exchanges[id]
	if !ok {
		return nil, nil
	}
	return s.exchangeView(row), nil
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &queries.UserView{
		ID:          snap.ID,
		Email:       snap.Email,
		DisplayName: snap.DisplayName,
		CreatedAt:   snap.CreatedAt,
	}, nil
}

// commands.UserReader

func (s *Store) FindByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&userRepo{store: s}).FindByEmail(ctx, email)
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&userRepo{store: s}).FindByID(ctx, id)
}

func (s *Store) listExchanges(match func(exchangeRow) bool) []*queries.ExchangeView {
	views := []*queries.ExchangeView{}
	for _, row := range s.exchanges {
		if !match(row) {
			continue
		}
		views = append(views, s.exchangeView(row))
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views
}

func (s *Store) exchangeView(row exchangeRow) *queries.ExchangeView {
	view := &queries.ExchangeView{
		ID:            row.ID,
		RequestedBook: s.exchangeBookView(row.RequestedBookID),
		OfferedBook:   s.exchangeBookView(row.OfferedBookID),
		RequesterID:   row.RequesterID,
		OwnerID:       row.OwnerID,
		Status:        row.Status.String(),
		CreatedAt:     row.CreatedAt,
		RespondedAt:   row.RespondedAt,
	}
	if row.Message != "" {
		message := row.Message
		view.Message = &message
	}
	if !row.DeclineReason.IsEmpty() {
		reason := row.DeclineReason.String()
		view.DeclineReason = &reason
	}
	if u, ok := s.users[row.RequesterID]; ok {
		view.RequesterName = u.DisplayName
	}
	if u, ok := s.users[row.OwnerID]; ok {
		view.OwnerName = u.DisplayName
	}
	return view
}

func (s *Store) exchangeBookView(bookID uuid.UUID) queries.ExchangeBookView {
	book, ok := s.books[bookID]
	if !ok {
		return queries.ExchangeBookView{ID: bookID}
	}
	return queries.ExchangeBookView{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Condition: book.Condition,
		Status:    book.Status,
	}
}

func matchesText(view queries.BookView, text string) bool {
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(view.Title), needle) ||
		strings.Contains(strings.ToLower(view.Author), needle)
}

func sortBookViews(views []*queries.BookView) {
	sort.Slice(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID.String() < views[j].ID.String()
		}
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
}
