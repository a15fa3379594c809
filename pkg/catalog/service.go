package catalog

import (
	"context"
	"strings"

	"github.com/Isma450/django-library-management/pkg/apiclient"
)

// Entry is a catalog book annotated with the caller's reservation status.
type Entry struct {
	apiclient.Book

	// ReservedByUser is true when the authenticated caller currently holds
	// this book. Always false for anonymous callers.
	ReservedByUser bool
}

// Service exposes catalog browsing over the api client.
type Service struct {
	api *apiclient.Client
}

// New creates a catalog service.
// Panics on a nil client to fail fast on wiring mistakes.
func New(api *apiclient.Client) *Service {
	if api == nil {
		panic("catalog: api client is required")
	}
	return &Service{api: api}
}

// Books fetches the catalog and merges the caller's reserved subset into
// per-entry flags, in the server's listing order.
func (s *Service) Books(ctx context.Context) ([]Entry, error) {
	list, err := s.api.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	reserved := make(map[int64]struct{}, len(list.ReservedByUser))
	for _, b := range list.ReservedByUser {
		reserved[b.ID] = struct{}{}
	}

	entries := make([]Entry, 0, len(list.Books))
	for _, b := range list.Books {
		_, isReserved := reserved[b.ID]
		entries = append(entries, Entry{Book: b, ReservedByUser: isReserved})
	}

	return entries, nil
}

// Book fetches a single catalog entry.
func (s *Service) Book(ctx context.Context, id int64) (apiclient.Book, error) {
	return s.api.GetBook(ctx, id)
}

// Authors fetches all authors.
func (s *Service) Authors(ctx context.Context) ([]apiclient.Author, error) {
	return s.api.ListAuthors(ctx)
}

// Publishers fetches all publishers.
func (s *Service) Publishers(ctx context.Context) ([]apiclient.Publisher, error) {
	return s.api.ListPublishers(ctx)
}

// BooksByAuthor fetches an author together with their books.
func (s *Service) BooksByAuthor(ctx context.Context, authorID int64) (apiclient.AuthorBooks, error) {
	return s.api.BooksByAuthor(ctx, authorID)
}

// Search filters entries by a case-insensitive match on title, ISBN, or
// subject. Filtering is local: the backend has no search endpoint.
func Search(entries []Entry, query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}

	var matched []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), query) ||
			strings.Contains(strings.ToLower(e.ISBN), query) ||
			strings.Contains(strings.ToLower(e.Subject), query) {
			matched = append(matched, e)
		}
	}
	return matched
}
