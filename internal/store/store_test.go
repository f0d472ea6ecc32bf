package store

import (
	"context"
	"testing"
	"time"

	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) (*AuthorStore, *BookStore) {
	t.Helper()

	authors := NewAuthorStore(repository.NewMemoryAuthorRepository())
	books := NewBookStore(repository.NewMemoryBookRepository(), authors)
	return authors, books
}

func mustCreateAuthor(t *testing.T, s *AuthorStore, name string) *model.Author {
	t.Helper()

	a, err := s.Create(context.Background(), CreateAuthorInput{Name: name})
	require.NoError(t, err, "failed to seed author %q", name)
	return a
}

func mustCreateBook(t *testing.T, s *BookStore, in CreateBookInput) *model.Book {
	t.Helper()

	if in.PublicationYear == 0 {
		in.PublicationYear = 2000
	}
	b, err := s.Create(context.Background(), in)
	require.NoError(t, err, "failed to seed book %q", in.Title)
	return b
}

func ptr[T any](v T) *T {
	return &v
}

func fixedClock(ts time.Time) clock {
	return func() time.Time { return ts }
}

func newMemoryBooks() *repository.MemoryBookRepository {
	return repository.NewMemoryBookRepository()
}
