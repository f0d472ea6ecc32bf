package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/snnyvrz/library-api/internal/apperror"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingAuthors struct {
	err error
}

func (f failingAuthors) Get(context.Context, string) (*model.Author, error) {
	return nil, f.err
}

func TestBookStore_CreateAndGet(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Jane Austen")

	created, err := books.Create(ctx, CreateBookInput{
		Title:           " Emma ",
		AuthorID:        jane.ID,
		ISBN:            " 978-0141439587 ",
		PublicationYear: 1815,
		Genre:           "Romance",
	})
	require.NoError(t, err)

	assert.Equal(t, "1", created.ID)
	assert.Equal(t, "Emma", created.Title)
	assert.Equal(t, "978-0141439587", created.ISBN)

	got, err := books.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestBookStore_CreateWithUnknownAuthorIsValidationError(t *testing.T) {
	_, books := newStores(t)

	_, err := books.Create(context.Background(), CreateBookInput{
		Title:           "X",
		AuthorID:        "999",
		PublicationYear: 2000,
	})

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.False(t, errors.Is(err, apperror.ErrNotFound))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestBookStore_AuthorLookupFailuresOtherThanNotFoundPropagate(t *testing.T) {
	boom := errors.New("lookup exploded")
	books := NewBookStore(newMemoryBooks(), failingAuthors{err: boom})

	_, err := books.Create(context.Background(), CreateBookInput{Title: "X", AuthorID: "1", PublicationYear: 2000})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestBookStore_TitleUniquenessIsPerAuthor(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Jane Austen")
	mary := mustCreateAuthor(t, authors, "Mary Shelley")

	mustCreateBook(t, books, CreateBookInput{Title: "Emma", AuthorID: jane.ID})

	_, err := books.Create(ctx, CreateBookInput{Title: "EMMA", AuthorID: jane.ID, PublicationYear: 1815})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	other, err := books.Create(ctx, CreateBookInput{Title: "Emma", AuthorID: mary.ID, PublicationYear: 1815})
	require.NoError(t, err)
	assert.Equal(t, mary.ID, other.AuthorID)
}

func TestBookStore_ISBNUniqueness(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Jane Austen")

	mustCreateBook(t, books, CreateBookInput{Title: "Emma", AuthorID: jane.ID, ISBN: "123"})

	_, err := books.Create(ctx, CreateBookInput{Title: "Persuasion", AuthorID: jane.ID, ISBN: "123", PublicationYear: 1817})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "Book with ISBN '123' already exists", err.Error())

	mustCreateBook(t, books, CreateBookInput{Title: "Sanditon", AuthorID: jane.ID})
	_, err = books.Create(ctx, CreateBookInput{Title: "Lady Susan", AuthorID: jane.ID, PublicationYear: 1871})
	require.NoError(t, err, "books without isbn never collide")
}

func TestBookStore_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateBookInput
		wantMsg string
	}{
		{"missing title", CreateBookInput{AuthorID: "1", PublicationYear: 2000}, msgTitleRequired},
		{"blank title", CreateBookInput{Title: "  ", AuthorID: "1", PublicationYear: 2000}, msgTitleRequired},
		{"missing author", CreateBookInput{Title: "T", PublicationYear: 2000}, msgAuthorIDRequired},
		{"missing year", CreateBookInput{Title: "T", AuthorID: "1"}, msgPubYearInvalid},
		{"year too early", CreateBookInput{Title: "T", AuthorID: "1", PublicationYear: 999}, msgPubYearInvalid},
		{"year in the future", CreateBookInput{Title: "T", AuthorID: "1", PublicationYear: time.Now().Year() + 1}, msgPubYearInvalid},
		{"isbn too long", CreateBookInput{Title: "T", AuthorID: "1", PublicationYear: 2000, ISBN: "123456789012345678901"}, msgISBNTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authors, books := newStores(t)
			mustCreateAuthor(t, authors, "Someone")

			_, err := books.Create(context.Background(), tt.in)

			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestBookStore_Update(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Jane Austen")
	mary := mustCreateAuthor(t, authors, "Mary Shelley")

	emma := mustCreateBook(t, books, CreateBookInput{Title: "Emma", AuthorID: jane.ID, PublicationYear: 1815, Genre: "Romance"})

	later := emma.UpdatedAt.Add(time.Hour)
	books.now = fixedClock(later)

	updated, err := books.Update(ctx, emma.ID, UpdateBookInput{
		Description: ptr("A comedy of manners"),
		AuthorID:    ptr(mary.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, "Emma", updated.Title)
	assert.Equal(t, mary.ID, updated.AuthorID)
	assert.Equal(t, "Romance", updated.Genre)
	assert.Equal(t, "A comedy of manners", updated.Description)
	assert.Equal(t, 1815, updated.PublicationYear)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, emma.CreatedAt, updated.CreatedAt)
}

func TestBookStore_UpdateErrors(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Jane Austen")
	mary := mustCreateAuthor(t, authors, "Mary Shelley")

	emma := mustCreateBook(t, books, CreateBookInput{Title: "Emma", AuthorID: jane.ID, ISBN: "111"})
	mustCreateBook(t, books, CreateBookInput{Title: "Persuasion", AuthorID: jane.ID, ISBN: "222"})
	mustCreateBook(t, books, CreateBookInput{Title: "Emma", AuthorID: mary.ID})

	tests := []struct {
		name string
		id   string
		in   UpdateBookInput
		want apperror.Kind
	}{
		{"missing book", "99", UpdateBookInput{Title: ptr("x")}, apperror.KindNotFound},
		{"unknown author", emma.ID, UpdateBookInput{AuthorID: ptr("99")}, apperror.KindValidation},
		{"blank title", emma.ID, UpdateBookInput{Title: ptr(" ")}, apperror.KindValidation},
		{"bad year", emma.ID, UpdateBookInput{PublicationYear: ptr(12)}, apperror.KindValidation},
		{"title clash", emma.ID, UpdateBookInput{Title: ptr("persuasion")}, apperror.KindConflict},
		{"author move clashes on title", emma.ID, UpdateBookInput{AuthorID: ptr(mary.ID)}, apperror.KindConflict},
		{"isbn clash", emma.ID, UpdateBookInput{ISBN: ptr("222")}, apperror.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := books.Update(ctx, tt.id, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperror.KindOf(err))
		})
	}

	same, err := books.Update(ctx, emma.ID, UpdateBookInput{ISBN: ptr("111"), Title: ptr("EMMA")})
	require.NoError(t, err, "a book never conflicts with itself")
	assert.Equal(t, "EMMA", same.Title)
}

func TestBookStore_DeleteAuthorLeavesOrphanedBooks(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Jane Austen")
	emma := mustCreateBook(t, books, CreateBookInput{Title: "Emma", AuthorID: jane.ID})

	require.NoError(t, authors.Delete(ctx, jane.ID))

	got, err := books.Get(ctx, emma.ID)
	require.NoError(t, err)
	assert.Equal(t, jane.ID, got.AuthorID)

	all, err := books.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Filtering by the deleted author's id still finds the orphan.
	orphans, meta, err := books.Search(ctx, BookFilter{AuthorID: jane.ID}, pagination.NewParams(1, 10))
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, emma.ID, orphans[0].ID)
	assert.Equal(t, 1, meta.Total)

	// The author-scoped listing checks the author first and reports it missing.
	_, err = books.ListByAuthor(ctx, jane.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestBookStore_ListByAuthor(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Jane Austen")
	mary := mustCreateAuthor(t, authors, "Mary Shelley")

	mustCreateBook(t, books, CreateBookInput{Title: "Emma", AuthorID: jane.ID})
	mustCreateBook(t, books, CreateBookInput{Title: "Frankenstein", AuthorID: mary.ID})
	mustCreateBook(t, books, CreateBookInput{Title: "Persuasion", AuthorID: jane.ID})

	got, err := books.ListByAuthor(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Emma", got[0].Title)
	assert.Equal(t, "Persuasion", got[1].Title)

	none := mustCreateAuthor(t, authors, "New Writer")
	got, err = books.ListByAuthor(ctx, none.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = books.ListByAuthor(ctx, "404")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestBookStore_SearchFilters(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Jane Austen")
	mary := mustCreateAuthor(t, authors, "Mary Shelley")

	mustCreateBook(t, books, CreateBookInput{Title: "Emma", AuthorID: jane.ID, PublicationYear: 1815, Genre: "Romance"})
	mustCreateBook(t, books, CreateBookInput{Title: "Persuasion", AuthorID: jane.ID, PublicationYear: 1817, Genre: "Romantic fiction", Description: "Second chances"})
	mustCreateBook(t, books, CreateBookInput{Title: "Frankenstein", AuthorID: mary.ID, PublicationYear: 1818, Genre: "Gothic", Description: "A modern Prometheus"})
	mustCreateBook(t, books, CreateBookInput{Title: "The Last Man", AuthorID: mary.ID, PublicationYear: 1826})

	titles := func(bs []model.Book) []string {
		out := make([]string, 0, len(bs))
		for _, b := range bs {
			out = append(out, b.Title)
		}
		return out
	}

	tests := []struct {
		name   string
		filter BookFilter
		want   []string
	}{
		{"no filters", BookFilter{}, []string{"Emma", "Persuasion", "Frankenstein", "The Last Man"}},
		{"author", BookFilter{AuthorID: mary.ID}, []string{"Frankenstein", "The Last Man"}},
		{"genre substring ignores case", BookFilter{Genre: "ROMAN"}, []string{"Emma", "Persuasion"}},
		{"year", BookFilter{Year: 1817}, []string{"Persuasion"}},
		{"query in description", BookFilter{Query: "prometheus"}, []string{"Frankenstein"}},
		{"query in title", BookFilter{Query: "man"}, []string{"The Last Man"}},
		{"combined", BookFilter{AuthorID: jane.ID, Genre: "roman", Query: "chances"}, []string{"Persuasion"}},
		{"no match", BookFilter{AuthorID: jane.ID, Year: 1818}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta, err := books.Search(ctx, tt.filter, pagination.NewParams(1, 10))
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
			assert.Equal(t, len(tt.want), meta.Total)
		})
	}
}

func TestBookStore_SearchPagination(t *testing.T) {
	authors, books := newStores(t)
	ctx := context.Background()
	jane := mustCreateAuthor(t, authors, "Prolific")

	for i := 0; i < 25; i++ {
		mustCreateBook(t, books, CreateBookInput{Title: fmt.Sprintf("Volume %d", i+1), AuthorID: jane.ID})
	}

	got, meta, err := books.Search(ctx, BookFilter{AuthorID: jane.ID}, pagination.NewParams(2, 10))
	require.NoError(t, err)

	assert.Len(t, got, 10)
	assert.Equal(t, "Volume 11", got[0].Title)
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 10, Total: 25, TotalPages: 3}, meta)

	got, _, err = books.Search(ctx, BookFilter{}, pagination.NewParams(4, 10))
	require.NoError(t, err)
	assert.Empty(t, got)
}
