package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/response"
	"github.com/snnyvrz/library-api/internal/store"
	"github.com/stretchr/testify/require"
)

type fakeAuthorRepo struct {
	CreateFn   func(ctx context.Context, a *model.Author) error
	FindByIDFn func(ctx context.Context, id string) (*model.Author, error)
	ListFn     func(ctx context.Context) ([]model.Author, error)
	UpdateFn   func(ctx context.Context, a *model.Author) error
	DeleteFn   func(ctx context.Context, id string) error
}

func (f *fakeAuthorRepo) Create(ctx context.Context, a *model.Author) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, a)
	}
	return nil
}

func (f *fakeAuthorRepo) FindByID(ctx context.Context, id string) (*model.Author, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAuthorRepo) List(ctx context.Context) ([]model.Author, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeAuthorRepo) Update(ctx context.Context, a *model.Author) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, a)
	}
	return nil
}

func (f *fakeAuthorRepo) Delete(ctx context.Context, id string) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeBookRepo struct {
	CreateFn   func(ctx context.Context, b *model.Book) error
	FindByIDFn func(ctx context.Context, id string) (*model.Book, error)
	ListFn     func(ctx context.Context) ([]model.Book, error)
	UpdateFn   func(ctx context.Context, b *model.Book) error
	DeleteFn   func(ctx context.Context, id string) error
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id string) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookRepo) List(ctx context.Context) ([]model.Book, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id string) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type testEnv struct {
	router  *gin.Engine
	authors *store.AuthorStore
	books   *store.BookStore
}

func setupTestRouterWithRepos(authorRepo repository.AuthorRepository, bookRepo repository.BookRepository) testEnv {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authors := store.NewAuthorStore(authorRepo)
	books := store.NewBookStore(bookRepo, authors)

	NewAuthorHandler(authors, books).RegisterRoutes(r.Group(""))
	NewBookHandler(books).RegisterRoutes(r.Group(""))

	return testEnv{router: r, authors: authors, books: books}
}

func setupTestRouter() testEnv {
	return setupTestRouterWithRepos(
		repository.NewMemoryAuthorRepository(),
		repository.NewMemoryBookRepository(),
	)
}

func performRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(v))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	env := decode[response.Envelope](t, w)
	require.False(t, env.Success)
	return env
}

func seedAuthor(t *testing.T, env testEnv, name string) *model.Author {
	t.Helper()

	a, err := env.authors.Create(context.Background(), store.CreateAuthorInput{Name: name})
	require.NoError(t, err, "failed to seed author %q", name)
	return a
}

func seedBook(t *testing.T, env testEnv, in store.CreateBookInput) *model.Book {
	t.Helper()

	if in.PublicationYear == 0 {
		in.PublicationYear = 2000
	}
	b, err := env.books.Create(context.Background(), in)
	require.NoError(t, err, "failed to seed book %q", in.Title)
	return b
}
