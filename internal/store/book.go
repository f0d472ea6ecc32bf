package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/snnyvrz/library-api/internal/apperror"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/pagination"
	"github.com/snnyvrz/library-api/internal/repository"
)

const (
	msgTitleRequired    = "Book title is required"
	msgAuthorIDRequired = "Author ID is required"
	msgPubYearInvalid   = "Publication year must be a valid year"
	msgISBNTooLong      = "ISBN must be 20 characters or less"
)

// AuthorLookup is the only view of authors the book store needs.
type AuthorLookup interface {
	Get(ctx context.Context, id string) (*model.Author, error)
}

type CreateBookInput struct {
	Title           string
	AuthorID        string
	ISBN            string
	PublicationYear int
	Genre           string
	Description     string
}

func (in *CreateBookInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Genre = strings.TrimSpace(in.Genre)
	in.Description = strings.TrimSpace(in.Description)
}

func (in CreateBookInput) validate(now clock) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error(msgTitleRequired)),
		validation.Field(&in.AuthorID, validation.Required.Error(msgAuthorIDRequired)),
		validation.Field(&in.PublicationYear, append(
			[]validation.Rule{validation.Required.Error(msgPubYearInvalid)},
			yearRules(now, msgPubYearInvalid)...,
		)...),
		validation.Field(&in.ISBN, validation.RuneLength(0, maxISBNRunes).Error(msgISBNTooLong)),
	)
}

// UpdateBookInput carries a partial update: nil fields are left alone.
type UpdateBookInput struct {
	Title           *string
	AuthorID        *string
	ISBN            *string
	PublicationYear *int
	Genre           *string
	Description     *string
}

func (in *UpdateBookInput) normalize() {
	in.Title = trimPtr(in.Title)
	in.AuthorID = trimPtr(in.AuthorID)
	in.ISBN = trimPtr(in.ISBN)
	in.Genre = trimPtr(in.Genre)
	in.Description = trimPtr(in.Description)
}

func (in UpdateBookInput) validate(now clock) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.NilOrNotEmpty.Error(msgTitleRequired)),
		validation.Field(&in.AuthorID, validation.NilOrNotEmpty.Error(msgAuthorIDRequired)),
		validation.Field(&in.PublicationYear, append(
			[]validation.Rule{validation.NilOrNotEmpty.Error(msgPubYearInvalid)},
			yearRules(now, msgPubYearInvalid)...,
		)...),
		validation.Field(&in.ISBN, validation.RuneLength(0, maxISBNRunes).Error(msgISBNTooLong)),
	)
}

// BookFilter narrows Search. Zero values disable a filter.
type BookFilter struct {
	Query    string
	AuthorID string
	Genre    string
	Year     int
}

type BookStore struct {
	mu      sync.RWMutex
	repo    repository.BookRepository
	authors AuthorLookup
	now     clock
}

func NewBookStore(repo repository.BookRepository, authors AuthorLookup) *BookStore {
	return &BookStore{repo: repo, authors: authors, now: utcNow}
}

func (s *BookStore) List(ctx context.Context) ([]model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *BookStore) Get(ctx context.Context, id string) (*model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(ctx, id)
}

func (s *BookStore) get(ctx context.Context, id string) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Book with ID %s not found", id)
		}
		return nil, fmt.Errorf("find book %s: %w", id, err)
	}
	return book, nil
}

// requireAuthor reports a missing author as a Validation error: from the
// caller's point of view the request body is wrong, not the URL.
func (s *BookStore) requireAuthor(ctx context.Context, authorID string) error {
	if _, err := s.authors.Get(ctx, authorID); err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return apperror.Validation("Author with ID %s does not exist", authorID)
		}
		return err
	}
	return nil
}

func (s *BookStore) titleTaken(books []model.Book, title, authorID, excludeID string) bool {
	for _, b := range books {
		if b.ID != excludeID && b.AuthorID == authorID && strings.EqualFold(b.Title, title) {
			return true
		}
	}
	return false
}

func (s *BookStore) isbnTaken(books []model.Book, isbn, excludeID string) bool {
	for _, b := range books {
		if b.ID != excludeID && b.ISBN == isbn {
			return true
		}
	}
	return false
}

func (s *BookStore) Create(ctx context.Context, in CreateBookInput) (*model.Book, error) {
	in.normalize()
	if err := in.validate(s.now); err != nil {
		return nil, validationError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAuthor(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	if s.titleTaken(books, in.Title, in.AuthorID, "") {
		return nil, apperror.Conflict("Book with title '%s' by this author already exists", in.Title)
	}
	if in.ISBN != "" && s.isbnTaken(books, in.ISBN, "") {
		return nil, apperror.Conflict("Book with ISBN '%s' already exists", in.ISBN)
	}

	now := s.now()
	book := &model.Book{
		Title:           in.Title,
		AuthorID:        in.AuthorID,
		ISBN:            in.ISBN,
		PublicationYear: in.PublicationYear,
		Genre:           in.Genre,
		Description:     in.Description,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// Update merges the provided fields into the book. The (title, author) pair
// is re-checked whenever either side of it changes.
func (s *BookStore) Update(ctx context.Context, id string, in UpdateBookInput) (*model.Book, error) {
	in.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := in.validate(s.now); err != nil {
		return nil, validationError(err)
	}

	if in.AuthorID != nil {
		if err := s.requireAuthor(ctx, *in.AuthorID); err != nil {
			return nil, err
		}
	}

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	if in.Title != nil || in.AuthorID != nil {
		title := book.Title
		if in.Title != nil {
			title = *in.Title
		}
		authorID := book.AuthorID
		if in.AuthorID != nil {
			authorID = *in.AuthorID
		}
		if s.titleTaken(books, title, authorID, id) {
			return nil, apperror.Conflict("Book with title '%s' by this author already exists", title)
		}
	}

	if in.ISBN != nil && *in.ISBN != "" && s.isbnTaken(books, *in.ISBN, id) {
		return nil, apperror.Conflict("Book with ISBN '%s' already exists", *in.ISBN)
	}

	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.AuthorID != nil {
		book.AuthorID = *in.AuthorID
	}
	if in.ISBN != nil {
		book.ISBN = *in.ISBN
	}
	if in.PublicationYear != nil {
		book.PublicationYear = *in.PublicationYear
	}
	if in.Genre != nil {
		book.Genre = *in.Genre
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	book.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("update book %s: %w", id, err)
	}
	return book, nil
}

func (s *BookStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Book with ID %s not found", id)
		}
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	return nil
}

// ListByAuthor returns every book referencing authorID. A missing author is
// NotFound here, unlike Create and Update.
func (s *BookStore) ListByAuthor(ctx context.Context, authorID string) ([]model.Book, error) {
	if _, err := s.authors.Get(ctx, authorID); err != nil {
		return nil, err
	}

	books, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]model.Book, 0)
	for _, b := range books {
		if b.AuthorID == authorID {
			res = append(res, b)
		}
	}
	return res, nil
}

// Search applies the author, genre, year and free-text filters in that order,
// then paginates.
func (s *BookStore) Search(ctx context.Context, f BookFilter, p pagination.Params) ([]model.Book, pagination.Meta, error) {
	books, err := s.List(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if f.AuthorID != "" {
		books = filterBooks(books, func(b model.Book) bool {
			return b.AuthorID == f.AuthorID
		})
	}
	if f.Genre != "" {
		books = filterBooks(books, func(b model.Book) bool {
			return containsFold(b.Genre, f.Genre)
		})
	}
	if f.Year != 0 {
		books = filterBooks(books, func(b model.Book) bool {
			return b.PublicationYear == f.Year
		})
	}
	if f.Query != "" {
		books = filterBooks(books, func(b model.Book) bool {
			return containsFold(b.Title, f.Query) || containsFold(b.Description, f.Query)
		})
	}

	page, meta := pagination.Paginate(books, p)
	return page, meta, nil
}

func filterBooks(books []model.Book, keep func(model.Book) bool) []model.Book {
	res := make([]model.Book, 0, len(books))
	for _, b := range books {
		if keep(b) {
			res = append(res, b)
		}
	}
	return res
}
