package repository

import (
	"context"
	"errors"

	"github.com/snnyvrz/library-api/internal/model"
)

var ErrNotFound = errors.New("record not found")

// AuthorRepository is the storage backend behind the author store. Create
// assigns the next sequential id; ids are never handed out twice.
type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	FindByID(ctx context.Context, id string) (*model.Author, error)
	List(ctx context.Context) ([]model.Author, error)
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id string) error
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id string) error
}
