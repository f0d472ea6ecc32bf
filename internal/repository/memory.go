package repository

import (
	"context"
	"strconv"
	"sync"

	"github.com/snnyvrz/library-api/internal/model"
)

// table is an insertion-ordered slice with a monotonic id counter. Rows are
// copied in and out so callers never share memory with the stored state.
type table[T any] struct {
	mu     sync.RWMutex
	rows   []T
	nextID int
	id     func(*T) *string
	clone  func(T) T
}

func newTable[T any](id func(*T) *string, clone func(T) T) *table[T] {
	return &table[T]{nextID: 1, id: id, clone: clone}
}

func (t *table[T]) indexOf(id string) int {
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) create(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	*t.id(row) = strconv.Itoa(t.nextID)
	t.nextID++
	t.rows = append(t.rows, t.clone(*row))
}

func (t *table[T]) find(id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := t.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	row := t.clone(t.rows[i])
	return &row, nil
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	res := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		res = append(res, t.clone(row))
	}
	return res
}

func (t *table[T]) update(row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(*t.id(row))
	if i < 0 {
		return ErrNotFound
	}
	t.rows[i] = t.clone(*row)
	return nil
}

func (t *table[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

type MemoryAuthorRepository struct {
	t *table[model.Author]
}

func NewMemoryAuthorRepository() *MemoryAuthorRepository {
	return &MemoryAuthorRepository{
		t: newTable(
			func(a *model.Author) *string { return &a.ID },
			cloneAuthor,
		),
	}
}

func cloneAuthor(a model.Author) model.Author {
	if a.BirthYear != nil {
		y := *a.BirthYear
		a.BirthYear = &y
	}
	return a
}

func (r *MemoryAuthorRepository) Create(_ context.Context, author *model.Author) error {
	r.t.create(author)
	return nil
}

func (r *MemoryAuthorRepository) FindByID(_ context.Context, id string) (*model.Author, error) {
	return r.t.find(id)
}

func (r *MemoryAuthorRepository) List(_ context.Context) ([]model.Author, error) {
	return r.t.list(), nil
}

func (r *MemoryAuthorRepository) Update(_ context.Context, author *model.Author) error {
	return r.t.update(author)
}

func (r *MemoryAuthorRepository) Delete(_ context.Context, id string) error {
	return r.t.delete(id)
}

type MemoryBookRepository struct {
	t *table[model.Book]
}

func NewMemoryBookRepository() *MemoryBookRepository {
	return &MemoryBookRepository{
		t: newTable(
			func(b *model.Book) *string { return &b.ID },
			func(b model.Book) model.Book { return b },
		),
	}
}

func (r *MemoryBookRepository) Create(_ context.Context, book *model.Book) error {
	r.t.create(book)
	return nil
}

func (r *MemoryBookRepository) FindByID(_ context.Context, id string) (*model.Book, error) {
	return r.t.find(id)
}

func (r *MemoryBookRepository) List(_ context.Context) ([]model.Book, error) {
	return r.t.list(), nil
}

func (r *MemoryBookRepository) Update(_ context.Context, book *model.Book) error {
	return r.t.update(book)
}

func (r *MemoryBookRepository) Delete(_ context.Context, id string) error {
	return r.t.delete(id)
}
