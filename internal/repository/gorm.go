package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/snnyvrz/library-api/internal/model"
	"gorm.io/gorm"
)

// sequence holds the last id handed out per table. Ids come from here rather
// than from the tables themselves so that deleting the newest row never
// frees its id for reuse.
type sequence struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

func (sequence) TableName() string {
	return "sequences"
}

const (
	authorsSequence = "authors"
	booksSequence   = "books"

	insertionOrder = "CAST(id AS INTEGER)"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Author{}, &model.Book{}, &sequence{})
}

func nextID(tx *gorm.DB, name string) (string, error) {
	seq := sequence{Name: name}
	if err := tx.FirstOrCreate(&seq, sequence{Name: name}).Error; err != nil {
		return "", err
	}

	seq.Value++
	if err := tx.Model(&sequence{}).
		Where("name = ?", name).
		Update("value", seq.Value).Error; err != nil {

		return "", err
	}

	return strconv.FormatInt(seq.Value, 10), nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, authorsSequence)
		if err != nil {
			return err
		}
		author.ID = id
		return tx.Create(author).Error
	})
}

func (r *GormAuthorRepository) FindByID(ctx context.Context, id string) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &author, nil
}

func (r *GormAuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if err := r.db.WithContext(ctx).
		Order(insertionOrder).
		Find(&authors).Error; err != nil {

		return nil, err
	}
	return authors, nil
}

func (r *GormAuthorRepository) Update(ctx context.Context, author *model.Author) error {
	result := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("id = ?", author.ID).
		Updates(map[string]any{
			"name":        author.Name,
			"bio":         author.Bio,
			"nationality": author.Nationality,
			"birth_year":  author.BirthYear,
			"updated_at":  author.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormAuthorRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Author{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, booksSequence)
		if err != nil {
			return err
		}
		book.ID = id
		return tx.Create(book).Error
	})
}

func (r *GormBookRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Order(insertionOrder).
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	result := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":            book.Title,
			"author_id":        book.AuthorID,
			"isbn":             book.ISBN,
			"publication_year": book.PublicationYear,
			"genre":            book.Genre,
			"description":      book.Description,
			"updated_at":       book.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBookRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
