package handler

import (
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/pagination"
	"github.com/snnyvrz/library-api/internal/store"
)

type CreateBookRequest struct {
	Title           string     `json:"title" example:"Emma"`
	AuthorID        string     `json:"authorId" example:"1"`
	ISBN            string     `json:"isbn" example:"978-0141439587"`
	PublicationYear model.Year `json:"publicationYear" swaggertype:"integer" example:"1815"`
	Genre           string     `json:"genre" binding:"omitempty,max=100" example:"Romance"`
	Description     string     `json:"description" binding:"omitempty,max=2000"`
}

func (r CreateBookRequest) input() store.CreateBookInput {
	return store.CreateBookInput{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		ISBN:            r.ISBN,
		PublicationYear: r.PublicationYear.Int(),
		Genre:           r.Genre,
		Description:     r.Description,
	}
}

type UpdateBookRequest struct {
	Title           *string     `json:"title" example:"Emma"`
	AuthorID        *string     `json:"authorId" example:"1"`
	ISBN            *string     `json:"isbn"`
	PublicationYear *model.Year `json:"publicationYear" swaggertype:"integer" example:"1815"`
	Genre           *string     `json:"genre" binding:"omitempty,max=100"`
	Description     *string     `json:"description" binding:"omitempty,max=2000"`
}

func (r UpdateBookRequest) input() store.UpdateBookInput {
	return store.UpdateBookInput{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		ISBN:            r.ISBN,
		PublicationYear: r.PublicationYear.IntPtr(),
		Genre:           r.Genre,
		Description:     r.Description,
	}
}

type BookResponse struct {
	Success bool       `json:"success" example:"true"`
	Data    model.Book `json:"data"`
	Message string     `json:"message,omitempty"`
}

type ListBooksResponse struct {
	Success    bool            `json:"success" example:"true"`
	Data       []model.Book    `json:"data"`
	Message    string          `json:"message,omitempty"`
	Pagination pagination.Meta `json:"pagination"`
}

type AuthorBooksResponse struct {
	Success bool         `json:"success" example:"true"`
	Data    []model.Book `json:"data"`
	Message string       `json:"message,omitempty"`
}
