package handler

import (
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/pagination"
	"github.com/snnyvrz/library-api/internal/store"
)

type CreateAuthorRequest struct {
	Name        string      `json:"name" example:"Jane Austen"`
	Bio         string      `json:"bio" binding:"omitempty,max=2000" example:"English novelist"`
	Nationality string      `json:"nationality" binding:"omitempty,max=100" example:"British"`
	BirthYear   *model.Year `json:"birthYear" swaggertype:"integer" example:"1775"`
}

func (r CreateAuthorRequest) input() store.CreateAuthorInput {
	return store.CreateAuthorInput{
		Name:        r.Name,
		Bio:         r.Bio,
		Nationality: r.Nationality,
		BirthYear:   r.BirthYear.IntPtr(),
	}
}

type UpdateAuthorRequest struct {
	Name        *string     `json:"name" example:"Jane Austen"`
	Bio         *string     `json:"bio" binding:"omitempty,max=2000"`
	Nationality *string     `json:"nationality" binding:"omitempty,max=100"`
	BirthYear   *model.Year `json:"birthYear" swaggertype:"integer" example:"1775"`
}

func (r UpdateAuthorRequest) input() store.UpdateAuthorInput {
	return store.UpdateAuthorInput{
		Name:        r.Name,
		Bio:         r.Bio,
		Nationality: r.Nationality,
		BirthYear:   r.BirthYear.IntPtr(),
	}
}

type AuthorResponse struct {
	Success bool         `json:"success" example:"true"`
	Data    model.Author `json:"data"`
	Message string       `json:"message,omitempty"`
}

type ListAuthorsResponse struct {
	Success    bool            `json:"success" example:"true"`
	Data       []model.Author  `json:"data"`
	Message    string          `json:"message,omitempty"`
	Pagination pagination.Meta `json:"pagination"`
}

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Author with ID 7 not found"`
}
