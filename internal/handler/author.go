package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/pagination"
	"github.com/snnyvrz/library-api/internal/response"
	"github.com/snnyvrz/library-api/internal/store"
	"github.com/snnyvrz/library-api/internal/validation"
)

type AuthorService interface {
	Get(ctx context.Context, id string) (*model.Author, error)
	Create(ctx context.Context, in store.CreateAuthorInput) (*model.Author, error)
	Update(ctx context.Context, id string, in store.UpdateAuthorInput) (*model.Author, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Author, pagination.Meta, error)
}

// AuthorBooks lists the books of one author.
type AuthorBooks interface {
	ListByAuthor(ctx context.Context, authorID string) ([]model.Book, error)
}

type AuthorHandler struct {
	authors AuthorService
	books   AuthorBooks
}

func NewAuthorHandler(authors AuthorService, books AuthorBooks) *AuthorHandler {
	return &AuthorHandler{authors: authors, books: books}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthorByID)
		authors.POST("", h.CreateAuthor)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.PATCH("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
		authors.GET("/:id/books", h.ListAuthorBooks)
	}
}

// ListAuthors godoc
// @Summary      List or search authors
// @Description  Paginated list of authors. With q, only authors whose name, bio or nationality contain q (case-insensitive).
// @Tags         authors
// @Produce      json
// @Param        q      query     string  false  "Search text"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 10)"
// @Success      200    {object}  ListAuthorsResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, meta, err := h.authors.Search(c.Request.Context(), c.Query("q"), parsePagination(c))
	if err != nil {
		writeStoreError(c, err, "Failed to fetch authors")
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, authors, "Authors retrieved successfully", meta)
}

// GetAuthorByID godoc
// @Summary      Get an author
// @Tags         authors
// @Produce      json
// @Param        id   path      string  true  "Author ID"
// @Success      200  {object}  AuthorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	author, err := h.authors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err, "Failed to fetch author")
		return
	}

	response.Success(c, http.StatusOK, author, "Author retrieved successfully")
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Name is required and unique (case-insensitive). Bio, nationality and birthYear are optional.
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAuthorRequest  true  "Author to create"
// @Success      201      {object}  AuthorResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author, err := h.authors.Create(c.Request.Context(), req.input())
	if err != nil {
		writeStoreError(c, err, "Failed to create author")
		return
	}

	response.Success(c, http.StatusCreated, author, "Author created successfully")
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Only the provided fields are changed.
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Author ID"
// @Param        payload  body      UpdateAuthorRequest  true  "Fields to update"
// @Success      200      {object}  AuthorResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	var req UpdateAuthorRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	author, err := h.authors.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeStoreError(c, err, "Failed to update author")
		return
	}

	response.Success(c, http.StatusOK, author, "Author updated successfully")
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Books of the author are kept.
// @Tags         authors
// @Param        id   path  string  true  "Author ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	if err := h.authors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeStoreError(c, err, "Failed to delete author")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAuthorBooks godoc
// @Summary      List the books of an author
// @Tags         authors
// @Produce      json
// @Param        id   path      string  true  "Author ID"
// @Success      200  {object}  AuthorBooksResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /authors/{id}/books [get]
func (h *AuthorHandler) ListAuthorBooks(c *gin.Context) {
	books, err := h.books.ListByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err, "Failed to fetch author books")
		return
	}

	response.Success(c, http.StatusOK, books, "Author books retrieved successfully")
}
