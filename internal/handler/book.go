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

type BookService interface {
	Get(ctx context.Context, id string) (*model.Book, error)
	Create(ctx context.Context, in store.CreateBookInput) (*model.Book, error)
	Update(ctx context.Context, id string, in store.UpdateBookInput) (*model.Book, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, f store.BookFilter, p pagination.Params) ([]model.Book, pagination.Meta, error)
}

type BookHandler struct {
	books BookService
}

func NewBookHandler(books BookService) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.POST("", h.CreateBook)
		books.PUT("/:id", h.UpdateBook)
		books.PATCH("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// ListBooks godoc
// @Summary      List or search books
// @Description  Paginated list of books. Filters combine: authorId (exact), genre (substring), year (exact), q (title or description substring).
// @Tags         books
// @Produce      json
// @Param        q         query     string  false  "Search text"
// @Param        authorId  query     string  false  "Author ID"
// @Param        genre     query     string  false  "Genre"
// @Param        year      query     int     false  "Publication year"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Page size (default 10)"
// @Success      200       {object}  ListBooksResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	filter := store.BookFilter{
		Query:    c.Query("q"),
		AuthorID: c.Query("authorId"),
		Genre:    c.Query("genre"),
		Year:     parseIntQuery(c, "year", 0),
	}

	books, meta, err := h.books.Search(c.Request.Context(), filter, parsePagination(c))
	if err != nil {
		writeStoreError(c, err, "Failed to fetch books")
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, books, "Books retrieved successfully", meta)
}

// GetBookByID godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  BookResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	book, err := h.books.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, err, "Failed to fetch book")
		return
	}

	response.Success(c, http.StatusOK, book, "Book retrieved successfully")
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Title, authorId and publicationYear are required. The author must exist. Title is unique per author and isbn is unique.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBookRequest  true  "Book to create"
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.books.Create(c.Request.Context(), req.input())
	if err != nil {
		writeStoreError(c, err, "Failed to create book")
		return
	}

	response.Success(c, http.StatusCreated, book, "Book created successfully")
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Only the provided fields are changed.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Book ID"
// @Param        payload  body      UpdateBookRequest  true  "Fields to update"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book, err := h.books.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		writeStoreError(c, err, "Failed to update book")
		return
	}

	response.Success(c, http.StatusOK, book, "Book updated successfully")
}

// DeleteBook godoc
// @Summary      Delete a book
// @Tags         books
// @Param        id   path  string  true  "Book ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.books.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeStoreError(c, err, "Failed to delete book")
		return
	}

	c.Status(http.StatusNoContent)
}
