package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/book-catalog/internal/api/dto"
	"github.com/spec-kit/book-catalog/internal/auth"
	"github.com/spec-kit/book-catalog/internal/googlebooks"
	"github.com/spec-kit/book-catalog/internal/service"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// BooksHandler exposes catalog endpoints.
type BooksHandler struct {
	books   *service.BookService
	catalog *googlebooks.Client
}

// NewBooksHandler constructs handler.
func NewBooksHandler(books *service.BookService, catalog *googlebooks.Client) *BooksHandler {
	return &BooksHandler{books: books, catalog: catalog}
}

// Create handles POST /api/v1/books.
func (h *BooksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewBadRequest("Invalid request body.")
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return util.NewValidation(fieldErrors)
	}

	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return util.NewUnauthorized("")
	}

	book, err := h.books.Create(c.Context(), service.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       *req.Price,
		ISBN:        req.ISBN,
	}, identity.UserID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewBookResponse(book))
}

// List handles GET /api/v1/books.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	var query dto.BookListQuery
	if err := c.QueryParser(&query); err != nil {
		return util.NewBadRequest("Invalid query parameters.")
	}

	books, err := h.books.List(c.Context(), query.Filter())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBookListResponse(books))
}

// GetByID handles GET /api/v1/books/:book_id.
func (h *BooksHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}
	book, err := h.books.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBookResponse(book))
}

// Update handles PATCH /api/v1/books/:book_id.
func (h *BooksHandler) Update(c *fiber.Ctx) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewBadRequest("Invalid request body.")
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return util.NewValidation(fieldErrors)
	}

	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return util.NewUnauthorized("")
	}

	book, err := h.books.Update(c.Context(), id, service.BookPatch{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		ISBN:        req.ISBN,
	}, identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBookResponse(book))
}

// Delete handles DELETE /api/v1/books/:book_id.
func (h *BooksHandler) Delete(c *fiber.Ctx) error {
	id, err := parseBookID(c)
	if err != nil {
		return err
	}

	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return util.NewUnauthorized("")
	}

	if err := h.books.Delete(c.Context(), id, identity.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Book deleted successfully"})
}

// SearchGoogle handles GET /api/v1/books/google.
func (h *BooksHandler) SearchGoogle(c *fiber.Ctx) error {
	var query dto.GoogleBooksQuery
	if err := c.QueryParser(&query); err != nil {
		return util.NewBadRequest("Invalid query parameters.")
	}
	if fieldErrors := query.Validate(); len(fieldErrors) > 0 {
		return util.NewValidation(fieldErrors)
	}

	result, err := h.catalog.Search(c.Context(), query.SearchQuery())
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func parseBookID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("book_id"), 10, 64)
	if err != nil {
		return 0, util.NewBadRequest("Invalid book id.")
	}
	return id, nil
}
