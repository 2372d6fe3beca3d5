package dto

import (
	"time"

	"github.com/spec-kit/book-catalog/internal/domain"
)

// CreateBookRequest payload for new catalog entries.
type CreateBookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ISBN        string   `json:"isbn"`
}

// Validate returns field-level errors, empty when the payload is valid.
func (r CreateBookRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	requireString(fe, "title", r.Title)
	checkMaxLen(fe, "title", r.Title, 255)
	requireString(fe, "author", r.Author)
	checkMaxLen(fe, "author", r.Author, 255)
	if r.Price == nil {
		fe.add("price", "This field is required.")
	} else if *r.Price < 0 {
		fe.add("price", "Ensure this value is greater than or equal to 0.")
	}
	checkMaxLen(fe, "isbn", r.ISBN, 20)
	return fe
}

// UpdateBookRequest payload for partial updates; nil fields are left
// untouched.
type UpdateBookRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ISBN        *string  `json:"isbn"`
}

// Validate returns field-level errors, empty when the payload is valid.
func (r UpdateBookRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	if r.Title != nil {
		requireString(fe, "title", *r.Title)
		checkMaxLen(fe, "title", *r.Title, 255)
	}
	if r.Author != nil {
		requireString(fe, "author", *r.Author)
		checkMaxLen(fe, "author", *r.Author, 255)
	}
	if r.Price != nil && *r.Price < 0 {
		fe.add("price", "Ensure this value is greater than or equal to 0.")
	}
	if r.ISBN != nil {
		checkMaxLen(fe, "isbn", *r.ISBN, 20)
	}
	return fe
}

// BookListQuery carries the optional listing filters.
type BookListQuery struct {
	Title       string `query:"title"`
	Author      string `query:"author"`
	ISBN        string `query:"isbn"`
	AddedByUser string `query:"added_by_user"`
}

// Filter converts the query into a repository filter.
func (q BookListQuery) Filter() domain.BookFilter {
	return domain.BookFilter{
		Title:   q.Title,
		Author:  q.Author,
		ISBN:    q.ISBN,
		AddedBy: q.AddedByUser,
	}
}

// BookResponse is the wire shape for catalog entries.
type BookResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	ISBN        string          `json:"isbn,omitempty"`
	AddedBy     *domain.UserRef `json:"added_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewBookResponse maps a domain book onto the wire shape.
func NewBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Description: book.Description,
		Price:       book.Price,
		ISBN:        book.ISBN,
		AddedBy:     book.AddedBy,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

// NewBookListResponse maps a slice of books.
func NewBookListResponse(books []*domain.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, book := range books {
		out[i] = NewBookResponse(book)
	}
	return out
}
