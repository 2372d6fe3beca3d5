package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/book-catalog/internal/domain"
	"github.com/spec-kit/book-catalog/internal/events"
	"github.com/spec-kit/book-catalog/internal/repository"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// BookInput carries the fields accepted when creating a book.
type BookInput struct {
	Title       string
	Author      string
	Description string
	Price       float64
	ISBN        string
}

// BookPatch carries partial updates; nil fields are left untouched.
type BookPatch struct {
	Title       *string
	Author      *string
	Description *string
	Price       *float64
	ISBN        *string
}

// BookService coordinates catalog entry management.
type BookService struct {
	books      repository.BookRepository
	dispatcher events.Dispatcher
}

// NewBookService builds the service.
func NewBookService(books repository.BookRepository, dispatcher events.Dispatcher) *BookService {
	return &BookService{books: books, dispatcher: dispatcher}
}

// Create adds a catalog entry attributed to the acting user.
func (s *BookService) Create(ctx context.Context, input BookInput, addedByID string) (*domain.Book, error) {
	if input.ISBN != "" {
		exists, err := s.books.ISBNExists(ctx, input.ISBN, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.NewConflict("Book with this ISBN already exists")
		}
	}

	book := &domain.Book{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		Price:       input.Price,
		ISBN:        input.ISBN,
		AddedByID:   addedByID,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventBookCreated, addedByID, events.BookCreatedPayload{
		BookID: book.ID,
		Title:  book.Title,
		Author: book.Author,
		ISBN:   book.ISBN,
	})
	return s.GetByID(ctx, book.ID)
}

// List returns live catalog entries matching the filter, newest first.
func (s *BookService) List(ctx context.Context, filter domain.BookFilter) ([]*domain.Book, error) {
	return s.books.List(ctx, filter)
}

// GetByID fetches a live catalog entry.
func (s *BookService) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Book not found")
		}
		return nil, err
	}
	return book, nil
}

// Update applies a partial update to a live catalog entry.
func (s *BookService) Update(ctx context.Context, id int64, patch BookPatch, actorID string) (*domain.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ISBN != nil && *patch.ISBN != "" && *patch.ISBN != book.ISBN {
		exists, err := s.books.ISBNExists(ctx, *patch.ISBN, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.NewConflict("Book with this ISBN already exists")
		}
	}

	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Description != nil {
		book.Description = *patch.Description
	}
	if patch.Price != nil {
		book.Price = *patch.Price
	}
	if patch.ISBN != nil {
		book.ISBN = *patch.ISBN
	}

	if err := s.books.Update(ctx, book); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("Book not found")
		}
		return nil, err
	}

	s.publish(ctx, events.EventBookUpdated, actorID, events.BookUpdatedPayload{
		BookID: book.ID,
		Title:  book.Title,
	})
	return book, nil
}

// Delete soft-deletes a catalog entry.
func (s *BookService) Delete(ctx context.Context, id int64, actorID string) error {
	if err := s.books.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("Book not found or already deleted")
		}
		return err
	}
	s.publish(ctx, events.EventBookDeleted, actorID, events.BookDeletedPayload{BookID: id})
	return nil
}

func (s *BookService) publish(ctx context.Context, eventType events.EventType, actorID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
