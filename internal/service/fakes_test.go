package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/book-catalog/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository honoring soft-delete
// visibility rules.
type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.DeletedAt == nil {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, user := range r.users {
		if user.DeletedAt == nil {
			clone := *user
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	user.DeletedAt = &now
	return nil
}

// fakeBookRepo is an in-memory BookRepository.
type fakeBookRepo struct {
	nextID int64
	books  map[int64]*domain.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{nextID: 1, books: make(map[int64]*domain.Book)}
}

func (r *fakeBookRepo) Create(_ context.Context, book *domain.Book) error {
	book.ID = r.nextID
	r.nextID++
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	book, ok := r.books[id]
	if !ok || book.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *book
	return &clone, nil
}

func (r *fakeBookRepo) List(_ context.Context, filter domain.BookFilter) ([]*domain.Book, error) {
	var out []*domain.Book
	for _, book := range r.books {
		if book.DeletedAt != nil {
			continue
		}
		if filter.ISBN != "" && book.ISBN != filter.ISBN {
			continue
		}
		if filter.AddedBy != "" && book.AddedByID != filter.AddedBy {
			continue
		}
		clone := *book
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeBookRepo) Update(_ context.Context, book *domain.Book) error {
	existing, ok := r.books[book.ID]
	if !ok || existing.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	book.UpdatedAt = time.Now()
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *fakeBookRepo) SoftDelete(_ context.Context, id int64) error {
	book, ok := r.books[id]
	if !ok || book.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	book.DeletedAt = &now
	return nil
}

func (r *fakeBookRepo) ISBNExists(_ context.Context, isbn string, excludeID int64) (bool, error) {
	for _, book := range r.books {
		if book.DeletedAt == nil && book.ISBN == isbn && book.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
