package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/book-catalog/internal/domain"
)

// BookRepository defines persistence access for catalog entries.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context, filter domain.BookFilter) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	SoftDelete(ctx context.Context, id int64) error
	ISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error)
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a Postgres-backed implementation.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

const bookColumns = `
        b.id, b.title, b.author, b.description, b.price, b.isbn, b.added_by,
        b.created_at, b.updated_at, b.deleted_at,
        u.id, u.name, u.email`

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (title, author, description, price, isbn, added_by)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		book.Price,
		book.ISBN,
		book.AddedByID,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	query := `
        SELECT` + bookColumns + `
        FROM books b
        LEFT JOIN users u ON u.id = b.added_by
        WHERE b.id=$1 AND b.deleted_at IS NULL`

	return scanBook(r.pool.QueryRow(ctx, query, id))
}

func (r *bookRepository) List(ctx context.Context, filter domain.BookFilter) ([]*domain.Book, error) {
	conditions := []string{"b.deleted_at IS NULL"}
	args := []any{}

	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE $%d", len(args)))
	}
	if filter.Author != "" {
		args = append(args, "%"+filter.Author+"%")
		conditions = append(conditions, fmt.Sprintf("b.author ILIKE $%d", len(args)))
	}
	if filter.ISBN != "" {
		args = append(args, filter.ISBN)
		conditions = append(conditions, fmt.Sprintf("b.isbn = $%d", len(args)))
	}
	if filter.AddedBy != "" {
		args = append(args, filter.AddedBy)
		conditions = append(conditions, fmt.Sprintf("b.added_by = $%d", len(args)))
	}

	query := `
        SELECT` + bookColumns + `
        FROM books b
        LEFT JOIN users u ON u.id = b.added_by
        WHERE ` + strings.Join(conditions, " AND ") + `
        ORDER BY b.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	const query = `
        UPDATE books
        SET title=$1, author=$2, description=$3, price=$4, isbn=NULLIF($5, ''), updated_at=NOW()
        WHERE id=$6 AND deleted_at IS NULL
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		book.Price,
		book.ISBN,
		book.ID,
	).Scan(&book.UpdatedAt)
}

func (r *bookRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `
        UPDATE books SET deleted_at=NOW(), updated_at=NOW()
        WHERE id=$1 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) ISBNExists(ctx context.Context, isbn string, excludeID int64) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM books
            WHERE isbn=$1 AND deleted_at IS NULL AND id <> $2
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, isbn, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var (
		book        domain.Book
		description *string
		isbn        *string
		refID       *string
		refName     *string
		refEmail    *string
	)
	if err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&description,
		&book.Price,
		&isbn,
		&book.AddedByID,
		&book.CreatedAt,
		&book.UpdatedAt,
		&book.DeletedAt,
		&refID,
		&refName,
		&refEmail,
	); err != nil {
		return nil, err
	}
	if description != nil {
		book.Description = *description
	}
	if isbn != nil {
		book.ISBN = *isbn
	}
	if refID != nil {
		book.AddedBy = &domain.UserRef{ID: *refID}
		if refName != nil {
			book.AddedBy.Name = *refName
		}
		if refEmail != nil {
			book.AddedBy.Email = *refEmail
		}
	}
	return &book, nil
}
