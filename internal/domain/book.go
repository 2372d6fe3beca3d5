package domain

import "time"

// UserRef is the subset of user data joined onto books for listings.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Book is the domain model for catalog entries. ISBN is unique among
// live rows only; soft-deleted books release their ISBN.
type Book struct {
	ID          int64
	Title       string
	Author      string
	Description string
	Price       float64
	ISBN        string
	AddedByID   string
	AddedBy     *UserRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// BookFilter narrows book listings. Zero-valued fields are ignored.
type BookFilter struct {
	Title   string
	Author  string
	ISBN    string
	AddedBy string
}
