package dto

import (
	"time"

	"github.com/spec-kit/book-catalog/internal/domain"
)

// CreateUserRequest payload for registration. Role defaults to manager.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate returns field-level errors, empty when the payload is valid.
func (r CreateUserRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	requireString(fe, "email", r.Email)
	checkEmail(fe, "email", r.Email)
	requireString(fe, "name", r.Name)
	checkMaxLen(fe, "name", r.Name, 255)
	requireString(fe, "password", r.Password)
	checkMinLen(fe, "password", r.Password, 8)
	checkMaxLen(fe, "password", r.Password, 128)
	checkChoice(fe, "role", r.Role, []string{string(domain.RoleAdmin), string(domain.RoleManager)})
	return fe
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns field-level errors, empty when the payload is valid.
func (r LoginRequest) Validate() FieldErrors {
	fe := FieldErrors{}
	requireString(fe, "email", r.Email)
	checkEmail(fe, "email", r.Email)
	requireString(fe, "password", r.Password)
	return fe
}

// UserResponse is the wire shape for user records; the password hash
// never leaves the service.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewUserResponse maps a domain user onto the wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// AuthResponse bundles a fresh session token with the user it asserts.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
