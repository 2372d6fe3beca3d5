package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/book-catalog/internal/auth"
	"github.com/spec-kit/book-catalog/internal/config"
	"github.com/spec-kit/book-catalog/internal/domain"
	"github.com/spec-kit/book-catalog/internal/events"
	"github.com/spec-kit/book-catalog/internal/repository"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// UserService coordinates registration, login and account management.
type UserService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository, tokens *auth.TokenService, dispatcher events.Dispatcher) *UserService {
	return &UserService{
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account and issues its first session token.
func (s *UserService) Register(ctx context.Context, email, name, password string, role domain.Role) (*domain.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", util.NewConflict("User with this email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}

	if role == "" {
		role = domain.RoleManager
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.EventUserCreated, user.ID, events.UserCreatedPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	return user, token, nil
}

// Login authenticates credentials and issues a session token. Unknown
// email and bad password collapse to the same failure.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", util.NewUnauthorized("Invalid email or password.")
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", util.NewUnauthorized("Invalid email or password.")
	}

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetByID fetches a live account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// List returns all live accounts.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Delete soft-deletes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("User not found or already deleted")
		}
		return err
	}
	s.publish(ctx, events.EventUserDeleted, id, nil)
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, actorID string, payload any) {
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
