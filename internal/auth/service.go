package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"smartspend/internal/core"
	"smartspend/internal/storage"
)

var (
	ErrEmptyCredentials = errors.New("username and password cannot be empty")
	ErrUsernameTaken    = errors.New("username already exists")
	// ErrInvalidCredentials deliberately does not say whether the username
	// or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserStore is the slice of the repository the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, u core.User) error
	GetUser(ctx context.Context, username string) (*core.User, error)
}

type Service struct {
	store UserStore
}

func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// Register creates a new credential row. Duplicate usernames are reported
// as ErrUsernameTaken without creating a second row.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.store.CreateUser(ctx, core.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if errors.Is(err, storage.ErrUsernameTaken) {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered",
		"username", username,
		"component", "auth",
		"operation", "register")
	return nil
}

// Login verifies a credential pair. Unknown usernames and wrong passwords
// both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	user, err := s.store.GetUser(ctx, username)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "User logged in",
		"username", username,
		"component", "auth",
		"operation", "login")
	return user, nil
}
