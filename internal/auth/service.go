package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/mongarerobert3/todo-list-api/internal/logging"
	"github.com/mongarerobert3/todo-list-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidEmailFormat = errors.New("invalid email format")
)

// Service handles registration and login
type Service struct {
	users         UserRepository
	tokens        TokenService
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(users UserRepository, tokens TokenService, logger *logging.Logger, tokenDuration time.Duration) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Register creates a new user account and returns a session token
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" {
		return "", ErrNameRequired
	}
	if email == "" {
		return "", ErrEmailRequired
	}
	if len(email) > 254 {
		return "", ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmailFormat
	}
	if password == "" {
		return "", ErrPasswordRequired
	}
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, name, email, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return "", user.ErrDuplicateEmail
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.CreateToken(newUser.ID, s.tokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	return token, nil
}

// Login authenticates a user by email and password and returns a session
// token. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !verifyPassword(existingUser.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existingUser.ID, s.tokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	return token, nil
}
