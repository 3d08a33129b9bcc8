package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mongarerobert3/todo-list-api/internal/user"
)

// TokenService defines the interface for session token creation and validation
type TokenService interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository defines the credential store operations the auth service needs
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
