package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mongarerobert3/todo-list-api/internal/logging"
	"github.com/mongarerobert3/todo-list-api/internal/user"
)

type userRepoMock struct {
	createFunc     func(ctx context.Context, name, email, passwordHash string) (*user.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *userRepoMock) Create(ctx context.Context, name, email, passwordHash string) (*user.User, error) {
	return m.createFunc(ctx, name, email, passwordHash)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func newTestService(t *testing.T, users UserRepository) (*Service, *PasetoService) {
	t.Helper()
	tokens := newTestPasetoService(t)
	return NewService(users, tokens, logging.NewLogger(true), time.Hour), tokens
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	userID := uuid.New()
	repo := &userRepoMock{
		createFunc: func(_ context.Context, name, email, passwordHash string) (*user.User, error) {
			assert.Equal(t, "Jane Doe", name)
			assert.Equal(t, "jane@example.com", email)
			assert.NotEqual(t, "hunter22pass", passwordHash)
			assert.True(t, verifyPassword(passwordHash, "hunter22pass"))
			return &user.User{ID: userID, Name: name, Email: email, PasswordHash: passwordHash}, nil
		},
	}
	svc, tokens := newTestService(t, repo)

	token, err := svc.Register(context.Background(), "Jane Doe", "jane@example.com", "hunter22pass")
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
}

func TestRegisterValidation(t *testing.T) {
	repo := &userRepoMock{
		createFunc: func(context.Context, string, string, string) (*user.User, error) {
			t.Fatal("store should not be reached on validation failure")
			return nil, nil
		},
	}
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "jane@example.com", "hunter22pass")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register(ctx, "Jane", "", "hunter22pass")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "Jane", "not-an-email", "hunter22pass")
	assert.ErrorIs(t, err, ErrInvalidEmailFormat)

	_, err = svc.Register(ctx, "Jane", "jane@example.com", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Register(ctx, "Jane", "jane@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &userRepoMock{
		createFunc: func(context.Context, string, string, string) (*user.User, error) {
			return nil, user.ErrDuplicateEmail
		},
	}
	svc, _ := newTestService(t, repo)

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com", "hunter22pass")
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestLoginSuccess(t *testing.T) {
	userID := uuid.New()
	hash, err := hashPassword("hunter22pass")
	require.NoError(t, err)

	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
			assert.Equal(t, "jane@example.com", email)
			return &user.User{ID: userID, Email: email, PasswordHash: hash}, nil
		},
	}
	svc, tokens := newTestService(t, repo)

	token, err := svc.Login(context.Background(), "jane@example.com", "hunter22pass")
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &userRepoMock{
		getByEmailFunc: func(context.Context, string) (*user.User, error) {
			return nil, user.ErrNotFound
		},
	}
	svc, _ := newTestService(t, repo)

	_, err := svc.Login(context.Background(), "nobody@example.com", "hunter22pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := hashPassword("hunter22pass")
	require.NoError(t, err)

	repo := &userRepoMock{
		getByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
			return &user.User{ID: uuid.New(), Email: email, PasswordHash: hash}, nil
		},
	}
	svc, _ := newTestService(t, repo)

	// Same failure as an unknown email - account existence stays hidden
	_, err = svc.Login(context.Background(), "jane@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginEmptyInput(t *testing.T) {
	repo := &userRepoMock{
		getByEmailFunc: func(context.Context, string) (*user.User, error) {
			t.Fatal("store should not be reached on empty input")
			return nil, nil
		},
	}
	svc, _ := newTestService(t, repo)

	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
