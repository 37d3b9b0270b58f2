package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/consulting-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/password"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/rbac"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpdateLastLogin(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}

func (m *RepoMock) UpdateUserRole(ctx context.Context, userUID, role string) (int, error) {
	args := m.Called(ctx, userUID, role)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(info models.UserInfo) error {
	return m.Called(info).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(repo *RepoMock, pub *PublisherMock) *Service {
	maker := jwt.NewJWTMaker("test-secret", 24*time.Hour)
	return New(repo, maker, pub, newNoopLogger())
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(RepoMock)
		pub := new(PublisherMock)
		svc := newTestService(repo, pub)

		repo.On("RegisterUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "alice@example.com" && u.Role == rbac.RoleViewer && u.Active
		})).Return("uid-1", nil)
		pub.On("Publish", models.UserInfo{Email: "alice@example.com", Username: "alice"}).Return(nil)

		uid, token, err := svc.Register(ctx, "alice", "alice@example.com", "Str0ng!pass")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", uid)
		assert.NotEmpty(t, token)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("weak password", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, nil)

		_, _, err := svc.Register(ctx, "alice", "alice@example.com", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
		repo.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, nil)

		repo.On("RegisterUser", ctx, mock.Anything).Return("", errors.New("duplicate"))

		_, _, err := svc.Register(ctx, "alice", "alice@example.com", "Str0ng!pass")
		assert.Error(t, err)
	})

	t.Run("publish failure does not fail registration", func(t *testing.T) {
		repo := new(RepoMock)
		pub := new(PublisherMock)
		svc := newTestService(repo, pub)

		repo.On("RegisterUser", ctx, mock.Anything).Return("uid-2", nil)
		pub.On("Publish", mock.Anything).Return(errors.New("broker down"))

		uid, token, err := svc.Register(ctx, "bob", "bob@example.com", "Str0ng!pass")
		require.NoError(t, err)
		assert.Equal(t, "uid-2", uid)
		assert.NotEmpty(t, token)
	})
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := password.GetHash("Str0ng!pass")
	require.NoError(t, err)

	activeUser := &models.User{
		UID:          "uid-1",
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: hash,
		Role:         rbac.RoleViewer,
		Active:       true,
	}

	t.Run("success", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, nil)

		repo.On("GetUserByEmail", ctx, "alice@example.com").Return(activeUser, nil)
		repo.On("UpdateLastLogin", ctx, "uid-1").Return(nil)

		token, user, err := svc.Login(ctx, "alice@example.com", "Str0ng!pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "alice", user.Username)
		repo.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, nil)

		repo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, errors.New("not found"))

		_, _, err := svc.Login(ctx, "ghost@example.com", "Str0ng!pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, nil)

		repo.On("GetUserByEmail", ctx, "alice@example.com").Return(activeUser, nil)

		_, _, err := svc.Login(ctx, "alice@example.com", "Wr0ng!pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		inactive := *activeUser
		inactive.Active = false

		repo := new(RepoMock)
		svc := newTestService(repo, nil)

		repo.On("GetUserByEmail", ctx, "alice@example.com").Return(&inactive, nil)

		_, _, err := svc.Login(ctx, "alice@example.com", "Str0ng!pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("last login failure does not fail login", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newTestService(repo, nil)

		repo.On("GetUserByEmail", ctx, "alice@example.com").Return(activeUser, nil)
		repo.On("UpdateLastLogin", ctx, "uid-1").Return(errors.New("db error"))

		token, _, err := svc.Login(ctx, "alice@example.com", "Str0ng!pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestAuth_ValidateToken(t *testing.T) {
	svc := newTestService(new(RepoMock), nil)

	token, err := jwt.NewJWTMaker("test-secret", 24*time.Hour).GenerateToken("alice", rbac.RoleEditor, "uid-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, rbac.RoleEditor, claims.Role)
	assert.Equal(t, "uid-1", claims.UserUID)
}
