// Package auth содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/consulting-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/password"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/rbac"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// Ошибки уровня бизнес-логики аутентификации.
var (
	// ErrInvalidCredentials неверная пара email/пароль либо неактивная учётная запись.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword пароль не проходит требования сложности.
	ErrWeakPassword = errors.New("password does not meet strength requirements")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateLastLogin обновляет дату последнего входа.
	UpdateLastLogin(ctx context.Context, userUID string) error

	// UpdateUserRole меняет роль пользователя, возвращает число затронутых строк.
	UpdateUserRole(ctx context.Context, userUID, role string) (int, error)

	// ListUsers возвращает страницу пользователей.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)

	// CountUsers возвращает общее число пользователей.
	CountUsers(ctx context.Context) (int, error)
}

// WelcomePublisher публикует событие регистрации в очередь уведомлений.
type WelcomePublisher interface {
	Publish(info models.UserInfo) error
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	publisher WelcomePublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service. publisher может быть nil,
// тогда события регистрации не публикуются.
func New(users UserRepository, jwtMaker jwt.Maker, publisher WelcomePublisher, log *slog.Logger) *Service {
	return &Service{
		users:     users,
		jwtMaker:  jwtMaker,
		publisher: publisher,
		log:       log,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью viewer.
// Возвращает UID созданного пользователя и access-токен.
func (s *Service) Register(ctx context.Context, username, email, rawPassword string) (string, string, error) {
	const op = "auth.Register"

	if !password.IsStrong(rawPassword) {
		return "", "", ErrWeakPassword
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         rbac.RoleViewer, // дефолтная роль при регистрации
		Active:       true,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", "", err
	}

	token, err := s.jwtMaker.GenerateToken(username, user.Role, uid)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	// Приветственное письмо не критично для регистрации.
	if s.publisher != nil {
		if err := s.publisher.Publish(models.UserInfo{Email: email, Username: username}); err != nil {
			s.log.Error("failed to publish welcome event", sl.Err(err))
		}
	}

	return uid, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.UID); err != nil {
		s.log.Error("failed to update last login", sl.Err(err))
	}

	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает claims, если токен корректен.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

// GetUser возвращает профиль пользователя по UID.
func (s *Service) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}

// UpdateUserRole меняет роль пользователя.
func (s *Service) UpdateUserRole(ctx context.Context, userUID, role string) (int, error) {
	return s.users.UpdateUserRole(ctx, userUID, role)
}

// ListUsers возвращает страницу пользователей.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.users.ListUsers(ctx, limit, offset)
}

// CountUsers возвращает общее число пользователей.
func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.users.CountUsers(ctx)
}
