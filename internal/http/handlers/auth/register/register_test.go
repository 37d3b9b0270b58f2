package register

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/consulting-platform/internal/services/auth"
	"github.com/magabrotheeeer/consulting-platform/internal/storage/repository"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, email, password string) (string, string, error) {
	args := m.Called(ctx, username, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"alice","email":"alice@example.com","password":"Str0ng!pass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "Str0ng!pass").
					Return("uid-1", "token-abc", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"access_token":"token-abc"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "отсутствует email",
			body:           `{"username":"alice","password":"Str0ng!pass"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email is a required field`,
		},
		{
			name: "слабый пароль",
			body: `{"username":"alice","email":"alice@example.com","password":"weakpass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "weakpass").
					Return("", "", auth.ErrWeakPassword)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Password does not meet strength requirements`,
		},
		{
			name: "пользователь уже существует",
			body: `{"username":"alice","email":"alice@example.com","password":"Str0ng!pass"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "Str0ng!pass").
					Return("", "", fmt.Errorf("storage.RegisterUser: %w", repository.ErrDuplicate))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `User already exists`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
