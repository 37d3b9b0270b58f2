package profile

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
	"github.com/magabrotheeeer/consulting-platform/internal/storage/repository"
)

// MockService реализует интерфейс profile.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestProfileHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		targetUID      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "чтение собственного профиля",
			targetUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("GetUser", mock.Anything, "uid-1").Return(&models.User{
					UID: "uid-1", Username: "alice", Email: "alice@example.com", Role: "viewer", Active: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"alice"`,
		},
		{
			name:      "чтение чужого профиля доступно любой роли",
			targetUID: "uid-2",
			setupMock: func(m *MockService) {
				m.On("GetUser", mock.Anything, "uid-2").Return(&models.User{
					UID: "uid-2", Username: "bob", Email: "bob@example.com", Role: "editor", Active: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"bob"`,
		},
		{
			name:      "профиль не найден",
			targetUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("GetUser", mock.Anything, "uid-1").
					Return(nil, fmt.Errorf("storage.GetUser: %w", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `User not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+tt.targetUID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", tt.targetUID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
