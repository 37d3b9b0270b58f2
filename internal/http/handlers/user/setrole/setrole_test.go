package setrole

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс setrole.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateUserRole(ctx context.Context, userUID, role string) (int, error) {
	args := m.Called(ctx, userUID, role)
	return args.Int(0), args.Error(1)
}

func TestSetRoleHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		uid            string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная смена роли",
			uid:  "uid-2",
			body: `{"role":"editor"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateUserRole", mock.Anything, "uid-2", "editor").Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"role":"editor"`,
		},
		{
			name:           "неизвестная роль",
			uid:            "uid-2",
			body:           `{"role":"superadmin"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Invalid role`,
		},
		{
			name: "пользователь не найден",
			uid:  "uid-404",
			body: `{"role":"viewer"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateUserRole", mock.Anything, "uid-404", "viewer").Return(0, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `User not found`,
		},
		{
			name:           "отсутствует роль в запросе",
			uid:            "uid-2",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Role is a required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+tt.uid+"/role", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", tt.uid)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
