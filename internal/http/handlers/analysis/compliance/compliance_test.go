package compliance

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

	"github.com/magabrotheeeer/consulting-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
	"github.com/magabrotheeeer/consulting-platform/internal/storage/repository"
)

// MockService реализует интерфейс compliance.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, userUID string, id int) (*models.Project, error) {
	args := m.Called(ctx, userUID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestComplianceHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		urlID          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "отчёт по проекту с нарушениями",
			urlID: "1",
			setupMock: func(m *MockService) {
				p := &models.Project{ID: 1, Name: "IT Modernization", Agency: "DOD", Budget: 600000}
				m.On("Read", mock.Anything, "uid-1", 1).Return(p, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"overall_status":"PARTIAL"`,
		},
		{
			name:  "проект не найден",
			urlID: "99",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", 99).
					Return(nil, fmt.Errorf("storage.ReadProject: %w", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `Project not found`,
		},
		{
			name:           "некорректный id",
			urlID:          "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid project id`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+tt.urlID+"/compliance", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}

func TestComplianceHandler_DuplicatedReviewFlag(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mockService := new(MockService)
	p := &models.Project{ID: 2, Name: "Cloud", Agency: "NASA", Budget: 5000000}
	mockService.On("Read", mock.Anything, "uid-1", 2).Return(p, nil)

	handler := New(logger, mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/2/compliance", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "2")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"requires_executive_review":true`)
	assert.Contains(t, w.Body.String(), `"requiresExecutiveReview":true`)
}
