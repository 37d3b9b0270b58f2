package query

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateQuery(ctx context.Context, q models.Query) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) UpdateQueryAnswer(ctx context.Context, id int, answer, status string) error {
	return m.Called(ctx, id, answer, status).Error(0)
}

func (m *RepoMock) ReadQuery(ctx context.Context, id int, userUID string) (*models.Query, error) {
	args := m.Called(ctx, id, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Query), args.Error(1)
}

func (m *RepoMock) ListProcessedDocumentIDs(ctx context.Context, userUID string, limit int) ([]int, error) {
	args := m.Called(ctx, userUID, limit)
	return args.Get(0).([]int), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestQuery_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(RepoMock)
		svc := New(repo, newNoopLogger())

		repo.On("ListProcessedDocumentIDs", ctx, "uid-1", 5).Return([]int{1, 2, 3}, nil)
		repo.On("CreateQuery", ctx, mock.MatchedBy(func(q models.Query) bool {
			return q.Question == "What is the budget?" && q.Status == "completed" &&
				q.Answer == "Answer generated from documents" && len(q.Context) == 3
		})).Return(11, nil)

		q, err := svc.Create(ctx, "uid-1", "What is the budget?")
		require.NoError(t, err)
		assert.Equal(t, 11, q.ID)
		assert.Equal(t, "completed", q.Status)
		assert.Equal(t, []int{1, 2, 3}, q.Context)
		repo.AssertExpectations(t)
	})

	t.Run("single insert, no follow-up write", func(t *testing.T) {
		repo := new(RepoMock)
		svc := New(repo, newNoopLogger())

		repo.On("ListProcessedDocumentIDs", ctx, "uid-1", 5).Return([]int{7}, nil)
		repo.On("CreateQuery", ctx, mock.Anything).Return(3, nil)

		_, err := svc.Create(ctx, "uid-1", "What is the budget?")
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "CreateQuery", 1)
		repo.AssertNotCalled(t, "UpdateQueryAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no documents", func(t *testing.T) {
		repo := new(RepoMock)
		svc := New(repo, newNoopLogger())

		repo.On("ListProcessedDocumentIDs", ctx, "uid-1", 5).Return([]int{}, nil)

		_, err := svc.Create(ctx, "uid-1", "What is the budget?")
		assert.ErrorIs(t, err, ErrNoDocuments)
		repo.AssertNotCalled(t, "CreateQuery", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(RepoMock)
		svc := New(repo, newNoopLogger())

		repo.On("ListProcessedDocumentIDs", ctx, "uid-1", 5).Return([]int{1}, nil)
		repo.On("CreateQuery", ctx, mock.Anything).Return(0, errors.New("db error"))

		_, err := svc.Create(ctx, "uid-1", "What is the budget?")
		assert.Error(t, err)
	})
}

func TestQuery_Read(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())

	want := &models.Query{ID: 4, UserUID: "uid-1", Question: "q", Status: "completed"}
	repo.On("ReadQuery", ctx, 4, "uid-1").Return(want, nil)

	got, err := svc.Read(ctx, "uid-1", 4)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
