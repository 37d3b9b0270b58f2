package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) InsertAuditEntry(ctx context.Context, entry models.AuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAudit_Record(t *testing.T) {
	ctx := context.Background()
	uid := "uid-1"
	entry := models.AuditEntry{
		UserUID:      &uid,
		Action:       "upload_document",
		ResourceType: "document",
		Status:       "success",
	}

	t.Run("writes entry", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("InsertAuditEntry", ctx, entry).Return(nil)

		New(repo, newNoopLogger()).Record(ctx, entry)
		repo.AssertExpectations(t)
	})

	t.Run("write failure does not panic", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("InsertAuditEntry", ctx, entry).Return(errors.New("db error"))

		New(repo, newNoopLogger()).Record(ctx, entry)
		repo.AssertExpectations(t)
	})
}
