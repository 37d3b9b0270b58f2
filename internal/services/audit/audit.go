// Package audit содержит сервис журналирования действий пользователей.
package audit

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// Repository определяет методы записи журнала в хранилище.
type Repository interface {
	InsertAuditEntry(ctx context.Context, entry models.AuditEntry) error
}

// Service пишет записи журнала действий. Журнал append-only.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record сохраняет запись журнала. Ошибка записи логируется
// и не прерывает обработку запроса.
func (s *Service) Record(ctx context.Context, entry models.AuditEntry) {
	if err := s.repo.InsertAuditEntry(ctx, entry); err != nil {
		s.log.Error("failed to write audit entry", sl.Err(err),
			slog.String("action", entry.Action),
			slog.String("status", entry.Status))
	}
}
