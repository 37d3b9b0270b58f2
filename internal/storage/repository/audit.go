package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// InsertAuditEntry добавляет запись в журнал аудита. Журнал append-only,
// записи никогда не изменяются и не удаляются.
func (s *Storage) InsertAuditEntry(ctx context.Context, entry models.AuditEntry) error {
	const op = "storage.InsertAuditEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO audit_log (user_uid, action, resource_type, status, details)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.DB.ExecContext(ctx, query,
		entry.UserUID, entry.Action, entry.ResourceType, entry.Status, entry.Details); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountAuditEntries возвращает количество записей аудита для действия и типа ресурса.
func (s *Storage) CountAuditEntries(ctx context.Context, action, resourceType string) (int, error) {
	const op = "storage.CountAuditEntries"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM audit_log WHERE action = $1 AND resource_type = $2`
	if err := s.DB.QueryRowContext(ctx, query, action, resourceType).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
