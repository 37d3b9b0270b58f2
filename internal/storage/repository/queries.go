package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// CreateQuery вставляет новую запись RAG-запроса и возвращает её ID.
// Контекст (идентификаторы документов-источников) сериализуется в JSONB.
func (s *Storage) CreateQuery(ctx context.Context, q models.Query) (int, error) {
	const op = "storage.CreateQuery"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	contextJSON, err := json.Marshal(q.Context)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO queries (user_uid, question, answer, context, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		q.UserUID, q.Question, q.Answer, contextJSON, q.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateQueryAnswer записывает ответ и статус запроса.
func (s *Storage) UpdateQueryAnswer(ctx context.Context, id int, answer, status string) error {
	const op = "storage.UpdateQueryAnswer"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE queries SET answer = $1, status = $2 WHERE id = $3`
	if _, err := s.DB.ExecContext(ctx, query, answer, status, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadQuery возвращает запрос по ID в пределах записей владельца.
func (s *Storage) ReadQuery(ctx context.Context, id int, userUID string) (*models.Query, error) {
	const op = "storage.ReadQuery"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, question, answer, context, status, created_at
			  FROM queries
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Query
	var contextJSON []byte
	if err := row.Scan(&result.ID, &result.UserUID, &result.Question, &result.Answer,
		&contextJSON, &result.Status, &result.CreatedAt); err != nil {
		return nil, translateError(op, err)
	}
	if len(contextJSON) > 0 {
		if err := json.Unmarshal(contextJSON, &result.Context); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &result, nil
}
