package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// CreateDocument вставляет новую запись документа и возвращает её ID.
func (s *Storage) CreateDocument(ctx context.Context, doc models.Document) (int, error) {
	const op = "storage.CreateDocument"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO documents (user_uid, filename, stored_key, content, file_type, size, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		doc.UserUID, doc.Filename, doc.StoredKey, doc.Content, doc.FileType,
		doc.Size, doc.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadDocument возвращает документ по ID в пределах записей владельца.
// Чужой документ неотличим от несуществующего: возвращается ErrNotFound.
func (s *Storage) ReadDocument(ctx context.Context, id int, userUID string) (*models.Document, error) {
	const op = "storage.ReadDocument"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, filename, stored_key, content, file_type, size, status, created_at
			  FROM documents
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Document
	if err := row.Scan(&result.ID, &result.UserUID, &result.Filename, &result.StoredKey,
		&result.Content, &result.FileType, &result.Size, &result.Status, &result.CreatedAt); err != nil {
		return nil, translateError(op, err)
	}
	return &result, nil
}

// ListDocuments возвращает документы владельца в порядке создания с пагинацией.
func (s *Storage) ListDocuments(ctx context.Context, userUID string, limit, offset int) ([]*models.Document, error) {
	const op = "storage.ListDocuments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, filename, stored_key, content, file_type, size, status, created_at
			  FROM documents
			  WHERE user_uid = $1
			  ORDER BY created_at, id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Document
	for rows.Next() {
		var item models.Document
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Filename, &item.StoredKey,
			&item.Content, &item.FileType, &item.Size, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountDocuments возвращает количество документов владельца.
func (s *Storage) CountDocuments(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountDocuments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM documents WHERE user_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ListProcessedDocumentIDs возвращает идентификаторы обработанных документов
// владельца, не более limit штук. Используется как контекст RAG-запроса.
func (s *Storage) ListProcessedDocumentIDs(ctx context.Context, userUID string, limit int) ([]int, error) {
	const op = "storage.ListProcessedDocumentIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id FROM documents
			  WHERE user_uid = $1 AND status = 'processed'
			  ORDER BY created_at, id
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}
