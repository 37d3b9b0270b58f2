package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// CreateProject вставляет новую запись проекта и возвращает её ID.
func (s *Storage) CreateProject(ctx context.Context, p models.Project) (int, error) {
	const op = "storage.CreateProject"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO projects (user_uid, name, agency, budget, description, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.Name, p.Agency, p.Budget, p.Description, p.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadProject возвращает проект по ID в пределах записей владельца.
func (s *Storage) ReadProject(ctx context.Context, id int, userUID string) (*models.Project, error) {
	const op = "storage.ReadProject"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, agency, budget, description, status, created_at
			  FROM projects
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Project
	if err := row.Scan(&result.ID, &result.UserUID, &result.Name, &result.Agency,
		&result.Budget, &result.Description, &result.Status, &result.CreatedAt); err != nil {
		return nil, translateError(op, err)
	}
	return &result, nil
}

// ListProjects возвращает проекты владельца в порядке создания с пагинацией.
func (s *Storage) ListProjects(ctx context.Context, userUID string, limit, offset int) ([]*models.Project, error) {
	const op = "storage.ListProjects"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, agency, budget, description, status, created_at
			  FROM projects
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

	var result []*models.Project
	for rows.Next() {
		var item models.Project
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Name, &item.Agency,
			&item.Budget, &item.Description, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountProjects возвращает количество проектов владельца.
func (s *Storage) CountProjects(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountProjects"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM projects WHERE user_uid = $1`
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
