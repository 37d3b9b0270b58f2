// Package project содержит бизнес-логику консалтинговых проектов.
package project

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// Repository определяет методы для работы с проектами в хранилище.
type Repository interface {
	CreateProject(ctx context.Context, p models.Project) (int, error)
	ReadProject(ctx context.Context, id int, userUID string) (*models.Project, error)
	ListProjects(ctx context.Context, userUID string, limit, offset int) ([]*models.Project, error)
	CountProjects(ctx context.Context, userUID string) (int, error)
}

// Service реализует бизнес-логику проектов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создает проект со статусом draft и возвращает его ID.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyProject) (int, error) {
	p := models.Project{
		UserUID:     userUID,
		Name:        req.Name,
		Agency:      req.Agency,
		Budget:      req.Budget,
		Description: req.Description,
		Status:      "draft",
	}
	return s.repo.CreateProject(ctx, p)
}

// Read возвращает проект владельца по ID.
func (s *Service) Read(ctx context.Context, userUID string, id int) (*models.Project, error) {
	return s.repo.ReadProject(ctx, id, userUID)
}

// List возвращает страницу проектов владельца вместе с количеством страниц.
func (s *Service) List(ctx context.Context, userUID string, page, limit int) ([]*models.Project, int, int, error) {
	offset := (page - 1) * limit
	projects, err := s.repo.ListProjects(ctx, userUID, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	total, err := s.repo.CountProjects(ctx, userUID)
	if err != nil {
		return nil, 0, 0, err
	}
	pages := (total + limit - 1) / limit
	return projects, total, pages, nil
}
