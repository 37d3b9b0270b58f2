// Package query содержит бизнес-логику RAG-запросов по документам пользователя.
package query

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// contextLimit максимальное количество документов в контексте запроса.
const contextLimit = 5

// ErrNoDocuments у пользователя нет обработанных документов для запроса.
var ErrNoDocuments = errors.New("no documents available for query")

// Repository определяет методы для работы с запросами в хранилище.
type Repository interface {
	// CreateQuery добавляет новый запрос и возвращает его ID.
	CreateQuery(ctx context.Context, q models.Query) (int, error)
	// ReadQuery возвращает запрос владельца по ID.
	ReadQuery(ctx context.Context, id int, userUID string) (*models.Query, error)
	// ListProcessedDocumentIDs возвращает идентификаторы обработанных документов владельца.
	ListProcessedDocumentIDs(ctx context.Context, userUID string, limit int) ([]int, error)
}

// Service реализует бизнес-логику RAG-запросов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создает запрос по обработанным документам пользователя.
// Генерация ответа — заглушка: возвращается фиксированный текст,
// поэтому запись вставляется одним запросом уже со статусом completed.
func (s *Service) Create(ctx context.Context, userUID, question string) (*models.Query, error) {
	ids, err := s.repo.ListProcessedDocumentIDs(ctx, userUID, contextLimit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoDocuments
	}

	q := models.Query{
		UserUID:  userUID,
		Question: question,
		Answer:   "Answer generated from documents",
		Context:  ids,
		Status:   "completed",
	}
	id, err := s.repo.CreateQuery(ctx, q)
	if err != nil {
		s.log.Error("failed to create query", sl.Err(err))
		return nil, err
	}
	q.ID = id
	return &q, nil
}

// Read возвращает запрос владельца по ID.
func (s *Service) Read(ctx context.Context, userUID string, id int) (*models.Query, error) {
	return s.repo.ReadQuery(ctx, id, userUID)
}
