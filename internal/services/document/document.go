// Package document содержит бизнес-логику загрузки и чтения документов,
// включая валидацию файлов и кеширование чтения.
package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// previewLength максимальная длина фрагмента содержимого, отдаваемого клиенту.
const previewLength = 500

// Ошибки валидации загружаемых файлов.
var (
	ErrEmptyFilename       = errors.New("empty filename")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrFileTooLarge        = errors.New("file exceeds maximum size")
)

// Repository определяет методы для работы с документами в хранилище.
type Repository interface {
	// Create добавляет новый документ и возвращает его ID.
	CreateDocument(ctx context.Context, doc models.Document) (int, error)
	// Read возвращает документ владельца по ID.
	ReadDocument(ctx context.Context, id int, userUID string) (*models.Document, error)
	// List возвращает документы владельца с пагинацией.
	ListDocuments(ctx context.Context, userUID string, limit, offset int) ([]*models.Document, error)
	// Count возвращает количество документов владельца.
	CountDocuments(ctx context.Context, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с документами.
type Service struct {
	repo        Repository
	cache       Cache
	log         *slog.Logger
	maxSize     int64
	allowedExts []string
}

// New создает новый экземпляр Service с ограничениями загрузки из конфига.
func New(repo Repository, cache Cache, log *slog.Logger, maxSize int64, allowedExts []string) *Service {
	return &Service{
		repo:        repo,
		cache:       cache,
		log:         log,
		maxSize:     maxSize,
		allowedExts: allowedExts,
	}
}

// Upload проверяет файл, извлекает текст и сохраняет документ со статусом processed.
func (s *Service) Upload(ctx context.Context, userUID, filename string, data []byte) (*models.Document, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrEmptyFilename
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !s.extAllowed(ext) {
		return nil, ErrExtensionNotAllowed
	}

	doc := models.Document{
		UserUID:   userUID,
		Filename:  filename,
		StoredKey: uuid.New().String() + "." + ext,
		Content:   extractText(data),
		FileType:  ext,
		Size:      int64(len(data)),
		Status:    "processed",
	}
	id, err := s.repo.CreateDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	return &doc, nil
}

// Read возвращает документ владельца, усекая содержимое до превью.
// Документы неизменяемы, поэтому результат кешируется без инвалидации.
func (s *Service) Read(ctx context.Context, userUID string, id int) (*models.Document, error) {
	cacheKey := fmt.Sprintf("document:%s:%d", userUID, id)

	var cached models.Document
	if s.cache != nil {
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Error("cache get failed", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	doc, err := s.repo.ReadDocument(ctx, id, userUID)
	if err != nil {
		return nil, err
	}
	doc.Content = truncate(doc.Content, previewLength)

	if s.cache != nil {
		if err := s.cache.Set(cacheKey, doc, 5*time.Minute); err != nil {
			s.log.Error("cache set failed", sl.Err(err))
		}
	}
	return doc, nil
}

// List возвращает страницу документов владельца вместе с общим количеством страниц.
func (s *Service) List(ctx context.Context, userUID string, page, limit int) ([]models.DocumentSummary, int, int, error) {
	offset := (page - 1) * limit
	docs, err := s.repo.ListDocuments(ctx, userUID, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	total, err := s.repo.CountDocuments(ctx, userUID)
	if err != nil {
		return nil, 0, 0, err
	}

	summaries := make([]models.DocumentSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, models.DocumentSummary{
			ID:        d.ID,
			Filename:  d.Filename,
			Status:    d.Status,
			Size:      d.Size,
			CreatedAt: d.CreatedAt,
		})
	}

	pages := (total + limit - 1) / limit
	return summaries, total, pages, nil
}

func (s *Service) extAllowed(ext string) bool {
	for _, allowed := range s.allowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// extractText достает текст из файла. Парсинга форматов нет:
// содержимое трактуется как UTF-8, бинарные данные заменяются пометкой.
func extractText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return fmt.Sprintf("[binary content, %d bytes]", len(data))
}

// truncate усекает строку до n символов, не разрывая многобайтовые руны.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
