// Package upload реализует HTTP-обработчик загрузки документов.
//
// Handler принимает multipart/form-data с полем file, проверяет файл через
// бизнес-логику и возвращает сведения о сохранённом документе.
package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/consulting-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/consulting-platform/internal/http/response"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
	"github.com/magabrotheeeer/consulting-platform/internal/services/document"
)

// multipartOverhead запас на служебные байты multipart-формы.
const multipartOverhead = 10 << 10

// Service описывает интерфейс бизнес-логики загрузки документов.
type Service interface {
	Upload(ctx context.Context, userUID, filename string, data []byte) (*models.Document, error)
}

// Handler управляет HTTP-запросами на загрузку документов.
type Handler struct {
	log     *slog.Logger
	service Service
	maxSize int64
}

// New создает новый Handler. maxSize ограничивает размер тела запроса.
func New(log *slog.Logger, service Service, maxSize int64) *Handler {
	return &Handler{log: log, service: service, maxSize: maxSize}
}

// ServeHTTP godoc
// @Summary Загрузить документ
// @Description Принимает файл в multipart/form-data, извлекает текст и сохраняет документ.
// @Tags Documents
// @Accept mpfd
// @Produce json
// @Param file formData file true "Загружаемый файл"
// @Success 201 {object} response.Response "Документ сохранён"
// @Failure 400 {object} response.ErrorResponse "Файл отсутствует или не прошёл проверку"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /documents/upload [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.upload"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	// Запас поверх maxSize на границы и заголовки multipart: файл ровно
	// в maxSize должен дойти до проверки размера в бизнес-логике.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxSize + multipartOverhead); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			render.JSON(w, r, response.Error("File too large"))
			return
		}
		render.JSON(w, r, response.Error("No file provided"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("file field missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("No file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read file", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read file"))
		return
	}

	doc, err := h.service.Upload(r.Context(), userUID, header.Filename, data)
	switch {
	case errors.Is(err, document.ErrEmptyFilename):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Empty filename"))
		return
	case errors.Is(err, document.ErrExtensionNotAllowed):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("File type not allowed"))
		return
	case errors.Is(err, document.ErrFileTooLarge):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("File too large"))
		return
	case err != nil:
		log.Error("failed to upload document", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not upload document"))
		return
	}

	log.Info("document uploaded", slog.Int("id", doc.ID), slog.String("filename", doc.Filename))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":       doc.ID,
		"filename": doc.Filename,
		"status":   doc.Status,
		"size":     doc.Size,
	}))
}
