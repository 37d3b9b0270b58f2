// Package read реализует HTTP-обработчик чтения документа с превью содержимого.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/consulting-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/consulting-platform/internal/http/response"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
	"github.com/magabrotheeeer/consulting-platform/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения документа.
type Service interface {
	Read(ctx context.Context, userUID string, id int) (*models.Document, error)
}

// Handler управляет HTTP-запросами на чтение документа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прочитать документ
// @Description Возвращает документ владельца с усечённым превью содержимого.
// @Tags Documents
// @Produce json
// @Param id path int true "ID документа"
// @Success 200 {object} response.Response "Документ"
// @Failure 404 {object} response.ErrorResponse "Документ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.read"
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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid document id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid document id"))
		return
	}

	doc, err := h.service.Read(r.Context(), userUID, id)
	if errors.Is(err, repository.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Document not found"))
		return
	}
	if err != nil {
		log.Error("failed to read document", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read document"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":              doc.ID,
		"filename":        doc.Filename,
		"file_type":       doc.FileType,
		"size":            doc.Size,
		"status":          doc.Status,
		"content_preview": doc.Content,
		"created_at":      doc.CreatedAt,
	}))
}
