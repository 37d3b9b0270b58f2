// Package read реализует HTTP-обработчик чтения запроса пользователя.
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

// Service описывает интерфейс бизнес-логики чтения запроса.
type Service interface {
	Read(ctx context.Context, userUID string, id int) (*models.Query, error)
}

// Handler управляет HTTP-запросами на чтение запроса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прочитать запрос
// @Tags Queries
// @Produce json
// @Param id path int true "ID запроса"
// @Success 200 {object} response.Response "Запрос"
// @Failure 404 {object} response.ErrorResponse "Запрос не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /queries/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.query.read"
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
		log.Error("invalid query id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid query id"))
		return
	}

	q, err := h.service.Read(r.Context(), userUID, id)
	if errors.Is(err, repository.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Query not found"))
		return
	}
	if err != nil {
		log.Error("failed to read query", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read query"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":         q.ID,
		"question":   q.Question,
		"answer":     q.Answer,
		"context":    q.Context,
		"status":     q.Status,
		"created_at": q.CreatedAt,
	}))
}
