// Package create реализует HTTP-обработчик создания запросов по документам.
//
// Handler принимает JSON с вопросом, проверяет наличие обработанных документов
// у пользователя и возвращает запрос с ответом и использованным контекстом.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/consulting-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/consulting-platform/internal/http/response"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
	"github.com/magabrotheeeer/consulting-platform/internal/models"
	"github.com/magabrotheeeer/consulting-platform/internal/services/query"
)

// Service описывает интерфейс бизнес-логики создания запроса.
type Service interface {
	Create(ctx context.Context, userUID, question string) (*models.Query, error)
}

// Handler управляет HTTP-запросами на создание запросов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать запрос по документам
// @Description Создает запрос по обработанным документам пользователя и возвращает ответ.
// @Tags Queries
// @Accept json
// @Produce json
// @Param request body models.DummyQuery true "Вопрос"
// @Success 201 {object} response.Response "Запрос создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Нет документов для запроса"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /queries [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.query.create"
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

	var req models.DummyQuery
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	q, err := h.service.Create(r.Context(), userUID, req.Question)
	if errors.Is(err, query.ErrNoDocuments) {
		log.Error("no processed documents for query")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("No documents available for query"))
		return
	}
	if err != nil {
		log.Error("failed to create query", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create query"))
		return
	}

	log.Info("query created", slog.Int("id", q.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":       q.ID,
		"question": q.Question,
		"answer":   q.Answer,
		"context":  q.Context,
		"status":   q.Status,
	}))
}
