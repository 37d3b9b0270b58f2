// Package setrole реализует HTTP-обработчик смены роли пользователя.
// Операция доступна только администраторам.
package setrole

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/consulting-platform/internal/http/response"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/rbac"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
)

// Request описывает тело запроса смены роли.
type Request struct {
	Role string `json:"role" validate:"required"`
}

// Service описывает интерфейс бизнес-логики смены роли.
type Service interface {
	UpdateUserRole(ctx context.Context, userUID, role string) (int, error)
}

// Handler управляет HTTP-запросами на смену роли.
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
// @Summary Изменить роль пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Param uid path string true "UID пользователя"
// @Param request body Request true "Новая роль"
// @Success 200 {object} response.Response "Роль обновлена"
// @Failure 400 {object} response.ErrorResponse "Неизвестная роль"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security BearerAuth
// @Router /users/{uid}/role [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.setrole"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	if !rbac.IsValidRole(req.Role) {
		log.Error("unknown role", slog.String("role", req.Role))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid role"))
		return
	}

	targetUID := chi.URLParam(r, "uid")
	affected, err := h.service.UpdateUserRole(r.Context(), targetUID, req.Role)
	if err != nil {
		log.Error("failed to update role", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update role"))
		return
	}
	if affected == 0 {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("User not found"))
		return
	}

	log.Info("role updated", slog.String("uid", targetUID), slog.String("role", req.Role))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":  targetUID,
		"role": req.Role,
	}))
}
