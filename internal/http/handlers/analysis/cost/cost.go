// Package cost реализует HTTP-обработчик стоимостного отчета по проекту.
package cost

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
	"github.com/magabrotheeeer/consulting-platform/internal/services/analysis"
	"github.com/magabrotheeeer/consulting-platform/internal/storage/repository"
)

// Service описывает интерфейс чтения проекта для анализа.
type Service interface {
	Read(ctx context.Context, userUID string, id int) (*models.Project, error)
}

// Handler управляет HTTP-запросами на построение стоимостного отчета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Стоимостной отчёт по проекту
// @Description Строит разбивку затрат по категориям с учётом множителя агентства.
// @Tags Analysis
// @Produce json
// @Param id path int true "ID проекта"
// @Success 200 {object} response.Response "Стоимостной отчёт"
// @Failure 404 {object} response.ErrorResponse "Проект не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /projects/{id}/cost-analysis [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analysis.cost"
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
		log.Error("invalid project id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid project id"))
		return
	}

	p, err := h.service.Read(r.Context(), userUID, id)
	if errors.Is(err, repository.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Project not found"))
		return
	}
	if err != nil {
		log.Error("failed to read project", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build cost report"))
		return
	}

	report := analysis.Cost(&analysis.ProjectInfo{
		ID:          p.ID,
		Name:        p.Name,
		Agency:      p.Agency,
		Budget:      p.Budget,
		Description: p.Description,
	})

	log.Info("cost report built", slog.Int("project_id", p.ID))
	render.JSON(w, r, response.OKWithData(report))
}
