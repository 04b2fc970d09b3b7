// Package report реализует HTTP-обработчик отчёта по расходам за период.
// Доступ только для премиум-пользователей.
package report

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avdeevns/expense-tracker/internal/http/middlewarectx"
	"github.com/avdeevns/expense-tracker/internal/http/response"
	"github.com/avdeevns/expense-tracker/internal/lib/sl"
	"github.com/avdeevns/expense-tracker/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Report(ctx context.Context, userID int, timeframe string) (*models.Report, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отчёт по расходам
// @Description Возвращает расходы и суммы по категориям за период daily, weekly или monthly.
// @Tags Premium
// @Produce  json
// @Security BearerAuth
// @Param timeframe path string true "Период отчёта" Enums(daily, weekly, monthly)
// @Success 200 {object} map[string]any "Отчёт"
// @Failure 403 {object} response.ErrorResponse "Требуется премиум"
// @Failure 422 {object} response.ErrorResponse "Неизвестный период"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses/report/{timeframe} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.report"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	timeframe := chi.URLParam(r, "timeframe")

	report, err := h.service.Report(r.Context(), userID, timeframe)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			log.Error("unknown timeframe", slog.String("timeframe", timeframe))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("timeframe must be daily, weekly or monthly"))
			return
		}
		log.Error("failed to build report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build report"))
		return
	}

	render.JSON(w, r, response.OKWithData(report))
}
