// Package leaderboard реализует HTTP-обработчик таблицы лидеров по тратам.
// Доступ только для премиум-пользователей.
package leaderboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avdeevns/expense-tracker/internal/http/response"
	"github.com/avdeevns/expense-tracker/internal/lib/sl"
	"github.com/avdeevns/expense-tracker/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Таблица лидеров
// @Description Возвращает пользователей с наибольшей суммой расходов.
// @Tags Premium
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Таблица лидеров"
// @Failure 403 {object} response.ErrorResponse "Требуется премиум"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /premium/leaderboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium.leaderboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		log.Error("failed to load leaderboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load leaderboard"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"leaderboard": entries,
	}))
}
