// Package download реализует HTTP-обработчик выгрузки расходов в CSV.
// Доступ только для премиум-пользователей.
package download

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

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
	Export(ctx context.Context, userID int) (string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузить расходы в CSV
// @Description Формирует CSV-файл со всеми расходами пользователя и возвращает ссылку на него.
// @Tags Premium
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Ссылка на файл"
// @Failure 403 {object} response.ErrorResponse "Требуется премиум"
// @Failure 502 {object} response.ErrorResponse "Хранилище файлов недоступно"
// @Router /export/download [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.export.download"
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

	url, err := h.service.Export(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrProvider) {
			log.Error("blob store unavailable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("file storage unavailable, try again"))
			return
		}
		log.Error("failed to export expenses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not export expenses"))
		return
	}

	log.Info("expenses exported", slog.Int("user_id", userID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"download_url": url,
	}))
}
