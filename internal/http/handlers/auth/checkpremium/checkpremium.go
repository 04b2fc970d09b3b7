// Package checkpremium реализует HTTP-обработчик проверки премиум-статуса.
// Статус читается из базы, а не из токена, чтобы фронтенд видел покупку
// сразу после оплаты, до перевыпуска JWT.
package checkpremium

import (
	"context"
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
	Profile(ctx context.Context, userID int) (*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.checkpremium"
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

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		log.Error("failed to check premium status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check premium status"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"is_premium": user.IsPremium,
	}))
}
