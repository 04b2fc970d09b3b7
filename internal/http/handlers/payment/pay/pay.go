// Package pay реализует HTTP-обработчик создания заказа на покупку премиума.
//
// Каждый вызов создает новый заказ с новым идентификатором и возвращает
// платёжную сессию провайдера для фронтенда. Повторная покупка при уже
// активном премиуме отклоняется.
package pay

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
	CreateOrder(ctx context.Context, userID int) (*models.Order, string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать заказ на премиум
// @Description Создает заказ у платёжного провайдера и возвращает идентификатор платёжной сессии.
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Заказ и платёжная сессия"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Премиум уже активен"
// @Failure 502 {object} response.ErrorResponse "Платёжный провайдер недоступен"
// @Router /payments/pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.pay"
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

	order, sessionID, err := h.service.CreateOrder(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyPremium):
			log.Error("user is already premium", slog.Int("user_id", userID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("premium is already active"))
		case errors.Is(err, models.ErrProvider):
			log.Error("payment provider unavailable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable, try again"))
		default:
			log.Error("failed to create order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create order"))
		}
		return
	}

	log.Info("payment order created", slog.String("order_id", order.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order_id":           order.ID,
		"amount":             order.Amount,
		"payment_session_id": sessionID,
	}))
}
