// Package paymentstatus реализует HTTP-обработчик сверки статуса оплаты.
//
// Вызывается фронтендом после возврата с платёжной страницы. Сервис сверяет
// локальный заказ со статусом провайдера: успех выдаёт премиум идемпотентно,
// а при недоступности провайдера возвращается последний локальный статус.
package paymentstatus

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
	QueryStatus(ctx context.Context, userID int, orderID string) (*models.Order, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить статус оплаты
// @Description Сверяет заказ со статусом провайдера и выдаёт премиум при успешной оплате.
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Param orderId path string true "ID заказа"
// @Success 200 {object} map[string]any "Актуальный статус заказа"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments/payment-status/{orderId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.paymentstatus"
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

	orderID := chi.URLParam(r, "orderId")

	order, err := h.service.QueryStatus(r.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("order not found", slog.String("order_id", orderID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("order not found"))
			return
		}
		log.Error("failed to query payment status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not query payment status"))
		return
	}

	log.Info("payment status checked",
		slog.String("order_id", orderID), slog.String("status", order.Status))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
		"is_paid":  models.IsSuccessStatus(order.Status),
	}))
}
