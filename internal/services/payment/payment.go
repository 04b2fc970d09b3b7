// Package payment реализует покупку премиум-доступа через внешнего
// платёжного провайдера и идемпотентную сверку статусов заказов.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avdeevns/expense-tracker/internal/lib/sl"
	"github.com/avdeevns/expense-tracker/internal/models"
	"github.com/avdeevns/expense-tracker/internal/paymentprovider"
)

// OrderRepository определяет методы для работы с заказами в хранилище.
type OrderRepository interface {
	// CreateOrder сохраняет новый заказ в статусе PENDING.
	CreateOrder(ctx context.Context, order models.Order) error
	// GetOrder возвращает заказ по его идентификатору.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	// SetOrderPaymentID сохраняет идентификатор платёжной сессии провайдера.
	SetOrderPaymentID(ctx context.Context, orderID, paymentID string) error
	// ApplyOrderStatus записывает статус, если текущий не терминален,
	// и при grantPremium выдаёт пользователю премиум.
	ApplyOrderStatus(ctx context.Context, orderID, status string, grantPremium bool) error
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// ProviderClient — клиент платёжного провайдера.
type ProviderClient interface {
	CreateOrder(ctx context.Context, req paymentprovider.CreateOrderRequest) (*paymentprovider.CreateOrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*paymentprovider.OrderStatusResponse, error)
}

// Service координирует локальные заказы и статусы провайдера.
type Service struct {
	repo         OrderRepository
	provider     ProviderClient
	currency     string
	premiumPrice float64
	returnURL    string
	log          *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo OrderRepository, provider ProviderClient, currency string, premiumPrice float64, returnURL string, log *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		provider:     provider,
		currency:     currency,
		premiumPrice: premiumPrice,
		returnURL:    returnURL,
		log:          log,
	}
}

// CreateOrder создает локальный заказ и регистрирует его у провайдера.
// Для уже премиум-пользователя возвращает models.ErrAlreadyPremium.
// Каждая попытка оплаты получает свежий идентификатор заказа, поэтому
// повторный вызов после сбоя не конфликтует с зависшим PENDING-заказом.
func (s *Service) CreateOrder(ctx context.Context, userID int) (*models.Order, string, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user.IsPremium {
		return nil, "", models.ErrAlreadyPremium
	}

	order := models.Order{
		ID:     "order_" + uuid.NewString(),
		UserID: userID,
		Amount: s.premiumPrice,
		Status: models.OrderStatusPending,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, "", err
	}

	resp, err := s.provider.CreateOrder(ctx, paymentprovider.CreateOrderRequest{
		OrderID:       order.ID,
		OrderAmount:   order.Amount,
		OrderCurrency: s.currency,
		CustomerDetails: paymentprovider.CustomerDetails{
			CustomerID:    fmt.Sprintf("user_%d", userID),
			CustomerEmail: user.Email,
		},
		OrderMeta: paymentprovider.OrderMeta{
			ReturnURL: fmt.Sprintf("%s?order_id=%s", s.returnURL, order.ID),
		},
	})
	if err != nil {
		s.log.Error("provider order creation failed", slog.String("order_id", order.ID), sl.Err(err))
		return nil, "", fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	if err := s.repo.SetOrderPaymentID(ctx, order.ID, resp.PaymentSessionID); err != nil {
		return nil, "", err
	}
	order.PaymentID = resp.PaymentSessionID

	s.log.Info("created payment order",
		slog.String("order_id", order.ID), slog.Int("user_id", userID))
	return &order, resp.PaymentSessionID, nil
}

// ApplyStatus применяет статус провайдера к заказу. Успешно оплаченный
// заказ повторная сверка не меняет: терминальный статус не перезаписывается,
// а выдача премиума идемпотентна.
func (s *Service) ApplyStatus(ctx context.Context, orderID, reportedStatus string) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if models.IsTerminalStatus(order.Status) {
		return order, nil
	}

	normalized, success := models.NormalizeStatus(reportedStatus)
	if err := s.repo.ApplyOrderStatus(ctx, orderID, normalized, success); err != nil {
		return nil, err
	}
	if success {
		s.log.Info("order paid, premium granted",
			slog.String("order_id", orderID), slog.Int("user_id", order.UserID))
	}

	return s.repo.GetOrder(ctx, orderID)
}

// OrderInfo возвращает локальные данные заказа без обращения к провайдеру.
// Чужой заказ не раскрывается и отвечает models.ErrNotFound.
func (s *Service) OrderInfo(ctx context.Context, userID int, orderID string) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}
	return order, nil
}

// QueryStatus возвращает актуальный статус заказа, сверяясь с провайдером.
// Если провайдер недоступен, возвращается последний локальный статус.
// Чужой заказ не раскрывается и отвечает models.ErrNotFound.
func (s *Service) QueryStatus(ctx context.Context, userID int, orderID string) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}
	if models.IsTerminalStatus(order.Status) {
		return order, nil
	}

	resp, err := s.provider.GetOrder(ctx, orderID)
	if err != nil {
		s.log.Warn("provider status check failed, serving local status",
			slog.String("order_id", orderID), sl.Err(err))
		return order, nil
	}

	updated, err := s.ApplyStatus(ctx, orderID, resp.OrderStatus)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
