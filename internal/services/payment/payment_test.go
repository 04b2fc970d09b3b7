package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avdeevns/expense-tracker/internal/models"
	"github.com/avdeevns/expense-tracker/internal/paymentprovider"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) SetOrderPaymentID(ctx context.Context, orderID, paymentID string) error {
	args := m.Called(ctx, orderID, paymentID)
	return args.Error(0)
}

func (m *MockOrderRepository) ApplyOrderStatus(ctx context.Context, orderID, status string, grantPremium bool) error {
	args := m.Called(ctx, orderID, status, grantPremium)
	return args.Error(0)
}

func (m *MockOrderRepository) GetUser(ctx context.Context, userID int) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) CreateOrder(ctx context.Context, req paymentprovider.CreateOrderRequest) (*paymentprovider.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CreateOrderResponse), args.Error(1)
}

func (m *MockProviderClient) GetOrder(ctx context.Context, orderID string) (*paymentprovider.OrderStatusResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.OrderStatusResponse), args.Error(1)
}

func newTestService(repo *MockOrderRepository, provider *MockProviderClient) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, provider, "INR", 499, "http://localhost:3000/payment-result", log)
}

func TestService_CreateOrder(t *testing.T) {
	repo := new(MockOrderRepository)
	provider := new(MockProviderClient)
	svc := newTestService(repo, provider)

	repo.On("GetUser", mock.Anything, 7).Return(&models.User{ID: 7, Email: "alice@example.com"}, nil)
	repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		return o.UserID == 7 && o.Amount == 499 && o.Status == models.OrderStatusPending && o.ID != ""
	})).Return(nil)
	provider.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req paymentprovider.CreateOrderRequest) bool {
		return req.OrderAmount == 499 && req.OrderCurrency == "INR" && req.CustomerDetails.CustomerEmail == "alice@example.com"
	})).Return(&paymentprovider.CreateOrderResponse{PaymentSessionID: "session-123"}, nil)
	repo.On("SetOrderPaymentID", mock.Anything, mock.AnythingOfType("string"), "session-123").Return(nil)

	order, sessionID, err := svc.CreateOrder(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "session-123", sessionID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	repo.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestService_CreateOrder_AlreadyPremium(t *testing.T) {
	repo := new(MockOrderRepository)
	provider := new(MockProviderClient)
	svc := newTestService(repo, provider)

	repo.On("GetUser", mock.Anything, 7).Return(&models.User{ID: 7, IsPremium: true}, nil)

	_, _, err := svc.CreateOrder(context.Background(), 7)

	assert.ErrorIs(t, err, models.ErrAlreadyPremium)
	repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestService_CreateOrder_FreshIDPerAttempt(t *testing.T) {
	repo := new(MockOrderRepository)
	provider := new(MockProviderClient)
	svc := newTestService(repo, provider)

	repo.On("GetUser", mock.Anything, 7).Return(&models.User{ID: 7}, nil)

	var seen []string
	repo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o models.Order) bool {
		seen = append(seen, o.ID)
		return true
	})).Return(nil)
	provider.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&paymentprovider.CreateOrderResponse{PaymentSessionID: "s"}, nil)
	repo.On("SetOrderPaymentID", mock.Anything, mock.Anything, "s").Return(nil)

	_, _, err := svc.CreateOrder(context.Background(), 7)
	require.NoError(t, err)
	_, _, err = svc.CreateOrder(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.NotEqual(t, seen[0], seen[1])
}

func TestService_CreateOrder_ProviderFailure(t *testing.T) {
	repo := new(MockOrderRepository)
	provider := new(MockProviderClient)
	svc := newTestService(repo, provider)

	repo.On("GetUser", mock.Anything, 7).Return(&models.User{ID: 7}, nil)
	repo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil)
	provider.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errors.New("gateway timeout"))

	_, _, err := svc.CreateOrder(context.Background(), 7)

	assert.ErrorIs(t, err, models.ErrProvider)
	repo.AssertNotCalled(t, "SetOrderPaymentID", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ApplyStatus(t *testing.T) {
	tests := []struct {
		name         string
		reported     string
		wantStatus   string
		wantPremium  bool
	}{
		{name: "paid", reported: "PAID", wantStatus: models.OrderStatusPaid, wantPremium: true},
		{name: "success variant", reported: "success", wantStatus: models.OrderStatusPaid, wantPremium: true},
		{name: "successful variant", reported: "Successful", wantStatus: models.OrderStatusPaid, wantPremium: true},
		{name: "unknown status recorded verbatim", reported: "REVIEW", wantStatus: "REVIEW", wantPremium: false},
		{name: "failed", reported: "FAILED", wantStatus: "FAILED", wantPremium: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			provider := new(MockProviderClient)
			svc := newTestService(repo, provider)

			pending := &models.Order{ID: "order_1", UserID: 7, Status: models.OrderStatusPending}
			final := &models.Order{ID: "order_1", UserID: 7, Status: tt.wantStatus}
			repo.On("GetOrder", mock.Anything, "order_1").Return(pending, nil).Once()
			repo.On("ApplyOrderStatus", mock.Anything, "order_1", tt.wantStatus, tt.wantPremium).Return(nil)
			repo.On("GetOrder", mock.Anything, "order_1").Return(final, nil).Once()

			order, err := svc.ApplyStatus(context.Background(), "order_1", tt.reported)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, order.Status)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_ApplyStatus_TerminalShortCircuit(t *testing.T) {
	repo := new(MockOrderRepository)
	provider := new(MockProviderClient)
	svc := newTestService(repo, provider)

	paid := &models.Order{ID: "order_1", UserID: 7, Status: models.OrderStatusPaid}
	repo.On("GetOrder", mock.Anything, "order_1").Return(paid, nil)

	order, err := svc.ApplyStatus(context.Background(), "order_1", "FAILED")

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	repo.AssertNotCalled(t, "ApplyOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_QueryStatus_DegradesOnProviderFailure(t *testing.T) {
	repo := new(MockOrderRepository)
	provider := new(MockProviderClient)
	svc := newTestService(repo, provider)

	pending := &models.Order{ID: "order_1", UserID: 7, Status: models.OrderStatusPending}
	repo.On("GetOrder", mock.Anything, "order_1").Return(pending, nil)
	provider.On("GetOrder", mock.Anything, "order_1").Return(nil, errors.New("timeout"))

	order, err := svc.QueryStatus(context.Background(), 7, "order_1")

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestService_QueryStatus_ReconcilesWithProvider(t *testing.T) {
	repo := new(MockOrderRepository)
	provider := new(MockProviderClient)
	svc := newTestService(repo, provider)

	pending := &models.Order{ID: "order_1", UserID: 7, Status: models.OrderStatusPending}
	paid := &models.Order{ID: "order_1", UserID: 7, Status: models.OrderStatusPaid}
	repo.On("GetOrder", mock.Anything, "order_1").Return(pending, nil).Twice()
	provider.On("GetOrder", mock.Anything, "order_1").
		Return(&paymentprovider.OrderStatusResponse{OrderID: "order_1", OrderStatus: "PAID"}, nil)
	repo.On("ApplyOrderStatus", mock.Anything, "order_1", models.OrderStatusPaid, true).Return(nil)
	repo.On("GetOrder", mock.Anything, "order_1").Return(paid, nil).Once()

	order, err := svc.QueryStatus(context.Background(), 7, "order_1")

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	repo.AssertExpectations(t)
}

func TestService_QueryStatus_ForeignOrderHidden(t *testing.T) {
	repo := new(MockOrderRepository)
	provider := new(MockProviderClient)
	svc := newTestService(repo, provider)

	order := &models.Order{ID: "order_1", UserID: 42, Status: models.OrderStatusPending}
	repo.On("GetOrder", mock.Anything, "order_1").Return(order, nil)

	_, err := svc.QueryStatus(context.Background(), 7, "order_1")

	assert.ErrorIs(t, err, models.ErrNotFound)
	provider.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
}
