package paymentstatus

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevns/expense-tracker/internal/http/middlewarectx"
	"github.com/avdeevns/expense-tracker/internal/models"
)

// MockService реализует интерфейс paymentstatus.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) QueryStatus(ctx context.Context, userID int, orderID string) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func TestPaymentStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		orderID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "заказ оплачен",
			orderID: "order_1",
			setupMock: func(m *MockService) {
				m.On("QueryStatus", mock.Anything, 7, "order_1").
					Return(&models.Order{ID: "order_1", UserID: 7, Status: models.OrderStatusPaid}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"order_id":"order_1","status":"PAID","is_paid":true}}`,
		},
		{
			name:    "заказ еще в ожидании",
			orderID: "order_2",
			setupMock: func(m *MockService) {
				m.On("QueryStatus", mock.Anything, 7, "order_2").
					Return(&models.Order{ID: "order_2", UserID: 7, Status: models.OrderStatusPending}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"order_id":"order_2","status":"PENDING","is_paid":false}}`,
		},
		{
			name:    "заказ не найден",
			orderID: "order_unknown",
			setupMock: func(m *MockService) {
				m.On("QueryStatus", mock.Anything, 7, "order_unknown").
					Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"order not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/payment-status/"+tt.orderID, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("orderId", tt.orderID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserID, 7)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
