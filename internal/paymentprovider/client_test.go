package paymentprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "test-id", r.Header.Get("x-client-id"))
		assert.Equal(t, "test-secret", r.Header.Get("x-client-secret"))
		assert.Equal(t, apiVersion, r.Header.Get("x-api-version"))

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "order_abc", req.OrderID)
		assert.Equal(t, 499.0, req.OrderAmount)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(CreateOrderResponse{
			PaymentSessionID: "session-123",
			OrderStatus:      "ACTIVE",
		})
	}))
	defer srv.Close()

	client := NewClient("test-id", "test-secret", srv.URL)
	resp, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		OrderID:       "order_abc",
		OrderAmount:   499.0,
		OrderCurrency: "INR",
	})

	require.NoError(t, err)
	assert.Equal(t, "session-123", resp.PaymentSessionID)
}

func TestCreateOrder_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-id", "bad-secret", srv.URL)
	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{OrderID: "order_abc"})

	assert.Error(t, err)
}

func TestGetOrder_ReturnsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/orders/order_abc", r.URL.Path)

		json.NewEncoder(w).Encode(OrderStatusResponse{
			OrderID:     "order_abc",
			OrderStatus: "PAID",
		})
	}))
	defer srv.Close()

	client := NewClient("test-id", "test-secret", srv.URL)
	resp, err := client.GetOrder(context.Background(), "order_abc")

	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.OrderStatus)
}
