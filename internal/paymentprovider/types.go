package paymentprovider

// CustomerDetails — данные покупателя, которые требует провайдер при создании заказа.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// OrderMeta — дополнительные параметры заказа.
type OrderMeta struct {
	ReturnURL      string `json:"return_url"`
	PaymentMethods string `json:"payment_methods,omitempty"`
}

// CreateOrderRequest представляет запрос на создание заказа у провайдера.
type CreateOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       OrderMeta       `json:"order_meta"`
}

// CreateOrderResponse представляет ответ провайдера на создание заказа.
type CreateOrderResponse struct {
	PaymentSessionID string `json:"payment_session_id"` // Хэндл платёжной сессии для фронтенда
	OrderStatus      string `json:"order_status,omitempty"`
}

// OrderStatusResponse представляет ответ провайдера на запрос статуса заказа.
type OrderStatusResponse struct {
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"` // Словарь статусов определяется провайдером
}
