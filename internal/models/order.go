package models

import (
	"strings"
	"time"
)

// Статусы заказа. Провайдер может присылать и другие строки — они
// сохраняются как есть и считаются нетерминальными.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusFailed    = "FAILED"
	OrderStatusCancelled = "CANCELLED"
)

// Order представляет одну попытку покупки премиум-доступа.
// Идентификатор генерируется заново на каждую попытку и виден провайдеру.
type Order struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	PaymentID string    `json:"payment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeStatus приводит статус провайдера к локальному словарю.
// Семейство успеха {paid, success, successful} нормализуется в PAID,
// остальные значения сохраняются дословно и премиум не дают.
func NormalizeStatus(reported string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(reported)) {
	case "paid", "success", "successful":
		return OrderStatusPaid, true
	}
	return reported, false
}

// IsSuccessStatus сообщает, относится ли статус к семейству успеха.
func IsSuccessStatus(status string) bool {
	_, ok := NormalizeStatus(status)
	return ok
}

// IsTerminalStatus сообщает, является ли статус терминальным:
// из терминального состояния переходов нет.
func IsTerminalStatus(status string) bool {
	if IsSuccessStatus(status) {
		return true
	}
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}
