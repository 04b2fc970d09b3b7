package models

import "time"

// Частоты расходов, допустимые в поле Frequency.
const (
	FrequencyOneTime = "one-time"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Expense представляет одну запись о расходе пользователя.
type Expense struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyExpense используется для приёма данных расхода из JSON-запроса,
// прежде чем конвертировать их в Expense.
type DummyExpense struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`                                   // Сумма (>0)
	Category    string  `json:"category" validate:"required"`                                      // Категория
	Description string  `json:"description,omitempty" validate:"omitempty"`                        // Описание (опционально)
	Frequency   string  `json:"frequency,omitempty" validate:"omitempty,oneof=one-time daily weekly monthly"` // Периодичность
}

// CategoryTotal — агрегат отчёта: суммарные траты по одной категории.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Report — отчёт по расходам за период.
type Report struct {
	Timeframe      string           `json:"timeframe"`
	Expenses       []*Expense       `json:"expenses"`
	CategoryTotals []*CategoryTotal `json:"category_totals"`
	TotalAmount    float64          `json:"total_amount"`
}
