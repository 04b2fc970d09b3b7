// Package models содержит доменные модели трекера расходов: пользователя
// с агрегированной суммой трат, запись расхода, заказ на покупку премиума
// и запрос на сброс пароля.
package models

import "time"

// User представляет зарегистрированного пользователя.
//
// TotalExpense — денормализованная сумма всех расходов пользователя,
// поддерживается инкрементально при каждой мутации расходов.
// IsPremium выставляется в true ровно один раз после успешной оплаты.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsPremium    bool      `json:"is_premium"`
	TotalExpense float64   `json:"total_expense"`
	CreatedAt    time.Time `json:"created_at"`
}

// LeaderboardEntry — строка таблицы лидеров: пользователи с наибольшей
// суммой расходов.
type LeaderboardEntry struct {
	UserID       int     `json:"user_id"`
	Name         string  `json:"name"`
	TotalExpense float64 `json:"total_expense"`
}
