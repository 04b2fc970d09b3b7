package models

import "time"

// PasswordResetRequest представляет одноразовый токен сброса пароля.
// Токен деактивируется ровно один раз при успешном сбросе.
type PasswordResetRequest struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ResetEmail — сообщение для воркера отправки писем сброса пароля.
type ResetEmail struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ResetLink string `json:"reset_link"`
}
