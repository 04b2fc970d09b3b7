package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeevns/expense-tracker/internal/models"
)

// CreateResetRequest сохраняет новый активный токен сброса пароля.
func (s *Storage) CreateResetRequest(ctx context.Context, token string, userID int) error {
	const op = "storage.CreateResetRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO password_reset_requests (token, user_id, is_active)
			  VALUES ($1, $2, true)`
	if _, err := s.DB.ExecContext(ctx, query, token, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetActiveResetRequest возвращает активный запрос сброса по токену.
// Погашенный или несуществующий токен даёт models.ErrNotFound.
func (s *Storage) GetActiveResetRequest(ctx context.Context, token string) (*models.PasswordResetRequest, error) {
	const op = "storage.GetActiveResetRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT token, user_id, is_active, created_at
			  FROM password_reset_requests
			  WHERE token = $1 AND is_active = true`
	r := &models.PasswordResetRequest{}
	row := s.DB.QueryRowContext(ctx, query, token)
	if err := row.Scan(&r.Token, &r.UserID, &r.IsActive, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ConsumeResetRequest гасит токен и заменяет хэш пароля владельца в одной
// транзакции. Токен гасится ровно один раз: повторное использование даёт
// models.ErrNotFound.
func (s *Storage) ConsumeResetRequest(ctx context.Context, token, newPasswordHash string) error {
	const op = "storage.ConsumeResetRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userID int
	row := tx.QueryRowContext(ctx,
		`UPDATE password_reset_requests
		 SET is_active = false
		 WHERE token = $1 AND is_active = true
		 RETURNING user_id`, token)
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, newPasswordHash, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
