package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avdeevns/expense-tracker/internal/models"
)

// CreateOrder сохраняет новый заказ на покупку премиума в статусе PENDING.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) error {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO orders (id, user_id, amount, status)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		order.ID, order.UserID, order.Amount, order.Status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetOrder возвращает заказ по его ID.
func (s *Storage) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	const op = "storage.GetOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, amount, status, payment_id, created_at
			  FROM orders
			  WHERE id = $1`
	o := &models.Order{}
	var paymentID sql.NullString
	row := s.DB.QueryRowContext(ctx, query, orderID)
	if err := row.Scan(&o.ID, &o.UserID, &o.Amount, &o.Status, &paymentID, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	o.PaymentID = paymentID.String
	return o, nil
}

// SetOrderPaymentID записывает идентификатор платёжной сессии провайдера.
func (s *Storage) SetOrderPaymentID(ctx context.Context, orderID, paymentID string) error {
	const op = "storage.SetOrderPaymentID"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders SET payment_id = $1 WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, paymentID, orderID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ApplyOrderStatus записывает статус заказа и, если это успех, выставляет
// владельцу премиум-флаг — всё в одной транзакции.
//
// Терминальный статус не перезаписывается: UPDATE заказа отфильтровывает
// строки, уже находящиеся в терминальном состоянии. Выставление премиума
// идемпотентно, поэтому повторная доставка того же успеха безопасна.
func (s *Storage) ApplyOrderStatus(ctx context.Context, orderID, status string, grantPremium bool) error {
	const op = "storage.ApplyOrderStatus"
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

	query := `UPDATE orders
			  SET status = $1
			  WHERE id = $2
			    AND UPPER(status) NOT IN ('PAID', 'SUCCESS', 'SUCCESSFUL', 'FAILED', 'CANCELLED')`
	if _, err := tx.ExecContext(ctx, query, status, orderID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if grantPremium {
		premiumQuery := `UPDATE users
				  SET is_premium = true
				  WHERE id = (SELECT user_id FROM orders WHERE id = $1)`
		if _, err := tx.ExecContext(ctx, premiumQuery, orderID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
