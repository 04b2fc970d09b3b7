package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdeevns/expense-tracker/internal/models"
)

// CreateExpense вставляет запись расхода и увеличивает total_expense владельца
// в одной транзакции. Инкремент выполняется одним UPDATE относительно
// текущего значения, поэтому конкурентные вставки по одному пользователю
// сериализуются блокировкой строки и корректировки не теряются.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (*models.Expense, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO expenses (user_id, amount, category, description, frequency)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	row := tx.QueryRowContext(ctx, query,
		expense.UserID, expense.Amount, expense.Category, expense.Description, expense.Frequency)
	if err := row.Scan(&expense.ID, &expense.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := adjustTotalExpense(ctx, tx, expense.UserID, expense.Amount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &expense, nil
}

// UpdateExpense обновляет поля расхода и корректирует total_expense владельца
// на разницу сумм в одной транзакции. Возвращает models.ErrNotFound, если
// расход не существует или принадлежит другому пользователю.
func (s *Storage) UpdateExpense(ctx context.Context, id, userID int, expense models.Expense) (*models.Expense, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var oldAmount float64
	row := tx.QueryRowContext(ctx,
		`SELECT amount FROM expenses WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID)
	if err := row.Scan(&oldAmount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE expenses
			  SET amount = $1, category = $2, description = $3, frequency = $4
			  WHERE id = $5 AND user_id = $6
			  RETURNING id, user_id, amount, category, description, frequency, created_at`
	updated := models.Expense{}
	var description sql.NullString
	row = tx.QueryRowContext(ctx, query,
		expense.Amount, expense.Category, expense.Description, expense.Frequency, id, userID)
	if err := row.Scan(&updated.ID, &updated.UserID, &updated.Amount, &updated.Category,
		&description, &updated.Frequency, &updated.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	updated.Description = description.String

	// Нулевую дельту не пишем, чтобы не трогать строку пользователя зря.
	if delta := expense.Amount - oldAmount; delta != 0 {
		if err := adjustTotalExpense(ctx, tx, userID, delta); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}

// DeleteExpense удаляет расход и уменьшает total_expense владельца в одной
// транзакции. Возвращает models.ErrNotFound при нарушении владения.
func (s *Storage) DeleteExpense(ctx context.Context, id, userID int) error {
	const op = "storage.DeleteExpense"
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

	var amount float64
	row := tx.QueryRowContext(ctx,
		`SELECT amount FROM expenses WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID)
	if err := row.Scan(&amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := adjustTotalExpense(ctx, tx, userID, -amount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListExpenses возвращает страницу расходов пользователя, отсортированных от
// новых к старым, и общее число его расходов.
func (s *Storage) ListExpenses(ctx context.Context, userID, limit, offset int) ([]*models.Expense, int, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, user_id, amount, category, description, frequency, created_at
			  FROM expenses
			  WHERE user_id = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := scanExpenses(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// ListExpensesSince возвращает расходы пользователя начиная с отметки времени.
// Нулевая отметка означает все расходы.
func (s *Storage) ListExpensesSince(ctx context.Context, userID int, since time.Time) ([]*models.Expense, error) {
	const op = "storage.ListExpensesSince"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, amount, category, description, frequency, created_at
			  FROM expenses
			  WHERE user_id = $1
			    AND ($2::timestamptz IS NULL OR created_at >= $2)
			  ORDER BY created_at DESC, id DESC`
	var cutoff any
	if !since.IsZero() {
		cutoff = since
	}
	rows, err := s.DB.QueryContext(ctx, query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := scanExpenses(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CategoryTotalsSince считает суммарные траты пользователя по категориям
// начиная с отметки времени.
func (s *Storage) CategoryTotalsSince(ctx context.Context, userID int, since time.Time) ([]*models.CategoryTotal, error) {
	const op = "storage.CategoryTotalsSince"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT category, SUM(amount)
			  FROM expenses
			  WHERE user_id = $1
			    AND ($2::timestamptz IS NULL OR created_at >= $2)
			  GROUP BY category
			  ORDER BY SUM(amount) DESC`
	var cutoff any
	if !since.IsZero() {
		cutoff = since
	}
	rows, err := s.DB.QueryContext(ctx, query, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// adjustTotalExpense сдвигает денормализованную сумму пользователя на дельту
// внутри уже открытой транзакции.
func adjustTotalExpense(ctx context.Context, tx *sql.Tx, userID int, delta float64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET total_expense = total_expense + $1 WHERE id = $2`, delta, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanExpenses(rows *sql.Rows) ([]*models.Expense, error) {
	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		var description sql.NullString
		if err := rows.Scan(&item.ID, &item.UserID, &item.Amount, &item.Category,
			&description, &item.Frequency, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Description = description.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
