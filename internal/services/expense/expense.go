// Package expense содержит бизнес-логику учёта расходов. Каждая мутация
// записи расхода атомарно обновляет и агрегат total_expense пользователя.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avdeevns/expense-tracker/internal/models"
)

// Пагинация списка расходов по умолчанию.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ExpenseRepository определяет методы для работы с расходами в хранилище.
type ExpenseRepository interface {
	// CreateExpense сохраняет расход и инкрементирует total_expense в одной транзакции.
	CreateExpense(ctx context.Context, expense models.Expense) (*models.Expense, error)
	// UpdateExpense обновляет расход и корректирует total_expense на разницу сумм.
	UpdateExpense(ctx context.Context, id, userID int, expense models.Expense) (*models.Expense, error)
	// DeleteExpense удаляет расход и уменьшает total_expense на его сумму.
	DeleteExpense(ctx context.Context, id, userID int) error
	// ListExpenses возвращает страницу расходов пользователя и общее число записей.
	ListExpenses(ctx context.Context, userID, limit, offset int) ([]*models.Expense, int, error)
}

// Service реализует операции над расходами пользователя.
type Service struct {
	repo ExpenseRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ExpenseRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func buildExpense(userID int, req models.DummyExpense) (models.Expense, error) {
	if req.Amount <= 0 {
		return models.Expense{}, fmt.Errorf("%w: amount must be positive", models.ErrValidation)
	}
	if strings.TrimSpace(req.Category) == "" {
		return models.Expense{}, fmt.Errorf("%w: category is required", models.ErrValidation)
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyOneTime
	}
	switch frequency {
	case models.FrequencyOneTime, models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
	default:
		return models.Expense{}, fmt.Errorf("%w: unknown frequency %q", models.ErrValidation, frequency)
	}
	return models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Frequency:   frequency,
	}, nil
}

// Add создает запись расхода пользователя.
func (s *Service) Add(ctx context.Context, userID int, req models.DummyExpense) (*models.Expense, error) {
	expense, err := buildExpense(userID, req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return nil, err
	}
	s.log.Info("created expense", slog.Int("id", created.ID), slog.Int("user_id", userID))
	return created, nil
}

// Update заменяет данные расхода. Чужой или несуществующий расход
// возвращает models.ErrNotFound.
func (s *Service) Update(ctx context.Context, id, userID int, req models.DummyExpense) (*models.Expense, error) {
	expense, err := buildExpense(userID, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateExpense(ctx, id, userID, expense)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated expense", slog.Int("id", id), slog.Int("user_id", userID))
	return updated, nil
}

// Remove удаляет расход пользователя.
func (s *Service) Remove(ctx context.Context, id, userID int) error {
	if err := s.repo.DeleteExpense(ctx, id, userID); err != nil {
		return err
	}
	s.log.Info("deleted expense", slog.Int("id", id), slog.Int("user_id", userID))
	return nil
}

// List возвращает страницу расходов пользователя, отсортированных от новых
// к старым, и общее число записей.
func (s *Service) List(ctx context.Context, userID, page, limit int) ([]*models.Expense, int, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := (page - 1) * limit
	return s.repo.ListExpenses(ctx, userID, limit, offset)
}
