package expense

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avdeevns/expense-tracker/internal/models"
)

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) CreateExpense(ctx context.Context, expense models.Expense) (*models.Expense, error) {
	args := m.Called(ctx, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, id, userID int, expense models.Expense) (*models.Expense, error) {
	args := m.Called(ctx, id, userID, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, id, userID int) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, userID, limit, offset int) ([]*models.Expense, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Expense), args.Int(1), args.Error(2)
}

func newTestService(repo *MockExpenseRepository) *Service {
	return New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Add(t *testing.T) {
	repo := new(MockExpenseRepository)
	svc := newTestService(repo)

	expected := &models.Expense{ID: 1, UserID: 7, Amount: 250, Category: "food", Frequency: models.FrequencyOneTime}
	repo.On("CreateExpense", mock.Anything, mock.MatchedBy(func(e models.Expense) bool {
		return e.UserID == 7 && e.Amount == 250 && e.Frequency == models.FrequencyOneTime
	})).Return(expected, nil)

	created, err := svc.Add(context.Background(), 7, models.DummyExpense{Amount: 250, Category: "food"})

	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	repo.AssertExpectations(t)
}

func TestService_Add_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.DummyExpense
	}{
		{name: "zero amount", req: models.DummyExpense{Amount: 0, Category: "food"}},
		{name: "negative amount", req: models.DummyExpense{Amount: -10, Category: "food"}},
		{name: "missing category", req: models.DummyExpense{Amount: 100}},
		{name: "blank category", req: models.DummyExpense{Amount: 100, Category: "   "}},
		{name: "unknown frequency", req: models.DummyExpense{Amount: 100, Category: "food", Frequency: "yearly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockExpenseRepository)
			svc := newTestService(repo)

			_, err := svc.Add(context.Background(), 7, tt.req)

			assert.ErrorIs(t, err, models.ErrValidation)
			repo.AssertNotCalled(t, "CreateExpense", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(MockExpenseRepository)
	svc := newTestService(repo)

	repo.On("UpdateExpense", mock.Anything, 99, 7, mock.Anything).Return(nil, models.ErrNotFound)

	_, err := svc.Update(context.Background(), 99, 7, models.DummyExpense{Amount: 100, Category: "food"})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_Remove(t *testing.T) {
	repo := new(MockExpenseRepository)
	svc := newTestService(repo)

	repo.On("DeleteExpense", mock.Anything, 1, 7).Return(nil)

	err := svc.Remove(context.Background(), 1, 7)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_List_PaginationDefaults(t *testing.T) {
	tests := []struct {
		name                   string
		page, limit            int
		wantLimit, wantOffset  int
	}{
		{name: "defaults", page: 0, limit: 0, wantLimit: 10, wantOffset: 0},
		{name: "second page", page: 2, limit: 10, wantLimit: 10, wantOffset: 10},
		{name: "limit capped", page: 1, limit: 500, wantLimit: 100, wantOffset: 0},
		{name: "negative page", page: -3, limit: 5, wantLimit: 5, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockExpenseRepository)
			svc := newTestService(repo)

			repo.On("ListExpenses", mock.Anything, 7, tt.wantLimit, tt.wantOffset).
				Return([]*models.Expense{}, 0, nil)

			_, _, err := svc.List(context.Background(), 7, tt.page, tt.limit)

			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}
