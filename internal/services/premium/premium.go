// Package premium содержит функции, доступные премиум-пользователям:
// таблицу лидеров, отчёты по расходам и выгрузку в CSV.
package premium

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/avdeevns/expense-tracker/internal/models"
)

const (
	leaderboardLimit    = 10
	leaderboardCacheTTL = time.Minute

	TimeframeDaily   = "daily"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
)

// Repository определяет методы хранилища, нужные премиум-функциям.
type Repository interface {
	// Leaderboard возвращает пользователей с наибольшей суммой расходов.
	Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
	// ListExpensesSince возвращает расходы пользователя начиная с момента since.
	// Нулевой since значит «за всё время».
	ListExpensesSince(ctx context.Context, userID int, since time.Time) ([]*models.Expense, error)
	// CategoryTotalsSince возвращает суммы по категориям начиная с момента since.
	CategoryTotalsSince(ctx context.Context, userID int, since time.Time) ([]*models.CategoryTotal, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// BlobStore загружает готовые файлы и возвращает ссылку на них.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service реализует премиум-операции.
type Service struct {
	repo  Repository
	cache Cache
	blobs BlobStore
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, blobs BlobStore, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, blobs: blobs, log: log}
}

// Leaderboard возвращает топ пользователей по сумме расходов.
// Результат кэшируется: таблица общая для всех, её свежесть в пределах
// минуты допустима.
func (s *Service) Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:%d", leaderboardLimit)

	var cached []*models.LeaderboardEntry
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("leaderboard cache read failed", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	entries, err := s.repo.Leaderboard(ctx, leaderboardLimit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, entries, leaderboardCacheTTL); err != nil {
		s.log.Warn("failed to cache leaderboard", slog.Any("err", err))
	}
	return entries, nil
}

// reportCutoff возвращает нижнюю границу периода отчёта.
func reportCutoff(timeframe string, now time.Time) (time.Time, error) {
	switch timeframe {
	case TimeframeDaily:
		return now.AddDate(0, 0, -1), nil
	case TimeframeWeekly:
		return now.AddDate(0, 0, -7), nil
	case TimeframeMonthly:
		return now.AddDate(0, -1, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown timeframe %q", models.ErrValidation, timeframe)
}

// Report строит отчёт по расходам пользователя за период.
func (s *Service) Report(ctx context.Context, userID int, timeframe string) (*models.Report, error) {
	since, err := reportCutoff(timeframe, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ListExpensesSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	totals, err := s.repo.CategoryTotalsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	var totalAmount float64
	for _, e := range expenses {
		totalAmount += e.Amount
	}

	return &models.Report{
		Timeframe:      timeframe,
		Expenses:       expenses,
		CategoryTotals: totals,
		TotalAmount:    totalAmount,
	}, nil
}

// Export выгружает все расходы пользователя в CSV и возвращает ссылку
// на файл в хранилище.
func (s *Service) Export(ctx context.Context, userID int) (string, error) {
	expenses, err := s.repo.ListExpensesSince(ctx, userID, time.Time{})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "amount", "category", "description", "frequency", "created_at"}); err != nil {
		return "", err
	}
	for _, e := range expenses {
		record := []string{
			strconv.Itoa(e.ID),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Category,
			e.Description,
			e.Frequency,
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/user_%d_%d.csv", userID, time.Now().UTC().Unix())
	url, err := s.blobs.Put(ctx, key, buf.Bytes(), "text/csv")
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	s.log.Info("exported expenses to csv",
		slog.Int("user_id", userID), slog.Int("rows", len(expenses)))
	return url, nil
}
