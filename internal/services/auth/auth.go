// Package auth содержит логику бизнес-уровня для регистрации, входа
// и восстановления пароля.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avdeevns/expense-tracker/internal/lib/jwt"
	"github.com/avdeevns/expense-tracker/internal/lib/password"
	"github.com/avdeevns/expense-tracker/internal/lib/sl"
	"github.com/avdeevns/expense-tracker/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, userID int) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateResetRequest сохраняет одноразовый токен сброса пароля.
	CreateResetRequest(ctx context.Context, token string, userID int) error
	// GetActiveResetRequest возвращает активный запрос сброса по токену.
	GetActiveResetRequest(ctx context.Context, token string) (*models.PasswordResetRequest, error)
	// ConsumeResetRequest деактивирует токен и обновляет пароль пользователя.
	ConsumeResetRequest(ctx context.Context, token, newPasswordHash string) error
}

// MailPublisher публикует письма в очередь для отдельного воркера-отправителя.
type MailPublisher interface {
	Publish(routingKey string, message any) error
}

// AuthService отвечает за регистрацию, авторизацию и сброс пароля.
type AuthService struct {
	users       UserRepository
	jwtMaker    jwt.Maker
	mail        MailPublisher
	frontendURL string
	log         *slog.Logger
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, jwtMaker jwt.Maker, mail MailPublisher, frontendURL string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:       users,
		jwtMaker:    jwtMaker,
		mail:        mail,
		frontendURL: frontendURL,
		log:         log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (int, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Name, user.IsPremium)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile возвращает данные пользователя по ID.
func (s *AuthService) Profile(ctx context.Context, userID int) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

// ForgotPassword создает токен сброса и публикует письмо в очередь.
// Несуществующий email не раскрывается: вызов завершается успешно без письма.
// Сбой публикации тоже не срывает запрос — токен уже сохранён, письмо можно
// запросить повторно.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.log.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.users.CreateResetRequest(ctx, token, user.ID); err != nil {
		return err
	}

	msg := models.ResetEmail{
		Email:     user.Email,
		Name:      user.Name,
		ResetLink: fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token),
	}
	if err := s.mail.Publish("password-reset", msg); err != nil {
		s.log.Error("failed to publish reset email", sl.Err(err))
	}
	return nil
}

// ResetPassword обменивает одноразовый токен на новый пароль.
// Повторное использование токена возвращает models.ErrNotFound.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if _, err := s.users.GetActiveResetRequest(ctx, token); err != nil {
		return err
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.users.ConsumeResetRequest(ctx, token, hashed)
}
