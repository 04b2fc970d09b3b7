// Package jwt реализует выпуск и разбор JWT-токенов доступа с
// пользовательскими claim-полями трекера расходов.
package jwt

import "time"

// Maker описывает интерфейс выпуска и проверки токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя.
	GenerateToken(userID int, name string, isPremium bool) (string, error)
	// ParseToken проверяет подпись и срок токена, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на секретном ключе HS256 и фиксированном TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт MakerImpl с заданным ключом и временем жизни токена.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
