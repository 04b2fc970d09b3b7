package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/avdeevns/expense-tracker/internal/http/response"
	"github.com/avdeevns/expense-tracker/internal/models"
)

// PremiumMiddleware создает middleware, пропускающий только премиум-пользователей.
// Статус берётся из JWT-клеймов, положенных в контекст JWTMiddleware,
// поэтому доступ открывается со следующего выпущенного токена после оплаты.
func PremiumMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := r.Context().Value(UserID).(int)
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			isPremium, ok := r.Context().Value(IsPremium).(bool)
			if !ok || !isPremium {
				log.Error("premium access denied")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(models.ErrNotPremium.Error()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
