package expensetracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/avdeevns/expense-tracker/internal/http/handlers/auth/checkpremium"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/auth/login"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/auth/profile"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/auth/signup"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/expense/create"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/expense/list"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/expense/remove"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/expense/report"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/expense/update"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/export/download"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/health"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/password/forgot"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/password/reset"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/payment/orderinfo"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/payment/pay"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/payment/paymentstatus"
	"github.com/avdeevns/expense-tracker/internal/http/handlers/premium/leaderboard"
	"github.com/avdeevns/expense-tracker/internal/http/middlewarectx"
	"github.com/avdeevns/expense-tracker/internal/lib/jwt"
	authservice "github.com/avdeevns/expense-tracker/internal/services/auth"
	expenseservice "github.com/avdeevns/expense-tracker/internal/services/expense"
	paymentservice "github.com/avdeevns/expense-tracker/internal/services/payment"
	premiumservice "github.com/avdeevns/expense-tracker/internal/services/premium"
	"github.com/avdeevns/expense-tracker/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *repository.Storage,
	authService *authservice.AuthService, expenseService *expenseservice.Service,
	paymentService *paymentservice.Service, premiumService *premiumservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Post("/password/forgot", forgot.New(logger, authService).ServeHTTP)
		r.Post("/password/reset", reset.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/profile", profile.New(logger, authService).ServeHTTP)
			r.Get("/auth/check-premium", checkpremium.New(logger, authService).ServeHTTP)

			r.Post("/expenses", create.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses", list.New(logger, expenseService).ServeHTTP)
			r.Put("/expenses/{id}", update.New(logger, expenseService).ServeHTTP)
			r.Delete("/expenses/{id}", remove.New(logger, expenseService).ServeHTTP)

			r.Post("/payments/pay", pay.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/order/{orderId}", orderinfo.New(logger, paymentService).ServeHTTP)
			r.Post("/payments/payment-status/{orderId}", paymentstatus.New(logger, paymentService).ServeHTTP)

			// Премиум-функции
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.PremiumMiddleware(logger))

				r.Get("/expenses/report/{timeframe}", report.New(logger, premiumService).ServeHTTP)
				r.Get("/premium/leaderboard", leaderboard.New(logger, premiumService).ServeHTTP)
				r.Get("/export/download", download.New(logger, premiumService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
