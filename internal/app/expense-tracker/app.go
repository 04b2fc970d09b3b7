// Package expensetracker собирает и запускает основное HTTP-приложение.
package expensetracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/avdeevns/expense-tracker/internal/blobstore"
	"github.com/avdeevns/expense-tracker/internal/cache"
	"github.com/avdeevns/expense-tracker/internal/config"
	"github.com/avdeevns/expense-tracker/internal/lib/jwt"
	"github.com/avdeevns/expense-tracker/internal/lib/sl"
	"github.com/avdeevns/expense-tracker/internal/migrations"
	"github.com/avdeevns/expense-tracker/internal/paymentprovider"
	"github.com/avdeevns/expense-tracker/internal/rabbitmq"
	authservice "github.com/avdeevns/expense-tracker/internal/services/auth"
	expenseservice "github.com/avdeevns/expense-tracker/internal/services/expense"
	paymentservice "github.com/avdeevns/expense-tracker/internal/services/payment"
	premiumservice "github.com/avdeevns/expense-tracker/internal/services/premium"
	"github.com/avdeevns/expense-tracker/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetMailQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	blobs, err := blobstore.New(ctx, cfg.BlobStore)
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.ClientID, cfg.ClientSecret, cfg.ProviderAPIURL)
	mailPublisher := rabbitmq.NewChannelPublisher(ch)

	authService := authservice.New(db, jwtMaker, mailPublisher, cfg.FrontendURL, logger)
	expenseService := expenseservice.New(db, logger)
	paymentService := paymentservice.New(db, providerClient,
		cfg.Currency, cfg.PremiumPrice, cfg.FrontendURL+"/payment-result", logger)
	premiumService := premiumservice.New(db, cacheRedis, blobs, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db,
		authService, expenseService, paymentService, premiumService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
