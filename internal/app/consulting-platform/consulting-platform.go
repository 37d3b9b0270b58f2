// Package consultingplatform собирает HTTP-приложение платформы:
// хранилище, кеш, брокер уведомлений, сервисы и маршруты.
package consultingplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/consulting-platform/internal/cache"
	"github.com/magabrotheeeer/consulting-platform/internal/config"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/sl"
	"github.com/magabrotheeeer/consulting-platform/internal/migrations"
	"github.com/magabrotheeeer/consulting-platform/internal/rabbitmq"
	auditservice "github.com/magabrotheeeer/consulting-platform/internal/services/audit"
	authservice "github.com/magabrotheeeer/consulting-platform/internal/services/auth"
	documentservice "github.com/magabrotheeeer/consulting-platform/internal/services/document"
	projectservice "github.com/magabrotheeeer/consulting-platform/internal/services/project"
	queryservice "github.com/magabrotheeeer/consulting-platform/internal/services/query"
	"github.com/magabrotheeeer/consulting-platform/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

// New собирает приложение: подключает базу, применяет миграции,
// инициализирует кеш, брокер и сервисы, регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер не критичен для HTTP API: без него регистрация работает,
	// приветственные письма не отправляются.
	var amqpConn *amqp.Connection
	var publisher *rabbitmq.WelcomePublisher
	if conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay); err != nil {
		logger.Error("rabbitmq unavailable, welcome emails disabled", sl.Err(err))
	} else {
		ch, err := rabbitmq.SetupChannel(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		amqpConn = conn
		publisher = rabbitmq.NewWelcomePublisher(ch)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL())

	authService := authservice.New(db, jwtMaker, welcomePublisherOrNil(publisher), logger)
	documentService := documentservice.New(db, cacheRedis, logger, cfg.MaxUploadSize, cfg.AllowedExtensionsList())
	queryService := queryservice.New(db, logger)
	projectService := projectservice.New(db, logger)
	auditService := auditservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, authService, documentService, queryService, projectService, auditService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP(),
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
	}, nil
}

// welcomePublisherOrNil разворачивает типизированный nil в интерфейсный nil.
func welcomePublisherOrNil(p *rabbitmq.WelcomePublisher) authservice.WelcomePublisher {
	if p == nil {
		return nil
	}
	return p
}

// Run запускает HTTP-сервер и блокируется до отмены контекста.
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
		a.db.DB.Close()
		if a.amqp != nil {
			a.amqp.Close()
		}
		return err
	}
}
