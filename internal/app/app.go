package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/database"
	"portfolio_backend/internal/email"
	"portfolio_backend/internal/functions"
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/routes"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// Application собирает все зависимости один раз; gin и функции
// работают поверх одних и тех же сервисов.
type Application struct {
	Config    *config.Config
	Connector *database.Connector
	Storage   storage.Storage
	Gate      auth.SessionGate
	Services  *services.ServiceContainer
	Mailer    email.Provider
}

// Option подменяет зависимости (тесты)
type Option func(*Application)

func WithMailer(p email.Provider) Option {
	return func(a *Application) { a.Mailer = p }
}

func New(cfg *config.Config, opts ...Option) (*Application, error) {
	a := &Application{
		Config:    cfg,
		Connector: database.NewConnector(cfg.Database),
	}
	for _, opt := range opts {
		opt(a)
	}

	store, err := storage.NewStorage(storage.ConfigFrom(cfg.Storage))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Storage = store
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	gate, err := auth.NewGate(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session gate: %w", err)
	}
	a.Gate = gate

	if a.Mailer == nil {
		a.Mailer = newMailer(cfg)
	}

	a.Services = services.NewServiceContainer(cfg, a.Storage, a.Mailer, validator.New())
	return a, nil
}

func newMailer(cfg *config.Config) email.Provider {
	if !cfg.SMTPEnabled() {
		logger.Warn("SMTP is not configured, contact messages will only be logged")
		return email.NewLogProvider()
	}

	provider := email.NewSMTPProvider(email.ConfigFrom(cfg))
	if err := provider.Validate(); err != nil {
		logger.Warn("Invalid SMTP configuration, contact messages will only be logged", "error", err)
		return email.NewLogProvider()
	}
	return provider
}

// Router - gin-движок со всеми маршрутами
func (a *Application) Router() *gin.Engine {
	if a.Config.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appHandlers := handlers.NewAppHandlers(a.Services, a.Gate, a.Connector, validator.New())

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, a.Gate, a.Connector, a.Storage)
	return ginRouter
}

// Dispatcher - обработчик serverless-функций
func (a *Application) Dispatcher() *functions.Dispatcher {
	return functions.NewDispatcher(a.Services, a.Gate, a.Connector)
}

func (a *Application) Close() error {
	return a.Connector.Close()
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// bootstrap: конфиг, логгер, приложение и первое подключение к базе
func bootstrap(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a, err := New(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	if _, err := a.Connector.DB(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	logger.Info("Database connected")
	return a, nil
}

func (a *Application) shutdownTimeout() time.Duration {
	if a.Config.Server.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.Config.Server.ShutdownTimeout) * time.Second
}

// Run поднимает gin-сервер и останавливает его по SIGINT/SIGTERM
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		logger.Fatal("Startup failed", "error", err)
	}
	defer a.Close()

	address := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server startup error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// RunFunctions раздает функции локально через fiber
func RunFunctions() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		logger.Fatal("Startup failed", "error", err)
	}
	defer a.Close()

	bodyLimit := int(a.Config.Upload.ArtworkMaxSize) + 1<<20
	fiberApp := functions.NewFiberApp(a.Dispatcher(), bodyLimit)

	address := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.FunctionsPort)
	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("🚀 Functions server starting on %s", address))
		if err := fiberApp.Listen(address); err != nil {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Functions server error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	if err := fiberApp.ShutdownWithTimeout(a.shutdownTimeout()); err != nil {
		logger.Error("Functions server shutdown error", "error", err)
	}
	logger.Info("Functions server stopped")
}
