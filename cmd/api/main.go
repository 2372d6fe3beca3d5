package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/book-catalog/internal/api/http"
	"github.com/spec-kit/book-catalog/internal/api/http/handlers"
	"github.com/spec-kit/book-catalog/internal/api/respond"
	"github.com/spec-kit/book-catalog/internal/auth"
	"github.com/spec-kit/book-catalog/internal/config"
	"github.com/spec-kit/book-catalog/internal/events"
	"github.com/spec-kit/book-catalog/internal/googlebooks"
	"github.com/spec-kit/book-catalog/internal/observability"
	"github.com/spec-kit/book-catalog/internal/persistence"
	"github.com/spec-kit/book-catalog/internal/repository"
	"github.com/spec-kit/book-catalog/internal/service"
	"github.com/spec-kit/book-catalog/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	bookRepo := repository.NewBookRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiryDays, logger)
	userService := service.NewUserService(cfg.Auth, userRepo, tokenService, dispatcher)
	bookService := service.NewBookService(bookRepo, dispatcher)
	catalogClient := googlebooks.NewClient(cfg.GoogleBooks, logger)

	metrics := observability.NewMetrics()
	formatter := respond.NewFormatter(logger, metrics)

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg)
	usersHandler := handlers.NewUsersHandler(userService)
	booksHandler := handlers.NewBooksHandler(bookService, catalogClient)

	routeTable := httptransport.BuildRouteTable(httptransport.RouteConfig{
		Health: healthHandler,
		Users:  usersHandler,
		Books:  booksHandler,
	})
	authMiddleware := auth.NewMiddleware(tokenService, routeTable, formatter)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, formatter, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, routeTable, authMiddleware)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
