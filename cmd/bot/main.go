package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutoring_scheduler/internal/app"
	"github.com/Freeeeeet/tutoring_scheduler/internal/clock"
	"github.com/Freeeeeet/tutoring_scheduler/internal/config"
	"github.com/Freeeeeet/tutoring_scheduler/internal/controller"
	"github.com/Freeeeeet/tutoring_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/tutoring_scheduler/internal/metrics"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/postgres"
	"github.com/Freeeeeet/tutoring_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required but not set")
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	logger.Sugar().Infow("Starting tutoring scheduler",
		"environment", cfg.Environment,
		"token_length", len(cfg.TelegramToken))

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Application stopped with error", zap.Error(err))
	}

	logger.Info("Application stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Connected to database")

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	store := postgres.NewStore(pool, cfg.TxMaxRetries, logger)
	clk := clock.Real{}

	services := handlers.Services{
		Users:         service.NewUserService(store, logger),
		Tutors:        service.NewTutorService(store, logger),
		Slots:         service.NewSlotService(store, clk, logger),
		Bookings:      service.NewBookingService(store, clk, logger),
		Subscriptions: service.NewSubscriptionService(store, clk, logger),
		Hours:         service.NewHourService(store, clk, logger),
		Lessons:       service.NewLessonService(store, logger),
		Clock:         clk,
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	scheduler := app.NewScheduler(services.Slots, cfg.SlotGenerationInterval, cfg.SlotWeeksAhead, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	limiter := controller.NewRateLimiter(cfg.RateLimitPerMinute, logger)

	botInstance, err := bot.New(cfg.TelegramToken, bot.WithMiddlewares(limiter.Middleware))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(botInstance, services, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	botController.Start(ctx)
	return nil
}
