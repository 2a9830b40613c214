package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/app"
	"github.com/nomanmujahid1144/tudva-sub002/internal/config"
	httpapi "github.com/nomanmujahid1144/tudva-sub002/internal/controller/http"
	"github.com/nomanmujahid1144/tudva-sub002/internal/notify"
	"github.com/nomanmujahid1144/tudva-sub002/internal/repository"
	"github.com/nomanmujahid1144/tudva-sub002/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting lecture scheduling service",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Database unreachable", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	courseRepo := repository.NewCourseRepository(pool)
	prefRepo := repository.NewPreferenceRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	var sink service.NotificationSink
	if cfg.TelegramToken != "" {
		tgSink, err := notify.NewTelegramSink(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram sink", zap.Error(err))
		}
		sink = tgSink
		logger.Info("Telegram notifications enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	} else {
		sink = notify.NewLogSink(logger)
	}

	clock := service.SystemClock()

	scheduleSvc := service.NewScheduleService(courseRepo, courseRepo, scheduleRepo, clock, logger)
	accessSvc := service.NewAccessService(courseRepo, courseRepo, scheduleRepo, clock, logger)
	rescheduleSvc := service.NewRescheduleService(courseRepo, bookingRepo, clock, sink, logger)
	bookingSvc := service.NewBookingService(courseRepo, prefRepo, scheduleRepo, bookingRepo, sink, logger)
	courseSvc := service.NewCourseService(courseRepo, courseRepo, logger)

	sweeper := app.NewSessionSweeper(scheduleSvc, 15*time.Minute, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	server := httpapi.NewServer(httpapi.RouterConfig{
		ScheduleHandler: httpapi.NewScheduleHandler(scheduleSvc, accessSvc, rescheduleSvc, bookingSvc, logger),
		CourseHandler:   httpapi.NewCourseHandler(courseSvc, scheduleSvc, bookingSvc, logger),
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(cfg.HTTPAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.Fatal("HTTP server failed", zap.Error(err))
	case sig := <-quit:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
