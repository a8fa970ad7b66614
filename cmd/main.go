package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tailorshop-backend/internal/cache"
	"tailorshop-backend/internal/db"
	"tailorshop-backend/internal/kafka"
	"tailorshop-backend/internal/logger"
	"tailorshop-backend/internal/rental"
	"tailorshop-backend/internal/repository/postgresql"
	"tailorshop-backend/internal/scheduler"
	"tailorshop-backend/internal/server"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatal("Database init error", zap.Error(err))
	}
	defer database.Close()

	db.InitStaff(database)

	orderRepo := postgresql.NewOrderItemRepo(database)
	paymentRepo := postgresql.NewPaymentRepo(database)
	inventoryRepo := postgresql.NewInventoryRepo(database)
	damageRepo := postgresql.NewDamageRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()
	staffRepo := postgresql.NewStaffRepo(database)

	orderCache := cache.NewOrderCache(orderRepo)
	if err := orderCache.LoadInitialData(ctx); err != nil {
		log.Fatal("Failed to prime order cache", zap.Error(err))
	}

	engine := rental.NewEngine(database, orderRepo, paymentRepo, inventoryRepo,
		damageRepo, historyRepo, outboxRepo, orderCache, log)

	producer := newProducer(log)
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    20,
		MaxAttempts:  5,
	}, log)

	sweeper := scheduler.NewOverdueSweeper(orderCache, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start overdue sweeper", zap.Error(err))
	}

	srv := server.New(engine, staffRepo, log)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "9000"
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gCtx, port)
	})
	g.Go(func() error {
		publisher.Run(gCtx)
		return nil
	})

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	publisher.Shutdown()
	sweeper.Stop()

	if err := g.Wait(); err != nil {
		log.Error("Worker exited with error", zap.Error(err))
	}
	log.Info("Stopped")
}

func newProducer(log *zap.Logger) kafka.Producer {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Warn("KAFKA_BROKERS not set, using console producer")
		return kafka.NewConsoleProducer()
	}
	return kafka.NewWriterProducer(strings.Split(brokers, ","))
}
