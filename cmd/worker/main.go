package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/config"
	"github.com/benvon/day-planner/internal/logger"
	"github.com/benvon/day-planner/internal/queue"
	"github.com/benvon/day-planner/internal/workers"
	"go.uber.org/zap"
)

const (
	dlqGCInterval  = 1 * time.Hour
	dlqGCRetention = 24 * time.Hour
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.WorkerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("starting_worker",
		zap.Bool("debug_mode", debugMode),
		zap.Int("prefetch", cfg.RabbitMQPrefetch),
	)

	if cfg.RabbitMQURL == "" {
		zapLogger.Fatal("rabbitmq_url_not_configured")
	}

	jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_rabbitmq", zap.Error(err))
	}
	defer func() {
		if err := jobQueue.Close(); err != nil {
			zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
		}
	}()

	zapLogger.Info("connected_to_rabbitmq")

	// The stub messenger performs the actual deliveries
	messenger := collab.NewStubMessenger(zapLogger)
	dispatcher := workers.NewInviteDispatcher(jobQueue, messenger, cfg.RabbitMQPrefetch, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Periodic DLQ purge
	dlqGC := queue.NewGarbageCollector(jobQueue, dlqGCInterval, dlqGCRetention, zapLogger)
	go func() {
		if err := dlqGC.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zapLogger.Error("dlq_garbage_collector_stopped", zap.Error(err))
		}
	}()

	go func() {
		if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zapLogger.Error("dispatcher_stopped", zap.Error(err))
		}
	}()

	zapLogger.Info("worker_started")

	<-sigChan
	zapLogger.Info("shutdown_signal_received")

	cancel()

	zapLogger.Info("worker_stopped")
}
