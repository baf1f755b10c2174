package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"batchConverter/migrations"
	"batchConverter/worker/cache"
	"batchConverter/worker/config"
	"batchConverter/worker/converter"
	"batchConverter/worker/decoder"
	"batchConverter/worker/kafka"
	"batchConverter/worker/policy"
	"batchConverter/worker/pool"
	"batchConverter/worker/repository"
	"batchConverter/worker/resolution"
	"batchConverter/worker/runner"
	"batchConverter/worker/service"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	logger.Info("Worker Service starting",
		zap.String("topic", cfg.KafkaTopic),
		zap.Int("workers", cfg.WorkerCount),
		zap.String("on_error", cfg.OnError),
	)

	reaction, err := policy.ParseReaction(cfg.OnError)
	if err != nil {
		logger.Fatal("Invalid ON_ERROR", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = db.Ping(pingCtx)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if cfg.RunAutoMigration {
		if err := migrations.Up(db); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		PoolSize:     10,
		MinIdleConns: 2,
		PoolTimeout:  5 * time.Second,
	})
	defer rdb.Close()

	limits := decoder.Limits{
		MaxPixels:          cfg.MaxDecodePixels,
		LargeFileThreshold: cfg.LargeFileThreshold,
	}
	decoders := decoder.NewSet(logger, resolution.Default(), limits)
	conv := converter.NewConverter(logger, decoders)
	jobRunner := runner.NewRunner(logger, conv, cfg.LargeFileThreshold)

	processor := service.NewProcessor(
		repository.NewPostgresRepo(db),
		cache.NewStatusCache(rdb),
		jobRunner,
		reaction,
		logger,
	)

	consumer, err := kafka.NewConsumer(cfg.Brokers(), cfg.KafkaGroupID, logger)
	if err != nil {
		logger.Fatal("Failed to create Kafka consumer", zap.Error(err))
	}
	defer consumer.Close()

	workers := pool.NewWorkerPool(cfg.WorkerCount, logger)
	handler := func(ctx context.Context, msg *kafka.JobMessage) error {
		logger.Info("Job received",
			zap.String("job_id", msg.JobID),
			zap.String("trace_id", msg.TraceID),
			zap.Int("files", len(msg.Files)),
		)
		workers.Submit(ctx, msg, processor.Process)
		return nil
	}

	if err := consumer.Consume(ctx, cfg.KafkaTopic, handler); err != nil {
		logger.Error("Consumer stopped", zap.Error(err))
	}

	logger.Info("Waiting for running jobs", zap.Int("in_flight", workers.InFlight()))
	workers.Wait()
	logger.Info("Worker Service stopped")
}

func newLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
