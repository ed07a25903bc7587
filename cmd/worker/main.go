package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"droneport/internal/cache"
	"droneport/internal/config"
	"droneport/internal/log"
	"droneport/internal/queue"
	"droneport/internal/storage"
	"droneport/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, "worker")

	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	diskStore, err := storage.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init upload dir")
	}

	var archiver *storage.Archiver
	if cfg.Archive.Enabled {
		archiver, err = storage.NewArchiver(cfg.Archive)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init archiver")
		}
		if err := archiver.EnsureBucket(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("ensure bucket failed")
		}
	}

	taskQueue := queue.NewRedisQueue(redisClient, cfg.Tasks.Stream, cfg.Tasks.StatusTTL)
	runner := worker.NewRunner(taskQueue, diskStore, archiver, cfg.Drone, logger)
	consumer := worker.NewConsumer(
		redisClient,
		cfg.Tasks.Stream,
		cfg.Tasks.Group,
		cfg.Tasks.Consumer,
		cfg.Tasks.ClaimInterval,
		logger,
		runner,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal().Err(err).Msg("consumer stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")
	time.Sleep(500 * time.Millisecond)
}
