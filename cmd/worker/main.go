package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"hourline.app/server/common/logger"
	"hourline.app/server/common/otel"
	"hourline.app/server/core/config"
	"hourline.app/server/internal/email"
	"hourline.app/server/internal/queue"
	"hourline.app/server/internal/worker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Setup(cfg)

	slog.InfoContext(ctx, "hourline email worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Queue.Group,
		"consumer_name", cfg.Queue.Consumer)

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Queue.Stream)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Queue.Stream,
		Group:        cfg.Queue.Group,
		Consumer:     cfg.Queue.Consumer,
		DLQStream:    cfg.Queue.DLQStream,
		BatchSize:    cfg.Queue.BatchSize,
		Block:        cfg.Queue.Block,
		MaxAttempts:  cfg.Queue.MaxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	var sender email.Sender
	if cfg.Email.Enabled() {
		sender, err = email.NewResendSender(cfg.Email)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create resend sender", "error", err)
			os.Exit(1)
		}
	} else {
		slog.WarnContext(ctx, "RESEND_API_KEY not set, emails are rendered and logged only")
		sender = worker.DryRunSender{}
	}

	w := worker.New(consumer, worker.NewProcessor(sender), worker.Config{
		MaxAttempts:  cfg.Queue.MaxAttempts,
		ErrorBackoff: time.Second,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Queue.Stream,
		Group:     cfg.Queue.Group,
		Consumer:  cfg.Queue.Consumer + "-reclaimer",
		MinIdle:   cfg.Queue.ClaimMinIdle,
		Interval:  time.Minute,
		BatchSize: cfg.Queue.BatchSize,
	}, consumer, w.Handle)

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		// Stop reclaimer first (quick), then the worker (may be sending)
		reclaimer.Stop()
		w.Stop()
		close(done)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case <-done:
		for range 2 {
			if err := <-errCh; err != nil {
				slog.ErrorContext(shutdownCtx, "worker error during shutdown", "error", err)
			}
		}
	}
	cancel()

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "worker shutdown complete")
}

const banner = `
 _                      _ _                                _ _
| |__   ___  _   _ _ __| (_)_ __   ___    _ __ ___   __ _(_) |
| '_ \ / _ \| | | | '__| | | '_ \ / _ \  | '_ ' _ \ / _' | | |
| | | | (_) | |_| | |  | | | | | |  __/  | | | | | | (_| | | |
|_| |_|\___/ \__,_|_|  |_|_|_| |_|\___|  |_| |_| |_|\__,_|_|_|
`
