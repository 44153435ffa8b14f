package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"travelnest_backend/internal/email"
	"travelnest_backend/internal/scheduler"
	"travelnest_backend/platform/config"
	"travelnest_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env, logger.WithFile(logger.FileOptions{
		Path:       cfg.GetLogFile(),
		MaxSizeMB:  cfg.GetLogFileMaxMB(),
		MaxBackups: cfg.GetLogFileMaxBackups(),
		MaxAgeDays: cfg.GetLogFileMaxAgeDays(),
	}))
	log.Info("starting notification worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := email.NewSender(cfg)
	if !cfg.GetEmailEnabled() {
		log.Warn("EMAIL_ENABLED is false; queued notifications are acknowledged without sending")
	}

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize notification worker", "error", err)
		panic("failed to initialize notification worker: " + err.Error())
	}

	worker.Run(ctx)
}
