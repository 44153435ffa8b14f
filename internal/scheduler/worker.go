package scheduler

import (
	"context"
	"fmt"

	"travelnest_backend/internal/email"
	"travelnest_backend/platform/config"
	"travelnest_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskNotificationEmail, w.handleNotificationEmail)

	return w, nil
}

func (w *Worker) handleNotificationEmail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseNotificationEmailPayload(task)
	if err != nil {
		return fmt.Errorf("parse notification email: %v: %w", err, asynq.SkipRetry)
	}

	if err := DeliverEmail(ctx, w.sender, payload); err != nil {
		w.log.Warn("notification email failed", "kind", payload.Kind, "error", err)
		return err
	}
	w.log.Info("notification email sent", "kind", payload.Kind)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
