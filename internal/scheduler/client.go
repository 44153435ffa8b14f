package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"travelnest_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxRetry = 5
	sendTimeout     = 30 * time.Second
)

// Client enqueues notification tasks on the configured asynq queue.
type Client struct {
	client *asynq.Client
	queue  string
}

// EmailQueue hands notification e-mails to the background worker.
type EmailQueue interface {
	EnqueueEmail(ctx context.Context, payload NotificationEmailPayload) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) EnqueueEmail(ctx context.Context, payload NotificationEmailPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewNotificationEmailTask(payload)
	if err != nil {
		return err
	}

	opts := []asynq.Option{
		asynq.Queue(c.queue),
		asynq.MaxRetry(defaultMaxRetry),
		asynq.Timeout(sendTimeout),
	}
	if id := payload.taskID(); id != "" {
		opts = append(opts, asynq.TaskID(id))
	}

	_, err = c.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}

var _ EmailQueue = (*Client)(nil)
