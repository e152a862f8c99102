package queue

import (
	"context"
	"time"

	"eventsync-backend/core/config"
	"eventsync-backend/core/constants"
	"eventsync-backend/core/logger"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks (mail dispatch).
type Client struct {
	inner *asynq.Client
}

type IClient interface {
	Enqueue(ctx context.Context, taskType string, payload []byte) error
	Close() error
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// Enqueue schedules a task on the mail queue with bounded retry. Task
// handlers are expected to be idempotent; a redelivery re-sends at most
// one email.
func (c *Client) Enqueue(ctx context.Context, taskType string, payload []byte) error {
	task := asynq.NewTask(taskType, payload)
	info, err := c.inner.EnqueueContext(ctx, task,
		asynq.Queue(constants.MailQueueName),
		asynq.MaxRetry(constants.MailTaskMaxRetry),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		logger.Error("Queue:Enqueue:Error:", err)
		return err
	}
	logger.Info("Queue:Enqueue", "task_id", info.ID, "type", taskType)
	return nil
}

func (c *Client) Close() error {
	return c.inner.Close()
}

// NewServer builds the worker that consumes the mail queue. The caller
// registers handlers on a mux and runs the server beside the HTTP
// listener.
func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				constants.MailQueueName: 1,
			},
			Logger: asynqLogger{},
		},
	)
}

// asynqLogger routes asynq's internal logging through core/logger.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("asynq", "detail", args) }
func (asynqLogger) Info(args ...any)  { logger.Info("asynq", "detail", args) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("asynq", "detail", args) }
func (asynqLogger) Error(args ...any) { logger.Error("asynq", "detail", args) }
func (asynqLogger) Fatal(args ...any) { logger.Error("asynq:fatal", "detail", args) }
