package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"zmina/config"
	"zmina/models"

	"github.com/hibiken/asynq"
)

const TypeTimeChangeNotify = "timechange:notify"

// NewTimeChangeTask wraps an applied-change payload into an asynq task.
func NewTimeChangeTask(payload models.TimeChangePayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTimeChangeNotify, b), nil
}

// AsynqNotifier queues change notifications for the background worker. It is
// the production implementation of the pipeline's Notifier.
type AsynqNotifier struct {
	client *asynq.Client
}

func NewAsynqNotifier() *AsynqNotifier {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqNotifier{client: client}
}

func (n *AsynqNotifier) EnqueueTimeChange(ctx context.Context, p models.TimeChangePayload) error {
	task, err := NewTimeChangeTask(p)
	if err != nil {
		return fmt.Errorf("build time change task: %w", err)
	}
	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue time change task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}
