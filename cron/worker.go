package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"zmina/config"
	conversationRepo "zmina/database/repository/conversation"
	"zmina/models"
	"zmina/services/notify"
	"zmina/services/tasks"

	"github.com/hibiken/asynq"
	cronv3 "github.com/robfig/cron/v3"
)

// InitNotifyWorker runs the async notification worker in background.
func InitNotifyWorker(notifSvc notify.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeTimeChangeNotify, handleTimeChangeTask(notifSvc))

	go func() {
		log.Println("[NotifyWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotifyWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[NotifyWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleTimeChangeTask(notifSvc notify.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.TimeChangePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotifyWorker] invalid payload: %v", err)
			return err
		}
		if err := notifSvc.SendTimeChangePush(ctx, p); err != nil {
			log.Printf("[NotifyWorker] failed to send push for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}

// StartConversationPruner schedules a nightly sweep removing conversation
// contexts idle longer than the configured TTL.
func StartConversationPruner(repo conversationRepo.ConversationRepository) {
	c := cronv3.New()

	_, err := c.AddFunc("0 4 * * *", func() {
		ttl := time.Duration(config.AppConfig.ConversationTTLDays) * 24 * time.Hour
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := repo.Prune(ctx, time.Now().Add(-ttl))
		if err != nil {
			log.Printf("[ConversationPruner] prune failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[ConversationPruner] removed %d stale conversations", n)
		}
	})
	if err != nil {
		log.Printf("[ConversationPruner] failed to schedule: %v", err)
		return
	}
	c.Start()
}
