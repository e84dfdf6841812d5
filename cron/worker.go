package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"turfbook/config"
	"turfbook/models"
	"turfbook/services/notification"

	"github.com/hibiken/asynq"
)

// InitNotifyWorker runs the async notification worker in the background. It
// drains the queue the booking engine enqueues onto and delivers each event
// over WhatsApp; failures are retried by asynq, never by the engine.
func InitNotifyWorker(wa *notification.WhatsAppClient) {
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
	mux.HandleFunc(notification.TypeBookingEvent, handleBookingEvent(wa))

	go func() {
		log.Println("[NotifyWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotifyWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotifyWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBookingEvent(wa *notification.WhatsAppClient) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.NotificationEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			log.Printf("[NotifyWorker] invalid payload: %v", err)
			return err
		}

		if err := wa.Send(ctx, event); err != nil {
			log.Printf("[NotifyWorker] delivery failed for booking %s (%s): %v",
				event.BookingID, event.Kind, err)
			return err
		}
		return nil
	}
}
