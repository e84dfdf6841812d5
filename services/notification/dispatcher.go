package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"turfbook/config"
	"turfbook/models"
)

// TypeBookingEvent is the asynq task type for booking state-change events.
const TypeBookingEvent = "notify:booking_event"

// AsynqDispatcher implements Notifier by enqueueing the event onto the
// notification queue. Delivery happens in the worker (see cron package); the
// engine returns as soon as the task is queued.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher constructs a dispatcher backed by the configured Redis
// queue.
func NewAsynqDispatcher() *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqDispatcher{client: client}
}

func (d *AsynqDispatcher) Notify(ctx context.Context, event models.NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification event: %w", err)
	}
	task := asynq.NewTask(TypeBookingEvent, payload)
	if _, err := d.client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}
