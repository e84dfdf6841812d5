package notification

import (
	"context"

	"turfbook/models"
)

// Notifier is the outbound port the booking engine calls on every state
// change. Implementations must be safe to call concurrently and must not
// assume the caller waits on delivery.
type Notifier interface {
	Notify(ctx context.Context, event models.NotificationEvent) error
}
