package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"turfbook/models"
	"turfbook/utils"
)

// dispatch hands a state-change event to the notification port after the
// state transition has committed. Delivery is fire-and-forget: an outage in
// the notifier can never block or roll back a booking decision.
func (svc *DefaultBookingService) dispatch(b *models.Booking, kind models.BookingStatus) {
	if svc.Notifier == nil {
		return
	}
	event := models.NotificationEvent{
		BookingID:    b.ID,
		Kind:         kind,
		CustomerName: b.CustomerName,
		Phone:        b.CustomerPhone,
		Date:         b.Date,
		Start:        b.Start,
		End:          b.End,
		Amount:       b.Amount,
		At:           time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := svc.Notifier.Notify(ctx, event); err != nil {
			utils.GetLogger().Warn("notification dispatch failed",
				zap.String("bookingId", event.BookingID),
				zap.String("kind", string(event.Kind)),
				zap.Error(err))
		}
	}()
}
