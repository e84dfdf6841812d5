package models

import "time"

// NotificationEvent is the payload handed to the notification dispatcher on
// every booking state change. Delivery (WhatsApp template send) happens out
// of band; the engine never waits on it.
type NotificationEvent struct {
	BookingID    string        `json:"bookingId"`
	Kind         BookingStatus `json:"kind"` // the status the booking just entered
	CustomerName string        `json:"customerName"`
	Phone        string        `json:"phone"`
	Date         string        `json:"date"`
	Start        int           `json:"start"`
	End          int           `json:"end"`
	Amount       int           `json:"amount"`
	At           time.Time     `json:"at"`
}
