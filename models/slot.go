package models

import "time"

// SlotStatus is the lifecycle state of a bookable slot.
type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusHold   SlotStatus = "hold"
	SlotStatusBooked SlotStatus = "booked"
)

// Slot represents one bookable window of turf time on a given day.
// A slot in status free has no active booking bound to it; hold and booked
// slots are owned by exactly one active booking.
type Slot struct {
	ID        string     `bson:"id" json:"id"`
	Date      string     `bson:"date" json:"date"`   // e.g., "2026-03-01"
	Start     int        `bson:"start" json:"start"` // minutes from midnight (e.g., 1080 for 6:00 PM)
	End       int        `bson:"end" json:"end"`     // minutes from midnight, exclusive
	Status    SlotStatus `bson:"status" json:"status"`
	StaffID   string     `bson:"staffId,omitempty" json:"staffId,omitempty"`
	Price     int        `bson:"price,omitempty" json:"price,omitempty"` // rupees; 0 means duration-based quote
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// Duration returns the slot length in minutes.
func (s Slot) Duration() int {
	return s.End - s.Start
}
