package models

import "time"

// BookingStatus is the approval state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusHold      BookingStatus = "hold"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusNoShow    BookingStatus = "no_show"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus tracks payment progress independently of booking status.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSubmitted PaymentStatus = "submitted"
	PaymentStatusVerified  PaymentStatus = "verified"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// CreatorRole identifies which entry point created a booking.
type CreatorRole string

const (
	CreatorCustomer CreatorRole = "customer"
	CreatorAdmin    CreatorRole = "admin"
	CreatorAIAgent  CreatorRole = "ai_agent"
)

// StatusChange is one entry in a booking's append-only status history.
type StatusChange struct {
	Status BookingStatus `bson:"status" json:"status"`
	At     time.Time     `bson:"at" json:"at"`
}

// Booking represents a customer's reservation bound (or to-be-bound) to a slot.
type Booking struct {
	ID            string         `bson:"id" json:"id"`
	CustomerName  string         `bson:"customerName" json:"customerName"`
	CustomerPhone string         `bson:"customerPhone" json:"customerPhone"` // 10-digit
	SlotID        string         `bson:"slotId,omitempty" json:"slotId,omitempty"`
	Date          string         `bson:"date" json:"date"`
	Start         int            `bson:"start" json:"start"` // minutes from midnight
	End           int            `bson:"end" json:"end"`
	Amount        int            `bson:"amount" json:"amount"` // rupees
	Status        BookingStatus  `bson:"status" json:"status"`
	PaymentStatus PaymentStatus  `bson:"paymentStatus" json:"paymentStatus"`
	PaymentRef    string         `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"` // UTR / gateway payment ID
	CreatedBy     CreatorRole    `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
	History       []StatusChange `bson:"history" json:"history"`
}

// Terminal reports whether no further booking-status transition is permitted
// from s, other than the explicit confirmed->no_show and confirmed->cancelled
// edges handled by the state machine.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusNoShow, BookingStatusCancelled:
		return true
	}
	return false
}

// CustomerInfo is the caller-supplied identity on a claim.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// BookingFilter narrows ListBookings results. Zero values mean "any".
type BookingFilter struct {
	Date          string        `json:"date,omitempty"`
	Status        BookingStatus `json:"status,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
	Phone         string        `json:"phone,omitempty"`
}

// ManualBookingInput is the staff entry point for walk-in and phone bookings.
// Either SlotID or an explicit Date/Start/End window must be supplied.
type ManualBookingInput struct {
	SlotID   string       `json:"slotId,omitempty"`
	Date     string       `json:"date,omitempty"`
	Start    int          `json:"start,omitempty"`
	End      int          `json:"end,omitempty"`
	Customer CustomerInfo `json:"customer"`
	Amount   int          `json:"amount"`
	Paid     bool         `json:"paid"` // payment already collected out of band
}
