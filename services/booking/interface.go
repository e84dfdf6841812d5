package booking

import (
	"context"

	bookingRepo "turfbook/database/repository/booking"
	slotRepo "turfbook/database/repository/slot"
	"turfbook/models"
	"turfbook/services/notification"

	"github.com/go-redis/redis/v8"
)

// ClaimInput is a customer's request for a slot. SlotID references an
// existing slot; when it is empty the claim is "custom" and carries an
// explicit window instead (the booking stays slot-less until staff assign
// one, or forever).
type ClaimInput struct {
	SlotID   string              `json:"slotId,omitempty"`
	Date     string              `json:"date,omitempty"`
	Start    int                 `json:"start,omitempty"`
	End      int                 `json:"end,omitempty"`
	Customer models.CustomerInfo `json:"customer"`
	Amount   int                 `json:"amount"`
}

// BookingService is the slot/booking lifecycle engine. It is the sole writer
// behind the slot and booking stores; the transport layer holds no state.
type BookingService interface {
	CreateSlot(ctx context.Context, actor models.Actor, date string, start, end, price int) (*models.Slot, error)
	DeploySlots(ctx context.Context, actor models.Actor, date string, open, close, slotMinutes int) ([]models.Slot, error)
	DeleteSlot(ctx context.Context, actor models.Actor, slotID string) error
	AssignStaff(ctx context.Context, actor models.Actor, slotID, staffID string) error
	ListSlots(ctx context.Context, date string) ([]models.Slot, error)

	ClaimSlot(ctx context.Context, actor models.Actor, input ClaimInput) (*models.Booking, error)
	CreateManualBooking(ctx context.Context, actor models.Actor, input models.ManualBookingInput) (*models.Booking, error)
	TransitionBooking(ctx context.Context, actor models.Actor, bookingID string, newStatus models.BookingStatus) (*models.Booking, error)
	SubmitPayment(ctx context.Context, actor models.Actor, bookingID, txnRef string) (*models.Booking, error)
	VerifyPayment(ctx context.Context, actor models.Actor, bookingID string, outcome models.PaymentStatus) (*models.Booking, error)
	UpdateCustomerName(ctx context.Context, actor models.Actor, bookingID, name string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, actor models.Actor, filter models.BookingFilter) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	SlotRepo    slotRepo.SlotRepository
	BookingRepo bookingRepo.BookingRepository
	Notifier    notification.Notifier
	Cache       *redis.Client // optional slot-list read cache
}
