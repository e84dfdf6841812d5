package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"turfbook/services/booking"
)

// BookingHandler exposes the booking engine over HTTP. Handlers bind input,
// resolve the actor, call the engine and map typed errors to status codes;
// no business logic lives here.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrValidation),
		errors.Is(err, booking.ErrInvalidWindow):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrSlotNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, booking.ErrSlotOverlap),
		errors.Is(err, booking.ErrSlotNotFree),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrNoStatusChange),
		errors.Is(err, booking.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
