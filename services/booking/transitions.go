package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"turfbook/models"
	"turfbook/utils"
)

// slotEffect is the slot-status side effect a booking transition carries.
// The zero value means the slot is left untouched.
type slotEffect struct {
	apply bool
	from  models.SlotStatus
	to    models.SlotStatus
}

// transitionTable defines every legal booking-status edge and its slot side
// effect. Absence from the table means ErrInvalidTransition; the switch over
// this map is the single source of truth for the state machine.
var transitionTable = map[models.BookingStatus]map[models.BookingStatus]slotEffect{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed: {apply: true, from: models.SlotStatusHold, to: models.SlotStatusBooked},
		models.BookingStatusRejected:  {apply: true, from: models.SlotStatusHold, to: models.SlotStatusFree},
		models.BookingStatusHold:      {}, // slot stays hold
	},
	models.BookingStatusHold: {
		models.BookingStatusConfirmed: {apply: true, from: models.SlotStatusHold, to: models.SlotStatusBooked},
		models.BookingStatusRejected:  {apply: true, from: models.SlotStatusHold, to: models.SlotStatusFree},
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusNoShow:    {}, // slot stays booked as a historical record
		models.BookingStatusCancelled: {apply: true, from: models.SlotStatusBooked, to: models.SlotStatusFree},
	},
}

// TransitionBooking validates and applies a booking-status transition,
// keeping the bound slot's status consistent and firing a notification after
// the change commits. Two staff members racing on the same booking resolve
// through the optimistic precondition: the loser gets
// ErrConcurrentModification, never a corrupted record.
func (svc *DefaultBookingService) TransitionBooking(ctx context.Context, actor models.Actor, bookingID string, newStatus models.BookingStatus) (*models.Booking, error) {
	logger := utils.GetLogger()

	b, err := svc.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status == newStatus {
		return nil, ErrNoStatusChange
	}
	effect, ok := transitionTable[b.Status][newStatus]
	if !ok {
		return nil, ErrInvalidTransition
	}
	// Customers may only cancel their confirmed booking; everything else is
	// staff tooling.
	if !actor.Trusted() {
		if !(b.Status == models.BookingStatusConfirmed && newStatus == models.BookingStatusCancelled) {
			return nil, ErrPermissionDenied
		}
	}

	now := time.Now().UTC()
	if err := svc.BookingRepo.UpdateStatus(ctx, b.ID, b.Status, newStatus, now); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConcurrentModification
		}
		return nil, fmt.Errorf("update booking %s: %w", b.ID, err)
	}

	if effect.apply && b.SlotID != "" {
		if err := svc.SlotRepo.UpdateStatus(ctx, b.SlotID, effect.from, effect.to); err != nil {
			// The booking update already committed and only the winning
			// transition reaches this write, so a miss here means the slot
			// was touched outside the engine. Log it; do not roll back a
			// committed booking decision.
			logger.Error("slot status out of sync with booking transition",
				zap.String("slotId", b.SlotID),
				zap.String("bookingId", b.ID),
				zap.String("expected", string(effect.from)),
				zap.Error(err))
		} else {
			svc.invalidateSlotCache(ctx, b.Date)
		}
	}

	// Best-effort convenience coupling for staff tooling: confirming a
	// booking whose payment is already submitted marks it verified. A failure
	// here leaves the payment submitted for manual follow-up.
	if newStatus == models.BookingStatusConfirmed && b.PaymentStatus == models.PaymentStatusSubmitted {
		allowed := []models.PaymentStatus{models.PaymentStatusSubmitted}
		if err := svc.BookingRepo.UpdatePayment(ctx, b.ID, allowed, models.PaymentStatusVerified, "", now); err != nil {
			logger.Warn("auto-verify on confirm failed",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}

	updated, err := svc.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	svc.dispatch(updated, newStatus)
	logger.Info("booking transitioned",
		zap.String("bookingId", b.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(newStatus)),
		zap.String("actor", string(actor.Role)))
	return updated, nil
}

// UpdateCustomerName corrects the display name on a booking. This is a plain
// field update with no state-machine implications.
func (svc *DefaultBookingService) UpdateCustomerName(ctx context.Context, actor models.Actor, bookingID, name string) (*models.Booking, error) {
	if !actor.Trusted() {
		return nil, ErrPermissionDenied
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}
	if err := svc.BookingRepo.SetCustomerName(ctx, bookingID, name, time.Now().UTC()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("update customer name on %s: %w", bookingID, err)
	}
	return svc.getBooking(ctx, bookingID)
}

func (svc *DefaultBookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := svc.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("fetch booking %s: %w", bookingID, err)
	}
	return b, nil
}
