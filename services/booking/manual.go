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

// CreateManualBooking is the privileged entry point staff use to record a
// booking that happened outside the normal flow (walk-in, phone booking).
// With an explicit window it creates a matching slot and the booking
// directly; with a slot ID the same conditional-update discipline as the
// public claim applies, so an admin cannot silently overwrite a slot someone
// else is mid-claim on.
func (svc *DefaultBookingService) CreateManualBooking(ctx context.Context, actor models.Actor, input models.ManualBookingInput) (*models.Booking, error) {
	if !actor.Trusted() {
		return nil, ErrPermissionDenied
	}
	if err := validateCustomer(input.Customer); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, ErrValidation
	}

	if input.SlotID != "" {
		return svc.manualClaimExisting(ctx, actor, input)
	}
	return svc.manualCreateWindow(ctx, actor, input)
}

// manualClaimExisting claims a pre-existing slot through the same CAS as the
// public path, then settles it into the state the operator is asserting.
func (svc *DefaultBookingService) manualClaimExisting(ctx context.Context, actor models.Actor, input models.ManualBookingInput) (*models.Booking, error) {
	slot, err := svc.SlotRepo.GetByID(ctx, input.SlotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("fetch slot %s: %w", input.SlotID, err)
	}

	if err := svc.SlotRepo.UpdateStatus(ctx, slot.ID, models.SlotStatusFree, models.SlotStatusHold); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("claim slot %s: %w", slot.ID, err)
	}

	b := newManualBooking(actor, input, slot.ID, slot.Date, slot.Start, slot.End)
	if err := svc.BookingRepo.Create(ctx, b); err != nil {
		if rbErr := svc.SlotRepo.UpdateStatus(ctx, slot.ID, models.SlotStatusHold, models.SlotStatusFree); rbErr != nil {
			utils.GetLogger().Error("slot rollback failed after manual booking insert error",
				zap.String("slotId", slot.ID), zap.Error(rbErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrBookingCreationFailed, err)
	}

	if b.Status == models.BookingStatusConfirmed {
		// We own the hold; this settles the slot into its booked state.
		if err := svc.SlotRepo.UpdateStatus(ctx, slot.ID, models.SlotStatusHold, models.SlotStatusBooked); err != nil {
			utils.GetLogger().Error("slot settle failed after manual confirm",
				zap.String("slotId", slot.ID), zap.Error(err))
		}
	}

	svc.invalidateSlotCache(ctx, slot.Date)
	utils.GetLogger().Info("manual booking recorded on existing slot",
		zap.String("slotId", slot.ID),
		zap.String("bookingId", b.ID),
		zap.String("status", string(b.Status)))
	return b, nil
}

// manualCreateWindow creates a slot for an explicit window (the operator is
// asserting ground truth, so the slot bypasses free) and the paired booking.
func (svc *DefaultBookingService) manualCreateWindow(ctx context.Context, actor models.Actor, input models.ManualBookingInput) (*models.Booking, error) {
	if !utils.ValidDate(input.Date) || !utils.ValidWindow(input.Start, input.End) {
		return nil, ErrInvalidWindow
	}
	if _, err := svc.SlotRepo.FindOverlapping(ctx, input.Date, input.Start, input.End); err == nil {
		return nil, ErrSlotOverlap
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("overlap check: %w", err)
	}

	slotStatus := models.SlotStatusHold
	if input.Paid {
		slotStatus = models.SlotStatusBooked
	}
	slot := &models.Slot{
		Date:   input.Date,
		Start:  input.Start,
		End:    input.End,
		Status: slotStatus,
	}
	if err := svc.SlotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot for manual booking: %w", err)
	}

	b := newManualBooking(actor, input, slot.ID, slot.Date, slot.Start, slot.End)
	if err := svc.BookingRepo.Create(ctx, b); err != nil {
		// The slot was created solely for this booking; take it back out.
		if rbErr := svc.SlotRepo.UpdateStatus(ctx, slot.ID, slotStatus, models.SlotStatusFree); rbErr == nil {
			if delErr := svc.SlotRepo.DeleteFree(ctx, slot.ID); delErr != nil {
				utils.GetLogger().Error("orphan slot cleanup failed",
					zap.String("slotId", slot.ID), zap.Error(delErr))
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrBookingCreationFailed, err)
	}

	svc.invalidateSlotCache(ctx, slot.Date)
	utils.GetLogger().Info("manual booking recorded with new slot",
		zap.String("slotId", slot.ID),
		zap.String("bookingId", b.ID),
		zap.String("status", string(b.Status)))
	return b, nil
}

func newManualBooking(actor models.Actor, input models.ManualBookingInput, slotID, date string, start, end int) *models.Booking {
	now := time.Now().UTC()
	status := models.BookingStatusPending
	payment := models.PaymentStatusPending
	if input.Paid {
		status = models.BookingStatusConfirmed
		payment = models.PaymentStatusVerified
	}
	return &models.Booking{
		CustomerName:  strings.TrimSpace(input.Customer.Name),
		CustomerPhone: input.Customer.Phone,
		SlotID:        slotID,
		Date:          date,
		Start:         start,
		End:           end,
		Amount:        input.Amount,
		Status:        status,
		PaymentStatus: payment,
		CreatedBy:     actor.CreatorRole(),
		CreatedAt:     now,
		UpdatedAt:     now,
		History:       []models.StatusChange{{Status: status, At: now}},
	}
}
