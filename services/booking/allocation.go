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

// ClaimSlot turns a customer's request for a slot into exactly one booking.
// The availability decision is a single conditional update (free -> hold)
// against the slot store; two concurrent claims on the same slot can never
// both succeed. A custom claim (no slot ID) creates a slot-less booking and
// skips the conditional update entirely.
func (svc *DefaultBookingService) ClaimSlot(ctx context.Context, actor models.Actor, input ClaimInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if err := validateCustomer(input.Customer); err != nil {
		return nil, err
	}

	if input.SlotID == "" {
		return svc.claimCustom(ctx, actor, input)
	}

	slot, err := svc.SlotRepo.GetByID(ctx, input.SlotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("fetch slot %s: %w", input.SlotID, err)
	}
	if err := validateAmount(actor, input.Amount, QuoteSlot(slot)); err != nil {
		return nil, err
	}

	// The claim itself: one atomic compare-and-set. Losers see a no-match,
	// never a dirty read.
	if err := svc.SlotRepo.UpdateStatus(ctx, slot.ID, models.SlotStatusFree, models.SlotStatusHold); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("claim slot %s: %w", slot.ID, err)
	}

	now := time.Now().UTC()
	b := &models.Booking{
		CustomerName:  strings.TrimSpace(input.Customer.Name),
		CustomerPhone: input.Customer.Phone,
		SlotID:        slot.ID,
		Date:          slot.Date,
		Start:         slot.Start,
		End:           slot.End,
		Amount:        input.Amount,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedBy:     actor.CreatorRole(),
		CreatedAt:     now,
		UpdatedAt:     now,
		History:       []models.StatusChange{{Status: models.BookingStatusPending, At: now}},
	}

	if err := svc.BookingRepo.Create(ctx, b); err != nil {
		// Compensate: a hold slot with no booking must never be left behind.
		if rbErr := svc.SlotRepo.UpdateStatus(ctx, slot.ID, models.SlotStatusHold, models.SlotStatusFree); rbErr != nil {
			logger.Error("slot rollback failed after booking insert error",
				zap.String("slotId", slot.ID), zap.Error(rbErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrBookingCreationFailed, err)
	}

	svc.invalidateSlotCache(ctx, slot.Date)
	logger.Info("slot claimed",
		zap.String("slotId", slot.ID),
		zap.String("bookingId", b.ID),
		zap.String("phone", b.CustomerPhone))
	return b, nil
}

// claimCustom creates a slot-less booking for an explicit window. The window
// is validated but deliberately not checked against the slot inventory: a
// staff member assigns or deploys a matching slot later.
func (svc *DefaultBookingService) claimCustom(ctx context.Context, actor models.Actor, input ClaimInput) (*models.Booking, error) {
	if !utils.ValidDate(input.Date) || !utils.ValidWindow(input.Start, input.End) {
		return nil, ErrInvalidWindow
	}
	if err := validateAmount(actor, input.Amount, QuoteWindow(input.End-input.Start)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &models.Booking{
		CustomerName:  strings.TrimSpace(input.Customer.Name),
		CustomerPhone: input.Customer.Phone,
		Date:          input.Date,
		Start:         input.Start,
		End:           input.End,
		Amount:        input.Amount,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedBy:     actor.CreatorRole(),
		CreatedAt:     now,
		UpdatedAt:     now,
		History:       []models.StatusChange{{Status: models.BookingStatusPending, At: now}},
	}
	if err := svc.BookingRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingCreationFailed, err)
	}

	utils.GetLogger().Info("custom booking created",
		zap.String("bookingId", b.ID),
		zap.String("date", b.Date))
	return b, nil
}

func validateCustomer(c models.CustomerInfo) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrValidation
	}
	if !utils.ValidPhone(c.Phone) {
		return ErrValidation
	}
	return nil
}
