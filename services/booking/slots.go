package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"turfbook/models"
	"turfbook/utils"
)

// CreateSlot deploys a single bookable slot. The window must be well formed
// and must not overlap any existing slot on that date.
func (svc *DefaultBookingService) CreateSlot(ctx context.Context, actor models.Actor, date string, start, end, price int) (*models.Slot, error) {
	if !actor.Trusted() {
		return nil, ErrPermissionDenied
	}
	if !utils.ValidDate(date) || !utils.ValidWindow(start, end) {
		return nil, ErrInvalidWindow
	}
	if price < 0 {
		return nil, ErrValidation
	}

	if _, err := svc.SlotRepo.FindOverlapping(ctx, date, start, end); err == nil {
		return nil, ErrSlotOverlap
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("overlap check: %w", err)
	}

	slot := &models.Slot{
		Date:   date,
		Start:  start,
		End:    end,
		Status: models.SlotStatusFree,
		Price:  price,
	}
	if err := svc.SlotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	svc.invalidateSlotCache(ctx, date)
	utils.GetLogger().Info("slot deployed",
		zap.String("slotId", slot.ID),
		zap.String("date", date),
		zap.Int("start", start),
		zap.Int("end", end))
	return slot, nil
}

// DeploySlots carves the open..close window of a day into fixed-length slots,
// skipping any window that would overlap an existing slot. Returns the slots
// actually created.
func (svc *DefaultBookingService) DeploySlots(ctx context.Context, actor models.Actor, date string, open, close, slotMinutes int) ([]models.Slot, error) {
	if !actor.Trusted() {
		return nil, ErrPermissionDenied
	}
	if !utils.ValidDate(date) || !utils.ValidWindow(open, close) || slotMinutes <= 0 {
		return nil, ErrInvalidWindow
	}

	var created []models.Slot
	for start := open; start+slotMinutes <= close; start += slotMinutes {
		end := start + slotMinutes
		if _, err := svc.SlotRepo.FindOverlapping(ctx, date, start, end); err == nil {
			continue
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return created, fmt.Errorf("overlap check: %w", err)
		}
		slot := &models.Slot{
			Date:   date,
			Start:  start,
			End:    end,
			Status: models.SlotStatusFree,
		}
		if err := svc.SlotRepo.Create(ctx, slot); err != nil {
			return created, fmt.Errorf("deploy slot %s %d-%d: %w", date, start, end, err)
		}
		created = append(created, *slot)
	}

	if len(created) > 0 {
		svc.invalidateSlotCache(ctx, date)
	}
	utils.GetLogger().Info("slots deployed",
		zap.String("date", date),
		zap.Int("count", len(created)))
	return created, nil
}

// DeleteSlot removes a slot, but only while it is free: a slot referenced by
// an active booking is protected.
func (svc *DefaultBookingService) DeleteSlot(ctx context.Context, actor models.Actor, slotID string) error {
	if !actor.Trusted() {
		return ErrPermissionDenied
	}

	slot, err := svc.SlotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("fetch slot %s: %w", slotID, err)
	}

	if err := svc.SlotRepo.DeleteFree(ctx, slotID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either it vanished or it was claimed between the read and the
			// conditional delete; both mean "not deletable free slot" now.
			return ErrSlotNotFree
		}
		return fmt.Errorf("delete slot %s: %w", slotID, err)
	}

	svc.invalidateSlotCache(ctx, slot.Date)
	return nil
}

// AssignStaff points a slot at a staff identifier. Staff lifecycle is
// external; this is a lookup relation, not ownership.
func (svc *DefaultBookingService) AssignStaff(ctx context.Context, actor models.Actor, slotID, staffID string) error {
	if !actor.Trusted() {
		return ErrPermissionDenied
	}
	if err := svc.SlotRepo.SetStaff(ctx, slotID, staffID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("assign staff on slot %s: %w", slotID, err)
	}
	return nil
}

// ListSlots returns the slots for a date (or all slots when date is empty),
// served through a short-TTL cache. The cache is a read optimization only;
// availability decisions never consult it.
func (svc *DefaultBookingService) ListSlots(ctx context.Context, date string) ([]models.Slot, error) {
	if svc.Cache != nil && date != "" {
		if raw, err := svc.Cache.Get(ctx, utils.SlotCachePrefix+date).Result(); err == nil {
			var slots []models.Slot
			if err := json.Unmarshal([]byte(raw), &slots); err == nil {
				return slots, nil
			}
		}
	}

	slots, err := svc.SlotRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	if svc.Cache != nil && date != "" {
		if raw, err := json.Marshal(slots); err == nil {
			svc.Cache.Set(ctx, utils.SlotCachePrefix+date, raw, utils.SlotCacheTTL)
		}
	}
	return slots, nil
}

// ListBookings returns bookings matching the filter. Staff tooling only:
// booking records carry customer contact details.
func (svc *DefaultBookingService) ListBookings(ctx context.Context, actor models.Actor, filter models.BookingFilter) ([]models.Booking, error) {
	if !actor.Trusted() {
		return nil, ErrPermissionDenied
	}
	bookings, err := svc.BookingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// GetBooking fetches a single booking by ID.
func (svc *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return svc.getBooking(ctx, bookingID)
}

func (svc *DefaultBookingService) invalidateSlotCache(ctx context.Context, date string) {
	if svc.Cache == nil || date == "" {
		return
	}
	if err := svc.Cache.Del(ctx, utils.SlotCachePrefix+date).Err(); err != nil {
		utils.GetLogger().Warn("slot cache invalidation failed",
			zap.String("date", date), zap.Error(err))
	}
}
