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

// SubmitPayment records a customer's out-of-band payment reference (a
// UTR-style string) and moves the payment sub-state to submitted. A customer
// may resubmit a different reference while still pending/submitted or after a
// failed result; the reference is simply overwritten. A verified payment is
// immutable to this path.
func (svc *DefaultBookingService) SubmitPayment(ctx context.Context, actor models.Actor, bookingID, txnRef string) (*models.Booking, error) {
	txnRef = strings.TrimSpace(txnRef)
	if txnRef == "" {
		return nil, ErrValidation
	}

	b, err := svc.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus == models.PaymentStatusVerified {
		return nil, ErrValidation
	}

	allowed := []models.PaymentStatus{
		models.PaymentStatusPending,
		models.PaymentStatusSubmitted,
		models.PaymentStatusFailed,
	}
	now := time.Now().UTC()
	if err := svc.BookingRepo.UpdatePayment(ctx, b.ID, allowed, models.PaymentStatusSubmitted, txnRef, now); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConcurrentModification
		}
		return nil, fmt.Errorf("submit payment on %s: %w", b.ID, err)
	}

	utils.GetLogger().Info("payment submitted",
		zap.String("bookingId", b.ID),
		zap.String("txnRef", txnRef))
	return svc.getBooking(ctx, bookingID)
}

// VerifyPayment records the staff- or gateway-asserted outcome of a submitted
// payment: verified or failed. It does not by itself change booking status;
// that coupling is an explicit staff action through TransitionBooking.
func (svc *DefaultBookingService) VerifyPayment(ctx context.Context, actor models.Actor, bookingID string, outcome models.PaymentStatus) (*models.Booking, error) {
	if !actor.Trusted() {
		return nil, ErrPermissionDenied
	}
	if outcome != models.PaymentStatusVerified && outcome != models.PaymentStatusFailed {
		return nil, ErrValidation
	}

	b, err := svc.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	allowed := []models.PaymentStatus{models.PaymentStatusSubmitted}
	if err := svc.BookingRepo.UpdatePayment(ctx, b.ID, allowed, outcome, "", time.Now().UTC()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("verify payment on %s: %w", b.ID, err)
	}

	utils.GetLogger().Info("payment outcome recorded",
		zap.String("bookingId", b.ID),
		zap.String("outcome", string(outcome)))
	return svc.getBooking(ctx, bookingID)
}
