package booking

import "turfbook/models"

const (
	// MinimumAmount is the pricing floor in rupees for any booking.
	MinimumAmount = 200
	// RatePerHour is the pro-rated rupee rate per 60 minutes of turf time.
	RatePerHour = 500
)

// QuoteWindow returns the expected amount in rupees for a window of the given
// length: RatePerHour pro-rated per minute, rounded up, floored at
// MinimumAmount.
func QuoteWindow(minutes int) int {
	amount := (minutes*RatePerHour + 59) / 60
	if amount < MinimumAmount {
		return MinimumAmount
	}
	return amount
}

// QuoteSlot returns the expected amount for a slot, preferring its explicit
// price over the duration-based rate.
func QuoteSlot(slot *models.Slot) int {
	if slot.Price > 0 {
		return slot.Price
	}
	return QuoteWindow(slot.Duration())
}

// validateAmount checks a claim amount against the quote. Trusted callers
// (staff tooling, the AI booking adapter) supply pre-computed amounts which
// are accepted as long as they clear the floor; customers must match the
// quote exactly.
func validateAmount(actor models.Actor, amount, quote int) error {
	if amount < MinimumAmount {
		return ErrValidation
	}
	if !actor.Trusted() && amount != quote {
		return ErrValidation
	}
	return nil
}
