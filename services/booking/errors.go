package booking

import "errors"

// Engine error taxonomy. All of these are recoverable and surfaced to the
// transport layer as typed results; nothing here crashes the process.
var (
	// ErrValidation covers malformed input: phone, name, amount, txn ref.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidWindow covers a malformed date or time window.
	ErrInvalidWindow = errors.New("invalid time window")
	// ErrSlotOverlap means the requested window intersects an existing slot.
	ErrSlotOverlap = errors.New("slot overlaps an existing slot")
	// ErrSlotUnavailable means the caller lost the claim race: the slot was
	// not free at the instant of the conditional update.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrSlotNotFree blocks deletion of a held or booked slot.
	ErrSlotNotFree = errors.New("slot is not free")
	// ErrBookingCreationFailed means the booking insert failed after the slot
	// was claimed; the slot has been rolled back to free.
	ErrBookingCreationFailed = errors.New("booking creation failed")
	// ErrInvalidTransition means the state machine rejects the edge.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNoStatusChange flags an idempotent repeat of the current status.
	ErrNoStatusChange = errors.New("booking already has this status")
	// ErrConcurrentModification means another writer won the optimistic race.
	ErrConcurrentModification = errors.New("booking was modified concurrently")
	// ErrPermissionDenied means the actor's role may not perform the call.
	ErrPermissionDenied = errors.New("permission denied")

	ErrSlotNotFound    = errors.New("slot not found")
	ErrBookingNotFound = errors.New("booking not found")
)
