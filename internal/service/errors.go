package service

import "errors"

// Domain errors surfaced to collaborators. Every failed operation leaves
// the store exactly as it was; callers branch with errors.Is.
var (
	ErrReservationsDisabled = errors.New("reservations are disabled")
	ErrSlotTaken            = errors.New("slot already has an active reservation")
	ErrCapacityExceeded     = errors.New("party size exceeds table capacity")
	ErrPastSlot             = errors.New("slot start is not in the future")
	ErrInvalidState         = errors.New("operation not allowed in current reservation status")
	ErrCancelWindowClosed   = errors.New("cancellation window is closed")
	ErrItemUnavailable      = errors.New("food item is not available")
	ErrValidation           = errors.New("validation failed")
)
