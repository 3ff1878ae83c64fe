package domain

import "errors"

var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrSlotExpired      = errors.New("slot has expired")
	ErrSlotFullyBooked  = errors.New("slot is fully booked")
	ErrSlotTaken        = errors.New("time slot is already taken")
	ErrInvalidSelection = errors.New("selected time slot index is out of range")
	ErrBookingCancelled = errors.New("booking has already been cancelled")
	ErrRescheduleLimit  = errors.New("reschedule limit reached")
)

var (
	ErrValidation = errors.New("validation error")
)
