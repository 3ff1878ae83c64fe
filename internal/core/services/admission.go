package services

import (
	"time"

	"whenavailable/internal/core/domain"
)

// Admission checks are pure predicates over already-fetched state; they do no
// I/O. Each failure maps to one sentinel error so the handler can report a
// precise reason. Check order matters and mirrors the HTTP contract.

func ValidateBookingAttempt(slot *domain.Slot, index int, now time.Time) error {
	if slot == nil {
		return domain.ErrSlotNotFound
	}
	if slot.IsExpired(now) {
		// The store TTL may not have fired yet; app-level expiry wins.
		return domain.ErrSlotExpired
	}
	if slot.IsFull() {
		return domain.ErrSlotFullyBooked
	}
	if index < 0 || index >= len(slot.TimeSlots) {
		return domain.ErrInvalidSelection
	}
	if slot.Mode == domain.ModeIndividual && slot.IndexTaken(index) {
		return domain.ErrSlotTaken
	}
	return nil
}

func ValidateRescheduleAttempt(booking *domain.Booking, slot *domain.Slot, newIndex int, now time.Time) error {
	if booking == nil {
		return domain.ErrBookingNotFound
	}
	if booking.IsCancelled() {
		return domain.ErrBookingCancelled
	}
	if booking.RescheduleCount >= domain.MaxReschedules {
		return domain.ErrRescheduleLimit
	}
	if slot == nil {
		return domain.ErrSlotNotFound
	}
	if slot.IsExpired(now) {
		return domain.ErrSlotExpired
	}
	if newIndex < 0 || newIndex >= len(slot.TimeSlots) {
		return domain.ErrInvalidSelection
	}
	// The booking's own index is exempt: a no-op reschedule must succeed.
	if slot.Mode == domain.ModeIndividual && newIndex != booking.SelectedTimeSlotIndex && slot.IndexTaken(newIndex) {
		return domain.ErrSlotTaken
	}
	return nil
}

func ValidateCancelAttempt(booking *domain.Booking) error {
	if booking == nil {
		return domain.ErrBookingNotFound
	}
	if booking.IsCancelled() {
		return domain.ErrBookingCancelled
	}
	return nil
}
