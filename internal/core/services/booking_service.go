package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"whenavailable/internal/core/domain"
	"whenavailable/internal/core/ports"
)

// cancelRetention keeps cancelled bookings resolvable for confirmation pages
// even when the original TTL would have expired sooner.
const cancelRetention = 24 * time.Hour

type CreateBookingRequest struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Note                  string `json:"note"`
	SelectedTimeSlotIndex *int   `json:"selectedTimeSlotIndex"`
}

type RescheduleRequest struct {
	SelectedTimeSlotIndex *int `json:"selectedTimeSlotIndex"`
}

type BookingService struct {
	slots    ports.SlotRepository
	bookings ports.BookingRepository
	slotSvc  *SlotService
	notifier ports.Notifier
	locks    *keyLock
}

func NewBookingService(slots ports.SlotRepository, bookings ports.BookingRepository, slotSvc *SlotService, notifier ports.Notifier) *BookingService {
	return &BookingService{
		slots:    slots,
		bookings: bookings,
		slotSvc:  slotSvc,
		notifier: notifier,
		locks:    newKeyLock(),
	}
}

func validateCreateBooking(req *CreateBookingRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if req.SelectedTimeSlotIndex == nil {
		return fmt.Errorf("%w: selectedTimeSlotIndex is required", domain.ErrValidation)
	}
	return nil
}

// Book claims one time slot. The write order is booking-record-then-slot: on
// partial failure the slot under-counts, which favors conservative
// availability over double-booking.
func (s *BookingService) Book(ctx context.Context, slotID string, req CreateBookingRequest) (*domain.Booking, error) {
	if err := validateCreateBooking(&req); err != nil {
		return nil, err
	}
	index := *req.SelectedTimeSlotIndex

	unlock := s.locks.lock(slotID)
	defer unlock()

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := ValidateBookingAttempt(slot, index, now); err != nil {
		return nil, err
	}

	selected, err := slot.ResolveStart(index)
	if err != nil {
		return nil, err
	}

	remaining, err := s.slots.TTL(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("read slot ttl: %w", err)
	}

	booking := &domain.Booking{
		ID:                    uuid.New().String(),
		SlotID:                slot.ID,
		BookedAt:              now,
		Name:                  req.Name,
		Email:                 req.Email,
		Note:                  req.Note,
		SelectedTimeSlotIndex: index,
		SelectedTime:          selected,
		RescheduleCount:       0,
		CreatorName:           slot.CreatorName,
		CreatorEmail:          slot.CreatorEmail,
		Purpose:               slot.Purpose,
		Location:              slot.Location,
	}

	if err := s.bookings.Create(ctx, booking, remaining); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Legacy alias for consumers that still look bookings up by slot id.
	if err := s.bookings.SetAlias(ctx, slot.ID, booking.ID, remaining); err != nil {
		log.Printf("Failed to write booking alias for slot %s: %v", slot.ID, err)
	}

	if err := s.slotSvc.RecordBooking(ctx, slot, booking.ID, index); err != nil {
		return nil, fmt.Errorf("record booking on slot: %w", err)
	}

	go s.notifier.BookingCreated(context.WithoutCancel(ctx), slot, booking)

	return booking, nil
}

// GetBooking returns the booking and its parent slot. A missing parent slot
// is not an error: the denormalized booking fields carry the view.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, *domain.Slot, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	slot, err := s.slots.GetByID(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return booking, nil, nil
		}
		return nil, nil, err
	}

	return booking, slot, nil
}

func (s *BookingService) Reschedule(ctx context.Context, bookingID string, req RescheduleRequest) (*domain.Booking, error) {
	if req.SelectedTimeSlotIndex == nil {
		return nil, fmt.Errorf("%w: selectedTimeSlotIndex is required", domain.ErrValidation)
	}
	newIndex := *req.SelectedTimeSlotIndex

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(booking.SlotID)
	defer unlock()

	// Re-read under the lock; a concurrent cancel or reschedule may have
	// landed between the first fetch and the lock.
	booking, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	slot, err := s.fetchSlot(ctx, booking.SlotID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := ValidateRescheduleAttempt(booking, slot, newIndex, now); err != nil {
		return nil, err
	}

	newTime, err := slot.ResolveStart(newIndex)
	if err != nil {
		return nil, err
	}

	previous := booking.SelectedTime
	oldIndex := booking.SelectedTimeSlotIndex

	// Captured once, on the first reschedule only.
	if booking.RescheduleCount == 0 {
		original := booking.SelectedTime
		booking.OriginalSelectedTime = &original
	}
	booking.SelectedTimeSlotIndex = newIndex
	booking.SelectedTime = newTime
	booking.RescheduleCount++
	booking.RescheduledAt = &now

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if remaining, err := s.slots.TTL(ctx, slot.ID); err == nil {
		if err := s.bookings.SetAlias(ctx, slot.ID, booking.ID, remaining); err != nil {
			log.Printf("Failed to refresh booking alias for slot %s: %v", slot.ID, err)
		}
	}

	if err := s.slotSvc.MoveBookingIndex(ctx, slot, oldIndex, newIndex); err != nil {
		return nil, fmt.Errorf("move booking index on slot: %w", err)
	}

	go s.notifier.BookingRescheduled(context.WithoutCancel(ctx), slot, booking, previous)

	return booking, nil
}

// Cancel marks the booking terminal and returns its claim to the slot. The
// parent slot may already be gone; cancellation still succeeds then.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (*domain.Booking, *domain.Slot, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.lock(booking.SlotID)
	defer unlock()

	booking, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	if err := ValidateCancelAttempt(booking); err != nil {
		return nil, nil, err
	}

	slot, err := s.slots.GetByID(ctx, booking.SlotID)
	if err != nil && !errors.Is(err, domain.ErrSlotNotFound) {
		return nil, nil, err
	}

	now := time.Now().UTC()
	booking.CancelledAt = &now

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("update booking: %w", err)
	}

	// Keep the record around for the confirmation page even if the slot TTL
	// would have purged it sooner.
	if err := s.bookings.ExtendTTL(ctx, booking.ID, cancelRetention); err != nil {
		log.Printf("Failed to extend retention for booking %s: %v", booking.ID, err)
	}

	if slot != nil {
		if err := s.slotSvc.ReleaseBooking(ctx, slot, booking.ID, booking.SelectedTimeSlotIndex); err != nil {
			return nil, nil, fmt.Errorf("release booking on slot: %w", err)
		}
		go s.notifier.BookingCancelled(context.WithoutCancel(ctx), slot, booking)
	}

	return booking, slot, nil
}

// fetchSlot maps a missing record to a nil slot so admission can report the
// precise reason.
func (s *BookingService) fetchSlot(ctx context.Context, slotID string) (*domain.Slot, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return slot, nil
}
