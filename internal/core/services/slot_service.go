package services

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"whenavailable/internal/core/domain"
	"whenavailable/internal/core/ports"
)

type CreateSlotRequest struct {
	CreatorName    string            `json:"creatorName"`
	CreatorEmail   string            `json:"creatorEmail"`
	Purpose        string            `json:"purpose"`
	Location       string            `json:"location"`
	Timezone       string            `json:"timezone"`
	TimeSlots      []domain.TimeSlot `json:"timeSlots"`
	Mode           string            `json:"mode"`
	MaxBookings    int               `json:"maxBookings"`
	ExpirationDays int               `json:"expirationDays"`
}

type SlotService struct {
	slots ports.SlotRepository
}

func NewSlotService(slots ports.SlotRepository) *SlotService {
	return &SlotService{slots: slots}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var idRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// newSlotID creates the short opaque id embedded in shareable links.
func newSlotID() string {
	b := make([]rune, 10)
	for i := range b {
		b[i] = idRunes[rand.Intn(len(idRunes))]
	}
	return string(b)
}

func validateCreateSlot(req *CreateSlotRequest) error {
	if len(req.TimeSlots) < 1 || len(req.TimeSlots) > domain.MaxTimeSlots {
		return fmt.Errorf("%w: between 1 and %d time slots required", domain.ErrValidation, domain.MaxTimeSlots)
	}
	if !emailPattern.MatchString(req.CreatorEmail) {
		return fmt.Errorf("%w: invalid creator email address", domain.ErrValidation)
	}
	switch domain.BookingMode(req.Mode) {
	case domain.ModeIndividual, domain.ModeGroup:
	default:
		return fmt.Errorf("%w: mode must be %q or %q", domain.ErrValidation, domain.ModeIndividual, domain.ModeGroup)
	}
	if req.MaxBookings < 1 || req.MaxBookings > domain.MaxBookingsCap {
		return fmt.Errorf("%w: maxBookings must be between 1 and %d", domain.ErrValidation, domain.MaxBookingsCap)
	}
	switch req.ExpirationDays {
	case 1, 3, 7:
	default:
		return fmt.Errorf("%w: expirationDays must be 1, 3 or 7", domain.ErrValidation)
	}
	// Resolving each window validates the timezone and the date/time fields
	// in one pass.
	for _, ts := range req.TimeSlots {
		if _, err := domain.ResolveLocalTime(ts.Date, ts.StartTime, req.Timezone); err != nil {
			return err
		}
		if _, err := domain.ResolveLocalTime(ts.Date, ts.EndTime, req.Timezone); err != nil {
			return err
		}
	}
	return nil
}

func (s *SlotService) CreateSlot(ctx context.Context, req CreateSlotRequest) (*domain.Slot, error) {
	if req.Mode == "" {
		req.Mode = string(domain.ModeIndividual)
	}
	if req.MaxBookings == 0 {
		req.MaxBookings = 1
	}
	if req.ExpirationDays == 0 {
		req.ExpirationDays = 7
	}

	if err := validateCreateSlot(&req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ttl := time.Duration(req.ExpirationDays) * 24 * time.Hour

	slot := &domain.Slot{
		ID:                    newSlotID(),
		CreatedAt:             now,
		ExpiresAt:             now.Add(ttl),
		CreatorName:           req.CreatorName,
		CreatorEmail:          req.CreatorEmail,
		Purpose:               req.Purpose,
		Location:              req.Location,
		Timezone:              req.Timezone,
		TimeSlots:             req.TimeSlots,
		Mode:                  domain.BookingMode(req.Mode),
		MaxBookings:           req.MaxBookings,
		BookingsCount:         0,
		BookedTimeSlotIndices: []int{},
		BookingIDs:            []string{},
	}

	if err := s.slots.Create(ctx, slot, ttl); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	return slot, nil
}

func (s *SlotService) GetSlot(ctx context.Context, id string) (*domain.Slot, error) {
	return s.slots.GetByID(ctx, id)
}

// RecordBooking applies a successful booking to the slot record. The caller
// has already run admission checks and holds the per-slot lock.
func (s *SlotService) RecordBooking(ctx context.Context, slot *domain.Slot, bookingID string, index int) error {
	slot.BookingsCount++
	slot.BookingIDs = append(slot.BookingIDs, bookingID)
	if slot.Mode == domain.ModeIndividual {
		slot.BookedTimeSlotIndices = append(slot.BookedTimeSlotIndices, index)
	}
	return s.slots.Update(ctx, slot)
}

// ReleaseBooking undoes a booking's claim after cancellation.
func (s *SlotService) ReleaseBooking(ctx context.Context, slot *domain.Slot, bookingID string, index int) error {
	if slot.BookingsCount > 0 {
		slot.BookingsCount--
	}
	slot.BookingIDs = removeString(slot.BookingIDs, bookingID)
	if slot.Mode == domain.ModeIndividual {
		slot.BookedTimeSlotIndices = removeInt(slot.BookedTimeSlotIndices, index)
	}
	return s.slots.Update(ctx, slot)
}

// MoveBookingIndex swaps the claimed index on reschedule. Only individual
// mode tracks indices; a same-index reschedule changes nothing.
func (s *SlotService) MoveBookingIndex(ctx context.Context, slot *domain.Slot, oldIndex, newIndex int) error {
	if slot.Mode != domain.ModeIndividual || oldIndex == newIndex {
		return nil
	}
	slot.BookedTimeSlotIndices = removeInt(slot.BookedTimeSlotIndices, oldIndex)
	slot.BookedTimeSlotIndices = append(slot.BookedTimeSlotIndices, newIndex)
	return s.slots.Update(ctx, slot)
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func removeInt(list []int, v int) []int {
	out := list[:0]
	removed := false
	for _, i := range list {
		// Group-mode slots never call this, but a duplicate index must only
		// be removed once.
		if i == v && !removed {
			removed = true
			continue
		}
		out = append(out, i)
	}
	return out
}
