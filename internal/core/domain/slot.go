package domain

import (
	"time"
)

type BookingMode string

const (
	ModeIndividual BookingMode = "individual"
	ModeGroup      BookingMode = "group"
)

type SlotStatus string

const (
	SlotActive  SlotStatus = "active"
	SlotBooked  SlotStatus = "booked"
	SlotExpired SlotStatus = "expired"
)

const (
	MaxTimeSlots   = 5
	MaxBookingsCap = 20
)

// TimeSlot is one offered window, stored as wall-clock fields local to the
// parent slot's timezone.
type TimeSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Slot struct {
	ID                    string      `json:"id"`
	CreatedAt             time.Time   `json:"createdAt"`
	ExpiresAt             time.Time   `json:"expiresAt"`
	CreatorName           string      `json:"creatorName,omitempty"`
	CreatorEmail          string      `json:"creatorEmail"`
	Purpose               string      `json:"purpose,omitempty"`
	Location              string      `json:"location,omitempty"`
	Timezone              string      `json:"timezone"`
	TimeSlots             []TimeSlot  `json:"timeSlots"`
	Mode                  BookingMode `json:"mode"`
	MaxBookings           int         `json:"maxBookings"`
	BookingsCount         int         `json:"bookingsCount"`
	BookedTimeSlotIndices []int       `json:"bookedTimeSlotIndices"`
	BookingIDs            []string    `json:"bookings"`
}

// Status is derived, never stored: expiration wins over capacity.
func (s *Slot) Status(now time.Time) SlotStatus {
	if s.IsExpired(now) {
		return SlotExpired
	}
	if s.IsFull() {
		return SlotBooked
	}
	return SlotActive
}

func (s *Slot) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

func (s *Slot) IsFull() bool {
	return s.BookingsCount >= s.MaxBookings
}

func (s *Slot) IndexTaken(index int) bool {
	for _, i := range s.BookedTimeSlotIndices {
		if i == index {
			return true
		}
	}
	return false
}
