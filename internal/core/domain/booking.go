package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

const MaxReschedules = 3

type Booking struct {
	ID                    string     `json:"id"`
	SlotID                string     `json:"slotId"`
	BookedAt              time.Time  `json:"bookedAt"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	Note                  string     `json:"note,omitempty"`
	SelectedTimeSlotIndex int        `json:"selectedTimeSlotIndex"`
	SelectedTime          time.Time  `json:"selectedTime"`
	RescheduleCount       int        `json:"rescheduleCount"`
	RescheduledAt         *time.Time `json:"rescheduledAt,omitempty"`
	OriginalSelectedTime  *time.Time `json:"originalSelectedTime,omitempty"`
	CancelledAt           *time.Time `json:"cancelledAt,omitempty"`

	// Creator-facing fields copied from the slot at booking time so the
	// confirmation page survives later slot mutation or expiry.
	CreatorName  string `json:"creatorName,omitempty"`
	CreatorEmail string `json:"creatorEmail"`
	Purpose      string `json:"purpose,omitempty"`
	Location     string `json:"location,omitempty"`
}

func (b *Booking) IsCancelled() bool {
	return b.CancelledAt != nil
}

// Status is derived from cancelledAt; there is no stored status field.
func (b *Booking) Status() BookingStatus {
	if b.IsCancelled() {
		return BookingCancelled
	}
	return BookingConfirmed
}

func (b *Booking) CanReschedule() bool {
	return !b.IsCancelled() && b.RescheduleCount < MaxReschedules
}
