package handler

import (
	"time"

	"whenavailable/internal/core/domain"
)

type timeSlotView struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	UTCStart  string `json:"utcStart,omitempty"`
	UTCEnd    string `json:"utcEnd,omitempty"`
}

type slotView struct {
	SlotID                string         `json:"slotId"`
	CreatorName           string         `json:"creatorName,omitempty"`
	Purpose               string         `json:"purpose,omitempty"`
	Location              string         `json:"location,omitempty"`
	Timezone              string         `json:"timezone"`
	TimeSlots             []timeSlotView `json:"timeSlots"`
	Mode                  string         `json:"mode"`
	MaxBookings           int            `json:"maxBookings"`
	BookingsCount         int            `json:"bookingsCount"`
	BookedTimeSlotIndices []int          `json:"bookedTimeSlotIndices"`
	ExpiresAt             string         `json:"expiresAt"`
	Status                string         `json:"status"`
}

type bookingView struct {
	BookingID             string  `json:"bookingId"`
	SlotID                string  `json:"slotId"`
	Name                  string  `json:"name"`
	Email                 string  `json:"email"`
	Note                  string  `json:"note,omitempty"`
	SelectedTimeSlotIndex int     `json:"selectedTimeSlotIndex"`
	SelectedTime          string  `json:"selectedTime"`
	Status                string  `json:"status"`
	BookedAt              string  `json:"bookedAt"`
	RescheduleCount       int     `json:"rescheduleCount"`
	RescheduledAt         *string `json:"rescheduledAt,omitempty"`
	OriginalSelectedTime  *string `json:"originalSelectedTime,omitempty"`
	CancelledAt           *string `json:"cancelledAt,omitempty"`
	CreatorName           string  `json:"creatorName,omitempty"`
	CreatorEmail          string  `json:"creatorEmail"`
	Purpose               string  `json:"purpose,omitempty"`
	Location              string  `json:"location,omitempty"`
}

func toSlotView(slot *domain.Slot, now time.Time) slotView {
	windows := make([]timeSlotView, 0, len(slot.TimeSlots))
	for i, ts := range slot.TimeSlots {
		view := timeSlotView{Date: ts.Date, StartTime: ts.StartTime, EndTime: ts.EndTime}
		// Windows resolve against the stored timezone; a record written
		// before a tzdata update may no longer resolve, so skip quietly.
		if start, err := slot.ResolveStart(i); err == nil {
			view.UTCStart = start.UTC().Format(time.RFC3339)
		}
		if end, err := slot.ResolveEnd(i); err == nil {
			view.UTCEnd = end.UTC().Format(time.RFC3339)
		}
		windows = append(windows, view)
	}

	return slotView{
		SlotID:                slot.ID,
		CreatorName:           slot.CreatorName,
		Purpose:               slot.Purpose,
		Location:              slot.Location,
		Timezone:              slot.Timezone,
		TimeSlots:             windows,
		Mode:                  string(slot.Mode),
		MaxBookings:           slot.MaxBookings,
		BookingsCount:         slot.BookingsCount,
		BookedTimeSlotIndices: slot.BookedTimeSlotIndices,
		ExpiresAt:             slot.ExpiresAt.Format(time.RFC3339),
		Status:                string(slot.Status(now)),
	}
}

func toBookingView(b *domain.Booking) bookingView {
	view := bookingView{
		BookingID:             b.ID,
		SlotID:                b.SlotID,
		Name:                  b.Name,
		Email:                 b.Email,
		Note:                  b.Note,
		SelectedTimeSlotIndex: b.SelectedTimeSlotIndex,
		SelectedTime:          b.SelectedTime.UTC().Format(time.RFC3339),
		Status:                string(b.Status()),
		BookedAt:              b.BookedAt.Format(time.RFC3339),
		RescheduleCount:       b.RescheduleCount,
		CreatorName:           b.CreatorName,
		CreatorEmail:          b.CreatorEmail,
		Purpose:               b.Purpose,
		Location:              b.Location,
	}
	if b.RescheduledAt != nil {
		s := b.RescheduledAt.Format(time.RFC3339)
		view.RescheduledAt = &s
	}
	if b.OriginalSelectedTime != nil {
		s := b.OriginalSelectedTime.UTC().Format(time.RFC3339)
		view.OriginalSelectedTime = &s
	}
	if b.CancelledAt != nil {
		s := b.CancelledAt.Format(time.RFC3339)
		view.CancelledAt = &s
	}
	return view
}
