package domain

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ResolveLocalTime interprets a date ("2006-01-02") and a clock time ("15:04")
// as wall-clock values in the given IANA timezone and returns the absolute
// instant. The conversion goes through the timezone database, so DST shifts
// are accounted for; no manual offset arithmetic.
func ResolveLocalTime(date, clock, timezone string) (time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unknown timezone %q", ErrValidation, timezone)
	}

	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date/time %q %q", ErrValidation, date, clock)
	}

	return t, nil
}

// ResolveStart resolves the start of a time window against the slot timezone.
func (s *Slot) ResolveStart(index int) (time.Time, error) {
	if index < 0 || index >= len(s.TimeSlots) {
		return time.Time{}, ErrInvalidSelection
	}
	ts := s.TimeSlots[index]
	return ResolveLocalTime(ts.Date, ts.StartTime, s.Timezone)
}

// ResolveEnd resolves the end of a time window against the slot timezone.
func (s *Slot) ResolveEnd(index int) (time.Time, error) {
	if index < 0 || index >= len(s.TimeSlots) {
		return time.Time{}, ErrInvalidSelection
	}
	ts := s.TimeSlots[index]
	return ResolveLocalTime(ts.Date, ts.EndTime, s.Timezone)
}
