package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whenavailable/internal/core/domain"
)

func TestResolveLocalTime(t *testing.T) {
	cases := []struct {
		name     string
		date     string
		clock    string
		timezone string
		wantUTC  string
	}{
		{
			name:     "new york winter is UTC-5",
			date:     "2026-01-15",
			clock:    "09:00",
			timezone: "America/New_York",
			wantUTC:  "2026-01-15T14:00:00Z",
		},
		{
			name:     "new york summer is UTC-4",
			date:     "2026-07-15",
			clock:    "09:00",
			timezone: "America/New_York",
			wantUTC:  "2026-07-15T13:00:00Z",
		},
		{
			name:     "berlin winter is UTC+1",
			date:     "2026-01-15",
			clock:    "09:00",
			timezone: "Europe/Berlin",
			wantUTC:  "2026-01-15T08:00:00Z",
		},
		{
			name:     "kolkata half-hour offset",
			date:     "2026-01-15",
			clock:    "09:00",
			timezone: "Asia/Kolkata",
			wantUTC:  "2026-01-15T03:30:00Z",
		},
		{
			name:     "utc passes through",
			date:     "2026-01-15",
			clock:    "09:00",
			timezone: "UTC",
			wantUTC:  "2026-01-15T09:00:00Z",
		},
		{
			name:     "just before US spring-forward",
			date:     "2026-03-08",
			clock:    "01:30",
			timezone: "America/New_York",
			wantUTC:  "2026-03-08T06:30:00Z",
		},
		{
			name:     "just after US spring-forward",
			date:     "2026-03-08",
			clock:    "03:30",
			timezone: "America/New_York",
			wantUTC:  "2026-03-08T07:30:00Z",
		},
		{
			name:     "evening of US fall-back day",
			date:     "2026-11-01",
			clock:    "18:00",
			timezone: "America/New_York",
			wantUTC:  "2026-11-01T23:00:00Z",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := domain.ResolveLocalTime(c.date, c.clock, c.timezone)
			require.NoError(t, err)
			assert.Equal(t, c.wantUTC, got.UTC().Format(time.RFC3339))
		})
	}
}

func TestResolveLocalTime_Idempotent(t *testing.T) {
	first, err := domain.ResolveLocalTime("2026-06-10", "14:00", "Europe/Paris")
	require.NoError(t, err)

	second, err := domain.ResolveLocalTime("2026-06-10", "14:00", "Europe/Paris")
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestResolveLocalTime_OffsetDelta(t *testing.T) {
	// Same wall-clock fields in two zones differ by exactly the UTC-offset
	// delta (6 hours between Paris and New York in summer).
	paris, err := domain.ResolveLocalTime("2026-06-10", "14:00", "Europe/Paris")
	require.NoError(t, err)

	newYork, err := domain.ResolveLocalTime("2026-06-10", "14:00", "America/New_York")
	require.NoError(t, err)

	assert.Equal(t, 6*time.Hour, newYork.Sub(paris))
}

func TestResolveLocalTime_Invalid(t *testing.T) {
	_, err := domain.ResolveLocalTime("2026-06-10", "14:00", "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.ResolveLocalTime("10-06-2026", "14:00", "UTC")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.ResolveLocalTime("2026-06-10", "2pm", "UTC")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSlotResolveWindow(t *testing.T) {
	slot := &domain.Slot{
		Timezone: "America/New_York",
		TimeSlots: []domain.TimeSlot{
			{Date: "2026-01-15", StartTime: "09:00", EndTime: "09:30"},
		},
	}

	start, err := slot.ResolveStart(0)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15T14:00:00Z", start.UTC().Format(time.RFC3339))

	end, err := slot.ResolveEnd(0)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15T14:30:00Z", end.UTC().Format(time.RFC3339))

	_, err = slot.ResolveStart(1)
	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}
