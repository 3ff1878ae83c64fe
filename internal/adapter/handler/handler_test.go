package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whenavailable/internal/adapter/handler"
	"whenavailable/internal/core/domain"
	"whenavailable/internal/core/services"
)

type stubSlotService struct {
	createFn func(ctx context.Context, req services.CreateSlotRequest) (*domain.Slot, error)
	getFn    func(ctx context.Context, id string) (*domain.Slot, error)
}

func (s *stubSlotService) CreateSlot(ctx context.Context, req services.CreateSlotRequest) (*domain.Slot, error) {
	return s.createFn(ctx, req)
}

func (s *stubSlotService) GetSlot(ctx context.Context, id string) (*domain.Slot, error) {
	return s.getFn(ctx, id)
}

type stubBookingService struct {
	bookFn       func(ctx context.Context, slotID string, req services.CreateBookingRequest) (*domain.Booking, error)
	getFn        func(ctx context.Context, bookingID string) (*domain.Booking, *domain.Slot, error)
	rescheduleFn func(ctx context.Context, bookingID string, req services.RescheduleRequest) (*domain.Booking, error)
	cancelFn     func(ctx context.Context, bookingID string) (*domain.Booking, *domain.Slot, error)
}

func (s *stubBookingService) Book(ctx context.Context, slotID string, req services.CreateBookingRequest) (*domain.Booking, error) {
	return s.bookFn(ctx, slotID, req)
}

func (s *stubBookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, *domain.Slot, error) {
	return s.getFn(ctx, bookingID)
}

func (s *stubBookingService) Reschedule(ctx context.Context, bookingID string, req services.RescheduleRequest) (*domain.Booking, error) {
	return s.rescheduleFn(ctx, bookingID, req)
}

func (s *stubBookingService) Cancel(ctx context.Context, bookingID string) (*domain.Booking, *domain.Slot, error) {
	return s.cancelFn(ctx, bookingID)
}

func newRouter(slots handler.SlotService, bookings handler.BookingService) *httprouter.Router {
	slotHandler := handler.NewSlotHandler(slots, "https://whenavailable.test/")
	bookingHandler := handler.NewBookingHandler(bookings)

	router := httprouter.New()
	router.POST("/slots", slotHandler.CreateSlot)
	router.GET("/slots/:id", slotHandler.GetSlot)
	router.POST("/slots/:id/book", bookingHandler.BookSlot)
	router.GET("/bookings/:bookingId", bookingHandler.GetBooking)
	router.PUT("/bookings/:bookingId/reschedule", bookingHandler.RescheduleBooking)
	router.DELETE("/bookings/:bookingId/cancel", bookingHandler.CancelBooking)
	return router
}

func activeSlot() *domain.Slot {
	created := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Slot{
		ID:           "abc123",
		CreatedAt:    created,
		ExpiresAt:    time.Now().UTC().Add(48 * time.Hour),
		CreatorName:  "Alice",
		CreatorEmail: "alice@example.com",
		Timezone:     "America/New_York",
		TimeSlots: []domain.TimeSlot{
			{Date: "2026-09-10", StartTime: "09:00", EndTime: "09:30"},
			{Date: "2026-09-10", StartTime: "10:00", EndTime: "10:30"},
		},
		Mode:                  domain.ModeIndividual,
		MaxBookings:           2,
		BookedTimeSlotIndices: []int{},
		BookingIDs:            []string{},
	}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:                    "b-1",
		SlotID:                "abc123",
		Name:                  "Bob",
		Email:                 "bob@example.com",
		BookedAt:              time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		SelectedTimeSlotIndex: 0,
		SelectedTime:          time.Date(2026, 9, 10, 13, 0, 0, 0, time.UTC),
		CreatorName:           "Alice",
		CreatorEmail:          "alice@example.com",
	}
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestCreateSlot_Success(t *testing.T) {
	slots := &stubSlotService{
		createFn: func(_ context.Context, req services.CreateSlotRequest) (*domain.Slot, error) {
			assert.Equal(t, "alice@example.com", req.CreatorEmail)
			assert.Len(t, req.TimeSlots, 1)
			return activeSlot(), nil
		},
	}
	router := newRouter(slots, &stubBookingService{})

	body := `{
		"creatorEmail": "alice@example.com",
		"timezone": "America/New_York",
		"timeSlots": [{"date": "2026-09-10", "startTime": "09:00", "endTime": "09:30"}]
	}`
	rec, payload := doRequest(t, router, http.MethodPost, "/slots", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "abc123", payload["slotId"])
	assert.Equal(t, "https://whenavailable.test/s/abc123", payload["shareableUrl"])
	assert.NotEmpty(t, payload["expiresAt"])
}

func TestCreateSlot_InvalidJSON(t *testing.T) {
	router := newRouter(&stubSlotService{}, &stubBookingService{})

	rec, payload := doRequest(t, router, http.MethodPost, "/slots", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", payload["error"])
}

func TestCreateSlot_ValidationError(t *testing.T) {
	slots := &stubSlotService{
		createFn: func(context.Context, services.CreateSlotRequest) (*domain.Slot, error) {
			return nil, domain.ErrValidation
		},
	}
	router := newRouter(slots, &stubBookingService{})

	rec, payload := doRequest(t, router, http.MethodPost, "/slots", "{}")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", payload["error"])
}

func TestGetSlot_Active(t *testing.T) {
	slots := &stubSlotService{
		getFn: func(_ context.Context, id string) (*domain.Slot, error) {
			assert.Equal(t, "abc123", id)
			return activeSlot(), nil
		},
	}
	router := newRouter(slots, &stubBookingService{})

	rec, payload := doRequest(t, router, http.MethodGet, "/slots/abc123", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", payload["slotId"])
	assert.Equal(t, "active", payload["status"])
	assert.Equal(t, "America/New_York", payload["timezone"])

	windows, ok := payload["timeSlots"].([]any)
	require.True(t, ok)
	require.Len(t, windows, 2)
	first, ok := windows[0].(map[string]any)
	require.True(t, ok)
	// 09:00 New York in September is 13:00 UTC.
	assert.Equal(t, "2026-09-10T13:00:00Z", first["utcStart"])
	assert.Equal(t, "2026-09-10T13:30:00Z", first["utcEnd"])
}

func TestGetSlot_NotFound(t *testing.T) {
	slots := &stubSlotService{
		getFn: func(context.Context, string) (*domain.Slot, error) {
			return nil, domain.ErrSlotNotFound
		},
	}
	router := newRouter(slots, &stubBookingService{})

	rec, payload := doRequest(t, router, http.MethodGet, "/slots/gone", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", payload["error"])
}

func TestGetSlot_Expired(t *testing.T) {
	slot := activeSlot()
	slot.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	slots := &stubSlotService{
		getFn: func(context.Context, string) (*domain.Slot, error) { return slot, nil },
	}
	router := newRouter(slots, &stubBookingService{})

	rec, payload := doRequest(t, router, http.MethodGet, "/slots/abc123", "")

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "expired", payload["error"])
}

func TestGetSlot_FullyBooked(t *testing.T) {
	slot := activeSlot()
	slot.BookingsCount = slot.MaxBookings
	slots := &stubSlotService{
		getFn: func(context.Context, string) (*domain.Slot, error) { return slot, nil },
	}
	router := newRouter(slots, &stubBookingService{})

	rec, payload := doRequest(t, router, http.MethodGet, "/slots/abc123", "")

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "fully_booked", payload["error"])
}

func TestBookSlot_Success(t *testing.T) {
	bookings := &stubBookingService{
		bookFn: func(_ context.Context, slotID string, req services.CreateBookingRequest) (*domain.Booking, error) {
			assert.Equal(t, "abc123", slotID)
			assert.Equal(t, "Bob", req.Name)
			require.NotNil(t, req.SelectedTimeSlotIndex)
			assert.Equal(t, 0, *req.SelectedTimeSlotIndex)
			return confirmedBooking(), nil
		},
	}
	router := newRouter(&stubSlotService{}, bookings)

	body := `{"name": "Bob", "email": "bob@example.com", "selectedTimeSlotIndex": 0}`
	rec, payload := doRequest(t, router, http.MethodPost, "/slots/abc123/book", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "b-1", payload["bookingId"])

	booking, ok := payload["booking"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "confirmed", booking["status"])
	assert.Equal(t, "2026-09-10T13:00:00Z", booking["selectedTime"])
	assert.Equal(t, "alice@example.com", booking["creatorEmail"])
}

func TestBookSlot_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
	}{
		{"slot missing", domain.ErrSlotNotFound, http.StatusNotFound, "not_found"},
		{"slot expired", domain.ErrSlotExpired, http.StatusGone, "expired"},
		{"fully booked", domain.ErrSlotFullyBooked, http.StatusGone, "fully_booked"},
		{"window taken", domain.ErrSlotTaken, http.StatusGone, "slot_taken"},
		{"bad index", domain.ErrInvalidSelection, http.StatusBadRequest, "invalid_selection"},
		{"storage failure", context.DeadlineExceeded, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &stubBookingService{
				bookFn: func(context.Context, string, services.CreateBookingRequest) (*domain.Booking, error) {
					return nil, tt.err
				},
			}
			router := newRouter(&stubSlotService{}, bookings)

			body := `{"name": "Bob", "email": "bob@example.com", "selectedTimeSlotIndex": 0}`
			rec, payload := doRequest(t, router, http.MethodPost, "/slots/abc123/book", body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantKey, payload["error"])
		})
	}
}

func TestGetBooking_WithSlot(t *testing.T) {
	bookings := &stubBookingService{
		getFn: func(_ context.Context, bookingID string) (*domain.Booking, *domain.Slot, error) {
			assert.Equal(t, "b-1", bookingID)
			return confirmedBooking(), activeSlot(), nil
		},
	}
	router := newRouter(&stubSlotService{}, bookings)

	rec, payload := doRequest(t, router, http.MethodGet, "/bookings/b-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	booking, ok := payload["booking"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b-1", booking["bookingId"])
	slot, ok := payload["slot"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc123", slot["slotId"])
}

func TestGetBooking_SlotGone(t *testing.T) {
	bookings := &stubBookingService{
		getFn: func(context.Context, string) (*domain.Booking, *domain.Slot, error) {
			return confirmedBooking(), nil, nil
		},
	}
	router := newRouter(&stubSlotService{}, bookings)

	rec, payload := doRequest(t, router, http.MethodGet, "/bookings/b-1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	_, hasSlot := payload["slot"]
	assert.False(t, hasSlot)
}

func TestGetBooking_Cancelled(t *testing.T) {
	booking := confirmedBooking()
	cancelled := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	booking.CancelledAt = &cancelled
	bookings := &stubBookingService{
		getFn: func(context.Context, string) (*domain.Booking, *domain.Slot, error) {
			return booking, nil, nil
		},
	}
	router := newRouter(&stubSlotService{}, bookings)

	rec, payload := doRequest(t, router, http.MethodGet, "/bookings/b-1", "")

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "already_cancelled", payload["error"])
}

func TestRescheduleBooking_Success(t *testing.T) {
	rescheduled := confirmedBooking()
	rescheduled.SelectedTimeSlotIndex = 1
	rescheduled.SelectedTime = time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	rescheduled.RescheduleCount = 1
	now := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
	rescheduled.RescheduledAt = &now
	original := time.Date(2026, 9, 10, 13, 0, 0, 0, time.UTC)
	rescheduled.OriginalSelectedTime = &original

	bookings := &stubBookingService{
		rescheduleFn: func(_ context.Context, bookingID string, req services.RescheduleRequest) (*domain.Booking, error) {
			assert.Equal(t, "b-1", bookingID)
			require.NotNil(t, req.SelectedTimeSlotIndex)
			assert.Equal(t, 1, *req.SelectedTimeSlotIndex)
			return rescheduled, nil
		},
	}
	router := newRouter(&stubSlotService{}, bookings)

	body := `{"selectedTimeSlotIndex": 1}`
	rec, payload := doRequest(t, router, http.MethodPut, "/bookings/b-1/reschedule", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	booking, ok := payload["booking"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), booking["rescheduleCount"])
	assert.Equal(t, "2026-09-10T14:00:00Z", booking["selectedTime"])
	assert.Equal(t, "2026-09-10T13:00:00Z", booking["originalSelectedTime"])
}

func TestRescheduleBooking_LimitReached(t *testing.T) {
	bookings := &stubBookingService{
		rescheduleFn: func(context.Context, string, services.RescheduleRequest) (*domain.Booking, error) {
			return nil, domain.ErrRescheduleLimit
		},
	}
	router := newRouter(&stubSlotService{}, bookings)

	rec, payload := doRequest(t, router, http.MethodPut, "/bookings/b-1/reschedule", `{"selectedTimeSlotIndex": 1}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "reschedule_limit_reached", payload["error"])
}

func TestCancelBooking_Success(t *testing.T) {
	booking := confirmedBooking()
	cancelled := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	booking.CancelledAt = &cancelled

	bookings := &stubBookingService{
		cancelFn: func(_ context.Context, bookingID string) (*domain.Booking, *domain.Slot, error) {
			assert.Equal(t, "b-1", bookingID)
			return booking, activeSlot(), nil
		},
	}
	router := newRouter(&stubSlotService{}, bookings)

	rec, payload := doRequest(t, router, http.MethodDelete, "/bookings/b-1/cancel", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	view, ok := payload["booking"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cancelled", view["status"])
	assert.Equal(t, "2026-09-02T09:00:00Z", view["cancelledAt"])
}

func TestCancelBooking_Already(t *testing.T) {
	bookings := &stubBookingService{
		cancelFn: func(context.Context, string) (*domain.Booking, *domain.Slot, error) {
			return nil, nil, domain.ErrBookingCancelled
		},
	}
	router := newRouter(&stubSlotService{}, bookings)

	rec, payload := doRequest(t, router, http.MethodDelete, "/bookings/b-1/cancel", "")

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "already_cancelled", payload["error"])
}
