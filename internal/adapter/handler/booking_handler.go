package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"whenavailable/internal/core/domain"
	"whenavailable/internal/core/services"
)

type BookingService interface {
	Book(ctx context.Context, slotID string, req services.CreateBookingRequest) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.Booking, *domain.Slot, error)
	Reschedule(ctx context.Context, bookingID string, req services.RescheduleRequest) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID string) (*domain.Booking, *domain.Slot, error)
}

type BookingHandler struct {
	svc BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type bookResponse struct {
	Success   bool        `json:"success"`
	BookingID string      `json:"bookingId"`
	Booking   bookingView `json:"booking"`
}

func (h *BookingHandler) BookSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid json body")
		return
	}

	booking, err := h.svc.Book(r.Context(), ps.ByName("id"), req)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookResponse{
		Success:   true,
		BookingID: booking.ID,
		Booking:   toBookingView(booking),
	})
}

type bookingDetailsResponse struct {
	Booking bookingView `json:"booking"`
	Slot    *slotView   `json:"slot,omitempty"`
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, slot, err := h.svc.GetBooking(r.Context(), ps.ByName("bookingId"))
	if err != nil {
		mapError(w, err)
		return
	}

	if booking.IsCancelled() {
		mapError(w, domain.ErrBookingCancelled)
		return
	}

	resp := bookingDetailsResponse{Booking: toBookingView(booking)}
	if slot != nil {
		view := toSlotView(slot, time.Now().UTC())
		resp.Slot = &view
	}

	writeJSON(w, http.StatusOK, resp)
}

type bookingSummaryResponse struct {
	Success bool        `json:"success"`
	Booking bookingView `json:"booking"`
}

func (h *BookingHandler) RescheduleBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req services.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid json body")
		return
	}

	booking, err := h.svc.Reschedule(r.Context(), ps.ByName("bookingId"), req)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookingSummaryResponse{
		Success: true,
		Booking: toBookingView(booking),
	})
}

type cancelResponse struct {
	Success bool        `json:"success"`
	Booking bookingView `json:"booking"`
	Slot    *slotView   `json:"slot,omitempty"`
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, slot, err := h.svc.Cancel(r.Context(), ps.ByName("bookingId"))
	if err != nil {
		mapError(w, err)
		return
	}

	resp := cancelResponse{Success: true, Booking: toBookingView(booking)}
	if slot != nil {
		view := toSlotView(slot, time.Now().UTC())
		resp.Slot = &view
	}

	writeJSON(w, http.StatusOK, resp)
}
