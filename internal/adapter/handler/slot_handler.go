package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"whenavailable/internal/core/domain"
	"whenavailable/internal/core/services"
)

type SlotService interface {
	CreateSlot(ctx context.Context, req services.CreateSlotRequest) (*domain.Slot, error)
	GetSlot(ctx context.Context, id string) (*domain.Slot, error)
}

type SlotHandler struct {
	svc     SlotService
	baseURL string
}

func NewSlotHandler(svc SlotService, baseURL string) *SlotHandler {
	return &SlotHandler{svc: svc, baseURL: strings.TrimRight(baseURL, "/")}
}

type createSlotResponse struct {
	Success      bool   `json:"success"`
	SlotID       string `json:"slotId"`
	ShareableURL string `json:"shareableUrl"`
	ExpiresAt    string `json:"expiresAt"`
}

func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req services.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid json body")
		return
	}

	slot, err := h.svc.CreateSlot(r.Context(), req)
	if err != nil {
		mapError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createSlotResponse{
		Success:      true,
		SlotID:       slot.ID,
		ShareableURL: h.baseURL + "/s/" + slot.ID,
		ExpiresAt:    slot.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *SlotHandler) GetSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slot, err := h.svc.GetSlot(r.Context(), ps.ByName("id"))
	if err != nil {
		mapError(w, err)
		return
	}

	now := time.Now().UTC()
	switch slot.Status(now) {
	case domain.SlotExpired:
		mapError(w, domain.ErrSlotExpired)
		return
	case domain.SlotBooked:
		mapError(w, domain.ErrSlotFullyBooked)
		return
	}

	writeJSON(w, http.StatusOK, toSlotView(slot, now))
}
