package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"courtside/internal/entities"
	apperrors "courtside/internal/errors"
	"courtside/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"slots": h.Service.ListSlots()})
}

func (h *BookingHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.Service.ListCourts()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, courts)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	res, err := h.Service.CheckAvailability(req.CourtID, req.Date)
	if err != nil {
		writeServiceError(w, err, "Error checking availability")
		return
	}
	writeJSON(w, res)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	res, err := h.Service.CreateBooking(&req)
	if err != nil {
		writeServiceError(w, err, "Could not create booking")
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, res)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email query parameter required", http.StatusBadRequest)
		return
	}
	res, err := h.Service.GetBooking(code, email)
	if err != nil {
		writeServiceError(w, err, "Booking not found")
		return
	}
	writeJSON(w, res)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if err := h.Service.CancelBooking(code); err != nil {
		writeServiceError(w, err, "Could not cancel booking")
		return
	}
	writeJSON(w, map[string]string{"message": "Booking cancelled"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrSlotTaken):
		http.Error(w, "Slot already booked, please pick another time", http.StatusConflict)
	case errors.Is(err, apperrors.ErrBookingNotFound), errors.Is(err, apperrors.ErrCourtNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperrors.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}
