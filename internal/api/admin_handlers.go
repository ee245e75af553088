package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"courtside/internal/service"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	courtID := r.URL.Query().Get("court_id")
	status := r.URL.Query().Get("status")
	bookings, err := h.Service.ListBookings(date, courtID, status)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, bookings)
}

func (h *AdminHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteBookingByID(id); err != nil {
		writeServiceError(w, err, "Could not delete booking")
		return
	}
	writeJSON(w, map[string]string{"message": "Booking deleted"})
}

func (h *AdminHandler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req UpdateCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateCourt(id, req.HourlyRateCents, req.CleaningBufferMinutes, req.Active); err != nil {
		writeServiceError(w, err, "Could not update court")
		return
	}
	writeJSON(w, map[string]string{"message": "Court updated"})
}
