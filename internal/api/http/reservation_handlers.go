package httpapi

import (
	"encoding/json"
	"net/http"

	"restaurant-ops/internal/domain"
)

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reservation, err := h.Reservations.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.publish(r.Context(), domain.ReservationEvent(domain.EventReservationCreated, reservation, h.Clock.Now()))
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) getReservations(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := queryID(r, "restaurantId")
	if err != nil {
		http.Error(w, "restaurantId is required", http.StatusBadRequest)
		return
	}
	day, err := h.queryDay(r)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	reservations, err := h.Reservations.FindForRestaurantOnDate(r.Context(), restaurantID, day)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}
	reservation, err := h.Reservations.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) updateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}
	raw, err := requestedStatus(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status, err := domain.ParseReservationStatus(raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	reservation, err := h.Reservations.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.publish(r.Context(), domain.ReservationEvent(domain.EventReservationStatusChanged, reservation, h.Clock.Now()))
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) deleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}
	if err := h.Reservations.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
