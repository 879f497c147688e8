package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
)

// AvailabilityService defines the interface for slot administration
type AvailabilityService interface {
	ListByDoctor(ctx context.Context, doctorDNI string) ([]entities.Slot, error)
	Add(ctx context.Context, doctorDNI string, slot entities.Slot) error
	Remove(ctx context.Context, doctorDNI string, slot entities.Slot) error
}

// AvailabilityHandler handles slot administration requests
type AvailabilityHandler struct {
	service AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(service AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
	}
}

type slotRequest struct {
	Day  string `json:"dia"`
	Time string `json:"hora"`
}

// GetAvailability handles GET /disponibilidad/{dni}
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorDNI := r.PathValue("dni")
	if isBlank(doctorDNI) {
		respondWithError(w, http.StatusBadRequest, "dni is required")
		return
	}

	slots, err := h.service.ListByDoctor(r.Context(), doctorDNI)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if slots == nil {
		slots = []entities.Slot{}
	}
	respondWithJSON(w, http.StatusOK, slots)
}

// AddAvailability handles POST /disponibilidad/{dni}
func (h *AvailabilityHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	doctorDNI := r.PathValue("dni")
	if isBlank(doctorDNI) {
		respondWithError(w, http.StatusBadRequest, "dni is required")
		return
	}

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if isBlank(req.Day) || isBlank(req.Time) {
		respondWithError(w, http.StatusBadRequest, "dia y hora son obligatorios")
		return
	}

	if err := h.service.Add(r.Context(), doctorDNI, entities.Slot{Day: req.Day, Time: req.Time}); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithText(w, http.StatusOK, "Disponibilidad agregada con éxito")
}

// RemoveAvailability handles DELETE /disponibilidad/{dni}
func (h *AvailabilityHandler) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	doctorDNI := r.PathValue("dni")
	if isBlank(doctorDNI) {
		respondWithError(w, http.StatusBadRequest, "dni is required")
		return
	}

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if isBlank(req.Day) || isBlank(req.Time) {
		respondWithError(w, http.StatusBadRequest, "dia y hora son obligatorios")
		return
	}

	if err := h.service.Remove(r.Context(), doctorDNI, entities.Slot{Day: req.Day, Time: req.Time}); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithText(w, http.StatusOK, "Disponibilidad eliminada con éxito")
}
