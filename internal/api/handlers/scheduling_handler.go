package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	apperrors "github.com/citasalud/scheduling-api/pkg/errors"
)

// SchedulingService defines the interface for the scheduling workflow
type SchedulingService interface {
	Book(ctx context.Context, patientDNI, doctorDNI, day, timeOfDay string) (*entities.Appointment, error)
	ListByPatient(ctx context.Context, patientDNI string) ([]entities.PatientAppointment, error)
	Cancel(ctx context.Context, appointmentID string) error
}

// SchedulingHandler handles booking, listing and cancellation requests
type SchedulingHandler struct {
	service SchedulingService
}

// NewSchedulingHandler creates a new scheduling handler
func NewSchedulingHandler(service SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{
		service: service,
	}
}

type bookingRequest struct {
	PatientDNI string `json:"dniPaciente"`
	DoctorDNI  string `json:"dniDoctor"`
	Day        string `json:"dia"`
	Time       string `json:"hora"`
}

// BookAppointment handles POST /agendar
func (h *SchedulingHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if isBlank(req.PatientDNI) || isBlank(req.DoctorDNI) || isBlank(req.Day) || isBlank(req.Time) {
		respondWithError(w, http.StatusBadRequest, "dniPaciente, dniDoctor, dia y hora son obligatorios")
		return
	}

	if _, err := h.service.Book(r.Context(), req.PatientDNI, req.DoctorDNI, req.Day, req.Time); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithText(w, http.StatusCreated, "Cita agendada con éxito")
}

// ListAppointments handles GET /{dniPaciente}
func (h *SchedulingHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	patientDNI := r.PathValue("dniPaciente")
	if isBlank(patientDNI) {
		respondWithError(w, http.StatusBadRequest, "dniPaciente is required")
		return
	}

	appointments, err := h.service.ListByPatient(r.Context(), patientDNI)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointments)
}

// CancelAppointment handles DELETE /cancelar/{idCita}
func (h *SchedulingHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("idCita")
	if isBlank(appointmentID) {
		respondWithError(w, http.StatusBadRequest, "idCita is required")
		return
	}

	if err := h.service.Cancel(r.Context(), appointmentID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithText(w, http.StatusOK, "Cita cancelada con éxito")
}

// Helper functions

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithText(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write([]byte(message))
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError is the single place where error kinds become HTTP
// status codes.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, appErr.Message)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}
