package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	apperrors "github.com/citasalud/scheduling-api/pkg/errors"
)

type mockSchedulingService struct {
	mock.Mock
}

func (m *mockSchedulingService) Book(ctx context.Context, patientDNI, doctorDNI, day, timeOfDay string) (*entities.Appointment, error) {
	args := m.Called(ctx, patientDNI, doctorDNI, day, timeOfDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *mockSchedulingService) ListByPatient(ctx context.Context, patientDNI string) ([]entities.PatientAppointment, error) {
	args := m.Called(ctx, patientDNI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PatientAppointment), args.Error(1)
}

func (m *mockSchedulingService) Cancel(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func decodeErrorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestSchedulingHandler_BookAppointment(t *testing.T) {
	validBody := `{"dniPaciente":"123","dniDoctor":"456","dia":"Lunes","hora":"09:00:00"}`

	t.Run("books and confirms in plain text", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("Book", mock.Anything, "123", "456", "Lunes", "09:00:00").
			Return(&entities.Appointment{ID: "abc-1"}, nil)
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/agendar", strings.NewReader(validBody))
		rr := httptest.NewRecorder()
		handler.BookAppointment(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Cita agendada con éxito", rr.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
		service.AssertExpectations(t)
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		handler := NewSchedulingHandler(new(mockSchedulingService))

		req := httptest.NewRequest(http.MethodPost, "/agendar", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		handler.BookAppointment(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid request payload", decodeErrorBody(t, rr))
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		handler := NewSchedulingHandler(new(mockSchedulingService))

		req := httptest.NewRequest(http.MethodPost, "/agendar",
			strings.NewReader(`{"dniPaciente":"123","dniDoctor":"456","dia":"Lunes"}`))
		rr := httptest.NewRecorder()
		handler.BookAppointment(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "dniPaciente, dniDoctor, dia y hora son obligatorios", decodeErrorBody(t, rr))
	})

	t.Run("unknown patient maps to 404", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("Book", mock.Anything, "123", "456", "Lunes", "09:00:00").
			Return(nil, apperrors.NewNotFoundError("paciente 123 no encontrado"))
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/agendar", strings.NewReader(validBody))
		rr := httptest.NewRecorder()
		handler.BookAppointment(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "paciente 123 no encontrado", decodeErrorBody(t, rr))
	})

	t.Run("no availability maps to 400", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("Book", mock.Anything, "123", "456", "Lunes", "09:00:00").
			Return(nil, apperrors.NewConflictError("el doctor 456 no tiene disponibilidad (Lunes 09:00:00)"))
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/agendar", strings.NewReader(validBody))
		rr := httptest.NewRecorder()
		handler.BookAppointment(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("upstream failure maps to 500", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("Book", mock.Anything, "123", "456", "Lunes", "09:00:00").
			Return(nil, apperrors.NewUpstreamError("patient directory unreachable", nil))
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/agendar", strings.NewReader(validBody))
		rr := httptest.NewRecorder()
		handler.BookAppointment(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestSchedulingHandler_ListAppointments(t *testing.T) {
	t.Run("returns the enriched list", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("ListByPatient", mock.Anything, "123").Return([]entities.PatientAppointment{
			{ID: "a", Day: "Lunes", Time: "09:00:00",
				Doctor: entities.DoctorSummary{FirstName: "Carlos", LastName: "Ruiz", Specialty: "Cardiologia"}},
			{ID: "b", Day: "Martes", Time: "10:00:00", Doctor: entities.DoctorLookupFailed},
		}, nil)
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/123", nil)
		req.SetPathValue("dniPaciente", "123")
		rr := httptest.NewRecorder()
		handler.ListAppointments(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var body []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, "a", body[0]["id"])
		assert.Equal(t, "Error al obtener datos del doctor", body[1]["doctor"])
	})

	t.Run("no appointments maps to 404", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("ListByPatient", mock.Anything, "123").
			Return(nil, apperrors.NewNotFoundError("el paciente 123 no tiene citas registradas"))
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodGet, "/123", nil)
		req.SetPathValue("dniPaciente", "123")
		rr := httptest.NewRecorder()
		handler.ListAppointments(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "el paciente 123 no tiene citas registradas", decodeErrorBody(t, rr))
	})
}

func TestSchedulingHandler_CancelAppointment(t *testing.T) {
	t.Run("cancels and confirms in plain text", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("Cancel", mock.Anything, "abc-1").Return(nil)
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodDelete, "/cancelar/abc-1", nil)
		req.SetPathValue("idCita", "abc-1")
		rr := httptest.NewRecorder()
		handler.CancelAppointment(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Cita cancelada con éxito", rr.Body.String())
	})

	t.Run("unknown appointment maps to 404", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("Cancel", mock.Anything, "missing").
			Return(apperrors.NewNotFoundError("cita missing no encontrada"))
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodDelete, "/cancelar/missing", nil)
		req.SetPathValue("idCita", "missing")
		rr := httptest.NewRecorder()
		handler.CancelAppointment(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("failed restoration maps to 500", func(t *testing.T) {
		service := new(mockSchedulingService)
		service.On("Cancel", mock.Anything, "abc-1").
			Return(apperrors.NewInternalError("la cita fue cancelada pero no se pudo restaurar la disponibilidad", nil))
		handler := NewSchedulingHandler(service)

		req := httptest.NewRequest(http.MethodDelete, "/cancelar/abc-1", nil)
		req.SetPathValue("idCita", "abc-1")
		rr := httptest.NewRecorder()
		handler.CancelAppointment(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "la cita fue cancelada pero no se pudo restaurar la disponibilidad", decodeErrorBody(t, rr))
	})
}
