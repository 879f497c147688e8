package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	"github.com/citasalud/scheduling-api/internal/domain/providers"
	apperrors "github.com/citasalud/scheduling-api/pkg/errors"
)

// HistoryAdapter implements AppointmentStore against the external
// appointment history service (/citas endpoints).
type HistoryAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewHistoryAdapter creates a new appointment history adapter
func NewHistoryAdapter(baseURL string) providers.AppointmentStore {
	return &HistoryAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Create stores a new appointment; the history service issues the id
func (a *HistoryAdapter) Create(ctx context.Context, appointment *entities.Appointment) (*entities.Appointment, error) {
	payload, err := json.Marshal(appointment)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode appointment", err)
	}

	endpoint := fmt.Sprintf("%s/citas", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build history request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("appointment history unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("appointment history returned status %d", resp.StatusCode), nil)
	}

	created := &entities.Appointment{}
	if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode created appointment", err)
	}

	return created, nil
}

// GetByID returns an appointment by its opaque id
func (a *HistoryAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	endpoint := fmt.Sprintf("%s/citas/%s", a.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build history request", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("appointment history unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("cita %s no encontrada", id))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("appointment history returned status %d", resp.StatusCode), nil)
	}

	appointment := &entities.Appointment{}
	if err := json.NewDecoder(resp.Body).Decode(appointment); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode appointment", err)
	}

	return appointment, nil
}

// ListByPatient returns all appointments of a patient in the order the
// history service stores them. The history service answers 404 for a
// patient with no citas; that maps to an empty list here.
func (a *HistoryAdapter) ListByPatient(ctx context.Context, patientDNI string) ([]entities.Appointment, error) {
	endpoint := fmt.Sprintf("%s/citas/paciente/%s", a.baseURL, url.PathEscape(patientDNI))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build history request", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("appointment history unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("appointment history returned status %d", resp.StatusCode), nil)
	}

	var appointments []entities.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appointments); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode appointment list", err)
	}

	return appointments, nil
}

// Delete removes an appointment record
func (a *HistoryAdapter) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/citas/%s", a.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build history request", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError("appointment history unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError(fmt.Sprintf("cita %s no encontrada", id))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return apperrors.NewUpstreamError(
			fmt.Sprintf("appointment history returned status %d", resp.StatusCode), nil)
	}

	return nil
}
