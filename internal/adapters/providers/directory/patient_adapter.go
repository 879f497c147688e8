package directory

import (
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

// PatientDirectoryAdapter implements PatientDirectory against the external
// patient registry (GET /pacientes/{dni}).
type PatientDirectoryAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewPatientDirectoryAdapter creates a new patient directory adapter
func NewPatientDirectoryAdapter(baseURL string) providers.PatientDirectory {
	return &PatientDirectoryAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetByDNI looks a patient up by national identifier
func (a *PatientDirectoryAdapter) GetByDNI(ctx context.Context, dni string) (*entities.Patient, error) {
	endpoint := fmt.Sprintf("%s/pacientes/%s", a.baseURL, url.PathEscape(dni))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build patient directory request", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("patient directory unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("paciente %s no encontrado", dni))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("patient directory returned status %d", resp.StatusCode), nil)
	}

	patient := &entities.Patient{}
	if err := json.NewDecoder(resp.Body).Decode(patient); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode patient directory response", err)
	}

	return patient, nil
}
