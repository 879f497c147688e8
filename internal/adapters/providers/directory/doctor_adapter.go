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

// DoctorDirectoryAdapter implements DoctorDirectory against the external
// doctor registry (GET /doctors/{dni}).
type DoctorDirectoryAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewDoctorDirectoryAdapter creates a new doctor directory adapter
func NewDoctorDirectoryAdapter(baseURL string) providers.DoctorDirectory {
	return &DoctorDirectoryAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetByDNI looks a doctor up by national identifier
func (a *DoctorDirectoryAdapter) GetByDNI(ctx context.Context, dni string) (*entities.Doctor, error) {
	endpoint := fmt.Sprintf("%s/doctors/%s", a.baseURL, url.PathEscape(dni))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctor directory request", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("doctor directory unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %s no encontrado", dni))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("doctor directory returned status %d", resp.StatusCode), nil)
	}

	doctor := &entities.Doctor{}
	if err := json.NewDecoder(resp.Body).Decode(doctor); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode doctor directory response", err)
	}

	return doctor, nil
}
