package providers

import (
	"context"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
)

// PatientDirectory is the external patient registry this service depends on
// but does not own. A transport 404 surfaces as a domain not-found error;
// any other failure surfaces as an upstream error.
type PatientDirectory interface {
	GetByDNI(ctx context.Context, dni string) (*entities.Patient, error)
}

// DoctorDirectory is the external doctor registry.
type DoctorDirectory interface {
	GetByDNI(ctx context.Context, dni string) (*entities.Doctor, error)
}
