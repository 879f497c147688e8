package providers

import (
	"context"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
)

// AppointmentStore is the external history service that owns appointment
// records.
type AppointmentStore interface {
	// Create stores a new appointment and returns it with the id issued by
	// the history service.
	Create(ctx context.Context, appointment *entities.Appointment) (*entities.Appointment, error)

	// GetByID returns an appointment or a not-found error.
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// ListByPatient returns all appointments of a patient, oldest first as
	// ordered by the history service. A patient with no appointments yields
	// an empty slice, not an error.
	ListByPatient(ctx context.Context, patientDNI string) ([]entities.Appointment, error)

	// Delete removes an appointment or returns a not-found error.
	Delete(ctx context.Context, id string) error
}
