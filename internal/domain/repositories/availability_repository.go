package repositories

import (
	"context"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
)

// AvailabilityRepository is the interface for the disponibilidad table.
type AvailabilityRepository interface {
	// ListByDoctor returns all open slots of a doctor.
	ListByDoctor(ctx context.Context, doctorDNI string) ([]entities.Slot, error)

	// Insert creates a slot for a doctor.
	Insert(ctx context.Context, doctorDNI string, slot entities.Slot) error

	// Delete removes a slot. Deleting a slot that does not exist returns a
	// not-found error.
	Delete(ctx context.Context, doctorDNI string, slot entities.Slot) error
}
