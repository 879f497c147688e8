package services

import (
	"context"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	"github.com/citasalud/scheduling-api/internal/domain/repositories"
)

// AvailabilityService administers the slots doctors offer. Slots are
// created here administratively; consumption and restoration happen through
// the scheduling workflow.
type AvailabilityService struct {
	repo repositories.AvailabilityRepository
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(repo repositories.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// ListByDoctor returns the open slots of a doctor
func (s *AvailabilityService) ListByDoctor(ctx context.Context, doctorDNI string) ([]entities.Slot, error) {
	return s.repo.ListByDoctor(ctx, doctorDNI)
}

// Add creates a slot for a doctor
func (s *AvailabilityService) Add(ctx context.Context, doctorDNI string, slot entities.Slot) error {
	return s.repo.Insert(ctx, doctorDNI, slot)
}

// Remove deletes a slot; removing a slot that does not exist is a
// not-found error.
func (s *AvailabilityService) Remove(ctx context.Context, doctorDNI string, slot entities.Slot) error {
	return s.repo.Delete(ctx, doctorDNI, slot)
}
