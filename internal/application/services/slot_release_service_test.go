package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	apperrors "github.com/citasalud/scheduling-api/pkg/errors"
)

// stubAvailabilityRepo fails Delete a configurable number of times before
// succeeding, recording every call. Safe for use from the worker goroutine.
type stubAvailabilityRepo struct {
	mu          sync.Mutex
	deleteCalls int
	failures    int
	failWith    error
	deleted     []entities.Slot
}

func (s *stubAvailabilityRepo) ListByDoctor(context.Context, string) ([]entities.Slot, error) {
	return nil, nil
}

func (s *stubAvailabilityRepo) Insert(context.Context, string, entities.Slot) error {
	return nil
}

func (s *stubAvailabilityRepo) Delete(_ context.Context, _ string, slot entities.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	if s.deleteCalls <= s.failures {
		return s.failWith
	}
	s.deleted = append(s.deleted, slot)
	return nil
}

func (s *stubAvailabilityRepo) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCalls
}

func (s *stubAvailabilityRepo) deletedSlots() []entities.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Slot(nil), s.deleted...)
}

func TestSlotReleaseService_Release(t *testing.T) {
	slot := entities.Slot{Day: "Lunes", Time: "09:00:00"}

	t.Run("deletes the slot", func(t *testing.T) {
		repo := &stubAvailabilityRepo{}
		service := NewSlotReleaseService(repo, nil)
		service.Start()
		defer service.Stop()

		service.Release("456", slot)

		assert.Eventually(t, func() bool {
			return len(repo.deletedSlots()) == 1
		}, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, []entities.Slot{slot}, repo.deletedSlots())
	})

	t.Run("retries a failing deletion until it succeeds", func(t *testing.T) {
		repo := &stubAvailabilityRepo{
			failures: 2,
			failWith: apperrors.NewInternalError("connection reset", nil),
		}
		service := NewSlotReleaseService(repo, nil)
		service.retryCfg.InitialDelay = 5 * time.Millisecond
		service.Start()
		defer service.Stop()

		service.Release("456", slot)

		assert.Eventually(t, func() bool {
			return len(repo.deletedSlots()) == 1
		}, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, 3, repo.calls())
	})

	t.Run("a slot already gone counts as released", func(t *testing.T) {
		repo := &stubAvailabilityRepo{
			failures: 10,
			failWith: apperrors.NewNotFoundError("el doctor 456 no tiene disponibilidad (Lunes 09:00:00)"),
		}
		service := NewSlotReleaseService(repo, nil)
		service.Start()
		defer service.Stop()

		service.Release("456", slot)

		assert.Eventually(t, func() bool {
			return repo.calls() == 1
		}, 2*time.Second, 10*time.Millisecond)

		// Not-found is terminal; no retries follow.
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 1, repo.calls())
	})
}
