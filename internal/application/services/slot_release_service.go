package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	"github.com/citasalud/scheduling-api/internal/domain/repositories"
	"github.com/citasalud/scheduling-api/internal/infrastructure/observability"
	apperrors "github.com/citasalud/scheduling-api/pkg/errors"
	"github.com/citasalud/scheduling-api/pkg/retry"
)

// SlotReleaseService deletes consumed slots after a booking has already
// been confirmed to the caller. Contract: Release never blocks the request
// path; each task is retried with exponential backoff; a task whose retries
// are exhausted is logged and counted, and the slot stays visible until an
// operator removes it.
type SlotReleaseService struct {
	repo     repositories.AvailabilityRepository
	metrics  *observability.Metrics
	tasks    chan releaseTask
	retryCfg retry.Config
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

type releaseTask struct {
	id        string
	doctorDNI string
	slot      entities.Slot
}

// NewSlotReleaseService creates a new slot release service. metrics may be
// nil when telemetry is disabled.
func NewSlotReleaseService(repo repositories.AvailabilityRepository, metrics *observability.Metrics) *SlotReleaseService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SlotReleaseService{
		repo:    repo,
		metrics: metrics,
		tasks:   make(chan releaseTask, 128),
		retryCfg: retry.Config{
			MaxAttempts:     5,
			InitialDelay:    200 * time.Millisecond,
			MaxDelay:        5 * time.Second,
			BackoffFactor:   2.0,
			MaxTotalTimeout: 30 * time.Second,
		},
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start begins processing release tasks
func (s *SlotReleaseService) Start() {
	go s.process()
	log.Info().Msg("slot release service started")
}

// Stop stops the worker. Queued tasks that have not run yet are lost,
// which is acceptable for a best-effort compensation.
func (s *SlotReleaseService) Stop() {
	s.cancel()
	<-s.done
	log.Info().Msg("slot release service stopped")
}

// Release enqueues the deletion of a consumed slot. When the queue is full
// the task is dropped and logged rather than delaying the caller.
func (s *SlotReleaseService) Release(doctorDNI string, slot entities.Slot) {
	task := releaseTask{
		id:        uuid.New().String(),
		doctorDNI: doctorDNI,
		slot:      slot,
	}

	select {
	case s.tasks <- task:
	default:
		log.Error().
			Str("task_id", task.id).
			Str("dni_doctor", doctorDNI).
			Str("dia", slot.Day).
			Str("hora", slot.Time).
			Msg("slot release queue full, task dropped; slot remains visible")
	}
}

func (s *SlotReleaseService) process() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case task := <-s.tasks:
			s.release(task)
		}
	}
}

func (s *SlotReleaseService) release(task releaseTask) {
	err := retry.Do(s.ctx, s.retryCfg, "slot release", func() error {
		ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
		defer cancel()

		err := s.repo.Delete(ctx, task.doctorDNI, task.slot)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			// Already gone, nothing left to release.
			return nil
		}
		return err
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().Err(err).
			Str("task_id", task.id).
			Int("attempt", attempt).
			Dur("next_delay", nextDelay).
			Msg("slot release attempt failed, retrying")
	})

	if err != nil {
		log.Error().Err(err).
			Str("task_id", task.id).
			Str("dni_doctor", task.doctorDNI).
			Str("dia", task.slot.Day).
			Str("hora", task.slot.Time).
			Msg("slot release exhausted retries; slot remains visible though consumed")
		if s.metrics != nil {
			observability.RecordSlotReleaseFailure(context.Background(), s.metrics, task.doctorDNI)
		}
	}
}
