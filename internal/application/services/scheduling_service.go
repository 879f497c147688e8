package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	"github.com/citasalud/scheduling-api/internal/domain/providers"
	"github.com/citasalud/scheduling-api/internal/domain/repositories"
	"github.com/citasalud/scheduling-api/internal/infrastructure/observability"
	apperrors "github.com/citasalud/scheduling-api/pkg/errors"
)

// SlotReleaser receives slots consumed by a booking for asynchronous
// deletion. Implementations must not block the caller.
type SlotReleaser interface {
	Release(doctorDNI string, slot entities.Slot)
}

// SchedulingService orchestrates booking, listing and cancellation across
// the patient directory, doctor directory, availability table and
// appointment history service. All remote calls are sequential except the
// per-item doctor lookups of the list workflow.
type SchedulingService struct {
	patients     providers.PatientDirectory
	doctors      providers.DoctorDirectory
	history      providers.AppointmentStore
	availability repositories.AvailabilityRepository
	releaser     SlotReleaser
}

// NewSchedulingService creates a new scheduling service
func NewSchedulingService(
	patients providers.PatientDirectory,
	doctors providers.DoctorDirectory,
	history providers.AppointmentStore,
	availability repositories.AvailabilityRepository,
	releaser SlotReleaser,
) *SchedulingService {
	return &SchedulingService{
		patients:     patients,
		doctors:      doctors,
		history:      history,
		availability: availability,
		releaser:     releaser,
	}
}

// Book validates patient, doctor and slot, then creates the appointment
// record. The consumed slot is handed to the releaser and deleted after the
// caller has already received success; if that deletion ultimately fails
// the slot stays visible although it was consumed. That inconsistency is a
// documented property of this workflow, not a bug to patch silently here.
func (s *SchedulingService) Book(ctx context.Context, patientDNI, doctorDNI, day, timeOfDay string) (*entities.Appointment, error) {
	if _, err := s.patients.GetByDNI(ctx, patientDNI); err != nil {
		return nil, err
	}

	if _, err := s.doctors.GetByDNI(ctx, doctorDNI); err != nil {
		return nil, err
	}

	slots, err := s.availability.ListByDoctor(ctx, doctorDNI)
	if err != nil {
		return nil, err
	}
	if !hasSlot(slots, day, timeOfDay) {
		return nil, apperrors.NewConflictError(fmt.Sprintf(
			"el doctor %s no tiene disponibilidad (%s %s)", doctorDNI, day, timeOfDay))
	}

	created, err := s.history.Create(ctx, &entities.Appointment{
		PatientDNI: patientDNI,
		DoctorDNI:  doctorDNI,
		Day:        day,
		Time:       timeOfDay,
	})
	if err != nil {
		return nil, err
	}

	s.releaser.Release(doctorDNI, entities.Slot{Day: day, Time: timeOfDay})

	observability.LoggerFromContext(ctx).Info().
		Str("cita_id", created.ID).
		Str("dni_paciente", patientDNI).
		Str("dni_doctor", doctorDNI).
		Msg("appointment booked")

	return created, nil
}

// ListByPatient returns the patient's appointments enriched with doctor
// details. Doctor lookups run concurrently, one per appointment; a failed
// lookup replaces only that item's doctor field with an error marker, and
// results keep the original appointment ordering.
func (s *SchedulingService) ListByPatient(ctx context.Context, patientDNI string) ([]entities.PatientAppointment, error) {
	appointments, err := s.history.ListByPatient(ctx, patientDNI)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf(
			"el paciente %s no tiene citas registradas", patientDNI))
	}

	enriched := make([]entities.PatientAppointment, len(appointments))

	var wg sync.WaitGroup
	for i, appointment := range appointments {
		enriched[i] = entities.PatientAppointment{
			ID:   appointment.ID,
			Day:  appointment.Day,
			Time: appointment.Time,
		}

		wg.Add(1)
		go func(i int, doctorDNI string) {
			defer wg.Done()

			doctor, err := s.doctors.GetByDNI(ctx, doctorDNI)
			if err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).
					Str("dni_doctor", doctorDNI).
					Msg("doctor lookup failed while listing appointments")
				enriched[i].Doctor = entities.DoctorLookupFailed
				return
			}

			enriched[i].Doctor = entities.DoctorSummary{
				FirstName: doctor.FirstName,
				LastName:  doctor.LastName,
				Specialty: doctor.Specialty,
			}
		}(i, appointment.DoctorDNI)
	}
	wg.Wait()

	return enriched, nil
}

// Cancel deletes an appointment and restores its slot. The restoration runs
// after the record is already gone; when it fails there is no automatic
// re-creation of the appointment, the caller gets an error naming the
// restoration failure instead.
func (s *SchedulingService) Cancel(ctx context.Context, appointmentID string) error {
	appointment, err := s.history.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}

	if err := s.history.Delete(ctx, appointmentID); err != nil {
		return err
	}

	slot := entities.Slot{Day: appointment.Day, Time: appointment.Time}
	if err := s.availability.Insert(ctx, appointment.DoctorDNI, slot); err != nil {
		observability.LoggerFromContext(ctx).Error().Err(err).
			Str("cita_id", appointmentID).
			Str("dni_doctor", appointment.DoctorDNI).
			Msg("appointment deleted but slot restoration failed")
		return apperrors.NewInternalError(
			"la cita fue cancelada pero no se pudo restaurar la disponibilidad", err)
	}

	observability.LoggerFromContext(ctx).Info().
		Str("cita_id", appointmentID).
		Msg("appointment cancelled")

	return nil
}

func hasSlot(slots []entities.Slot, day, timeOfDay string) bool {
	for _, slot := range slots {
		if slot.Day == day && slot.Time == timeOfDay {
			return true
		}
	}
	return false
}
