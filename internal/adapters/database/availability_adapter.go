package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	"github.com/citasalud/scheduling-api/internal/domain/repositories"
	"github.com/citasalud/scheduling-api/internal/infrastructure/clients/postgres"
	apperrors "github.com/citasalud/scheduling-api/pkg/errors"
)

const availabilityTable = "disponibilidad"

// AvailabilityAdapter implements the AvailabilityRepository interface over
// the disponibilidad table (dia, hora, dni_doctor).
type AvailabilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAvailabilityAdapter creates a new availability adapter
func NewAvailabilityAdapter(client *postgres.Client) repositories.AvailabilityRepository {
	return &AvailabilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByDoctor returns all open slots of a doctor
func (a *AvailabilityAdapter) ListByDoctor(ctx context.Context, doctorDNI string) ([]entities.Slot, error) {
	query, args, err := a.db.Select("dia", "hora").
		From(availabilityTable).
		Where(goqu.Ex{"dni_doctor": doctorDNI}).
		Order(goqu.I("dia").Asc(), goqu.I("hora").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build availability query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list availability", err)
	}
	defer rows.Close()

	var slots []entities.Slot
	for rows.Next() {
		var slot entities.Slot
		if err := rows.Scan(&slot.Day, &slot.Time); err != nil {
			return nil, apperrors.NewInternalError("failed to scan availability row", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read availability rows", err)
	}

	return slots, nil
}

// Insert creates a slot for a doctor
func (a *AvailabilityAdapter) Insert(ctx context.Context, doctorDNI string, slot entities.Slot) error {
	record := goqu.Record{
		"dni_doctor": doctorDNI,
		"dia":        slot.Day,
		"hora":       slot.Time,
	}

	query, args, err := a.db.Insert(availabilityTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build availability insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert availability", err)
	}

	return nil
}

// Delete removes a slot; a missing slot maps to a not-found error
func (a *AvailabilityAdapter) Delete(ctx context.Context, doctorDNI string, slot entities.Slot) error {
	query, args, err := a.db.Delete(availabilityTable).
		Where(goqu.Ex{
			"dni_doctor": doctorDNI,
			"dia":        slot.Day,
			"hora":       slot.Time,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build availability delete", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete availability", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf(
			"el doctor %s no tiene disponibilidad (%s %s)", doctorDNI, slot.Day, slot.Time))
	}

	return nil
}
