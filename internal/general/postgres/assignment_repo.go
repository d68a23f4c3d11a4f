package postgres

import (
	"context"
	"errors"

	"trip-track/internal/domain/driver"
	"trip-track/internal/ports"

	"github.com/jackc/pgx/v5"
)

// AssignmentRepo persists driver-trip assignments using pgx and plain SQL.
type AssignmentRepo struct{}

// NewAssignmentRepo constructs a new AssignmentRepo.
func NewAssignmentRepo() ports.AssignmentRepository {
	return &AssignmentRepo{}
}

// Upsert inserts or reactivates an assignment row. Re-assigning an already
// active pair leaves the row (and its created_at) untouched, so the registry
// holds exactly one row per pair.
func (repo *AssignmentRepo) Upsert(ctx context.Context, assignment *driver.Assignment) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO driver_assignments (driver_id, trip_id, is_active, created_at)
		VALUES ($1, $2, true, $3)
		ON CONFLICT (driver_id, trip_id)
		DO UPDATE SET is_active = true
	`, assignment.DriverID, assignment.TripID, assignment.CreatedAt)
	return err
}

// Deactivate clears an assignment. Missing rows are left alone (idempotent).
func (repo *AssignmentRepo) Deactivate(ctx context.Context, tripID, driverID string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE driver_assignments
		SET is_active = false
		WHERE trip_id = $1
		  AND driver_id = $2
	`, tripID, driverID)
	return err
}

// FirstActiveForTrip returns the fallback driver for a trip. Tie-break for
// convoys (several active drivers on one trip): earliest created_at wins,
// driver_id as a deterministic final tie-break.
func (repo *AssignmentRepo) FirstActiveForTrip(ctx context.Context, tripID string) (*driver.Assignment, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out driver.Assignment
	err = tx.QueryRow(ctx, `
		SELECT driver_id, trip_id, is_active, created_at
		FROM driver_assignments
		WHERE trip_id = $1
		  AND is_active = true
		ORDER BY created_at, driver_id
		LIMIT 1
	`, tripID).Scan(&out.DriverID, &out.TripID, &out.IsActive, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, driver.ErrNoDriverAssigned
	}
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// ActiveForTrip returns all active assignments of a trip, oldest first.
func (repo *AssignmentRepo) ActiveForTrip(ctx context.Context, tripID string) ([]driver.Assignment, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT driver_id, trip_id, is_active, created_at
		FROM driver_assignments
		WHERE trip_id = $1
		  AND is_active = true
		ORDER BY created_at, driver_id
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []driver.Assignment
	for rows.Next() {
		var a driver.Assignment
		if err := rows.Scan(&a.DriverID, &a.TripID, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// ActiveTripIDsForDriver returns ids of trips the driver holds active assignments on.
func (repo *AssignmentRepo) ActiveTripIDsForDriver(ctx context.Context, driverID string) ([]string, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT trip_id
		FROM driver_assignments
		WHERE driver_id = $1
		  AND is_active = true
		ORDER BY created_at
	`, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
