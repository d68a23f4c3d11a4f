package postgres

import (
	"context"
	"time"

	"trip-track/internal/domain/trip"
	"trip-track/internal/ports"
)

// TripRepo reads the trip directory using pgx and plain SQL.
type TripRepo struct{}

// NewTripRepo constructs a new TripRepo.
func NewTripRepo() ports.TripRepository {
	return &TripRepo{}
}

// GetByID returns one trip by id, without its stop points.
func (repo *TripRepo) GetByID(ctx context.Context, tripID string) (*trip.Trip, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out trip.Trip
	var tripType string

	err = tx.QueryRow(ctx, `
		SELECT
			id, created_at, updated_at,
			route_id, trip_type, trip_date,
			meeting_time, departure_time,
			start_name, start_lat, start_lng,
			end_name, end_lat, end_lng,
			is_active
		FROM trips
		WHERE id = $1
	`, tripID).Scan(
		&out.ID, &out.CreatedAt, &out.UpdatedAt,
		&out.RouteID, &tripType, &out.TripDate,
		&out.MeetingTime, &out.DepartureTime,
		&out.StartName, &out.StartLatitude, &out.StartLongitude,
		&out.EndName, &out.EndLatitude, &out.EndLongitude,
		&out.IsActive,
	)
	if err != nil {
		return nil, err
	}

	out.Type = trip.TripType(tripType)
	return &out, nil
}

// Stops returns the trip-level stop points ordered by order_index.
func (repo *TripRepo) Stops(ctx context.Context, tripID string) ([]trip.StopPoint, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, trip_id, route_id, name, latitude, longitude, order_index, created_at
		FROM stop_points
		WHERE trip_id = $1
		ORDER BY order_index
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStops(rows)
}

// ListActiveOn returns active trips scheduled on the given day.
func (repo *TripRepo) ListActiveOn(ctx context.Context, day time.Time) ([]*trip.Trip, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT
			id, created_at, updated_at,
			route_id, trip_type, trip_date,
			meeting_time, departure_time,
			start_name, start_lat, start_lng,
			end_name, end_lat, end_lng,
			is_active
		FROM trips
		WHERE is_active = true
		  AND trip_date = $1::date
		ORDER BY departure_time, id
	`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*trip.Trip
	for rows.Next() {
		var out trip.Trip
		var tripType string

		if err := rows.Scan(
			&out.ID, &out.CreatedAt, &out.UpdatedAt,
			&out.RouteID, &tripType, &out.TripDate,
			&out.MeetingTime, &out.DepartureTime,
			&out.StartName, &out.StartLatitude, &out.StartLongitude,
			&out.EndName, &out.EndLatitude, &out.EndLongitude,
			&out.IsActive,
		); err != nil {
			return nil, err
		}

		out.Type = trip.TripType(tripType)
		trips = append(trips, &out)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}
