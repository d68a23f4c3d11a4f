package postgres

import (
	"context"
	"errors"
	"fmt"

	"trip-track/internal/domain/booking"
	"trip-track/internal/ports"

	"github.com/jackc/pgx/v5"
)

// RequestRepo persists booking requests using pgx and plain SQL.
type RequestRepo struct{}

// NewRequestRepo constructs a new RequestRepo.
func NewRequestRepo() ports.RequestRepository {
	return &RequestRepo{}
}

const requestColumns = `
	id, created_at, updated_at,
	visitor_name, trip_id,
	status, trip_status,
	selected_dropoff_stop_id, selected_pickup_stop_id,
	assigned_driver_id`

// GetByID fetches a request by its id.
func (repo *RequestRepo) GetByID(ctx context.Context, requestID string) (*booking.Request, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM requests
		WHERE id = $1
	`, requestID)

	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("request %s not found", requestID)
	}
	if err != nil {
		return nil, err
	}

	return request, nil
}

// ListForTrip returns the trip's non-rejected requests ordered by creation
// time. Rejected requests never appear on manifests or snapshots.
func (repo *RequestRepo) ListForTrip(ctx context.Context, tripID string) ([]*booking.Request, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+requestColumns+`
		FROM requests
		WHERE trip_id = $1
		  AND status != 'REJECTED'
		ORDER BY created_at, id
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*booking.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// UpdateState persists both status tracks after a domain transition.
func (repo *RequestRepo) UpdateState(ctx context.Context, requestID string, status booking.RequestStatus, tripStatus booking.TripStatus) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE requests
		SET status = $2,
		    trip_status = $3,
		    updated_at = now()
		WHERE id = $1
	`, requestID, status.String(), tripStatus.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s not found", requestID)
	}

	return nil
}

// CountForTrip counts the trip's non-rejected requests.
func (repo *RequestRepo) CountForTrip(ctx context.Context, tripID string) (int, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	err = tx.QueryRow(ctx, `
		SELECT count(*)
		FROM requests
		WHERE trip_id = $1
		  AND status != 'REJECTED'
	`, tripID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func scanRequest(row pgx.Row) (*booking.Request, error) {
	var (
		request           booking.Request
		rawStatus, rawTrp string
	)
	err := row.Scan(
		&request.ID, &request.CreatedAt, &request.UpdatedAt,
		&request.VisitorName, &request.TripID,
		&rawStatus, &rawTrp,
		&request.SelectedDropoffStopID, &request.SelectedPickupStopID,
		&request.AssignedDriverID,
	)
	if err != nil {
		return nil, err
	}

	if request.Status, err = booking.ParseRequestStatus(rawStatus); err != nil {
		return nil, fmt.Errorf("request %s: %w", request.ID, err)
	}
	if request.TripStatus, err = booking.ParseTripStatus(rawTrp); err != nil {
		return nil, fmt.Errorf("request %s: %w", request.ID, err)
	}

	return &request, nil
}
