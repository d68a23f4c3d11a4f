package postgres

import (
	"context"

	"trip-track/internal/domain/trip"
	"trip-track/internal/ports"
)

// RouteRepo reads the route catalog using pgx and plain SQL.
type RouteRepo struct{}

// NewRouteRepo constructs a new RouteRepo.
func NewRouteRepo() ports.RouteRepository {
	return &RouteRepo{}
}

// GetByID returns one route by id, without its default stops.
func (repo *RouteRepo) GetByID(ctx context.Context, routeID string) (*trip.Route, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out trip.Route
	err = tx.QueryRow(ctx, `
		SELECT id, created_at, updated_at, name, company_name, company_phone
		FROM routes
		WHERE id = $1
	`, routeID).Scan(
		&out.ID, &out.CreatedAt, &out.UpdatedAt,
		&out.Name, &out.CompanyName, &out.CompanyPhone,
	)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// DefaultStops returns the route-level default stop points ordered by order_index.
func (repo *RouteRepo) DefaultStops(ctx context.Context, routeID string) ([]trip.StopPoint, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, trip_id, route_id, name, latitude, longitude, order_index, created_at
		FROM stop_points
		WHERE route_id = $1
		  AND trip_id IS NULL
		ORDER BY order_index
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStops(rows)
}
