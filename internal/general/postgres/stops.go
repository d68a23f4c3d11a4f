package postgres

import (
	"trip-track/internal/domain/trip"

	"github.com/jackc/pgx/v5"
)

// scanStops reads stop_points rows in the column order used by the trip and
// route repositories.
func scanStops(rows pgx.Rows) ([]trip.StopPoint, error) {
	var stops []trip.StopPoint
	for rows.Next() {
		var sp trip.StopPoint
		if err := rows.Scan(
			&sp.ID, &sp.TripID, &sp.RouteID,
			&sp.Name, &sp.Latitude, &sp.Longitude,
			&sp.OrderIndex, &sp.CreatedAt,
		); err != nil {
			return nil, err
		}
		stops = append(stops, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stops, nil
}
