// Package routing wraps the external routing oracle behind a narrow
// injectable interface so any provider can be substituted, including test
// doubles. Routing-algorithm internals are out of scope for this core.
package routing

import (
	"context"

	"trip-track/internal/domain/geo"
)

// Leg is one segment of a route as reported by the oracle.
type Leg struct {
	DurationSeconds float64
	DistanceMeters  float64
	DurationText    string
	DistanceText    string
}

// Estimate is the human-readable result of one origin->destination query.
type Estimate struct {
	DurationText string
	DistanceText string
}

// Client is the routing oracle contract:
// route(origin, destination) -> legs | error.
type Client interface {
	Route(ctx context.Context, origin, destination geo.LatLng) ([]Leg, error)
}
