package trip

import (
	"errors"
	"strings"
	"time"
)

// Trip is the domain entity corresponding to the `trips` table.
// A trip belongs to exactly one route; its route and type never change
// after creation. It may be deactivated by the operator.
type Trip struct {
	// Identity & audit
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Core fields
	RouteID  string
	Type     TripType
	TripDate time.Time // date component only, in the portal's local day

	// Schedule
	MeetingTime   string // "HH:MM" wall-clock, display only
	DepartureTime string

	// Endpoint names and coordinates
	StartName      string
	StartLatitude  float64
	StartLongitude float64
	EndName        string
	EndLatitude    float64
	EndLongitude   float64

	// Operational state
	IsActive bool

	// Trip-level stop points, ordered by OrderIndex.
	Stops []StopPoint
}

var (
	ErrRouteRequired    = errors.New("route id is required")
	ErrTripDateRequired = errors.New("trip date is required")
	ErrTripInactive     = errors.New("trip is not active")
)

// NewTrip constructs a Trip entity. Route and type are fixed at creation.
func NewTrip(routeID string, tripType TripType, tripDate time.Time) (*Trip, error) {
	if routeID = strings.TrimSpace(routeID); routeID == "" {
		return nil, ErrRouteRequired
	}
	if !tripType.Valid() {
		return nil, ErrInvalidTripType
	}
	if tripDate.IsZero() {
		return nil, ErrTripDateRequired
	}

	now := time.Now().UTC()
	return &Trip{
		CreatedAt: now,
		UpdatedAt: now,
		RouteID:   routeID,
		Type:      tripType,
		TripDate:  tripDate,
		IsActive:  true,
	}, nil
}

// Deactivate marks the trip inactive. Idempotent.
func (trip *Trip) Deactivate() {
	if !trip.IsActive {
		return
	}
	trip.IsActive = false
	trip.touch()
}

// ScheduledOn reports whether the trip is scheduled on the given day.
// Tracking is strictly day-scoped, so callers compare against "today".
func (trip *Trip) ScheduledOn(day time.Time) bool {
	y1, m1, d1 := trip.TripDate.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (trip *Trip) touch() {
	trip.UpdatedAt = time.Now().UTC()
}
