package trip

import (
	"errors"
	"strings"
	"time"
)

// StopPoint is a named geographic point attached to a trip or a route.
// Trip-level stop points override route-level defaults with the same id.
type StopPoint struct {
	ID         string
	TripID     *string // set for trip-level stops
	RouteID    *string // set for route-level defaults
	Name       string
	Latitude   float64
	Longitude  float64
	OrderIndex int
	CreatedAt  time.Time
}

var (
	ErrStopNameRequired = errors.New("stop name is required")
	ErrStopUnowned      = errors.New("stop must belong to a trip or a route")
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrNegativeOrder    = errors.New("order_index cannot be negative")
)

// NewTripStop constructs a trip-level stop point.
func NewTripStop(tripID, name string, latitude, longitude float64, orderIndex int) (*StopPoint, error) {
	sp := &StopPoint{
		TripID:     &tripID,
		Name:       strings.TrimSpace(name),
		Latitude:   latitude,
		Longitude:  longitude,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now().UTC(),
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	return sp, nil
}

// NewRouteStop constructs a route-level default stop point.
func NewRouteStop(routeID, name string, latitude, longitude float64, orderIndex int) (*StopPoint, error) {
	sp := &StopPoint{
		RouteID:    &routeID,
		Name:       strings.TrimSpace(name),
		Latitude:   latitude,
		Longitude:  longitude,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now().UTC(),
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	return sp, nil
}

// Validate checks invariants of the StopPoint entity.
func (stop *StopPoint) Validate() error {
	if strings.TrimSpace(stop.Name) == "" {
		return ErrStopNameRequired
	}
	hasTrip := stop.TripID != nil && strings.TrimSpace(*stop.TripID) != ""
	hasRoute := stop.RouteID != nil && strings.TrimSpace(*stop.RouteID) != ""
	if !hasTrip && !hasRoute {
		return ErrStopUnowned
	}
	if stop.Latitude < -90 || stop.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if stop.Longitude < -180 || stop.Longitude > 180 {
		return ErrInvalidLongitude
	}
	if stop.OrderIndex < 0 {
		return ErrNegativeOrder
	}
	return nil
}
