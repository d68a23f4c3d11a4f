package driver

import (
	"errors"
	"strings"
	"time"
)

// Assignment is the domain entity corresponding to the `driver_assignments`
// table: one (driver, trip) pair with an active flag. A trip may carry
// several active assignments (convoy) and a driver may hold assignments on
// several trips across different dates.
type Assignment struct {
	DriverID  string
	TripID    string
	IsActive  bool
	CreatedAt time.Time
}

var (
	// ErrTypeMismatch means the operator tried to assign across trip types
	// (arrivals tab against a departure trip or vice versa). Local
	// validation, surfaced to the operator, never retried.
	ErrTypeMismatch = errors.New("assignment context does not match trip type")

	// ErrNoDriverAssigned is an expected outcome, not a failure: callers
	// must treat it as "tracking unavailable".
	ErrNoDriverAssigned = errors.New("no driver assigned")

	ErrAssignDriverRequired = errors.New("driver id is required")
	ErrAssignTripRequired   = errors.New("trip id is required")
)

// NewAssignment constructs an active Assignment.
func NewAssignment(driverID, tripID string) (*Assignment, error) {
	if driverID = strings.TrimSpace(driverID); driverID == "" {
		return nil, ErrAssignDriverRequired
	}
	if tripID = strings.TrimSpace(tripID); tripID == "" {
		return nil, ErrAssignTripRequired
	}
	return &Assignment{
		DriverID:  driverID,
		TripID:    tripID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}, nil
}
