package booking

import (
	"errors"
	"strings"
)

// TripStatus is the granular lifecycle flag on a request: whether the booking
// is merely scheduled, awaiting driver arrival, arrived, or completed. It is
// independent of the coarser RequestStatus approval track.
type TripStatus string

const (
	TripStatusNone             TripStatus = "NONE"
	TripStatusScheduledPending TripStatus = "SCHEDULED_PENDING_APPROVAL"
	TripStatusPendingArrival   TripStatus = "PENDING_ARRIVAL"
	TripStatusArrived          TripStatus = "ARRIVED"
	TripStatusCompleted        TripStatus = "COMPLETED"
)

var ErrInvalidTripStatus = errors.New("invalid trip status")

// ParseTripStatus normalizes (uppercases+trims) and validates a trip status string.
func ParseTripStatus(in string) (TripStatus, error) {
	status := TripStatus(strings.ToUpper(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidTripStatus
}

// Valid reports whether status is one of the allowed trip status constants.
func (status TripStatus) Valid() bool {
	switch status {
	case TripStatusNone, TripStatusScheduledPending, TripStatusPendingArrival, TripStatusArrived, TripStatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the TripStatus.
func (status TripStatus) String() string {
	return string(status)
}

// CanTransitionTo specifies if the status can transition to the next status.
func (status TripStatus) CanTransitionTo(next TripStatus) bool {
	switch status {
	case TripStatusNone:
		return next == TripStatusScheduledPending
	case TripStatusScheduledPending:
		return next == TripStatusPendingArrival
	case TripStatusPendingArrival:
		return next == TripStatusArrived
	case TripStatusArrived:
		return next == TripStatusCompleted
	case TripStatusCompleted:
		return false
	default:
		return false
	}
}

// Terminal indicates if the status is in a terminal state.
func (status TripStatus) Terminal() bool {
	return status == TripStatusCompleted
}

// PreArrival reports whether the booking has not yet reached ARRIVED.
// Rejection is only reachable from pre-arrival states.
func (status TripStatus) PreArrival() bool {
	switch status {
	case TripStatusNone, TripStatusScheduledPending, TripStatusPendingArrival:
		return true
	default:
		return false
	}
}
