package contracts

import "time"

// DriverAssignedMessage is published by the booking service when an operator
// assigns (or unassigns) a driver to a trip.
// Exchange: ExchangeTripOpsTopic, routing key: RouteAssignmentPrefix + {trip_id}.
type DriverAssignedMessage struct {
	TripID    string    `json:"trip_id"`
	DriverID  string    `json:"driver_id"`
	TripType  string    `json:"trip_type"`
	IsActive  bool      `json:"is_active"`
	Timestamp time.Time `json:"timestamp"`
	Envelope
}

// TripStatusChangedMessage is published on every request trip_status transition.
// Exchange: ExchangeTripOpsTopic, routing key: RouteStatusPrefix + {trip_id}.
type TripStatusChangedMessage struct {
	RequestID  string    `json:"request_id"`
	TripID     string    `json:"trip_id,omitempty"`
	Status     string    `json:"status"`
	TripStatus string    `json:"trip_status"`
	Timestamp  time.Time `json:"timestamp"`
	Envelope
}

// TrackingStaleMessage is published when a tracking session self-cancels
// after detecting a stale driver location.
// Exchange: ExchangeTripOpsTopic, routing key: RouteTrackingPrefix + {trip_id}.
type TrackingStaleMessage struct {
	RequestID string    `json:"request_id"`
	TripID    string    `json:"trip_id"`
	DriverID  string    `json:"driver_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Envelope
}
