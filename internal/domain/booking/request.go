package booking

import (
	"errors"
	"strings"
	"time"

	"trip-track/internal/domain/trip"
)

// Request is the domain entity corresponding to the `requests` table: one
// visitor's booking, optionally attached to a trip once scheduled.
type Request struct {
	// Identity & audit
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Booking target
	VisitorName string
	TripID      *string // nil until booked onto a trip

	// Parallel status tracks
	Status     RequestStatus
	TripStatus TripStatus

	// Stop selection. Exactly one of the two is semantically active,
	// resolved by the trip's type: dropoff for arrivals, pickup for
	// departures.
	SelectedDropoffStopID *string
	SelectedPickupStopID  *string

	// Optional override of the trip-level driver assignment.
	AssignedDriverID *string
}

var (
	ErrVisitorNameRequired     = errors.New("visitor name is required")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrRequestRejected         = errors.New("request is rejected")
)

// NewRequest creates a request in PENDING/NONE state, not yet on any trip.
func NewRequest(visitorName string) (*Request, error) {
	if visitorName = strings.TrimSpace(visitorName); visitorName == "" {
		return nil, ErrVisitorNameRequired
	}

	now := time.Now().UTC()
	return &Request{
		CreatedAt:   now,
		UpdatedAt:   now,
		VisitorName: visitorName,
		Status:      StatusPending,
		TripStatus:  TripStatusNone,
	}, nil
}

// State returns the combined booking state value object.
func (request *Request) State() State {
	return State{
		Status:     request.Status,
		TripStatus: request.TripStatus,
		TripID:     request.TripID,
	}
}

// RelevantStopID resolves which selected stop field is active for the
// given trip type. A nil result means "not specified", never an error.
func (request *Request) RelevantStopID(tripType trip.TripType) *string {
	if tripType.IsArrival() {
		return request.SelectedDropoffStopID
	}
	return request.SelectedPickupStopID
}

// Schedule attaches the request to a trip and moves NONE -> SCHEDULED_PENDING_APPROVAL.
func (request *Request) Schedule(tripID string) error {
	if tripID = strings.TrimSpace(tripID); tripID == "" {
		return ErrTripRefRequired
	}
	if !request.TripStatus.CanTransitionTo(TripStatusScheduledPending) {
		return ErrInvalidStatusTransition
	}
	request.TripID = &tripID
	request.setTripStatus(TripStatusScheduledPending)
	return nil
}

// Approve moves the approval track to APPROVED (operator action).
func (request *Request) Approve() error {
	if !request.Status.CanTransitionTo(StatusApproved) {
		return ErrInvalidStatusTransition
	}
	request.setStatus(StatusApproved)
	return nil
}

// Reject is reachable from any pre-arrival state via operator action.
func (request *Request) Reject() error {
	if request.Status.Terminal() || !request.TripStatus.PreArrival() {
		return ErrInvalidStatusTransition
	}
	request.setStatus(StatusRejected)
	return nil
}

// ConfirmBooking moves SCHEDULED_PENDING_APPROVAL -> PENDING_ARRIVAL
// (operator confirming the booking).
func (request *Request) ConfirmBooking() error {
	if !request.TripStatus.CanTransitionTo(TripStatusPendingArrival) {
		return ErrInvalidStatusTransition
	}
	request.setTripStatus(TripStatusPendingArrival)
	return nil
}

// MarkArrived moves PENDING_ARRIVAL -> ARRIVED (driver/operator write call).
func (request *Request) MarkArrived() error {
	if !request.TripStatus.CanTransitionTo(TripStatusArrived) {
		return ErrInvalidStatusTransition
	}
	request.setTripStatus(TripStatusArrived)
	return nil
}

// Complete moves ARRIVED -> COMPLETED on both tracks.
func (request *Request) Complete() error {
	if !request.TripStatus.CanTransitionTo(TripStatusCompleted) {
		return ErrInvalidStatusTransition
	}
	if !request.Status.CanTransitionTo(StatusCompleted) {
		return ErrInvalidStatusTransition
	}
	request.setTripStatus(TripStatusCompleted)
	request.setStatus(StatusCompleted)
	return nil
}

// ----- internal helpers -----

func (request *Request) setStatus(status RequestStatus) {
	request.Status = status
	request.touch()
}

func (request *Request) setTripStatus(status TripStatus) {
	request.TripStatus = status
	request.touch()
}

func (request *Request) touch() {
	request.UpdatedAt = time.Now().UTC()
}
