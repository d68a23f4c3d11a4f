package booking

import "errors"

// State pairs the two independently evolving status enumerations whose
// combination gates tracking visibility. Both the passenger tracking page and
// the driver's "track this passenger" capability must consult the same
// predicate so the two views never diverge on whether a booking is live.
type State struct {
	Status     RequestStatus
	TripStatus TripStatus
	TripID     *string
}

var ErrTripRefRequired = errors.New("trip id is required once the booking is scheduled")

// Trackable is the single authoritative gate for surfacing tracking UI:
// the request must be approved and the trip lifecycle must be in the live
// window (pending arrival or arrived).
func (state State) Trackable() bool {
	if state.Status != StatusApproved {
		return false
	}
	switch state.TripStatus {
	case TripStatusPendingArrival, TripStatusArrived:
		return true
	default:
		return false
	}
}

// Validate enforces the structural invariant: a booking cannot carry any trip
// lifecycle state without a trip reference.
func (state State) Validate() error {
	if !state.Status.Valid() {
		return ErrInvalidRequestStatus
	}
	if !state.TripStatus.Valid() {
		return ErrInvalidTripStatus
	}
	if state.TripStatus != TripStatusNone {
		if state.TripID == nil || *state.TripID == "" {
			return ErrTripRefRequired
		}
	}
	return nil
}
