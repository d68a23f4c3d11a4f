package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackableGate(t *testing.T) {
	tripID := "trip-1"

	cases := []struct {
		name       string
		status     RequestStatus
		tripStatus TripStatus
		want       bool
	}{
		{"approved + pending arrival", StatusApproved, TripStatusPendingArrival, true},
		{"approved + arrived", StatusApproved, TripStatusArrived, true},
		{"approved but only scheduled", StatusApproved, TripStatusScheduledPending, false},
		{"approved + completed", StatusApproved, TripStatusCompleted, false},
		{"approved + no trip lifecycle", StatusApproved, TripStatusNone, false},
		{"pending + pending arrival", StatusPending, TripStatusPendingArrival, false},
		{"under review + arrived", StatusUnderReview, TripStatusArrived, false},
		{"rejected + pending arrival", StatusRejected, TripStatusPendingArrival, false},
		{"completed + arrived", StatusCompleted, TripStatusArrived, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := State{Status: tc.status, TripStatus: tc.tripStatus, TripID: &tripID}
			assert.Equal(t, tc.want, state.Trackable())
		})
	}
}

func TestStateValidateRequiresTripRef(t *testing.T) {
	tripID := "trip-1"
	empty := ""

	// any trip lifecycle state demands a trip reference
	assert.ErrorIs(t, State{Status: StatusApproved, TripStatus: TripStatusPendingArrival}.Validate(), ErrTripRefRequired)
	assert.ErrorIs(t, State{Status: StatusApproved, TripStatus: TripStatusPendingArrival, TripID: &empty}.Validate(), ErrTripRefRequired)
	assert.NoError(t, State{Status: StatusApproved, TripStatus: TripStatusPendingArrival, TripID: &tripID}.Validate())

	// NONE is the only lifecycle state allowed without a trip
	assert.NoError(t, State{Status: StatusPending, TripStatus: TripStatusNone}.Validate())
}

func TestStateValidateRejectsUnknownEnums(t *testing.T) {
	assert.ErrorIs(t, State{Status: "BOGUS", TripStatus: TripStatusNone}.Validate(), ErrInvalidRequestStatus)
	assert.ErrorIs(t, State{Status: StatusPending, TripStatus: "BOGUS"}.Validate(), ErrInvalidTripStatus)
}
