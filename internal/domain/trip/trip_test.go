package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTripType(t *testing.T) {
	tt, err := ParseTripType("arrival")
	require.NoError(t, err)
	assert.Equal(t, TypeArrival, tt)
	assert.True(t, tt.IsArrival())

	tt, err = ParseTripType(" DEPARTURE ")
	require.NoError(t, err)
	assert.Equal(t, TypeDeparture, tt)
	assert.True(t, tt.IsDeparture())

	_, err = ParseTripType("ROUND_TRIP")
	assert.ErrorIs(t, err, ErrInvalidTripType)
}

func TestNewTripValidation(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewTrip("", TypeArrival, date)
	assert.ErrorIs(t, err, ErrRouteRequired)

	_, err = NewTrip("route-1", "BOGUS", date)
	assert.ErrorIs(t, err, ErrInvalidTripType)

	_, err = NewTrip("route-1", TypeArrival, time.Time{})
	assert.ErrorIs(t, err, ErrTripDateRequired)

	trp, err := NewTrip("route-1", TypeArrival, date)
	require.NoError(t, err)
	assert.True(t, trp.IsActive)
	assert.Equal(t, TypeArrival, trp.Type)
}

func TestScheduledOnComparesDaysOnly(t *testing.T) {
	trp, err := NewTrip("route-1", TypeDeparture, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, trp.ScheduledOn(time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)))
	assert.False(t, trp.ScheduledOn(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, trp.ScheduledOn(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDeactivateIsIdempotent(t *testing.T) {
	trp, err := NewTrip("route-1", TypeArrival, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	trp.Deactivate()
	first := trp.UpdatedAt
	trp.Deactivate()

	assert.False(t, trp.IsActive)
	assert.Equal(t, first, trp.UpdatedAt)
}

func TestStopPointValidate(t *testing.T) {
	_, err := NewTripStop("trip-1", "  ", 24.7, 46.7, 0)
	assert.ErrorIs(t, err, ErrStopNameRequired)

	_, err = NewTripStop("trip-1", "Gate 3", 95, 46.7, 0)
	assert.ErrorIs(t, err, ErrInvalidLatitude)

	_, err = NewTripStop("trip-1", "Gate 3", 24.7, 46.7, -1)
	assert.ErrorIs(t, err, ErrNegativeOrder)

	unowned := StopPoint{Name: "Gate 3", Latitude: 24.7, Longitude: 46.7}
	assert.ErrorIs(t, unowned.Validate(), ErrStopUnowned)

	stop, err := NewRouteStop("route-1", "Terminal 5", 24.9578, 46.6989, 2)
	require.NoError(t, err)
	assert.Equal(t, "route-1", *stop.RouteID)
	assert.Nil(t, stop.TripID)
}
