package manifest

import (
	"context"
	"testing"
	"time"

	"trip-track/internal/domain/booking"
	"trip-track/internal/domain/trip"
	"trip-track/internal/general/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----- fakes -----

type fakeUOW struct{}

func (fakeUOW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTripRepo struct {
	trip  *trip.Trip
	stops []trip.StopPoint
}

func (f *fakeTripRepo) GetByID(_ context.Context, _ string) (*trip.Trip, error) {
	return f.trip, nil
}
func (f *fakeTripRepo) Stops(_ context.Context, _ string) ([]trip.StopPoint, error) {
	return f.stops, nil
}
func (f *fakeTripRepo) ListActiveOn(_ context.Context, _ time.Time) ([]*trip.Trip, error) {
	return []*trip.Trip{f.trip}, nil
}

type fakeRouteRepo struct {
	stops []trip.StopPoint
}

func (f *fakeRouteRepo) GetByID(_ context.Context, _ string) (*trip.Route, error) {
	return &trip.Route{ID: "route-1"}, nil
}
func (f *fakeRouteRepo) DefaultStops(_ context.Context, _ string) ([]trip.StopPoint, error) {
	return f.stops, nil
}

type fakeRequestRepo struct {
	requests []*booking.Request
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*booking.Request, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeRequestRepo) ListForTrip(_ context.Context, _ string) ([]*booking.Request, error) {
	return f.requests, nil
}
func (f *fakeRequestRepo) UpdateState(_ context.Context, _ string, _ booking.RequestStatus, _ booking.TripStatus) error {
	return nil
}
func (f *fakeRequestRepo) CountForTrip(_ context.Context, _ string) (int, error) {
	return len(f.requests), nil
}

// ----- helpers -----

func stopPtr(s string) *string { return &s }

func arrivalRequest(id, name string, dropoffStopID *string) *booking.Request {
	tripID := "trip-1"
	return &booking.Request{
		ID:                    id,
		VisitorName:           name,
		TripID:                &tripID,
		Status:                booking.StatusApproved,
		TripStatus:            booking.TripStatusPendingArrival,
		SelectedDropoffStopID: dropoffStopID,
	}
}

func buildService(tripStops, routeStops []trip.StopPoint, requests []*booking.Request) *manifestService {
	arrival := &trip.Trip{
		ID:       "trip-1",
		RouteID:  "route-1",
		Type:     trip.TypeArrival,
		IsActive: true,
	}
	svc := NewManifestService(
		logger.New("manifest-test"),
		fakeUOW{},
		&fakeTripRepo{trip: arrival, stops: tripStops},
		&fakeRouteRepo{stops: routeStops},
		&fakeRequestRepo{requests: requests},
	)
	return svc.(*manifestService)
}

// ----- tests -----

func TestBuildManifestResolvesTripStopFirst(t *testing.T) {
	tripID := "trip-1"
	routeID := "route-1"

	// same stop id in both tiers with different names: the trip-level
	// override must win
	tripStops := []trip.StopPoint{
		{ID: "stop-1", TripID: &tripID, Name: "Gate 3 (temporary)", Latitude: 24.70, Longitude: 46.70},
	}
	routeStops := []trip.StopPoint{
		{ID: "stop-1", RouteID: &routeID, Name: "Gate 3", Latitude: 24.71, Longitude: 46.71},
		{ID: "stop-2", RouteID: &routeID, Name: "Terminal 5", Latitude: 24.95, Longitude: 46.69},
	}
	requests := []*booking.Request{
		arrivalRequest("req-1", "Fatima", stopPtr("stop-1")),
		arrivalRequest("req-2", "Omar", stopPtr("stop-2")),
	}

	svc := buildService(tripStops, routeStops, requests)
	result, err := svc.BuildManifest(context.Background(), "trip-1")
	require.NoError(t, err)

	assert.Equal(t, "trip-1", result.TripID)
	assert.Equal(t, "ARRIVAL", result.TripType)
	require.Len(t, result.Passengers, 2)

	// trip tier shadows the route default
	require.NotNil(t, result.Passengers[0].StopName)
	assert.Equal(t, "Gate 3 (temporary)", *result.Passengers[0].StopName)
	assert.InDelta(t, 24.70, result.Passengers[0].StopPoint.Latitude, 1e-9)

	// route tier serves as fallback
	require.NotNil(t, result.Passengers[1].StopName)
	assert.Equal(t, "Terminal 5", *result.Passengers[1].StopName)
}

func TestBuildManifestUnresolvedStopIsNotAnError(t *testing.T) {
	requests := []*booking.Request{
		arrivalRequest("req-1", "Fatima", stopPtr("stop-missing")),
		arrivalRequest("req-2", "Omar", nil),
	}

	svc := buildService(nil, nil, requests)
	result, err := svc.BuildManifest(context.Background(), "trip-1")
	require.NoError(t, err)
	require.Len(t, result.Passengers, 2)

	// selection that resolves nowhere keeps its id but no name or point
	assert.NotNil(t, result.Passengers[0].StopID)
	assert.Nil(t, result.Passengers[0].StopName)
	assert.Nil(t, result.Passengers[0].StopPoint)

	// no selection at all
	assert.Nil(t, result.Passengers[1].StopID)
	assert.Nil(t, result.Passengers[1].StopName)
}

func TestBuildManifestEmptyTrip(t *testing.T) {
	svc := buildService(nil, nil, nil)
	result, err := svc.BuildManifest(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Empty(t, result.Passengers)
	assert.NotNil(t, result.Passengers)
}
