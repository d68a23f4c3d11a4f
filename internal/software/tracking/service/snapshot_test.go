package service

import (
	"context"
	"testing"
	"time"

	"trip-track/internal/domain/booking"
	"trip-track/internal/domain/driver"
	"trip-track/internal/domain/geo"
	"trip-track/internal/domain/trip"
	"trip-track/internal/general/logger"
	"trip-track/internal/ports"
	"trip-track/internal/routing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----- fakes -----

type fakeUOW struct{}

func (fakeUOW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTripRepo struct {
	trip *trip.Trip
}

func (f *fakeTripRepo) GetByID(_ context.Context, _ string) (*trip.Trip, error) {
	return f.trip, nil
}
func (f *fakeTripRepo) Stops(_ context.Context, _ string) ([]trip.StopPoint, error) { return nil, nil }
func (f *fakeTripRepo) ListActiveOn(_ context.Context, _ time.Time) ([]*trip.Trip, error) {
	return nil, nil
}

type fakeRequestRepo struct {
	request *booking.Request
}

func (f *fakeRequestRepo) GetByID(_ context.Context, _ string) (*booking.Request, error) {
	return f.request, nil
}
func (f *fakeRequestRepo) ListForTrip(_ context.Context, _ string) ([]*booking.Request, error) {
	return nil, nil
}
func (f *fakeRequestRepo) UpdateState(_ context.Context, _ string, _ booking.RequestStatus, _ booking.TripStatus) error {
	return nil
}
func (f *fakeRequestRepo) CountForTrip(_ context.Context, _ string) (int, error) { return 0, nil }

// fakeDispatch only serves driver resolution in these tests.
type fakeDispatch struct {
	driverID string
	err      error
}

func (f *fakeDispatch) AssignDriver(_ context.Context, _ ports.AssignDriverInput) (ports.AssignDriverResult, error) {
	return ports.AssignDriverResult{}, nil
}
func (f *fakeDispatch) UnassignDriver(_ context.Context, _, _ string) error { return nil }
func (f *fakeDispatch) ResolveDriverForRequest(_ context.Context, _ string) (string, error) {
	return f.driverID, f.err
}
func (f *fakeDispatch) ApproveRequest(_ context.Context, _ string) (ports.RequestTransitionResult, error) {
	return ports.RequestTransitionResult{}, nil
}
func (f *fakeDispatch) RejectRequest(_ context.Context, _ string) (ports.RequestTransitionResult, error) {
	return ports.RequestTransitionResult{}, nil
}
func (f *fakeDispatch) ConfirmBooking(_ context.Context, _ string) (ports.RequestTransitionResult, error) {
	return ports.RequestTransitionResult{}, nil
}
func (f *fakeDispatch) MarkArrived(_ context.Context, _ string) (ports.RequestTransitionResult, error) {
	return ports.RequestTransitionResult{}, nil
}
func (f *fakeDispatch) CompleteRequest(_ context.Context, _ string) (ports.RequestTransitionResult, error) {
	return ports.RequestTransitionResult{}, nil
}
func (f *fakeDispatch) LiveOverview(_ context.Context) (ports.LiveOverviewResult, error) {
	return ports.LiveOverviewResult{}, nil
}

type fakeManifests struct {
	result ports.ManifestResult
}

func (f *fakeManifests) BuildManifest(_ context.Context, _ string) (ports.ManifestResult, error) {
	return f.result, nil
}

type fakeLocationStore struct {
	sample *geo.LocationSample
	fresh  bool
}

func (f *fakeLocationStore) Publish(_ context.Context, _ *geo.LocationSample) error { return nil }
func (f *fakeLocationStore) ReadFresh(_ context.Context, _ string) (*geo.LocationSample, bool, error) {
	return f.sample, f.fresh, nil
}
func (f *fakeLocationStore) SetUnavailable(_ context.Context, _ string) error { return nil }

// fakeRouter fails for destinations whose latitude appears in failLats.
type fakeRouter struct {
	failLats map[float64]bool
	calls    int
}

func (f *fakeRouter) Route(_ context.Context, _, destination geo.LatLng) ([]routing.Leg, error) {
	f.calls++
	if f.failLats[destination.Latitude] {
		return nil, assert.AnError
	}
	return []routing.Leg{
		{DurationSeconds: 300, DistanceMeters: 2000},
		{DurationSeconds: 300, DistanceMeters: 2000},
	}, nil
}

// ----- fixture -----

type snapshotFixture struct {
	svc       *trackingService
	trips     *fakeTripRepo
	requests  *fakeRequestRepo
	dispatch  *fakeDispatch
	manifests *fakeManifests
	locations *fakeLocationStore
	router    *fakeRouter
}

func newSnapshotFixture() *snapshotFixture {
	day := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	tripID := "trip-1"

	fx := &snapshotFixture{
		trips: &fakeTripRepo{trip: &trip.Trip{
			ID: tripID, RouteID: "route-1", Type: trip.TypeArrival,
			TripDate: day, IsActive: true,
		}},
		requests: &fakeRequestRepo{request: &booking.Request{
			ID:         "req-1",
			TripID:     &tripID,
			Status:     booking.StatusApproved,
			TripStatus: booking.TripStatusPendingArrival,
		}},
		dispatch:  &fakeDispatch{driverID: "drv-1"},
		manifests: &fakeManifests{},
		locations: &fakeLocationStore{
			sample: &geo.LocationSample{
				DriverID: "drv-1", Latitude: 24.7, Longitude: 46.7,
				IsAvailable: true, UpdatedAt: day,
			},
			fresh: true,
		},
		router: &fakeRouter{failLats: map[float64]bool{}},
	}

	svc := NewTrackingService(
		logger.New("tracking-test"),
		fakeUOW{}, fx.trips, fx.requests, fx.dispatch, fx.manifests, fx.locations, fx.router,
	)
	fx.svc = svc.(*trackingService)
	fx.svc.now = func() time.Time { return day.Add(time.Hour) } // same day
	return fx
}

func stopEntry(requestID string, lat, lng float64) ports.ManifestEntry {
	name := "stop"
	return ports.ManifestEntry{
		RequestID:   requestID,
		VisitorName: "Visitor",
		TripStatus:  "PENDING_ARRIVAL",
		StopName:    &name,
		StopPoint:   &ports.GeoPoint{Latitude: lat, Longitude: lng},
	}
}

// ----- tests -----

func TestSnapshotGateNotTrackable(t *testing.T) {
	fx := newSnapshotFixture()
	fx.requests.request.TripStatus = booking.TripStatusScheduledPending

	snapshot, err := fx.svc.Snapshot(context.Background(), "req-1")
	require.NoError(t, err)
	assert.False(t, snapshot.TrackingAvailable)
	assert.Equal(t, ReasonNotTrackable, snapshot.Reason)
	assert.Empty(t, snapshot.TripID)
}

func TestSnapshotGateWrongDay(t *testing.T) {
	fx := newSnapshotFixture()
	fx.svc.now = func() time.Time { return time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC) }

	snapshot, err := fx.svc.Snapshot(context.Background(), "req-1")
	require.NoError(t, err)
	assert.False(t, snapshot.TrackingAvailable)
	assert.Equal(t, ReasonWrongDay, snapshot.Reason)
}

func TestSnapshotGateInactiveTrip(t *testing.T) {
	fx := newSnapshotFixture()
	fx.trips.trip.IsActive = false

	snapshot, err := fx.svc.Snapshot(context.Background(), "req-1")
	require.NoError(t, err)
	assert.False(t, snapshot.TrackingAvailable)
	assert.Equal(t, ReasonTripInactive, snapshot.Reason)
}

func TestSnapshotNoDriver(t *testing.T) {
	fx := newSnapshotFixture()
	fx.dispatch.err = driver.ErrNoDriverAssigned

	snapshot, err := fx.svc.Snapshot(context.Background(), "req-1")
	require.NoError(t, err)
	assert.False(t, snapshot.TrackingAvailable)
	assert.Equal(t, ReasonNoDriver, snapshot.Reason)
}

func TestSnapshotStaleLocation(t *testing.T) {
	fx := newSnapshotFixture()
	fx.locations.fresh = false
	fx.locations.sample = nil

	snapshot, err := fx.svc.Snapshot(context.Background(), "req-1")
	require.NoError(t, err)
	assert.False(t, snapshot.TrackingAvailable)
	assert.Equal(t, ReasonLocationStale, snapshot.Reason)
	assert.Equal(t, "drv-1", snapshot.DriverID)
	assert.Nil(t, snapshot.DriverLocation)
}

func TestSnapshotAvailableBundle(t *testing.T) {
	fx := newSnapshotFixture()
	fx.manifests.result = ports.ManifestResult{
		TripID:   "trip-1",
		TripType: "ARRIVAL",
		Passengers: []ports.ManifestEntry{
			stopEntry("req-1", 24.73, 46.73),
		},
	}

	snapshot, err := fx.svc.Snapshot(context.Background(), "req-1")
	require.NoError(t, err)
	assert.True(t, snapshot.TrackingAvailable)
	assert.Empty(t, snapshot.Reason)
	assert.Equal(t, "drv-1", snapshot.DriverID)
	require.NotNil(t, snapshot.DriverLocation)
	assert.InDelta(t, 24.7, snapshot.DriverLocation.Latitude, 1e-9)
	require.NotNil(t, snapshot.SampledAt)

	require.Len(t, snapshot.Passengers, 1)
	require.NotNil(t, snapshot.Passengers[0].ETA)
	assert.Equal(t, "10 دقيقة", snapshot.Passengers[0].ETA.DurationText)
	assert.Equal(t, "4 كم", snapshot.Passengers[0].ETA.DistanceText)
}

func TestComputeETAsIsolatesFailures(t *testing.T) {
	fx := newSnapshotFixture()
	fx.router.failLats = map[float64]bool{24.74: true, 24.75: true}

	passengers := []ports.ManifestEntry{
		stopEntry("p1", 24.73, 46.73),
		stopEntry("p2", 24.74, 46.74),
		stopEntry("p3", 24.75, 46.75),
	}

	out := fx.svc.computeETAs(context.Background(), geo.LatLng{Latitude: 24.7, Longitude: 46.7}, passengers)
	require.Len(t, out, 3)

	assert.NotNil(t, out[0].ETA)
	assert.Nil(t, out[1].ETA)
	assert.Nil(t, out[2].ETA)
	assert.Equal(t, 3, fx.router.calls)

	// input slice untouched
	assert.Nil(t, passengers[0].ETA)
}

func TestComputeETAsRejectsImplausibleRoute(t *testing.T) {
	fx := newSnapshotFixture()

	// the oracle answers 4 km for a passenger ~390 km away; that result
	// cannot belong to the pair and must not be rendered
	passengers := []ports.ManifestEntry{
		stopEntry("near", 24.73, 46.73),
		stopEntry("far", 26.43, 50.10),
	}

	out := fx.svc.computeETAs(context.Background(), geo.LatLng{Latitude: 24.7, Longitude: 46.7}, passengers)
	require.Len(t, out, 2)
	assert.NotNil(t, out[0].ETA)
	assert.Nil(t, out[1].ETA)
}

func TestComputeETAsSkipsUnresolvedStops(t *testing.T) {
	fx := newSnapshotFixture()

	passengers := []ports.ManifestEntry{
		{RequestID: "p1", VisitorName: "No stop"},
		stopEntry("p2", 24.73, 46.73),
	}

	out := fx.svc.computeETAs(context.Background(), geo.LatLng{Latitude: 24.7, Longitude: 46.7}, passengers)
	require.Len(t, out, 2)
	assert.Nil(t, out[0].ETA)
	assert.NotNil(t, out[1].ETA)
	assert.Equal(t, 1, fx.router.calls)
}
