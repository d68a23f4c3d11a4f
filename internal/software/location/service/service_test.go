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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----- fakes -----

type fakeUOW struct{}

func (fakeUOW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeDriverRepo struct {
	drivers map[string]*driver.Driver
}

func (f *fakeDriverRepo) GetByID(_ context.Context, id string) (*driver.Driver, error) {
	if d, ok := f.drivers[id]; ok {
		return d, nil
	}
	return nil, assert.AnError
}

type fakeTripRepo struct {
	trips map[string]*trip.Trip
}

func (f *fakeTripRepo) GetByID(_ context.Context, id string) (*trip.Trip, error) {
	if t, ok := f.trips[id]; ok {
		return t, nil
	}
	return nil, assert.AnError
}
func (f *fakeTripRepo) Stops(_ context.Context, _ string) ([]trip.StopPoint, error) { return nil, nil }
func (f *fakeTripRepo) ListActiveOn(_ context.Context, _ time.Time) ([]*trip.Trip, error) {
	return nil, nil
}

type fakeAssignmentRepo struct {
	tripIDs []string
}

func (f *fakeAssignmentRepo) Upsert(_ context.Context, _ *driver.Assignment) error   { return nil }
func (f *fakeAssignmentRepo) Deactivate(_ context.Context, _, _ string) error        { return nil }
func (f *fakeAssignmentRepo) FirstActiveForTrip(_ context.Context, _ string) (*driver.Assignment, error) {
	return nil, driver.ErrNoDriverAssigned
}
func (f *fakeAssignmentRepo) ActiveForTrip(_ context.Context, _ string) ([]driver.Assignment, error) {
	return nil, nil
}
func (f *fakeAssignmentRepo) ActiveTripIDsForDriver(_ context.Context, _ string) ([]string, error) {
	return f.tripIDs, nil
}

type fakeRequestRepo struct {
	count int
}

func (f *fakeRequestRepo) GetByID(_ context.Context, _ string) (*booking.Request, error) {
	return nil, assert.AnError
}
func (f *fakeRequestRepo) ListForTrip(_ context.Context, _ string) ([]*booking.Request, error) {
	return nil, nil
}
func (f *fakeRequestRepo) UpdateState(_ context.Context, _ string, _ booking.RequestStatus, _ booking.TripStatus) error {
	return nil
}
func (f *fakeRequestRepo) CountForTrip(_ context.Context, _ string) (int, error) {
	return f.count, nil
}

type fakeLocationStore struct {
	published   []*geo.LocationSample
	unavailable []string
}

func (f *fakeLocationStore) Publish(_ context.Context, s *geo.LocationSample) error {
	f.published = append(f.published, s)
	return nil
}
func (f *fakeLocationStore) ReadFresh(_ context.Context, _ string) (*geo.LocationSample, bool, error) {
	return nil, false, nil
}
func (f *fakeLocationStore) SetUnavailable(_ context.Context, driverID string) error {
	f.unavailable = append(f.unavailable, driverID)
	return nil
}

// ----- fixture -----

func newService(store *fakeLocationStore, trips *fakeTripRepo, assignments *fakeAssignmentRepo) ports.DriverLocationService {
	drivers := &fakeDriverRepo{drivers: map[string]*driver.Driver{
		"drv-1": {ID: "drv-1", Name: "Khalid", IsActive: true},
		"drv-2": {ID: "drv-2", Name: "Saad", IsActive: false},
	}}
	if trips == nil {
		trips = &fakeTripRepo{trips: map[string]*trip.Trip{}}
	}
	if assignments == nil {
		assignments = &fakeAssignmentRepo{}
	}
	return NewDriverLocationService(
		logger.New("location-test"),
		fakeUOW{}, drivers, trips, assignments, &fakeRequestRepo{count: 4}, store,
	)
}

// ----- tests -----

func TestPublishLocationStoresSample(t *testing.T) {
	store := &fakeLocationStore{}
	svc := newService(store, nil, nil)

	res, err := svc.PublishLocation(context.Background(), ports.PublishLocationInput{
		DriverID: "drv-1", Latitude: 24.7, Longitude: 46.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "drv-1", res.DriverID)
	assert.False(t, res.UpdatedAt.IsZero())

	require.Len(t, store.published, 1)
	assert.True(t, store.published[0].IsAvailable)
}

func TestPublishLocationRejectsBadCoordinates(t *testing.T) {
	store := &fakeLocationStore{}
	svc := newService(store, nil, nil)

	_, err := svc.PublishLocation(context.Background(), ports.PublishLocationInput{
		DriverID: "drv-1", Latitude: 120, Longitude: 46.7,
	})
	assert.ErrorIs(t, err, geo.ErrInvalidLatitude)
	assert.Empty(t, store.published)
}

func TestPublishLocationRejectsInactiveDriver(t *testing.T) {
	store := &fakeLocationStore{}
	svc := newService(store, nil, nil)

	_, err := svc.PublishLocation(context.Background(), ports.PublishLocationInput{
		DriverID: "drv-2", Latitude: 24.7, Longitude: 46.7,
	})
	assert.ErrorIs(t, err, ErrDriverInactive)
	assert.Empty(t, store.published)
}

func TestGoUnavailable(t *testing.T) {
	store := &fakeLocationStore{}
	svc := newService(store, nil, nil)

	require.NoError(t, svc.GoUnavailable(context.Background(), "drv-1"))
	assert.Equal(t, []string{"drv-1"}, store.unavailable)
}

func TestMyTripsTodayFiltersOtherDays(t *testing.T) {
	today := time.Now().UTC()
	trips := &fakeTripRepo{trips: map[string]*trip.Trip{
		"trip-today": {
			ID: "trip-today", RouteID: "route-1", Type: trip.TypeArrival,
			TripDate: today, IsActive: true, MeetingTime: "08:30",
		},
		"trip-tomorrow": {
			ID: "trip-tomorrow", RouteID: "route-1", Type: trip.TypeDeparture,
			TripDate: today.AddDate(0, 0, 1), IsActive: true,
		},
		"trip-off": {
			ID: "trip-off", RouteID: "route-1", Type: trip.TypeArrival,
			TripDate: today, IsActive: false,
		},
	}}
	assignments := &fakeAssignmentRepo{tripIDs: []string{"trip-today", "trip-tomorrow", "trip-off"}}

	svc := newService(&fakeLocationStore{}, trips, assignments)
	rows, err := svc.MyTripsToday(context.Background(), "drv-1")
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "trip-today", rows[0].TripID)
	assert.Equal(t, "08:30", rows[0].MeetingTime)
	assert.Equal(t, 4, rows[0].Passengers)
}
