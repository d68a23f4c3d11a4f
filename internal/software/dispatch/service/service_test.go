package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"trip-track/internal/domain/booking"
	"trip-track/internal/domain/driver"
	"trip-track/internal/domain/geo"
	"trip-track/internal/domain/trip"
	"trip-track/internal/general/contracts"
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

type fakeTripRepo struct {
	trips map[string]*trip.Trip
}

func (f *fakeTripRepo) GetByID(_ context.Context, id string) (*trip.Trip, error) {
	if t, ok := f.trips[id]; ok {
		return t, nil
	}
	return nil, errNotFound
}
func (f *fakeTripRepo) Stops(_ context.Context, _ string) ([]trip.StopPoint, error) { return nil, nil }
func (f *fakeTripRepo) ListActiveOn(_ context.Context, _ time.Time) ([]*trip.Trip, error) {
	var out []*trip.Trip
	for _, t := range f.trips {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeDriverRepo struct {
	drivers map[string]*driver.Driver
}

func (f *fakeDriverRepo) GetByID(_ context.Context, id string) (*driver.Driver, error) {
	if d, ok := f.drivers[id]; ok {
		return d, nil
	}
	return nil, errNotFound
}

// fakeAssignmentRepo mirrors the registry's conflict semantics: rows are
// keyed by (driver_id, trip_id), so repeated upserts touch one row.
type fakeAssignmentRepo struct {
	upserts     []driver.Assignment
	deactivated [][2]string                     // trip_id, driver_id
	active      map[[2]string]driver.Assignment // keyed by driver_id, trip_id
	firstActive map[string]*driver.Assignment
}

func (f *fakeAssignmentRepo) Upsert(_ context.Context, a *driver.Assignment) error {
	f.upserts = append(f.upserts, *a)
	row := *a
	row.IsActive = true
	f.active[[2]string{a.DriverID, a.TripID}] = row
	return nil
}
func (f *fakeAssignmentRepo) Deactivate(_ context.Context, tripID, driverID string) error {
	f.deactivated = append(f.deactivated, [2]string{tripID, driverID})
	if row, ok := f.active[[2]string{driverID, tripID}]; ok {
		row.IsActive = false
		f.active[[2]string{driverID, tripID}] = row
	}
	return nil
}
func (f *fakeAssignmentRepo) FirstActiveForTrip(_ context.Context, tripID string) (*driver.Assignment, error) {
	if a, ok := f.firstActive[tripID]; ok {
		return a, nil
	}
	return nil, driver.ErrNoDriverAssigned
}
func (f *fakeAssignmentRepo) ActiveForTrip(_ context.Context, tripID string) ([]driver.Assignment, error) {
	if a, ok := f.firstActive[tripID]; ok {
		return []driver.Assignment{*a}, nil
	}
	return nil, nil
}
func (f *fakeAssignmentRepo) ActiveTripIDsForDriver(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type fakeRequestRepo struct {
	requests map[string]*booking.Request
	updates  int
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*booking.Request, error) {
	if r, ok := f.requests[id]; ok {
		return r, nil
	}
	return nil, errNotFound
}
func (f *fakeRequestRepo) ListForTrip(_ context.Context, _ string) ([]*booking.Request, error) {
	return nil, nil
}
func (f *fakeRequestRepo) UpdateState(_ context.Context, _ string, _ booking.RequestStatus, _ booking.TripStatus) error {
	f.updates++
	return nil
}
func (f *fakeRequestRepo) CountForTrip(_ context.Context, _ string) (int, error) { return 0, nil }

type fakeLocationStore struct {
	fresh map[string]*geo.LocationSample
}

func (f *fakeLocationStore) Publish(_ context.Context, _ *geo.LocationSample) error { return nil }
func (f *fakeLocationStore) ReadFresh(_ context.Context, driverID string) (*geo.LocationSample, bool, error) {
	if s, ok := f.fresh[driverID]; ok {
		return s, true, nil
	}
	return nil, false, nil
}
func (f *fakeLocationStore) SetUnavailable(_ context.Context, _ string) error { return nil }

type recordedEvent struct {
	exchange   string
	routingKey string
	body       []byte
}

type fakePublisher struct {
	events []recordedEvent
}

func (f *fakePublisher) Publish(exchange, routingKey string, body []byte) error {
	f.events = append(f.events, recordedEvent{exchange, routingKey, body})
	return nil
}

var errNotFound = assert.AnError

// ----- fixture -----

type fixture struct {
	svc         ports.DispatchService
	trips       *fakeTripRepo
	assignments *fakeAssignmentRepo
	requests    *fakeRequestRepo
	pub         *fakePublisher
}

func newFixture() *fixture {
	trips := &fakeTripRepo{trips: map[string]*trip.Trip{
		"trip-arr": {ID: "trip-arr", RouteID: "route-1", Type: trip.TypeArrival, IsActive: true},
		"trip-dep": {ID: "trip-dep", RouteID: "route-1", Type: trip.TypeDeparture, IsActive: true},
		"trip-off": {ID: "trip-off", RouteID: "route-1", Type: trip.TypeArrival, IsActive: false},
	}}
	drivers := &fakeDriverRepo{drivers: map[string]*driver.Driver{
		"drv-1": {ID: "drv-1", Name: "Khalid", IsActive: true},
		"drv-2": {ID: "drv-2", Name: "Saad", IsActive: false},
	}}
	assignments := &fakeAssignmentRepo{
		active:      map[[2]string]driver.Assignment{},
		firstActive: map[string]*driver.Assignment{},
	}
	requests := &fakeRequestRepo{requests: map[string]*booking.Request{}}
	pub := &fakePublisher{}

	svc := NewDispatchService(
		logger.New("dispatch-test"),
		fakeUOW{}, trips, drivers, assignments, requests,
		&fakeLocationStore{fresh: map[string]*geo.LocationSample{}},
		pub,
	)
	return &fixture{svc: svc, trips: trips, assignments: assignments, requests: requests, pub: pub}
}

// ----- tests -----

func TestAssignDriverCrossTypeRejected(t *testing.T) {
	fx := newFixture()

	// operator is in the arrivals tab, trip is a departure
	_, err := fx.svc.AssignDriver(context.Background(), ports.AssignDriverInput{
		TripID: "trip-dep", DriverID: "drv-1", Context: trip.TypeArrival,
	})
	assert.ErrorIs(t, err, driver.ErrTypeMismatch)
	assert.Empty(t, fx.assignments.upserts)
	assert.Empty(t, fx.pub.events)
}

func TestAssignDriverInactiveTripRejected(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.AssignDriver(context.Background(), ports.AssignDriverInput{
		TripID: "trip-off", DriverID: "drv-1", Context: trip.TypeArrival,
	})
	assert.ErrorIs(t, err, trip.ErrTripInactive)
	assert.Empty(t, fx.assignments.upserts)
}

func TestAssignDriverInactiveDriverRejected(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.AssignDriver(context.Background(), ports.AssignDriverInput{
		TripID: "trip-arr", DriverID: "drv-2", Context: trip.TypeArrival,
	})
	assert.ErrorIs(t, err, ErrDriverNotAssignable)
}

func TestAssignDriverPublishesEvent(t *testing.T) {
	fx := newFixture()

	res, err := fx.svc.AssignDriver(context.Background(), ports.AssignDriverInput{
		TripID: "trip-arr", DriverID: "drv-1", Context: trip.TypeArrival,
	})
	require.NoError(t, err)
	assert.Equal(t, "trip-arr", res.TripID)
	require.Len(t, fx.assignments.upserts, 1)
	assert.True(t, fx.assignments.upserts[0].IsActive)

	require.Len(t, fx.pub.events, 1)
	event := fx.pub.events[0]
	assert.Equal(t, contracts.ExchangeTripOpsTopic, event.exchange)
	assert.Equal(t, contracts.RouteAssignmentPrefix+"trip-arr", event.routingKey)

	var msg contracts.DriverAssignedMessage
	require.NoError(t, json.Unmarshal(event.body, &msg))
	assert.Equal(t, "drv-1", msg.DriverID)
	assert.True(t, msg.IsActive)
}

func TestAssignDriverTwiceIsIdempotent(t *testing.T) {
	fx := newFixture()
	in := ports.AssignDriverInput{TripID: "trip-arr", DriverID: "drv-1", Context: trip.TypeArrival}

	_, err := fx.svc.AssignDriver(context.Background(), in)
	require.NoError(t, err)
	_, err = fx.svc.AssignDriver(context.Background(), in)
	require.NoError(t, err)

	// the upsert ran per call but the registry holds exactly one active row
	assert.Len(t, fx.assignments.upserts, 2)
	require.Len(t, fx.assignments.active, 1)
	row := fx.assignments.active[[2]string{"drv-1", "trip-arr"}]
	assert.True(t, row.IsActive)
}

func TestUnassignDriverIsIdempotent(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.AssignDriver(context.Background(), ports.AssignDriverInput{
		TripID: "trip-arr", DriverID: "drv-1", Context: trip.TypeArrival,
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.UnassignDriver(context.Background(), "trip-arr", "drv-1"))
	require.NoError(t, fx.svc.UnassignDriver(context.Background(), "trip-arr", "drv-1"))
	assert.Len(t, fx.assignments.deactivated, 2)

	row := fx.assignments.active[[2]string{"drv-1", "trip-arr"}]
	assert.False(t, row.IsActive)
}

func TestResolveDriverPriority(t *testing.T) {
	fx := newFixture()
	tripID := "trip-arr"
	override := "drv-override"

	fx.assignments.firstActive[tripID] = &driver.Assignment{DriverID: "drv-1", TripID: tripID, IsActive: true}
	fx.requests.requests["req-override"] = &booking.Request{
		ID: "req-override", TripID: &tripID, AssignedDriverID: &override,
	}
	fx.requests.requests["req-fallback"] = &booking.Request{
		ID: "req-fallback", TripID: &tripID,
	}
	fx.requests.requests["req-detached"] = &booking.Request{ID: "req-detached"}

	// request-level override wins
	got, err := fx.svc.ResolveDriverForRequest(context.Background(), "req-override")
	require.NoError(t, err)
	assert.Equal(t, "drv-override", got)

	// otherwise the trip's earliest active assignment
	got, err = fx.svc.ResolveDriverForRequest(context.Background(), "req-fallback")
	require.NoError(t, err)
	assert.Equal(t, "drv-1", got)

	// no trip at all: expected "no driver" outcome
	_, err = fx.svc.ResolveDriverForRequest(context.Background(), "req-detached")
	assert.ErrorIs(t, err, driver.ErrNoDriverAssigned)
}

func TestResolveDriverNoAssignment(t *testing.T) {
	fx := newFixture()
	tripID := "trip-arr"
	fx.requests.requests["req-1"] = &booking.Request{ID: "req-1", TripID: &tripID}

	_, err := fx.svc.ResolveDriverForRequest(context.Background(), "req-1")
	assert.ErrorIs(t, err, driver.ErrNoDriverAssigned)
}

func TestTransitionsPersistAndPublish(t *testing.T) {
	fx := newFixture()
	tripID := "trip-arr"
	fx.requests.requests["req-1"] = &booking.Request{
		ID:         "req-1",
		TripID:     &tripID,
		Status:     booking.StatusPending,
		TripStatus: booking.TripStatusScheduledPending,
	}

	res, err := fx.svc.ApproveRequest(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", res.Status)
	assert.Equal(t, 1, fx.requests.updates)

	res, err = fx.svc.ConfirmBooking(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, "PENDING_ARRIVAL", res.TripStatus)

	require.Len(t, fx.pub.events, 2)
	assert.Equal(t, contracts.RouteStatusPrefix+"trip-arr", fx.pub.events[1].routingKey)

	var msg contracts.TripStatusChangedMessage
	require.NoError(t, json.Unmarshal(fx.pub.events[1].body, &msg))
	assert.Equal(t, "PENDING_ARRIVAL", msg.TripStatus)
}

func TestTransitionRuleViolationPublishesNothing(t *testing.T) {
	fx := newFixture()
	tripID := "trip-arr"
	fx.requests.requests["req-1"] = &booking.Request{
		ID:         "req-1",
		TripID:     &tripID,
		Status:     booking.StatusPending,
		TripStatus: booking.TripStatusScheduledPending,
	}

	// cannot arrive before booking confirmation
	_, err := fx.svc.MarkArrived(context.Background(), "req-1")
	assert.ErrorIs(t, err, booking.ErrInvalidStatusTransition)
	assert.Zero(t, fx.requests.updates)
	assert.Empty(t, fx.pub.events)
}
