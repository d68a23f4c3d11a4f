package ports

import (
	"context"
	"time"

	"trip-track/internal/domain/booking"
	"trip-track/internal/domain/driver"
	"trip-track/internal/domain/geo"
	"trip-track/internal/domain/trip"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RouteRepository reads the route catalog (owned by the operator workflow,
// read-only to this core).
type RouteRepository interface {
	GetByID(ctx context.Context, routeID string) (*trip.Route, error)
	DefaultStops(ctx context.Context, routeID string) ([]trip.StopPoint, error)
}

// TripRepository reads the trip directory.
type TripRepository interface {
	GetByID(ctx context.Context, tripID string) (*trip.Trip, error)
	Stops(ctx context.Context, tripID string) ([]trip.StopPoint, error)
	ListActiveOn(ctx context.Context, day time.Time) ([]*trip.Trip, error)
}

// DriverRepository reads driver records (owned by the operator).
type DriverRepository interface {
	GetByID(ctx context.Context, driverID string) (*driver.Driver, error)
}

// AssignmentRepository manages the driver-trip assignment registry.
type AssignmentRepository interface {
	// Upsert inserts or reactivates an assignment. Re-assigning the same
	// (driver, trip) pair is a no-op success.
	Upsert(ctx context.Context, assignment *driver.Assignment) error

	// Deactivate clears an assignment. Idempotent.
	Deactivate(ctx context.Context, tripID, driverID string) error

	// FirstActiveForTrip returns the fallback driver for a trip: the
	// earliest active assignment by created_at, driver_id as the final
	// deterministic tie-break for convoys. Returns
	// driver.ErrNoDriverAssigned when the trip has no active assignment.
	FirstActiveForTrip(ctx context.Context, tripID string) (*driver.Assignment, error)

	ActiveForTrip(ctx context.Context, tripID string) ([]driver.Assignment, error)
	ActiveTripIDsForDriver(ctx context.Context, driverID string) ([]string, error)
}

// RequestRepository manages passenger booking requests.
type RequestRepository interface {
	GetByID(ctx context.Context, requestID string) (*booking.Request, error)

	// ListForTrip returns non-rejected requests of a trip ordered by
	// creation time (stable ordering for deterministic display and
	// checklist semantics).
	ListForTrip(ctx context.Context, tripID string) ([]*booking.Request, error)

	// UpdateState persists both status tracks after a domain transition.
	UpdateState(ctx context.Context, requestID string, status booking.RequestStatus, tripStatus booking.TripStatus) error

	CountForTrip(ctx context.Context, tripID string) (int, error)
}

// LocationStore is the live location store: a single last-write-wins sample
// per driver. Staleness is an expected, frequent outcome and is never
// reported as an error.
type LocationStore interface {
	// Publish overwrites the driver's sample, stamping updated_at=now and
	// is_available=true.
	Publish(ctx context.Context, sample *geo.LocationSample) error

	// ReadFresh returns (sample, true, nil) iff the freshness invariant
	// holds; (nil, false, nil) for absent, stale, or unavailable samples.
	// The error is reserved for store connectivity failures.
	ReadFresh(ctx context.Context, driverID string) (*geo.LocationSample, bool, error)

	// SetUnavailable flips the sample's availability in place; subsequent
	// ReadFresh calls return absent regardless of the timestamp.
	SetUnavailable(ctx context.Context, driverID string) error
}
