package ports

import (
	"context"
	"time"

	"trip-track/internal/domain/trip"
)

// GeoPoint represents a simple latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ETA is the ephemeral per-passenger estimate. It is recomputed on every
// successful location refresh and never cached beyond one refresh cycle.
type ETA struct {
	DurationText string `json:"duration_text"`
	DistanceText string `json:"distance_text"`
}

// ----- DTOs for the Dispatch (operator) service -----

// AssignDriverInput carries the operator's assignment attempt. Context is the
// trip type of the tab the operator is working in (arrivals vs departures);
// the service rejects cross-type assignments.
type AssignDriverInput struct {
	TripID   string
	DriverID string
	Context  trip.TripType
}

// AssignDriverResult matches the API response for an assignment.
type AssignDriverResult struct {
	TripID   string `json:"trip_id"`
	DriverID string `json:"driver_id"`
	Message  string `json:"message"`
}

// RequestTransitionResult is returned by every request state transition.
type RequestTransitionResult struct {
	RequestID  string `json:"request_id"`
	Status     string `json:"status"`
	TripStatus string `json:"trip_status"`
}

// TripOverviewRow is a single trip in the operator's live overview.
type TripOverviewRow struct {
	TripID          string  `json:"trip_id"`
	RouteID         string  `json:"route_id"`
	TripType        string  `json:"trip_type"`
	TripDate        string  `json:"trip_date"`
	PassengerCount  int     `json:"passenger_count"`
	AssignedDrivers int     `json:"assigned_drivers"`
	DriverID        *string `json:"driver_id,omitempty"` // fallback resolver result
	LocationFresh   bool    `json:"location_fresh"`
}

// LiveOverviewResult is the operator dashboard DTO: today's active trips.
type LiveOverviewResult struct {
	Timestamp time.Time         `json:"timestamp"`
	Trips     []TripOverviewRow `json:"trips"`
}

// DispatchService exposes the operator boundary: assignment registry and
// request state transitions.
type DispatchService interface {
	AssignDriver(ctx context.Context, in AssignDriverInput) (AssignDriverResult, error)
	UnassignDriver(ctx context.Context, tripID, driverID string) error

	// ResolveDriverForRequest returns, in priority order, the request's own
	// assigned driver if set, else the first active assignment of its trip.
	// driver.ErrNoDriverAssigned means "tracking unavailable", not a failure.
	ResolveDriverForRequest(ctx context.Context, requestID string) (string, error)

	ApproveRequest(ctx context.Context, requestID string) (RequestTransitionResult, error)
	RejectRequest(ctx context.Context, requestID string) (RequestTransitionResult, error)
	ConfirmBooking(ctx context.Context, requestID string) (RequestTransitionResult, error)
	MarkArrived(ctx context.Context, requestID string) (RequestTransitionResult, error)
	CompleteRequest(ctx context.Context, requestID string) (RequestTransitionResult, error)

	LiveOverview(ctx context.Context) (LiveOverviewResult, error)
}

// ----- DTOs for the Manifest builder -----

// ManifestEntry is one passenger on a trip with their resolved stop. A nil
// StopName means the stop could not be resolved and must render as
// "not specified", never as an error.
type ManifestEntry struct {
	RequestID   string    `json:"request_id"`
	VisitorName string    `json:"visitor_name"`
	TripStatus  string    `json:"trip_status"`
	StopID      *string   `json:"stop_id,omitempty"`
	StopName    *string   `json:"stop_name,omitempty"`
	StopPoint   *GeoPoint `json:"stop_point,omitempty"`
	ETA         *ETA      `json:"eta,omitempty"`
}

// ManifestResult is the resolved passenger list for a trip.
type ManifestResult struct {
	TripID     string          `json:"trip_id"`
	TripType   string          `json:"trip_type"`
	Passengers []ManifestEntry `json:"passengers"`
}

// ManifestService resolves the passenger list of a trip with stop
// coordinates. It owns no persistent state.
type ManifestService interface {
	BuildManifest(ctx context.Context, tripID string) (ManifestResult, error)
}

// ----- DTOs for the Driver & Location service -----

// PublishLocationInput is the validated input for POST /drivers/{driver_id}/location.
type PublishLocationInput struct {
	DriverID  string  // from path
	Latitude  float64 // from body
	Longitude float64 // from body
}

// PublishLocationResult matches the API response for a location publish.
type PublishLocationResult struct {
	DriverID  string    `json:"driver_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DriverTripRow is one of the driver's trips for today.
type DriverTripRow struct {
	TripID        string `json:"trip_id"`
	TripType      string `json:"trip_type"`
	TripDate      string `json:"trip_date"`
	MeetingTime   string `json:"meeting_time,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	Passengers    int    `json:"passengers"`
}

// DriverLocationService exposes the driver boundary.
type DriverLocationService interface {
	PublishLocation(ctx context.Context, in PublishLocationInput) (PublishLocationResult, error)
	GoUnavailable(ctx context.Context, driverID string) error
	MyTripsToday(ctx context.Context, driverID string) ([]DriverTripRow, error)
}

// ----- DTOs for the Tracking service -----

// TrackingSnapshot is the whole bundle a tracking view renders. A tick is
// atomic: the driver location and every ETA in the bundle originate from the
// same fetched sample.
type TrackingSnapshot struct {
	RequestID         string          `json:"request_id"`
	TripID            string          `json:"trip_id,omitempty"`
	TrackingAvailable bool            `json:"tracking_available"`
	Reason            string          `json:"reason,omitempty"` // when unavailable: not_trackable | trip_inactive | wrong_day | no_driver | location_stale
	DriverID          string          `json:"driver_id,omitempty"`
	DriverLocation    *GeoPoint       `json:"driver_location,omitempty"`
	SampledAt         *time.Time      `json:"sampled_at,omitempty"`
	Passengers        []ManifestEntry `json:"passengers,omitempty"`
}

// TrackingService exposes the passenger boundary.
type TrackingService interface {
	// Snapshot performs one full poll tick for a request: gate check,
	// driver resolution, fresh-location read, manifest build, ETA fan-out.
	Snapshot(ctx context.Context, requestID string) (TrackingSnapshot, error)
}
