package service

import (
	"context"
	"errors"

	"trip-track/internal/domain/driver"
	"trip-track/internal/general/metrics"
	"trip-track/internal/ports"
)

// Unavailability reasons carried on snapshots. All of them are expected
// outcomes of a tick, never errors.
const (
	ReasonNotTrackable  = "not_trackable"
	ReasonTripInactive  = "trip_inactive"
	ReasonWrongDay      = "wrong_day"
	ReasonNoDriver      = "no_driver"
	ReasonLocationStale = "location_stale"
)

// Snapshot performs one full poll tick for a request: gate check, driver
// resolution, fresh-location read, manifest build, ETA fan-out. The returned
// bundle is atomic: the driver position and every ETA in it derive from the
// same location sample.
func (service *trackingService) Snapshot(ctx context.Context, requestID string) (ports.TrackingSnapshot, error) {
	metrics.PollTicksTotal.Inc()

	snapshot := ports.TrackingSnapshot{RequestID: requestID}

	// gate: tracking is offered only for approved requests between booking
	// confirmation and arrival, on the trip's own day
	var gateReason string
	var tripID string
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		request, err := service.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}

		if !request.State().Trackable() {
			gateReason = ReasonNotTrackable
			return nil
		}
		tripID = *request.TripID

		trp, err := service.tripRepo.GetByID(txCtx, tripID)
		if err != nil {
			return err
		}
		if !trp.IsActive {
			gateReason = ReasonTripInactive
		} else if !trp.ScheduledOn(service.now()) {
			gateReason = ReasonWrongDay
		}
		return nil
	})
	if err != nil {
		service.logger.Error(ctx, "tracking_gate_failed", "Failed to evaluate tracking gate", err, map[string]any{
			"booking_request_id": requestID,
		})
		return ports.TrackingSnapshot{}, err
	}
	if gateReason != "" {
		snapshot.Reason = gateReason
		return snapshot, nil
	}
	snapshot.TripID = tripID
	ctx = service.logger.WithTripID(ctx, tripID)

	// resolve which driver this passenger tracks
	driverID, err := service.dispatch.ResolveDriverForRequest(ctx, requestID)
	if errors.Is(err, driver.ErrNoDriverAssigned) {
		snapshot.Reason = ReasonNoDriver
		return snapshot, nil
	}
	if err != nil {
		service.logger.Error(ctx, "tracking_driver_resolve_failed", "Failed to resolve driver for request", err, map[string]any{
			"booking_request_id": requestID,
		})
		return ports.TrackingSnapshot{}, err
	}
	snapshot.DriverID = driverID

	// single fresh read; the whole tick hangs off this one sample
	sample, fresh, err := service.locations.ReadFresh(ctx, driverID)
	if err != nil {
		service.logger.Error(ctx, "tracking_location_read_failed", "Failed to read driver location", err, map[string]any{
			"driver_id": driverID,
		})
		return ports.TrackingSnapshot{}, err
	}
	if !fresh {
		snapshot.Reason = ReasonLocationStale
		return snapshot, nil
	}

	manifest, err := service.manifests.BuildManifest(ctx, tripID)
	if err != nil {
		return ports.TrackingSnapshot{}, err
	}

	origin := sample.Point()
	passengers := service.computeETAs(ctx, origin, manifest.Passengers)

	sampledAt := sample.UpdatedAt
	snapshot.TrackingAvailable = true
	snapshot.DriverLocation = &ports.GeoPoint{Latitude: sample.Latitude, Longitude: sample.Longitude}
	snapshot.SampledAt = &sampledAt
	snapshot.Passengers = passengers

	return snapshot, nil
}
