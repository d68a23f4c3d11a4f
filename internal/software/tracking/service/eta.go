package service

import (
	"context"
	"errors"
	"sync"

	"trip-track/internal/domain/geo"
	"trip-track/internal/general/metrics"
	"trip-track/internal/ports"
	"trip-track/internal/routing"
)

var errImplausibleRoute = errors.New("routed distance shorter than straight line")

// computeETAs queries the routing oracle once per passenger with a resolved
// stop, concurrently, all from the same origin sample. Failures are isolated
// per passenger: a failed or missing estimate leaves that entry's ETA nil
// and never disturbs the others.
func (service *trackingService) computeETAs(ctx context.Context, origin geo.LatLng, passengers []ports.ManifestEntry) []ports.ManifestEntry {
	out := make([]ports.ManifestEntry, len(passengers))
	copy(out, passengers)

	var wg sync.WaitGroup
	for i := range out {
		if out[i].StopPoint == nil {
			continue
		}

		wg.Add(1)
		go func(entry *ports.ManifestEntry) {
			defer wg.Done()

			destination := geo.LatLng{
				Latitude:  entry.StopPoint.Latitude,
				Longitude: entry.StopPoint.Longitude,
			}

			legs, err := service.router.Route(ctx, origin, destination)
			if err == nil && implausibleRoute(origin, destination, legs) {
				err = errImplausibleRoute
			}
			if err == nil {
				var estimate routing.Estimate
				if estimate, err = routing.Normalize(legs); err == nil {
					entry.ETA = &ports.ETA{
						DurationText: estimate.DurationText,
						DistanceText: estimate.DistanceText,
					}
				}
			}
			if err != nil {
				metrics.ETARequestsTotal.WithLabelValues("error").Inc()
				service.logger.Debug(ctx, "eta_request_failed", "Routing oracle call failed for passenger", map[string]any{
					"booking_request_id": entry.RequestID,
					"error":              err.Error(),
				})
				return
			}
			metrics.ETARequestsTotal.WithLabelValues("ok").Inc()
		}(&out[i])
	}
	wg.Wait()

	return out
}

// implausibleRoute reports whether the oracle's answer cannot belong to this
// origin/destination pair: a road route is never materially shorter than the
// straight line between its endpoints.
func implausibleRoute(origin, destination geo.LatLng, legs []routing.Leg) bool {
	var meters float64
	for _, leg := range legs {
		meters += leg.DistanceMeters
	}
	if meters == 0 {
		// text-only result, nothing to check against
		return false
	}

	straightKM := geo.HaversineKM(origin, destination)
	if straightKM < 1 {
		return false
	}
	return meters < straightKM*1000/2
}
