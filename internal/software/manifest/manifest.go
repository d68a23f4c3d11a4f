// Package manifest resolves the passenger list of a trip. It is shared by
// the operator boundary (trip manifest endpoint) and the tracking service
// (ETA fan-out input) and owns no persistent state of its own.
package manifest

import (
	"context"

	"trip-track/internal/domain/trip"
	"trip-track/internal/general/logger"
	"trip-track/internal/ports"
)

type manifestService struct {
	logger      *logger.Logger
	uow         ports.UnitOfWork
	tripRepo    ports.TripRepository
	routeRepo   ports.RouteRepository
	requestRepo ports.RequestRepository
}

// NewManifestService creates a new ManifestService with the provided dependencies.
func NewManifestService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	tripRepo ports.TripRepository,
	routeRepo ports.RouteRepository,
	requestRepo ports.RequestRepository,
) ports.ManifestService {
	return &manifestService{
		logger:      logger,
		uow:         uow,
		tripRepo:    tripRepo,
		routeRepo:   routeRepo,
		requestRepo: requestRepo,
	}
}

// BuildManifest resolves every non-rejected passenger of the trip with their
// selected stop. Stops resolve through a two-tier chain: the trip's own stop
// points first, the route's default stops as fallback. A selection that
// resolves in neither tier yields a nil stop name ("not specified"), never
// an error; one passenger's bad selection must not break the whole list.
func (service *manifestService) BuildManifest(ctx context.Context, tripID string) (ports.ManifestResult, error) {
	var result ports.ManifestResult

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		trp, err := service.tripRepo.GetByID(txCtx, tripID)
		if err != nil {
			return err
		}

		tripStops, err := service.tripRepo.Stops(txCtx, tripID)
		if err != nil {
			return err
		}
		routeStops, err := service.routeRepo.DefaultStops(txCtx, trp.RouteID)
		if err != nil {
			return err
		}
		resolve := newStopResolver(tripStops, routeStops)

		requests, err := service.requestRepo.ListForTrip(txCtx, tripID)
		if err != nil {
			return err
		}

		passengers := make([]ports.ManifestEntry, 0, len(requests))
		for _, request := range requests {
			entry := ports.ManifestEntry{
				RequestID:   request.ID,
				VisitorName: request.VisitorName,
				TripStatus:  request.TripStatus.String(),
			}

			if stopID := request.RelevantStopID(trp.Type); stopID != nil {
				entry.StopID = stopID
				if stop, ok := resolve(*stopID); ok {
					name := stop.Name
					entry.StopName = &name
					entry.StopPoint = &ports.GeoPoint{
						Latitude:  stop.Latitude,
						Longitude: stop.Longitude,
					}
				}
			}

			passengers = append(passengers, entry)
		}

		result = ports.ManifestResult{
			TripID:     trp.ID,
			TripType:   trp.Type.String(),
			Passengers: passengers,
		}
		return nil
	})
	if err != nil {
		service.logger.Error(ctx, "manifest_build_failed", "Failed to build trip manifest", err, map[string]any{
			"trip_id": tripID,
		})
		return ports.ManifestResult{}, err
	}

	return result, nil
}

// newStopResolver builds the ordered lookup chain. Tiers are checked in
// order, so a trip-level stop shadows a route default with the same id.
func newStopResolver(tiers ...[]trip.StopPoint) func(stopID string) (trip.StopPoint, bool) {
	indexes := make([]map[string]trip.StopPoint, 0, len(tiers))
	for _, tier := range tiers {
		index := make(map[string]trip.StopPoint, len(tier))
		for _, stop := range tier {
			index[stop.ID] = stop
		}
		indexes = append(indexes, index)
	}

	return func(stopID string) (trip.StopPoint, bool) {
		for _, index := range indexes {
			if stop, ok := index[stopID]; ok {
				return stop, true
			}
		}
		return trip.StopPoint{}, false
	}
}
