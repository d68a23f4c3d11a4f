package service

import (
	"context"
	"time"

	"trip-track/internal/domain/driver"
	"trip-track/internal/domain/trip"
	"trip-track/internal/ports"
)

// LiveOverview builds the operator dashboard: today's active trips with
// passenger counts, assignment counts, the fallback driver and whether that
// driver's location is currently fresh.
func (service *dispatchService) LiveOverview(ctx context.Context) (ports.LiveOverviewResult, error) {
	now := time.Now().UTC()

	type tripAgg struct {
		trip       *trip.Trip
		passengers int
		drivers    []driver.Assignment
	}

	var aggs []tripAgg
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		trips, err := service.tripRepo.ListActiveOn(txCtx, now)
		if err != nil {
			return err
		}

		for _, trp := range trips {
			count, err := service.requestRepo.CountForTrip(txCtx, trp.ID)
			if err != nil {
				return err
			}
			assignments, err := service.assignmentRepo.ActiveForTrip(txCtx, trp.ID)
			if err != nil {
				return err
			}
			aggs = append(aggs, tripAgg{trip: trp, passengers: count, drivers: assignments})
		}
		return nil
	})
	if err != nil {
		service.logger.Error(ctx, "live_overview_failed", "Failed to build live overview", err, nil)
		return ports.LiveOverviewResult{}, err
	}

	rows := make([]ports.TripOverviewRow, 0, len(aggs))
	for _, agg := range aggs {
		row := ports.TripOverviewRow{
			TripID:          agg.trip.ID,
			RouteID:         agg.trip.RouteID,
			TripType:        agg.trip.Type.String(),
			TripDate:        agg.trip.TripDate.Format("2006-01-02"),
			PassengerCount:  agg.passengers,
			AssignedDrivers: len(agg.drivers),
		}

		// freshness of the fallback driver only, the one passengers track
		if len(agg.drivers) > 0 {
			driverID := agg.drivers[0].DriverID
			row.DriverID = &driverID

			_, fresh, err := service.locations.ReadFresh(ctx, driverID)
			if err != nil {
				service.logger.Error(ctx, "overview_location_read_failed", "Failed to read driver location", err, map[string]any{
					"driver_id": driverID,
					"trip_id":   agg.trip.ID,
				})
			}
			row.LocationFresh = fresh
		}

		rows = append(rows, row)
	}

	return ports.LiveOverviewResult{Timestamp: now, Trips: rows}, nil
}
