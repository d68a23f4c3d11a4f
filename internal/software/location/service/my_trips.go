package service

import (
	"context"
	"time"

	"trip-track/internal/ports"
)

// MyTripsToday lists the driver's active assignments scheduled for today,
// with passenger counts. Assignments on other days are filtered out, the
// driver app only works the current day.
func (service *driverLocationService) MyTripsToday(ctx context.Context, driverID string) ([]ports.DriverTripRow, error) {
	now := time.Now().UTC()

	var rows []ports.DriverTripRow
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		tripIDs, err := service.assignmentRepo.ActiveTripIDsForDriver(txCtx, driverID)
		if err != nil {
			return err
		}

		for _, tripID := range tripIDs {
			trp, err := service.tripRepo.GetByID(txCtx, tripID)
			if err != nil {
				return err
			}
			if !trp.IsActive || !trp.ScheduledOn(now) {
				continue
			}

			passengers, err := service.requestRepo.CountForTrip(txCtx, tripID)
			if err != nil {
				return err
			}

			rows = append(rows, ports.DriverTripRow{
				TripID:        trp.ID,
				TripType:      trp.Type.String(),
				TripDate:      trp.TripDate.Format("2006-01-02"),
				MeetingTime:   trp.MeetingTime,
				DepartureTime: trp.DepartureTime,
				Passengers:    passengers,
			})
		}
		return nil
	})
	if err != nil {
		service.logger.Error(ctx, "driver_trips_failed", "Failed to list driver trips for today", err, map[string]any{
			"driver_id": driverID,
		})
		return nil, err
	}

	return rows, nil
}
