package service

import (
	"context"
	"errors"

	"trip-track/internal/domain/geo"
	"trip-track/internal/ports"
)

// ErrDriverInactive covers location publishes from deactivated drivers.
var ErrDriverInactive = errors.New("driver is not active")

// PublishLocation overwrites the driver's live location sample. Each publish
// replaces the previous one entirely (last-write-wins, no history), flips
// the driver available and restarts the freshness window.
func (service *driverLocationService) PublishLocation(ctx context.Context, in ports.PublishLocationInput) (ports.PublishLocationResult, error) {
	corrID := generateCorrelationID()

	sample, err := geo.NewLocationSample(in.DriverID, in.Latitude, in.Longitude)
	if err != nil {
		return ports.PublishLocationResult{}, err
	}

	// driver must exist and be active before the sample is accepted
	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		drv, err := service.driverRepo.GetByID(txCtx, in.DriverID)
		if err != nil {
			return err
		}
		if !drv.IsActive {
			return ErrDriverInactive
		}
		return nil
	})
	if err != nil {
		service.logger.Error(ctx, "location_publish_rejected", "Rejected driver location publish", err, map[string]any{
			"driver_id":  in.DriverID,
			"request_id": corrID,
		})
		return ports.PublishLocationResult{}, err
	}

	if err := service.store.Publish(ctx, sample); err != nil {
		service.logger.Error(ctx, "location_publish_failed", "Failed to store driver location", err, map[string]any{
			"driver_id":  in.DriverID,
			"request_id": corrID,
		})
		return ports.PublishLocationResult{}, err
	}

	service.logger.Debug(ctx, "driver_location_published", "Driver location sample stored", map[string]any{
		"driver_id":  in.DriverID,
		"lat":        in.Latitude,
		"lng":        in.Longitude,
		"updated_at": sample.UpdatedAt,
		"request_id": corrID,
	})

	return ports.PublishLocationResult{
		DriverID:  in.DriverID,
		UpdatedAt: sample.UpdatedAt,
	}, nil
}

// GoUnavailable flips the driver's sample unavailable in place. Readers treat
// the sample as absent from this point regardless of how recent it is.
func (service *driverLocationService) GoUnavailable(ctx context.Context, driverID string) error {
	corrID := generateCorrelationID()

	if err := service.store.SetUnavailable(ctx, driverID); err != nil {
		service.logger.Error(ctx, "driver_unavailable_failed", "Failed to mark driver unavailable", err, map[string]any{
			"driver_id":  driverID,
			"request_id": corrID,
		})
		return err
	}

	service.logger.Info(ctx, "driver_unavailable", "Driver marked unavailable", map[string]any{
		"driver_id":  driverID,
		"request_id": corrID,
	})
	return nil
}
