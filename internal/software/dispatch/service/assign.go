package service

import (
	"context"
	"time"

	"trip-track/internal/domain/driver"
	"trip-track/internal/domain/trip"
	"trip-track/internal/general/contracts"
	"trip-track/internal/ports"
)

// AssignDriver attaches a driver to a trip. The operator works inside one
// tab (arrivals or departures) and the trip's type must match that context;
// cross-type attempts fail with driver.ErrTypeMismatch before any write.
// Re-assigning an already assigned pair is a no-op success.
func (service *dispatchService) AssignDriver(ctx context.Context, in ports.AssignDriverInput) (ports.AssignDriverResult, error) {
	correlationID := generateCorrelationID()

	var tripType string
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		trp, err := service.tripRepo.GetByID(txCtx, in.TripID)
		if err != nil {
			return err
		}
		if !trp.IsActive {
			return trip.ErrTripInactive
		}
		if trp.Type != in.Context {
			return driver.ErrTypeMismatch
		}
		tripType = trp.Type.String()

		drv, err := service.driverRepo.GetByID(txCtx, in.DriverID)
		if err != nil {
			return err
		}
		if !drv.IsActive {
			return ErrDriverNotAssignable
		}

		assignment, err := driver.NewAssignment(in.DriverID, in.TripID)
		if err != nil {
			return err
		}
		return service.assignmentRepo.Upsert(txCtx, assignment)
	})
	if err != nil {
		service.logger.Error(ctx, "driver_assign_failed", "Failed to assign driver to trip", err, map[string]any{
			"trip_id":    in.TripID,
			"driver_id":  in.DriverID,
			"request_id": correlationID,
		})
		return ports.AssignDriverResult{}, err
	}

	service.publishOpsEvent(ctx, contracts.RouteAssignmentPrefix+in.TripID, contracts.DriverAssignedMessage{
		TripID:    in.TripID,
		DriverID:  in.DriverID,
		TripType:  tripType,
		IsActive:  true,
		Timestamp: time.Now().UTC(),
		Envelope:  envelope(correlationID),
	})

	service.logger.Info(ctx, "driver_assigned", "Driver assigned to trip", map[string]any{
		"trip_id":    in.TripID,
		"driver_id":  in.DriverID,
		"trip_type":  tripType,
		"request_id": correlationID,
	})

	return ports.AssignDriverResult{
		TripID:   in.TripID,
		DriverID: in.DriverID,
		Message:  "driver assigned",
	}, nil
}

// UnassignDriver clears an assignment. Idempotent: unassigning an absent or
// already inactive pair succeeds.
func (service *dispatchService) UnassignDriver(ctx context.Context, tripID, driverID string) error {
	correlationID := generateCorrelationID()

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.assignmentRepo.Deactivate(txCtx, tripID, driverID)
	})
	if err != nil {
		service.logger.Error(ctx, "driver_unassign_failed", "Failed to unassign driver from trip", err, map[string]any{
			"trip_id":    tripID,
			"driver_id":  driverID,
			"request_id": correlationID,
		})
		return err
	}

	service.publishOpsEvent(ctx, contracts.RouteAssignmentPrefix+tripID, contracts.DriverAssignedMessage{
		TripID:    tripID,
		DriverID:  driverID,
		IsActive:  false,
		Timestamp: time.Now().UTC(),
		Envelope:  envelope(correlationID),
	})

	service.logger.Info(ctx, "driver_unassigned", "Driver unassigned from trip", map[string]any{
		"trip_id":    tripID,
		"driver_id":  driverID,
		"request_id": correlationID,
	})

	return nil
}

// ResolveDriverForRequest resolves which driver a passenger tracks, in
// priority order: the request's own driver override if set, else the first
// active assignment of its trip. driver.ErrNoDriverAssigned means "tracking
// unavailable" and is an expected outcome.
func (service *dispatchService) ResolveDriverForRequest(ctx context.Context, requestID string) (string, error) {
	var driverID string
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		request, err := service.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}

		if request.AssignedDriverID != nil && *request.AssignedDriverID != "" {
			driverID = *request.AssignedDriverID
			return nil
		}

		if request.TripID == nil {
			return driver.ErrNoDriverAssigned
		}

		assignment, err := service.assignmentRepo.FirstActiveForTrip(txCtx, *request.TripID)
		if err != nil {
			return err
		}
		driverID = assignment.DriverID
		return nil
	})
	if err != nil {
		return "", err
	}

	return driverID, nil
}
