package service

import (
	"context"
	"time"

	"trip-track/internal/domain/booking"
	"trip-track/internal/general/contracts"
	"trip-track/internal/ports"
)

// ApproveRequest moves the approval track to APPROVED.
func (service *dispatchService) ApproveRequest(ctx context.Context, requestID string) (ports.RequestTransitionResult, error) {
	return service.transition(ctx, requestID, "request_approved", (*booking.Request).Approve)
}

// RejectRequest rejects a request from any pre-arrival state. Rejected
// requests drop off manifests and snapshots; the status is terminal.
func (service *dispatchService) RejectRequest(ctx context.Context, requestID string) (ports.RequestTransitionResult, error) {
	return service.transition(ctx, requestID, "request_rejected", (*booking.Request).Reject)
}

// ConfirmBooking moves the trip track SCHEDULED_PENDING_APPROVAL -> PENDING_ARRIVAL.
func (service *dispatchService) ConfirmBooking(ctx context.Context, requestID string) (ports.RequestTransitionResult, error) {
	return service.transition(ctx, requestID, "booking_confirmed", (*booking.Request).ConfirmBooking)
}

// MarkArrived moves the trip track PENDING_ARRIVAL -> ARRIVED.
func (service *dispatchService) MarkArrived(ctx context.Context, requestID string) (ports.RequestTransitionResult, error) {
	return service.transition(ctx, requestID, "passenger_arrived", (*booking.Request).MarkArrived)
}

// CompleteRequest moves both tracks to COMPLETED.
func (service *dispatchService) CompleteRequest(ctx context.Context, requestID string) (ports.RequestTransitionResult, error) {
	return service.transition(ctx, requestID, "request_completed", (*booking.Request).Complete)
}

// transition loads the request, applies the domain transition and persists
// both status tracks in one transaction, then publishes the status event.
func (service *dispatchService) transition(ctx context.Context, requestID, action string, apply func(*booking.Request) error) (ports.RequestTransitionResult, error) {
	correlationID := generateCorrelationID()

	var request *booking.Request
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		request, err = service.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if err := apply(request); err != nil {
			return err
		}
		return service.requestRepo.UpdateState(txCtx, request.ID, request.Status, request.TripStatus)
	})
	if err != nil {
		service.logger.Error(ctx, action+"_failed", "Request state transition failed", err, map[string]any{
			"booking_request_id": requestID,
			"request_id":         correlationID,
		})
		return ports.RequestTransitionResult{}, err
	}

	msg := contracts.TripStatusChangedMessage{
		RequestID:  request.ID,
		Status:     request.Status.String(),
		TripStatus: request.TripStatus.String(),
		Timestamp:  time.Now().UTC(),
		Envelope:   envelope(correlationID),
	}
	routingKey := contracts.RouteStatusPrefix + "none"
	if request.TripID != nil {
		msg.TripID = *request.TripID
		routingKey = contracts.RouteStatusPrefix + *request.TripID
		ctx = service.logger.WithTripID(ctx, *request.TripID)
	}
	service.publishOpsEvent(ctx, routingKey, msg)

	service.logger.Info(ctx, action, "Request state transition applied", map[string]any{
		"booking_request_id": request.ID,
		"status":             request.Status.String(),
		"trip_status":        request.TripStatus.String(),
		"request_id":         correlationID,
	})

	return ports.RequestTransitionResult{
		RequestID:  request.ID,
		Status:     request.Status.String(),
		TripStatus: request.TripStatus.String(),
	}, nil
}
