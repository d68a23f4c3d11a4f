package handler

import (
	"context"
	"net/http"
	"time"

	"trip-track/internal/ports"
)

// ----- Handler: GET /drivers/{driver_id}/trips/today -----

func (handler *DriverHTTPHandler) handleMyTripsToday(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	driverID, ok := handler.driverFromPath(ctx, w, r)
	if !ok {
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := handler.svc.MyTripsToday(ctxWithTimeout, driverID)
	if err != nil {
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to list trips", err)
		return
	}
	if rows == nil {
		rows = []ports.DriverTripRow{}
	}

	type resp struct {
		DriverID string                `json:"driver_id"`
		Trips    []ports.DriverTripRow `json:"trips"`
	}
	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, resp{DriverID: driverID, Trips: rows})
}
