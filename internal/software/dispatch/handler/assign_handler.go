package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"trip-track/internal/domain/driver"
	"trip-track/internal/domain/trip"
	"trip-track/internal/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

// --- Request DTO (HTTP boundary) ---

type assignDriverRequest struct {
	DriverID string `json:"driver_id"`
	Context  string `json:"context"` // ARRIVAL | DEPARTURE, the operator's tab
}

// ----- Handler: POST /trips/{trip_id}/assign-driver -----

func (handler *BookingHTTPHandler) handleAssignDriver(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	tripID := strings.TrimSpace(r.PathValue("trip_id"))
	if tripID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "trip_id is required", nil)
		return
	}
	ctx = handler.logger.WithTripID(ctx, tripID)

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req assignDriverRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	if strings.TrimSpace(req.DriverID) == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "driver_id is required", nil)
		return
	}

	tripType, err := trip.ParseTripType(req.Context)
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "context must be one of: ARRIVAL, DEPARTURE", err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := handler.svc.AssignDriver(ctxWithTimeout, ports.AssignDriverInput{
		TripID:   tripID,
		DriverID: strings.TrimSpace(req.DriverID),
		Context:  tripType,
	})
	if err != nil {
		handler.assignError(ctxWithTimeout, w, err)
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, res)
}

// ----- Handler: POST /trips/{trip_id}/unassign-driver -----

func (handler *BookingHTTPHandler) handleUnassignDriver(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	tripID := strings.TrimSpace(r.PathValue("trip_id"))
	if tripID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "trip_id is required", nil)
		return
	}
	ctx = handler.logger.WithTripID(ctx, tripID)

	var req assignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}
	if strings.TrimSpace(req.DriverID) == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "driver_id is required", nil)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := handler.svc.UnassignDriver(ctxWithTimeout, tripID, strings.TrimSpace(req.DriverID)); err != nil {
		handler.assignError(ctxWithTimeout, w, err)
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, map[string]string{"message": "driver unassigned"})
}

// assignError maps assignment failures onto HTTP statuses: cross-type and
// inactive-entity failures are client errors, database failures are 500s.
func (handler *BookingHTTPHandler) assignError(ctx context.Context, w http.ResponseWriter, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, driver.ErrTypeMismatch):
		handler.httpError(ctx, w, http.StatusConflict, err.Error(), err)
	case errors.Is(err, trip.ErrTripInactive):
		handler.httpError(ctx, w, http.StatusConflict, err.Error(), err)
	case errors.As(err, &pgErr):
		handler.httpError(ctx, w, http.StatusInternalServerError, "database error", err)
	default:
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
	}
}
