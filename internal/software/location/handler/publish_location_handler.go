package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"trip-track/internal/domain/geo"
	"trip-track/internal/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

// --- Request DTO (HTTP boundary) ---

type publishLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ----- Handler: POST /drivers/{driver_id}/location -----

func (handler *DriverHTTPHandler) handlePublishLocation(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	driverID, ok := handler.driverFromPath(ctx, w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req publishLocationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := handler.svc.PublishLocation(ctxWithTimeout, ports.PublishLocationInput{
		DriverID:  driverID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, geo.ErrInvalidLatitude), errors.Is(err, geo.ErrInvalidLongitude):
			handler.httpError(ctxWithTimeout, w, http.StatusBadRequest, err.Error(), err)
		case errors.As(err, &pgErr):
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "database error", err)
		default:
			handler.httpError(ctxWithTimeout, w, http.StatusBadRequest, err.Error(), err)
		}
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, res)
}

// ----- Handler: POST /drivers/{driver_id}/unavailable -----

func (handler *DriverHTTPHandler) handleGoUnavailable(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	driverID, ok := handler.driverFromPath(ctx, w, r)
	if !ok {
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := handler.svc.GoUnavailable(ctxWithTimeout, driverID); err != nil {
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to mark driver unavailable", err)
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, map[string]string{"message": "driver marked unavailable"})
}
