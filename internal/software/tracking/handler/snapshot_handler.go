package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ----- Handler: GET /requests/{request_id}/tracking -----

// handleSnapshot runs one poll tick on demand. Unavailable tracking is a
// normal 200 response with tracking_available=false and a reason.
func (handler *TrackingHTTPHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	requestID := strings.TrimSpace(r.PathValue("request_id"))
	if requestID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "request_id is required", nil)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	snapshot, err := handler.svc.Snapshot(ctxWithTimeout, requestID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "database error", err)
			return
		}
		handler.httpError(ctxWithTimeout, w, http.StatusNotFound, err.Error(), err)
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, snapshot)
}

// ----- Handler: POST /requests/{request_id}/tracking/start -----

func (handler *TrackingHTTPHandler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	requestID := strings.TrimSpace(r.PathValue("request_id"))
	if requestID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "request_id is required", nil)
		return
	}

	// sessions outlive the HTTP request, so they hang off the server's base
	// context, not this request's
	handler.poller.Start(context.WithoutCancel(r.Context()), requestID)

	handler.jsonResponse(ctx, w, http.StatusAccepted, map[string]string{
		"request_id": requestID,
		"message":    "tracking session started",
	})
}

// ----- Handler: POST /requests/{request_id}/tracking/stop -----

func (handler *TrackingHTTPHandler) handleStopSession(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	requestID := strings.TrimSpace(r.PathValue("request_id"))
	if requestID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "request_id is required", nil)
		return
	}

	handler.poller.Stop(requestID)

	handler.jsonResponse(ctx, w, http.StatusOK, map[string]string{
		"request_id": requestID,
		"message":    "tracking session stopped",
	})
}
