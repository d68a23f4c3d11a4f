package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"trip-track/internal/domain/user"
	"trip-track/internal/general/jwt"
	"trip-track/internal/general/logger"
	"trip-track/internal/ports"
	"trip-track/internal/software/tracking/service"
)

// TrackingHTTPHandler adapts HTTP requests to the TrackingService and the
// session Poller (passenger boundary).
type TrackingHTTPHandler struct {
	svc    ports.TrackingService
	poller *service.Poller
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewTrackingHTTPHandler wires an HTTP handler around the tracking service.
func NewTrackingHTTPHandler(
	svc ports.TrackingService,
	poller *service.Poller,
	logger *logger.Logger,
	auth *jwt.Manager,
) *TrackingHTTPHandler {
	return &TrackingHTTPHandler{svc: svc, poller: poller, logger: logger, auth: auth}
}

// RegisterRoutes mounts tracking endpoints on the provided mux.
func (handler *TrackingHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	passenger := jwt.AuthMiddlewareFunc(handler.auth, user.RolePassenger)

	mux.HandleFunc("GET /requests/{request_id}/tracking", passenger(handler.handleSnapshot))
	mux.HandleFunc("POST /requests/{request_id}/tracking/start", passenger(handler.handleStartSession))
	mux.HandleFunc("POST /requests/{request_id}/tracking/stop", passenger(handler.handleStopSession))

	mux.HandleFunc("GET /tracking/health", handler.handleHealth)
}

// ----- general helpers -----

// jsonResponse encodes to a buffer first so we can control status on failure.
func (handler *TrackingHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	var buf []byte
	var err error

	if data != nil {
		buf, err = json.Marshal(data)
		if err != nil {
			handler.logger.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
			return
		}
	} else {
		buf = []byte("{}")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// httpError sends a JSON error response with a message.
func (handler *TrackingHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	action := "request_failed"
	if status >= 500 {
		action = "http_internal_error"
	} else if status == http.StatusBadRequest {
		action = "validation_failed"
	}
	handler.logger.Error(ctx, action, msg, err, nil)

	type errBody struct {
		Error string `json:"error"`
	}
	handler.jsonResponse(ctx, w, status, errBody{Error: msg})
}

// withReqID extracts or generates a request ID and adds it to the context.
func (handler *TrackingHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	return handler.logger.WithRequestID(ctx, reqID)
}

// randID generates a random 24-char hex string suitable for request IDs.
func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// ----- Handler: GET /tracking/health -----

// handleHealth returns a minimal JSON health status payload.
func (handler *TrackingHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	type resp struct {
		Status string `json:"status"`
	}
	_ = json.NewEncoder(w).Encode(resp{Status: "ok"})
}
