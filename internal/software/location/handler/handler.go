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
)

// DriverHTTPHandler adapts HTTP requests to the DriverLocationService.
type DriverHTTPHandler struct {
	svc    ports.DriverLocationService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewDriverHTTPHandler wires an HTTP handler around the DriverLocationService.
func NewDriverHTTPHandler(svc ports.DriverLocationService, logger *logger.Logger, auth *jwt.Manager) *DriverHTTPHandler {
	return &DriverHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts driver endpoints on the provided mux.
func (handler *DriverHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	driver := jwt.AuthMiddlewareFunc(handler.auth, user.RoleDriver)

	mux.HandleFunc("POST /drivers/{driver_id}/location", driver(handler.handlePublishLocation))
	mux.HandleFunc("POST /drivers/{driver_id}/unavailable", driver(handler.handleGoUnavailable))
	mux.HandleFunc("GET /drivers/{driver_id}/trips/today", driver(handler.handleMyTripsToday))

	mux.HandleFunc("GET /drivers/health", handler.handleHealth)
}

// ----- general helpers -----

// driverFromPath extracts the path driver_id and verifies it against the
// token subject: a driver may only act on their own resources.
func (handler *DriverHTTPHandler) driverFromPath(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, bool) {
	driverID := strings.TrimSpace(r.PathValue("driver_id"))
	if driverID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "driver_id is required", nil)
		return "", false
	}

	claims := jwt.RequireClaims(r)
	if claims == nil {
		handler.httpError(ctx, w, http.StatusUnauthorized, "missing auth claims", nil)
		return "", false
	}
	if strings.TrimSpace(claims.Subject) != driverID {
		handler.httpError(ctx, w, http.StatusForbidden, "driver_id does not match token subject", nil)
		return "", false
	}

	return driverID, true
}

// jsonResponse encodes to a buffer first so we can control status on failure.
func (handler *DriverHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
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
func (handler *DriverHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
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
func (handler *DriverHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
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

// ----- Handler: GET /drivers/health -----

// handleHealth returns a minimal JSON health status payload.
func (handler *DriverHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	type resp struct {
		Status string `json:"status"`
	}
	_ = json.NewEncoder(w).Encode(resp{Status: "ok"})
}
