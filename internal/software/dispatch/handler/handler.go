package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"trip-track/internal/domain/user"
	"trip-track/internal/general/jwt"
	"trip-track/internal/general/logger"
	"trip-track/internal/ports"
)

// BookingHTTPHandler adapts HTTP requests to the DispatchService and the
// ManifestService (operator boundary).
type BookingHTTPHandler struct {
	svc       ports.DispatchService
	manifests ports.ManifestService
	logger    *logger.Logger
	auth      *jwt.Manager
}

// NewBookingHTTPHandler wires an HTTP handler around the operator services.
func NewBookingHTTPHandler(
	svc ports.DispatchService,
	manifests ports.ManifestService,
	logger *logger.Logger,
	auth *jwt.Manager,
) *BookingHTTPHandler {
	return &BookingHTTPHandler{svc: svc, manifests: manifests, logger: logger, auth: auth}
}

// RegisterRoutes mounts operator endpoints on the provided mux.
func (handler *BookingHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	operator := jwt.AuthMiddlewareFunc(handler.auth, user.RoleOperator)

	mux.HandleFunc("POST /trips/{trip_id}/assign-driver", operator(handler.handleAssignDriver))
	mux.HandleFunc("POST /trips/{trip_id}/unassign-driver", operator(handler.handleUnassignDriver))
	mux.HandleFunc("GET /trips/{trip_id}/manifest", operator(handler.handleManifest))

	mux.HandleFunc("POST /requests/{request_id}/approve", operator(handler.handleApprove))
	mux.HandleFunc("POST /requests/{request_id}/reject", operator(handler.handleReject))
	mux.HandleFunc("POST /requests/{request_id}/confirm-booking", operator(handler.handleConfirmBooking))
	mux.HandleFunc("POST /requests/{request_id}/arrive", operator(handler.handleMarkArrived))
	mux.HandleFunc("POST /requests/{request_id}/complete", operator(handler.handleComplete))

	mux.HandleFunc("GET /overview/live", operator(handler.handleLiveOverview))

	mux.HandleFunc("GET /bookings/health", handler.handleHealth)
	mux.HandleFunc("POST /tokens", handler.handleCreateToken)
}

// ----- general helpers -----

type TokenRequest struct {
	UserID string    `json:"user_id"`
	Role   user.Role `json:"role"`
}

// TokenResponse represents the response for token generation
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Role      user.Role `json:"role"`
}

func (handler *BookingHTTPHandler) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	tokenString, claims, err := handler.auth.IssueUserToken(req.UserID, req.Role)
	if err != nil {
		handler.httpError(ctx, w, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	response := TokenResponse{
		Token:     tokenString,
		ExpiresAt: claims.ExpiresAt.Time,
		UserID:    req.UserID,
		Role:      req.Role,
	}

	handler.logger.Info(ctx, "token_generated", "JWT token generated successfully",
		map[string]any{"user_id": req.UserID, "role": req.Role.String()})

	handler.jsonResponse(ctx, w, http.StatusCreated, response)
}

// jsonResponse encodes to a buffer first so we can control status on failure.
func (handler *BookingHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
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
func (handler *BookingHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
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
func (handler *BookingHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
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
