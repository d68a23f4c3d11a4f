package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"trip-track/internal/domain/booking"
	"trip-track/internal/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

// The five request transition endpoints share one shape: path param in,
// transition result out. Transition rule violations map to 409.

func (handler *BookingHTTPHandler) handleApprove(w http.ResponseWriter, r *http.Request) {
	handler.handleTransition(w, r, handler.svc.ApproveRequest)
}

func (handler *BookingHTTPHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	handler.handleTransition(w, r, handler.svc.RejectRequest)
}

func (handler *BookingHTTPHandler) handleConfirmBooking(w http.ResponseWriter, r *http.Request) {
	handler.handleTransition(w, r, handler.svc.ConfirmBooking)
}

func (handler *BookingHTTPHandler) handleMarkArrived(w http.ResponseWriter, r *http.Request) {
	handler.handleTransition(w, r, handler.svc.MarkArrived)
}

func (handler *BookingHTTPHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	handler.handleTransition(w, r, handler.svc.CompleteRequest)
}

func (handler *BookingHTTPHandler) handleTransition(w http.ResponseWriter, r *http.Request, call func(context.Context, string) (ports.RequestTransitionResult, error)) {
	ctx := handler.withReqID(r.Context(), r)

	requestID := strings.TrimSpace(r.PathValue("request_id"))
	if requestID == "" {
		handler.httpError(ctx, w, http.StatusBadRequest, "request_id is required", nil)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := call(ctxWithTimeout, requestID)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, booking.ErrInvalidStatusTransition):
			handler.httpError(ctxWithTimeout, w, http.StatusConflict, err.Error(), err)
		case errors.As(err, &pgErr):
			handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "database error", err)
		default:
			handler.httpError(ctxWithTimeout, w, http.StatusBadRequest, err.Error(), err)
		}
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, res)
}
