package handler

import (
	"context"
	"net/http"
	"time"
)

// ----- Handler: GET /overview/live -----

func (handler *BookingHTTPHandler) handleLiveOverview(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := handler.svc.LiveOverview(ctxWithTimeout)
	if err != nil {
		handler.httpError(ctxWithTimeout, w, http.StatusInternalServerError, "failed to build live overview", err)
		return
	}

	handler.jsonResponse(ctxWithTimeout, w, http.StatusOK, res)
}
