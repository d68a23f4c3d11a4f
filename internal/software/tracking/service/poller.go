package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"trip-track/internal/general/contracts"
	"trip-track/internal/general/logger"
	"trip-track/internal/general/metrics"
	"trip-track/internal/ports"
)

// DefaultPollInterval is how often a tracking session re-runs its tick.
const DefaultPollInterval = 30 * time.Second

// Poller owns the server-side tracking sessions: one cancellable loop per
// request that re-runs the snapshot tick on a fixed interval. A session
// cancels itself when the gate closes or the driver's location goes stale;
// staleness additionally emits a TrackingStaleMessage for the operator side.
type Poller struct {
	logger   *logger.Logger
	svc      ports.TrackingService
	pub      ports.EventPublisher
	interval time.Duration

	mu       sync.Mutex
	sessions map[string]context.CancelFunc
}

// NewPoller creates a Poller. A non-positive interval falls back to DefaultPollInterval.
func NewPoller(logger *logger.Logger, svc ports.TrackingService, pub ports.EventPublisher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		logger:   logger,
		svc:      svc,
		pub:      pub,
		interval: interval,
		sessions: make(map[string]context.CancelFunc),
	}
}

// Start begins a tracking session for the request. Starting an already
// running session is a no-op success.
func (poller *Poller) Start(ctx context.Context, requestID string) {
	poller.mu.Lock()
	if _, running := poller.sessions[requestID]; running {
		poller.mu.Unlock()
		return
	}
	sessionCtx, cancel := context.WithCancel(ctx)
	poller.sessions[requestID] = cancel
	poller.mu.Unlock()

	metrics.ActiveTrackingSessions.Inc()
	poller.logger.Info(ctx, "tracking_session_started", "Tracking session started", map[string]any{
		"booking_request_id": requestID,
		"interval":           poller.interval.String(),
	})

	go poller.run(sessionCtx, requestID)
}

// Stop cancels the request's session. Idempotent.
func (poller *Poller) Stop(requestID string) {
	poller.mu.Lock()
	cancel, running := poller.sessions[requestID]
	if running {
		delete(poller.sessions, requestID)
	}
	poller.mu.Unlock()

	if running {
		cancel()
		metrics.ActiveTrackingSessions.Dec()
	}
}

// StopAll cancels every session, used on service shutdown.
func (poller *Poller) StopAll() {
	poller.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(poller.sessions))
	for requestID, cancel := range poller.sessions {
		cancels = append(cancels, cancel)
		delete(poller.sessions, requestID)
	}
	poller.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
		metrics.ActiveTrackingSessions.Dec()
	}
}

// Running reports whether the request currently has a session.
func (poller *Poller) Running(requestID string) bool {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	_, running := poller.sessions[requestID]
	return running
}

// run executes ticks until the session context is cancelled or the session
// decides to end itself. The first tick fires immediately.
func (poller *Poller) run(ctx context.Context, requestID string) {
	ticker := time.NewTicker(poller.interval)
	defer ticker.Stop()

	for {
		if done := poller.tick(ctx, requestID); done {
			poller.Stop(requestID)
			return
		}

		select {
		case <-ctx.Done():
			// parent context died outside Stop/StopAll: release the
			// session entry and gauge ourselves
			poller.Stop(requestID)
			return
		case <-ticker.C:
		}
	}
}

// tick runs one snapshot and decides whether the session should end.
// Transient errors keep the session alive; the next tick retries.
func (poller *Poller) tick(ctx context.Context, requestID string) (done bool) {
	snapshot, err := poller.svc.Snapshot(ctx, requestID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		poller.logger.Error(ctx, "tracking_tick_failed", "Tracking tick failed, will retry", err, map[string]any{
			"booking_request_id": requestID,
		})
		return false
	}

	if snapshot.TrackingAvailable {
		return false
	}

	switch snapshot.Reason {
	case ReasonLocationStale:
		poller.publishStale(ctx, snapshot)
		poller.logger.Info(ctx, "tracking_session_stale", "Driver location went stale, session cancelled", map[string]any{
			"booking_request_id": requestID,
			"driver_id":          snapshot.DriverID,
		})
		return true
	case ReasonNotTrackable, ReasonTripInactive, ReasonWrongDay:
		poller.logger.Info(ctx, "tracking_session_closed", "Tracking gate closed, session cancelled", map[string]any{
			"booking_request_id": requestID,
			"reason":             snapshot.Reason,
		})
		return true
	default:
		// no_driver: keep polling, a driver may still be assigned
		return false
	}
}

// publishStale emits the staleness event. Best effort.
func (poller *Poller) publishStale(ctx context.Context, snapshot ports.TrackingSnapshot) {
	msg := contracts.TrackingStaleMessage{
		RequestID: snapshot.RequestID,
		TripID:    snapshot.TripID,
		DriverID:  snapshot.DriverID,
		Timestamp: time.Now().UTC(),
		Envelope: contracts.Envelope{
			Producer: "tracking-service",
			SentAt:   time.Now().UTC(),
		},
	}

	body, err := json.Marshal(msg)
	if err == nil {
		err = poller.pub.Publish(contracts.ExchangeTripOpsTopic, contracts.RouteTrackingPrefix+snapshot.TripID, body)
	}
	if err != nil {
		metrics.OpsEventsPublishErrs.Inc()
		poller.logger.Error(ctx, "tracking_stale_publish_failed", "Failed to publish tracking stale event", err, map[string]any{
			"booking_request_id": snapshot.RequestID,
		})
	}
}
