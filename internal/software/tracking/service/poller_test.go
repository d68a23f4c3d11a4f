package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"trip-track/internal/general/contracts"
	"trip-track/internal/general/logger"
	"trip-track/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTracking replays a fixed sequence of snapshots, repeating the last
// one once the script runs out.
type scriptedTracking struct {
	mu     sync.Mutex
	script []ports.TrackingSnapshot
	ticks  int
}

func (s *scriptedTracking) Snapshot(_ context.Context, _ string) (ports.TrackingSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.ticks
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	s.ticks++
	return s.script[idx], nil
}

func (s *scriptedTracking) tickCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string // routing keys
}

func (p *recordingPublisher) Publish(_ string, routingKey string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func available() ports.TrackingSnapshot {
	return ports.TrackingSnapshot{
		RequestID:         "req-1",
		TripID:            "trip-1",
		TrackingAvailable: true,
		DriverID:          "drv-1",
	}
}

func unavailable(reason string) ports.TrackingSnapshot {
	return ports.TrackingSnapshot{
		RequestID: "req-1",
		TripID:    "trip-1",
		DriverID:  "drv-1",
		Reason:    reason,
	}
}

func newTestPoller(script ...ports.TrackingSnapshot) (*Poller, *scriptedTracking, *recordingPublisher) {
	svc := &scriptedTracking{script: script}
	pub := &recordingPublisher{}
	poller := NewPoller(logger.New("poller-test"), svc, pub, 5*time.Millisecond)
	return poller, svc, pub
}

func TestPollerStaleSelfCancel(t *testing.T) {
	poller, svc, pub := newTestPoller(
		available(),
		available(),
		unavailable(ReasonLocationStale),
	)

	poller.Start(context.Background(), "req-1")
	require.True(t, poller.Running("req-1"))

	assert.Eventually(t, func() bool {
		return !poller.Running("req-1")
	}, time.Second, 5*time.Millisecond, "session should cancel itself on staleness")

	assert.GreaterOrEqual(t, svc.tickCount(), 3)
	require.Len(t, pub.keys(), 1)
	assert.Equal(t, contracts.RouteTrackingPrefix+"trip-1", pub.keys()[0])
}

func TestPollerGateClosedCancelsWithoutStaleEvent(t *testing.T) {
	for _, reason := range []string{ReasonNotTrackable, ReasonTripInactive, ReasonWrongDay} {
		t.Run(reason, func(t *testing.T) {
			poller, _, pub := newTestPoller(
				available(),
				unavailable(reason),
			)

			poller.Start(context.Background(), "req-1")

			assert.Eventually(t, func() bool {
				return !poller.Running("req-1")
			}, time.Second, 5*time.Millisecond)

			assert.Empty(t, pub.keys())
		})
	}
}

func TestPollerParentCancelCleansUpSession(t *testing.T) {
	poller, _, _ := newTestPoller(available())

	ctx, cancel := context.WithCancel(context.Background())
	poller.Start(ctx, "req-1")
	require.True(t, poller.Running("req-1"))

	cancel()
	assert.Eventually(t, func() bool {
		return !poller.Running("req-1")
	}, time.Second, 5*time.Millisecond, "cancelled parent context must release the session")
}

func TestPollerKeepsPollingWithoutDriver(t *testing.T) {
	poller, svc, pub := newTestPoller(unavailable(ReasonNoDriver))
	defer poller.StopAll()

	poller.Start(context.Background(), "req-1")

	assert.Eventually(t, func() bool {
		return svc.tickCount() >= 3
	}, time.Second, 5*time.Millisecond, "no_driver must not end the session")

	assert.True(t, poller.Running("req-1"))
	assert.Empty(t, pub.keys())
}

func TestPollerStartIsIdempotent(t *testing.T) {
	poller, _, _ := newTestPoller(available())
	defer poller.StopAll()

	poller.Start(context.Background(), "req-1")
	poller.Start(context.Background(), "req-1")

	poller.mu.Lock()
	sessions := len(poller.sessions)
	poller.mu.Unlock()
	assert.Equal(t, 1, sessions)
}

func TestPollerStopIsIdempotent(t *testing.T) {
	poller, _, _ := newTestPoller(available())

	poller.Start(context.Background(), "req-1")
	poller.Stop("req-1")
	poller.Stop("req-1") // second stop must be a no-op

	assert.False(t, poller.Running("req-1"))
}

func TestPollerStopAll(t *testing.T) {
	poller, _, _ := newTestPoller(available())

	poller.Start(context.Background(), "req-1")
	poller.Start(context.Background(), "req-2")
	poller.StopAll()

	assert.False(t, poller.Running("req-1"))
	assert.False(t, poller.Running("req-2"))
}
