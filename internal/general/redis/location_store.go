package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trip-track/internal/domain/geo"
	"trip-track/internal/general/metrics"
	"trip-track/internal/ports"

	goredis "github.com/redis/go-redis/v9"
)

// rowTTL is pure key hygiene: the freshness invariant is enforced on read,
// so expiry only needs to sweep rows of drivers who stopped driving entirely.
const rowTTL = 24 * time.Hour

// LocationStore keeps one last-write-wins JSON row per driver in Redis.
type LocationStore struct {
	rdb *goredis.Client
	now func() time.Time
}

// NewLocationStore constructs a LocationStore on the given Redis client.
func NewLocationStore(rdb *goredis.Client) ports.LocationStore {
	return &LocationStore{rdb: rdb, now: func() time.Time { return time.Now().UTC() }}
}

func locationKey(driverID string) string {
	return "driver_location:" + driverID
}

// Publish overwrites the driver's sample. Each publish replaces the previous
// one; no history is retained by this subsystem.
func (store *LocationStore) Publish(ctx context.Context, sample *geo.LocationSample) error {
	body, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("marshal location sample: %w", err)
	}
	if err := store.rdb.Set(ctx, locationKey(sample.DriverID), body, rowTTL).Err(); err != nil {
		return fmt.Errorf("write location sample: %w", err)
	}
	metrics.LocationPublishesTotal.Inc()
	return nil
}

// ReadFresh returns the sample iff the freshness invariant holds. Absent,
// stale, and unavailable samples all yield (nil, false, nil): staleness is an
// expected steady state, never an error.
func (store *LocationStore) ReadFresh(ctx context.Context, driverID string) (*geo.LocationSample, bool, error) {
	body, err := store.rdb.Get(ctx, locationKey(driverID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.StaleReadsTotal.Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read location sample: %w", err)
	}

	var sample geo.LocationSample
	if err := json.Unmarshal(body, &sample); err != nil {
		return nil, false, fmt.Errorf("decode location sample: %w", err)
	}

	if !sample.Fresh(store.now()) {
		metrics.StaleReadsTotal.Inc()
		return nil, false, nil
	}
	return &sample, true, nil
}

// SetUnavailable flips the stored sample's availability without touching its
// timestamp. A missing row is already absent, so the call is a no-op success.
func (store *LocationStore) SetUnavailable(ctx context.Context, driverID string) error {
	key := locationKey(driverID)

	body, err := store.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read location sample: %w", err)
	}

	var sample geo.LocationSample
	if err := json.Unmarshal(body, &sample); err != nil {
		return fmt.Errorf("decode location sample: %w", err)
	}

	sample.IsAvailable = false
	updated, err := json.Marshal(&sample)
	if err != nil {
		return fmt.Errorf("marshal location sample: %w", err)
	}
	if err := store.rdb.Set(ctx, key, updated, rowTTL).Err(); err != nil {
		return fmt.Errorf("write location sample: %w", err)
	}
	return nil
}
