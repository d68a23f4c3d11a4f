package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocationSampleValidatesCoordinates(t *testing.T) {
	_, err := NewLocationSample("drv-1", 91, 0)
	assert.ErrorIs(t, err, ErrInvalidLatitude)

	_, err = NewLocationSample("drv-1", 0, -181)
	assert.ErrorIs(t, err, ErrInvalidLongitude)

	sample, err := NewLocationSample("drv-1", 24.7136, 46.6753)
	require.NoError(t, err)
	assert.True(t, sample.IsAvailable)
	assert.WithinDuration(t, time.Now().UTC(), sample.UpdatedAt, time.Second)
}

func TestFreshWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"just published", 0, true},
		{"one second short of the window", FreshnessWindow - time.Second, true},
		{"exactly at the window", FreshnessWindow, false},
		{"well past the window", FreshnessWindow + time.Minute, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sample := LocationSample{
				DriverID:    "drv-1",
				IsAvailable: true,
				UpdatedAt:   now.Add(-tc.age),
			}
			assert.Equal(t, tc.want, sample.Fresh(now))
		})
	}
}

func TestUnavailableOverridesRecency(t *testing.T) {
	now := time.Now().UTC()
	sample := LocationSample{
		DriverID:    "drv-1",
		IsAvailable: false,
		UpdatedAt:   now, // brand new, but explicitly unavailable
	}
	assert.False(t, sample.Fresh(now))
}

func TestLatLngValidate(t *testing.T) {
	assert.NoError(t, LatLng{Latitude: -90, Longitude: 180}.Validate())
	assert.ErrorIs(t, LatLng{Latitude: 90.0001}.Validate(), ErrInvalidLatitude)
	assert.ErrorIs(t, LatLng{Longitude: 200}.Validate(), ErrInvalidLongitude)
}

func TestHaversineKM(t *testing.T) {
	// Riyadh to Dammam is roughly 390 km
	riyadh := LatLng{Latitude: 24.7136, Longitude: 46.6753}
	dammam := LatLng{Latitude: 26.4207, Longitude: 50.0888}

	dst := HaversineKM(riyadh, dammam)
	assert.InDelta(t, 390, dst, 15)

	assert.Zero(t, HaversineKM(riyadh, riyadh))
}
