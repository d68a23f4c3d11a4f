package geo

import (
	"time"
)

// FreshnessWindow is how long a location sample counts as "fresh". Older
// samples are treated exactly like a missing sample, not like an error.
const FreshnessWindow = 5 * time.Minute

// LocationSample is the last-known position of a driver. The store keeps a
// single sample per driver: each publish overwrites the previous one
// (last-write-wins, no history retained by this subsystem).
type LocationSample struct {
	DriverID    string    `json:"driver_id"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lng"`
	IsAvailable bool      `json:"is_available"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewLocationSample validates coordinates and stamps the sample as available now.
func NewLocationSample(driverID string, latitude, longitude float64) (*LocationSample, error) {
	point := LatLng{Latitude: latitude, Longitude: longitude}
	if err := point.Validate(); err != nil {
		return nil, err
	}
	return &LocationSample{
		DriverID:    driverID,
		Latitude:    latitude,
		Longitude:   longitude,
		IsAvailable: true,
		UpdatedAt:   time.Now().UTC(),
	}, nil
}

// Fresh reports whether the sample is usable at the given instant:
// strictly younger than FreshnessWindow and still flagged available.
// A sample aged exactly FreshnessWindow is already stale.
func (sample LocationSample) Fresh(now time.Time) bool {
	if !sample.IsAvailable {
		return false
	}
	return now.Sub(sample.UpdatedAt) < FreshnessWindow
}

// Point returns the sample position as a LatLng.
func (sample LocationSample) Point() LatLng {
	return LatLng{Latitude: sample.Latitude, Longitude: sample.Longitude}
}
