package geo

import (
	"errors"
	"math"
)

// LatLng is a plain latitude/longitude pair.
type LatLng struct {
	Latitude  float64
	Longitude float64
}

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Validate checks coordinate ranges and rejects NaN values.
func (p LatLng) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 || math.IsNaN(p.Latitude) {
		return ErrInvalidLatitude
	}
	if p.Longitude < -180 || p.Longitude > 180 || math.IsNaN(p.Longitude) {
		return ErrInvalidLongitude
	}
	return nil
}

// HaversineKM returns the great-circle distance between two points in kilometers.
func HaversineKM(a, b LatLng) float64 {
	const R = 6371.0 // Earth radius in km
	a1 := a.Latitude * math.Pi / 180
	a2 := b.Latitude * math.Pi / 180
	da := (b.Latitude - a.Latitude) * math.Pi / 180
	db := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(da/2)*math.Sin(da/2) +
		math.Cos(a1)*math.Cos(a2)*math.Sin(db/2)*math.Sin(db/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return R * c
}
