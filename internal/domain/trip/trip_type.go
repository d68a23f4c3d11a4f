package trip

import (
	"errors"
	"strings"
)

// TripType is a trip direction as stored in the `trips` table.
type TripType string

const (
	TypeArrival   TripType = "ARRIVAL"
	TypeDeparture TripType = "DEPARTURE"
)

var ErrInvalidTripType = errors.New("invalid trip type")

// ParseTripType normalizes (uppercases+trims) and validates a trip type string.
func ParseTripType(in string) (TripType, error) {
	tt := TripType(strings.ToUpper(strings.TrimSpace(in)))
	if tt.Valid() {
		return tt, nil
	}
	return "", ErrInvalidTripType
}

// Valid reports whether tripType is one of the allowed trip type constants.
func (tripType TripType) Valid() bool {
	switch tripType {
	case TypeArrival, TypeDeparture:
		return true
	default:
		return false
	}
}

// String returns the string representation of the TripType.
func (tripType TripType) String() string {
	return string(tripType)
}

// Convenience helpers.
func (tripType TripType) IsArrival() bool   { return tripType == TypeArrival }
func (tripType TripType) IsDeparture() bool { return tripType == TypeDeparture }
