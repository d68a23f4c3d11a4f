package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSingleLegPrefersNativeText(t *testing.T) {
	est, err := Normalize([]Leg{{
		DurationSeconds: 312,
		DistanceMeters:  2150,
		DurationText:    "5 دقائق",
		DistanceText:    "2.2 كم",
	}})
	require.NoError(t, err)
	assert.Equal(t, "5 دقائق", est.DurationText)
	assert.Equal(t, "2.2 كم", est.DistanceText)
}

func TestNormalizeSingleLegWithoutTextFallsBack(t *testing.T) {
	est, err := Normalize([]Leg{{DurationSeconds: 312, DistanceMeters: 2150}})
	require.NoError(t, err)
	assert.Equal(t, "5 دقيقة", est.DurationText)
	assert.Equal(t, "2 كم", est.DistanceText)
}

func TestNormalizeMultiLegSumsAndRerenders(t *testing.T) {
	// two legs of 300s/2000m each; native texts must be ignored
	est, err := Normalize([]Leg{
		{DurationSeconds: 300, DistanceMeters: 2000, DurationText: "5 دقائق", DistanceText: "2 كم"},
		{DurationSeconds: 300, DistanceMeters: 2000, DurationText: "5 دقائق", DistanceText: "2 كم"},
	})
	require.NoError(t, err)
	assert.Equal(t, "10 دقيقة", est.DurationText)
	assert.Equal(t, "4 كم", est.DistanceText)
}

func TestNormalizeRoundsUpToAtLeastOneMinute(t *testing.T) {
	est, err := Normalize([]Leg{
		{DurationSeconds: 10, DistanceMeters: 100},
		{DurationSeconds: 5, DistanceMeters: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, "1 دقيقة", est.DurationText)
	assert.Equal(t, "0 كم", est.DistanceText)
}

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrNoLegs)
}
