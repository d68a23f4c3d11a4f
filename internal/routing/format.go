package routing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrNoLegs = errors.New("routing: result has no legs")

// Normalize renders an oracle result as display text. With exactly one leg
// the oracle's native formatted text is preferred for precision; multi-leg
// results are summed across legs and re-rendered as rounded minutes and
// kilometers, since concatenating per-leg text would be misleading.
func Normalize(legs []Leg) (Estimate, error) {
	switch len(legs) {
	case 0:
		return Estimate{}, ErrNoLegs
	case 1:
		leg := legs[0]
		if strings.TrimSpace(leg.DurationText) != "" && strings.TrimSpace(leg.DistanceText) != "" {
			return Estimate{DurationText: leg.DurationText, DistanceText: leg.DistanceText}, nil
		}
		return renderTotals(leg.DurationSeconds, leg.DistanceMeters), nil
	default:
		var seconds, meters float64
		for _, leg := range legs {
			seconds += leg.DurationSeconds
			meters += leg.DistanceMeters
		}
		return renderTotals(seconds, meters), nil
	}
}

// renderTotals formats rounded totals in the portal's display locale.
func renderTotals(seconds, meters float64) Estimate {
	minutes := int(math.Round(seconds / 60))
	if minutes < 1 {
		minutes = 1
	}
	km := int(math.Round(meters / 1000))

	return Estimate{
		DurationText: fmt.Sprintf("%d دقيقة", minutes),
		DistanceText: fmt.Sprintf("%d كم", km),
	}
}
