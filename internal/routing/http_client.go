package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trip-track/internal/domain/geo"
)

// HTTPClient performs route lookups against a routing oracle HTTP server.
type HTTPClient struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPClient builds a client for the given oracle base URL. The 5s bound
// keeps a hung oracle call from outliving a poll tick; per-passenger fan-out
// handles isolation.
func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{Endpoint: endpoint, Client: &http.Client{Timeout: 5 * time.Second}}
}

// Route queries the oracle:
// GET {endpoint}/route?origin={lat},{lng}&destination={lat},{lng}
func (c *HTTPClient) Route(ctx context.Context, origin, destination geo.LatLng) ([]Leg, error) {
	url := fmt.Sprintf("%s/route?origin=%.6f,%.6f&destination=%.6f,%.6f",
		c.Endpoint, origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing oracle: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Legs []struct {
			DurationSeconds float64 `json:"duration_seconds"`
			DistanceMeters  float64 `json:"distance_meters"`
			DurationText    string  `json:"duration_text"`
			DistanceText    string  `json:"distance_text"`
		} `json:"legs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Legs) == 0 {
		return nil, fmt.Errorf("routing oracle: no route")
	}

	legs := make([]Leg, 0, len(out.Legs))
	for _, l := range out.Legs {
		legs = append(legs, Leg{
			DurationSeconds: l.DurationSeconds,
			DistanceMeters:  l.DistanceMeters,
			DurationText:    l.DurationText,
			DistanceText:    l.DistanceText,
		})
	}
	return legs, nil
}
