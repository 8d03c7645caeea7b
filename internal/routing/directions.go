// Package routing calls the external directions service for a travel-time
// estimate between two coordinates. The service is treated as unreliable:
// callers must tolerate errors and missing estimates.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

var ErrNoRoute = errors.New("no route found")

// Client resolves driving time in minutes from origin to destination.
type Client interface {
	TravelMinutes(ctx context.Context, originLat, originLng, destLat, destLng float64) (float64, error)
}

type DirectionsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewDirectionsClient(baseURL, apiKey string, timeout time.Duration) *DirectionsClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DirectionsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Duration          *durationValue `json:"duration"`
			DurationInTraffic *durationValue `json:"duration_in_traffic"`
		} `json:"legs"`
	} `json:"routes"`
}

type durationValue struct {
	Value int64 `json:"value"` // seconds
}

// TravelMinutes returns the driving duration rounded up to whole minutes,
// preferring the traffic-aware figure when present.
func (c *DirectionsClient) TravelMinutes(ctx context.Context, originLat, originLng, destLat, destLng float64) (float64, error) {
	for _, v := range []float64{originLat, originLng, destLat, destLng} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.New("invalid coordinates")
		}
	}

	q := url.Values{}
	q.Set("origin", fmt.Sprintf("%f,%f", originLat, originLng))
	q.Set("destination", fmt.Sprintf("%f,%f", destLat, destLng))
	q.Set("mode", "driving")
	q.Set("departure_time", "now")
	q.Set("traffic_model", "best_guess")
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build directions request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("directions http status %d", resp.StatusCode)
	}

	var payload directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode directions response: %w", err)
	}

	if payload.Status != "OK" {
		return 0, fmt.Errorf("directions status %q: %s", payload.Status, payload.ErrorMessage)
	}

	if len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		return 0, ErrNoRoute
	}

	leg := payload.Routes[0].Legs[0]
	var seconds int64
	if leg.DurationInTraffic != nil && leg.DurationInTraffic.Value > 0 {
		seconds = leg.DurationInTraffic.Value
	} else if leg.Duration != nil {
		seconds = leg.Duration.Value
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("directions returned invalid duration %d", seconds)
	}

	return math.Ceil(float64(seconds) / 60.0), nil
}
