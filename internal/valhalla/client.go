// Package valhalla implements the trace_route client used to map-match
// trajectories against a Valhalla routing service.
package valhalla

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/joaofig/evedb-go/internal/spatial"
)

// Config holds the trace_route request parameters.
type Config struct {
	URL          string
	SearchRadius float64 // meters
	GPSAccuracy  float64 // meters
	Costing      string
	Timeout      time.Duration
}

// Client calls the Valhalla trace_route endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a trace_route client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if cfg.Costing == "" {
		cfg.Costing = "auto"
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// shapePoint is one input coordinate of the trace_route shape.
type shapePoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// traceOptions tunes the map-matching search.
type traceOptions struct {
	SearchRadius float64 `json:"search_radius"`
	GPSAccuracy  float64 `json:"gps_accuracy"`
}

// traceRouteRequest is the trace_route request payload. Timestamps are not
// used: the eVED clocks are trip-relative and would mislead the matcher's
// speed model.
type traceRouteRequest struct {
	Shape         []shapePoint `json:"shape"`
	Costing       string       `json:"costing"`
	ShapeMatch    string       `json:"shape_match"`
	UseTimestamps bool         `json:"use_timestamps"`
	TraceOptions  traceOptions `json:"trace_options"`
}

// Warning is an ambiguity diagnostic attached to an otherwise successful
// match.
type Warning struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

// Leg is one leg of the matched route. Shape is the encoded polyline as
// returned by the service; Points is its decoded form.
type Leg struct {
	Shape  string          `json:"shape"`
	Points []spatial.Point `json:"-"`
}

// Trip is the matched route returned by trace_route.
type Trip struct {
	Status        int       `json:"status"`
	StatusMessage string    `json:"status_message"`
	Units         string    `json:"units"`
	Legs          []Leg     `json:"legs"`
	Warnings      []Warning `json:"warnings,omitempty"`
}

type traceRouteResponse struct {
	Trip *Trip `json:"trip"`
}

// apiError is Valhalla's error payload for rejected requests.
type apiError struct {
	ErrorCode  int    `json:"error_code"`
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

// Match submits the ordered raw coordinates of one trajectory for
// snap-to-road matching and returns the matched trip. Legs are returned
// with their shapes decoded.
func (c *Client) Match(ctx context.Context, points []spatial.Point) (*Trip, error) {
	endpoint, err := url.JoinPath(c.cfg.URL, "trace_route")
	if err != nil {
		return nil, fmt.Errorf("invalid valhalla URL %s: %w", c.cfg.URL, err)
	}

	shape := make([]shapePoint, len(points))
	for i, p := range points {
		shape[i] = shapePoint{Lat: p.Lat, Lon: p.Lon}
	}

	payload := traceRouteRequest{
		Shape:         shape,
		Costing:       c.cfg.Costing,
		ShapeMatch:    "map_snap",
		UseTimestamps: false,
		TraceOptions: traceOptions{
			SearchRadius: c.cfg.SearchRadius,
			GPSAccuracy:  c.cfg.GPSAccuracy,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trace_route request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build trace_route request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trace_route call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace_route response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("trace_route rejected (code %d): %s", apiErr.ErrorCode, apiErr.Error)
		}
		return nil, fmt.Errorf("trace_route returned HTTP %d", resp.StatusCode)
	}

	var decoded traceRouteResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode trace_route response: %w", err)
	}
	if decoded.Trip == nil {
		return nil, fmt.Errorf("trace_route response carries no trip")
	}

	trip := decoded.Trip
	for i := range trip.Legs {
		trip.Legs[i].Points = DecodeShape(trip.Legs[i].Shape)
	}
	return trip, nil
}
