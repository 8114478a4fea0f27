package fr24

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"pixoo_tracker/internal/models"
)

const maxResponseBodySize = 4 << 20 // 4MB, the zone feed can be large

// connection pooling limits so repeated polling reuses connections
const (
	defaultMaxIdleConns    = 10
	defaultIdleConnTimeout = 60 * time.Second
	defaultRequestTimeout  = 10 * time.Second
)

const (
	defaultFeedURL     = "https://data-cloud.flightradar24.com/zones/fcgi/feed.js"
	defaultDetailsURL  = "https://data-live.flightradar24.com/clickhandler/"
	defaultLogoCDNURL  = "https://cdn.flightradar24.com/assets/airlines/logotypes"
	defaultLogoFlagURL = "https://www.flightradar24.com/static/images/data/operators"

	// Some endpoints refuse requests without a browser-like user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

// Client queries the FlightRadar24 public feed endpoints.
//
// Requests carry a per-call timeout; failures are returned to the caller,
// which skips the poll cycle and retries on the next tick.
type Client struct {
	httpClient  *http.Client
	feedURL     string
	detailsURL  string
	logoCDNURL  string
	logoFlagURL string
	timeout     time.Duration
}

// NewClient creates a client for the public feed endpoints.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:      defaultMaxIdleConns,
				IdleConnTimeout:   defaultIdleConnTimeout,
				DisableKeepAlives: false,
			},
		},
		feedURL:     defaultFeedURL,
		detailsURL:  defaultDetailsURL,
		logoCDNURL:  defaultLogoCDNURL,
		logoFlagURL: defaultLogoFlagURL,
		timeout:     defaultRequestTimeout,
	}
}

// get performs a GET with the client timeout and returns the body bytes.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
		return nil, "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// FlightsNear returns the flights currently inside a bounding box of
// radiusMeters around the given point. Malformed feed rows are skipped.
func (c *Client) FlightsNear(ctx context.Context, lat, lon float64, radiusMeters int) ([]models.Flight, error) {
	north, south, west, east := boundsAround(lat, lon, float64(radiusMeters))

	q := url.Values{}
	q.Set("bounds", fmt.Sprintf("%.3f,%.3f,%.3f,%.3f", north, south, west, east))
	q.Set("faa", "1")
	q.Set("satellite", "1")
	q.Set("mlat", "1")
	q.Set("flarm", "1")
	q.Set("adsb", "1")
	q.Set("gnd", "0")
	q.Set("air", "1")
	q.Set("vehicles", "0")
	q.Set("estimated", "1")
	q.Set("gliders", "0")
	q.Set("stats", "0")
	q.Set("maxage", "14400")

	body, _, err := c.get(ctx, c.feedURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("zone feed query failed: %w", err)
	}

	return parseFeed(body)
}

// boundsAround converts a radius in meters around a point into the
// north,south,west,east box the feed endpoint expects.
func boundsAround(lat, lon, radiusMeters float64) (north, south, west, east float64) {
	// One degree of latitude is ~111.32km; longitude shrinks with latitude.
	latDelta := radiusMeters / 111320.0
	lonScale := math.Cos(lat * math.Pi / 180)
	if lonScale < 0.01 {
		lonScale = 0.01 // near the poles every longitude is in range
	}
	lonDelta := latDelta / lonScale

	return lat + latDelta, lat - latDelta, lon - lonDelta, lon + lonDelta
}

// Feed row array indices. The zone feed encodes each flight as a
// positional JSON array keyed by the feed's internal flight id.
const (
	feedIdxICAO24 = iota
	feedIdxLat
	feedIdxLon
	feedIdxHeading
	feedIdxAltitude
	feedIdxSpeed
	feedIdxSquawk
	feedIdxRadar
	feedIdxType
	feedIdxReg
	feedIdxTimestamp
	feedIdxOrigin
	feedIdxDest
	feedIdxNumber
	feedIdxOnGround
	feedIdxVSpeed
	feedIdxCallsign
	feedIdxGlider
	feedIdxAirlineICAO
	feedRowLen
)

// parseFeed decodes the zone feed payload. The object mixes metadata keys
// (full_count, version) with flight rows, so each value is inspected.
func parseFeed(body []byte) ([]models.Flight, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	flights := make([]models.Flight, 0, len(raw))
	for key, val := range raw {
		var row []any
		if err := json.Unmarshal(val, &row); err != nil {
			continue // metadata key, not a flight row
		}
		if len(row) < feedRowLen {
			continue
		}

		flights = append(flights, models.Flight{
			FeedID:       key,
			ICAO24:       rowString(row, feedIdxICAO24),
			Latitude:     rowFloat(row, feedIdxLat),
			Longitude:    rowFloat(row, feedIdxLon),
			Heading:      int(rowFloat(row, feedIdxHeading)),
			Altitude:     int(rowFloat(row, feedIdxAltitude)),
			GroundSpeed:  int(rowFloat(row, feedIdxSpeed)),
			AircraftType: rowString(row, feedIdxType),
			Registration: rowString(row, feedIdxReg),
			Origin:       rowString(row, feedIdxOrigin),
			Destination:  rowString(row, feedIdxDest),
			FlightNumber: rowString(row, feedIdxNumber),
			OnGround:     rowFloat(row, feedIdxOnGround) != 0,
			Callsign:     rowString(row, feedIdxCallsign),
			AirlineICAO:  rowString(row, feedIdxAirlineICAO),
		})
	}

	return flights, nil
}

func rowString(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, _ := row[idx].(string)
	return s
}

func rowFloat(row []any, idx int) float64 {
	if idx >= len(row) {
		return 0
	}
	f, _ := row[idx].(float64)
	return f
}

// FlightDetails fetches the enrichment payload for a feed flight id.
func (c *Client) FlightDetails(ctx context.Context, feedID string) (*models.FlightDetails, error) {
	if feedID == "" {
		return nil, fmt.Errorf("feed id is empty")
	}

	q := url.Values{}
	q.Set("flight", feedID)
	q.Set("version", "1.5")

	body, _, err := c.get(ctx, c.detailsURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("details query failed: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode details: %w", err)
	}

	d := &models.FlightDetails{
		FlightNumber:       models.DigString(payload, "identification", "number", "default"),
		AirlineName:        models.DigString(payload, "airline", "name"),
		AirlineICAO:        models.DigString(payload, "airline", "code", "icao"),
		AirlineIATA:        models.DigString(payload, "airline", "code", "iata"),
		AircraftModel:      models.DigString(payload, "aircraft", "model", "text"),
		AircraftTypeICAO:   models.DigString(payload, "aircraft", "model", "code"),
		Registration:       models.DigString(payload, "aircraft", "registration"),
		OriginIATA:         models.DigString(payload, "airport", "origin", "code", "iata"),
		DestinationIATA:    models.DigString(payload, "airport", "destination", "code", "iata"),
		DestinationICAO:    models.DigString(payload, "airport", "destination", "code", "icao"),
		StatusText:         models.DigString(payload, "status", "text"),
		ScheduledDeparture: models.DigInt64(payload, "time", "scheduled", "departure"),
		ScheduledArrival:   models.DigInt64(payload, "time", "scheduled", "arrival"),
		EstimatedArrival:   models.DigInt64(payload, "time", "estimated", "arrival"),
	}

	// The most recent trail point doubles as a position fallback when the
	// feed row had no coordinates.
	if trail, ok := payload["trail"].([]any); ok && len(trail) > 0 {
		if point, ok := trail[0].(map[string]any); ok {
			d.TrailLatitude = models.DigFloat(point, "lat")
			d.TrailLongitude = models.DigFloat(point, "lng")
			d.HasTrail = d.TrailLatitude != 0 || d.TrailLongitude != 0
		}
	}

	return d, nil
}

// AirlineLogo downloads the logo asset for an airline, trying the CDN
// composite asset first and the operator page asset as fallback. Returns
// the raw bytes and the response content type.
func (c *Client) AirlineLogo(ctx context.Context, iata, icao string) ([]byte, string, error) {
	var lastErr error

	if iata != "" && icao != "" {
		body, ctype, err := c.get(ctx, fmt.Sprintf("%s/%s_%s.png", c.logoCDNURL, iata, icao))
		if err == nil {
			return body, ctype, nil
		}
		lastErr = err
	}

	if icao != "" {
		body, ctype, err := c.get(ctx, fmt.Sprintf("%s/%s_logo0.png", c.logoFlagURL, icao))
		if err == nil {
			return body, ctype, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no airline code provided")
	}
	return nil, "", fmt.Errorf("logo download failed: %w", lastErr)
}
