// Package metar fetches the latest METAR report for an airport from the
// NOAA text server. Reports are attached to sightings for reference; a
// failed fetch never blocks a render cycle.
package metar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pixoo_tracker/internal/models"
)

const defaultBaseURL = "https://tgftp.nws.noaa.gov/data/observations/metar/stations"

const maxResponseBodySize = 64 << 10 // reports are a few hundred bytes

// Fetcher retrieves raw METAR text by airport ICAO code.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewFetcher creates a fetcher against the NOAA observation server.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		timeout:    5 * time.Second,
	}
}

// Fetch returns the latest report for the given ICAO code. The NOAA files
// are two lines (observation time, raw report) but occasionally only the
// report line is present.
func (f *Fetcher) Fetch(ctx context.Context, icao string) (*models.Metar, error) {
	icao = strings.ToUpper(strings.TrimSpace(icao))
	if icao == "" {
		return nil, fmt.Errorf("icao code is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s.TXT", f.baseURL, icao)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, icao)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read metar body: %w", err)
	}

	return parse(string(body), url)
}

func parse(text, source string) (*models.Metar, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf("empty metar response")
	}

	m := &models.Metar{Source: source}
	if len(lines) >= 2 {
		m.Timestamp = strings.TrimSpace(lines[0])
		m.Raw = strings.TrimSpace(lines[1])
	} else {
		m.Raw = strings.TrimSpace(lines[0])
	}

	return m, nil
}
