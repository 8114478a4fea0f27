package fr24

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedFixture = `{
	"full_count": 12345,
	"version": 4,
	"2f1c8a9b": ["4840D6", 52.3, 13.4, 120, 36000, 450, "1000", "F-EDDB1", "B738", "EI-DCL", 1693000000, "DUB", "BER", "FR2263", 0, 0, "RYR2263", 0, "RYR"],
	"2f1c8a9c": ["ABCDEF", 52.5],
	"2f1c8a9d": ["3C6444", 52.6, 13.2, 270, 12000, 310, "2000", "F-EDDB2", "A320", "D-AIUQ", 1693000001, "MUC", "TXL", "LH1234", 0, 0, "DLH1234", 0, "DLH"]
}`

func newFeedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestFlightsNear_ParsesFeedRows(t *testing.T) {
	server := newFeedServer(t, feedFixture, http.StatusOK)
	defer server.Close()

	client := NewClient()
	client.feedURL = server.URL

	flights, err := client.FlightsNear(context.Background(), 52.363, 13.5, 100000)
	require.NoError(t, err)

	// The short row and the metadata keys are skipped
	require.Len(t, flights, 2)

	byICAO := map[string]int{}
	for i, f := range flights {
		byICAO[f.ICAO24] = i
	}

	ryr := flights[byICAO["4840D6"]]
	assert.Equal(t, "2f1c8a9b", ryr.FeedID)
	assert.Equal(t, "RYR2263", ryr.Callsign)
	assert.Equal(t, 52.3, ryr.Latitude)
	assert.Equal(t, 13.4, ryr.Longitude)
	assert.Equal(t, 120, ryr.Heading)
	assert.Equal(t, 36000, ryr.Altitude)
	assert.Equal(t, 450, ryr.GroundSpeed)
	assert.Equal(t, "B738", ryr.AircraftType)
	assert.Equal(t, "EI-DCL", ryr.Registration)
	assert.Equal(t, "DUB", ryr.Origin)
	assert.Equal(t, "BER", ryr.Destination)
	assert.Equal(t, "FR2263", ryr.FlightNumber)
	assert.Equal(t, "RYR", ryr.AirlineICAO)
	assert.Equal(t, "FR", ryr.AirlineIATA())
	assert.False(t, ryr.OnGround)
}

func TestFlightsNear_BadJSON(t *testing.T) {
	server := newFeedServer(t, "not json", http.StatusOK)
	defer server.Close()

	client := NewClient()
	client.feedURL = server.URL

	_, err := client.FlightsNear(context.Background(), 52.363, 13.5, 100000)
	assert.Error(t, err)
}

func TestFlightsNear_ServerError(t *testing.T) {
	server := newFeedServer(t, "", http.StatusBadGateway)
	defer server.Close()

	client := NewClient()
	client.feedURL = server.URL

	_, err := client.FlightsNear(context.Background(), 52.363, 13.5, 100000)
	assert.Error(t, err)
}

func TestFlightDetails_Extraction(t *testing.T) {
	body := `{
		"identification": {"number": {"default": "FR2263"}},
		"airline": {"name": "Ryanair", "code": {"iata": "FR", "icao": "RYR"}},
		"aircraft": {"model": {"text": "Boeing 737-8AS", "code": "B738"}, "registration": "EI-DCL"},
		"airport": {
			"origin": {"code": {"iata": "DUB", "icao": "EIDW"}},
			"destination": {"code": {"iata": "BER", "icao": "EDDB"}}
		},
		"status": {"text": "En Route"},
		"time": {"scheduled": {"departure": 1693000000, "arrival": 1693007200}, "estimated": {"arrival": 1693007900}},
		"trail": [{"lat": 52.31, "lng": 13.41, "alt": 35975}]
	}`
	server := newFeedServer(t, body, http.StatusOK)
	defer server.Close()

	client := NewClient()
	client.detailsURL = server.URL

	d, err := client.FlightDetails(context.Background(), "2f1c8a9b")
	require.NoError(t, err)

	assert.Equal(t, "FR2263", d.FlightNumber)
	assert.Equal(t, "Ryanair", d.AirlineName)
	assert.Equal(t, "FR", d.AirlineIATA)
	assert.Equal(t, "RYR", d.AirlineICAO)
	assert.Equal(t, "Boeing 737-8AS", d.AircraftModel)
	assert.Equal(t, "B738", d.AircraftTypeICAO)
	assert.Equal(t, "EI-DCL", d.Registration)
	assert.Equal(t, "DUB", d.OriginIATA)
	assert.Equal(t, "BER", d.DestinationIATA)
	assert.Equal(t, "EDDB", d.DestinationICAO)
	assert.Equal(t, "En Route", d.StatusText)
	assert.Equal(t, int64(1693000000), d.ScheduledDeparture)
	assert.Equal(t, int64(1693007900), d.EstimatedArrival)
	assert.True(t, d.HasTrail)
	assert.Equal(t, 52.31, d.TrailLatitude)
}

func TestFlightDetails_SparsePayload(t *testing.T) {
	server := newFeedServer(t, `{"trail": "unexpected"}`, http.StatusOK)
	defer server.Close()

	client := NewClient()
	client.detailsURL = server.URL

	d, err := client.FlightDetails(context.Background(), "2f1c8a9b")
	require.NoError(t, err)
	assert.Equal(t, "", d.FlightNumber)
	assert.False(t, d.HasTrail)
}

func TestFlightDetails_EmptyFeedID(t *testing.T) {
	client := NewClient()
	_, err := client.FlightDetails(context.Background(), "")
	assert.Error(t, err)
}

func TestAirlineLogo_FallbackToOperatorAsset(t *testing.T) {
	cdnCalls := 0
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cdnCalls++
		http.NotFound(w, r)
	}))
	defer cdn.Close()

	operator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/RYR_logo0.png", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer operator.Close()

	client := NewClient()
	client.logoCDNURL = cdn.URL
	client.logoFlagURL = operator.URL

	data, ctype, err := client.AirlineLogo(context.Background(), "FR", "RYR")
	require.NoError(t, err)
	assert.Equal(t, 1, cdnCalls)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", ctype)
}

func TestAirlineLogo_NoCodes(t *testing.T) {
	client := NewClient()
	_, _, err := client.AirlineLogo(context.Background(), "", "")
	assert.Error(t, err)
}

func TestBoundsAround(t *testing.T) {
	north, south, west, east := boundsAround(52.0, 13.0, 100000)

	assert.Greater(t, north, 52.0)
	assert.Less(t, south, 52.0)
	assert.Less(t, west, 13.0)
	assert.Greater(t, east, 13.0)

	// ~100km of latitude is just under a degree
	assert.InDelta(t, 0.9, north-52.0, 0.1)
	// Longitude span widens at 52N
	assert.Greater(t, east-13.0, north-52.0)
}
