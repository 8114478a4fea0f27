package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixoo_tracker/internal/models"
)

func TestHaversine_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(52.52, 13.405, 52.52, 13.405))
}

func TestHaversine_KnownDistances(t *testing.T) {
	// Berlin to Paris is roughly 878km
	d := Haversine(52.52, 13.405, 48.8566, 2.3522)
	assert.InDelta(t, 878, d, 10)

	// Berlin to Hamburg is roughly 255km
	d = Haversine(52.52, 13.405, 53.5511, 9.9937)
	assert.InDelta(t, 255, d, 10)
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Haversine(52.52, 13.405, 48.8566, 2.3522)
	b := Haversine(48.8566, 2.3522, 52.52, 13.405)
	assert.InDelta(t, a, b, 0.001)
}

func TestNearest_PicksMinimumDistance(t *testing.T) {
	flights := []models.Flight{
		{ICAO24: "far", Latitude: 54.0, Longitude: 15.0, AirlineICAO: "DLH"},
		{ICAO24: "close", Latitude: 52.4, Longitude: 13.5, AirlineICAO: "RYR"},
		{ICAO24: "mid", Latitude: 53.0, Longitude: 14.0, AirlineICAO: "EZY"},
	}

	nearest, dist, ok := Nearest(flights, 52.363, 13.5)
	require.True(t, ok)
	assert.Equal(t, "close", nearest.ICAO24)
	assert.Less(t, dist, 10.0)
}

func TestNearest_SkipsFlightsWithoutAirline(t *testing.T) {
	flights := []models.Flight{
		{ICAO24: "closest-no-airline", Latitude: 52.363, Longitude: 13.5},
		{ICAO24: "with-airline", Latitude: 53.0, Longitude: 14.0, AirlineICAO: "DLH"},
	}

	nearest, _, ok := Nearest(flights, 52.363, 13.5)
	require.True(t, ok)
	assert.Equal(t, "with-airline", nearest.ICAO24)
}

func TestNearest_AirlineFromFlightNumber(t *testing.T) {
	// No ICAO airline code, but the flight number prefix identifies one
	flights := []models.Flight{
		{ICAO24: "abc123", Latitude: 52.4, Longitude: 13.5, FlightNumber: "FR2263"},
	}

	nearest, _, ok := Nearest(flights, 52.363, 13.5)
	require.True(t, ok)
	assert.Equal(t, "abc123", nearest.ICAO24)
}

func TestNearest_SkipsFlightsWithoutPosition(t *testing.T) {
	flights := []models.Flight{
		{ICAO24: "nopos", AirlineICAO: "DLH"},
	}

	_, _, ok := Nearest(flights, 52.363, 13.5)
	assert.False(t, ok)
}

func TestNearest_EmptyList(t *testing.T) {
	_, _, ok := Nearest(nil, 52.363, 13.5)
	assert.False(t, ok)
}
