package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigString_NestedPath(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"airline": {"name": "Ryanair", "code": {"iata": "FR", "icao": "RYR"}}
	}`), &payload))

	assert.Equal(t, "Ryanair", DigString(payload, "airline", "name"))
	assert.Equal(t, "FR", DigString(payload, "airline", "code", "iata"))
}

func TestDigString_MissingAndMistyped(t *testing.T) {
	payload := map[string]any{
		"airline": map[string]any{"code": 42},
		"status":  "not a map",
	}

	assert.Equal(t, "", DigString(payload, "airline", "code", "iata"))
	assert.Equal(t, "", DigString(payload, "status", "text"))
	assert.Equal(t, "", DigString(payload, "nope", "deeper", "still"))
	assert.Equal(t, "", DigString(payload))
	assert.Equal(t, "", DigString(nil, "anything"))
}

func TestDigInt64_JSONNumbers(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"time": {"scheduled": {"departure": 1693000000}}
	}`), &payload))

	assert.Equal(t, int64(1693000000), DigInt64(payload, "time", "scheduled", "departure"))
	assert.Equal(t, int64(0), DigInt64(payload, "time", "scheduled", "arrival"))
	assert.Equal(t, int64(0), DigInt64(payload, "time", "estimated", "arrival"))
}

func TestDigFloat_Missing(t *testing.T) {
	payload := map[string]any{"lat": 52.5}

	assert.Equal(t, 52.5, DigFloat(payload, "lat"))
	assert.Equal(t, 0.0, DigFloat(payload, "lng"))
	assert.Equal(t, 0.0, DigFloat(payload, "lat", "too", "deep"))
}

func TestFlight_AirlineIATA(t *testing.T) {
	f := &Flight{FlightNumber: "FR2263"}
	assert.Equal(t, "FR", f.AirlineIATA())

	f = &Flight{FlightNumber: "X"}
	assert.Equal(t, "", f.AirlineIATA())

	f = &Flight{}
	assert.Equal(t, "", f.AirlineIATA())
}

func TestFlight_HasAirline(t *testing.T) {
	assert.True(t, (&Flight{AirlineICAO: "RYR"}).HasAirline())
	assert.True(t, (&Flight{FlightNumber: "FR2263"}).HasAirline())
	assert.False(t, (&Flight{}).HasAirline())
}

func TestFlight_Identity(t *testing.T) {
	f := &Flight{ICAO24: "4840d6", Callsign: "RYR2263"}
	assert.Equal(t, "4840d6", f.Identity())

	f = &Flight{Callsign: "RYR2263"}
	assert.Equal(t, "RYR2263", f.Identity())

	f = &Flight{}
	assert.Equal(t, "", f.Identity())
}
