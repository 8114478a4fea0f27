package models

// Flight represents one aircraft row from the live zone feed.
// Fields the feed omits are left at their zero values and treated as unknown.
type Flight struct {
	FeedID       string  // Feed row key, needed for the details lookup
	ICAO24       string  // 6 hex digit transponder address
	Callsign     string  // ATC callsign (e.g., RYR2263)
	Latitude     float64 // Degrees, positive north
	Longitude    float64 // Degrees, positive east
	Heading      int     // Track in degrees, 0-359
	Altitude     int     // Barometric altitude in feet
	GroundSpeed  int     // Ground speed in knots
	Registration string  // Tail number (e.g., EI-DCL)
	AircraftType string  // ICAO type code (e.g., B738)
	Origin       string  // Origin airport IATA code
	Destination  string  // Destination airport IATA code
	FlightNumber string  // Commercial flight number (e.g., FR2263)
	AirlineICAO  string  // Operating airline ICAO code
	OnGround     bool
}

// AirlineIATA derives the two-letter airline code from the flight number,
// the same way the feed consumers do. Empty when no flight number is set.
func (f *Flight) AirlineIATA() string {
	if len(f.FlightNumber) < 2 {
		return ""
	}
	return f.FlightNumber[:2]
}

// HasAirline reports whether the flight carries any airline identification.
// Flights without one are skipped during selection since no logo can be
// resolved for them.
func (f *Flight) HasAirline() bool {
	return f.AirlineICAO != "" || f.AirlineIATA() != ""
}

// HasPosition reports whether the feed row included usable coordinates.
func (f *Flight) HasPosition() bool {
	return f.Latitude != 0 || f.Longitude != 0
}

// Identity returns the value used to decide whether the selected aircraft
// changed between poll cycles. The ICAO24 address is unique per airframe;
// the callsign is a fallback for rows where the feed omits it.
func (f *Flight) Identity() string {
	if f.ICAO24 != "" {
		return f.ICAO24
	}
	return f.Callsign
}

// FlightDetails holds the enrichment fetched from the details endpoint for
// the selected flight. Everything here is optional.
type FlightDetails struct {
	FlightNumber       string
	AirlineName        string
	AirlineICAO        string
	AirlineIATA        string
	AircraftModel      string
	AircraftTypeICAO   string
	Registration       string
	OriginIATA         string
	DestinationIATA    string
	DestinationICAO    string
	StatusText         string
	ScheduledDeparture int64 // Unix seconds, 0 when unknown
	ScheduledArrival   int64
	EstimatedArrival   int64
	TrailLatitude      float64 // Most recent trail point, position fallback
	TrailLongitude     float64
	HasTrail           bool
}

// Metar is the latest weather report for an airport, fetched as raw text.
type Metar struct {
	Raw       string // e.g., "EDDB 281550Z 24008KT 9999 FEW035 22/14 Q1018"
	Timestamp string // Observation time line as published, may be empty
	Source    string // URL the report was fetched from
}
