package models

import "time"

// Sighting is one rendered flight, persisted when the tracker selects a
// new aircraft and sends its animation to the display.
type Sighting struct {
	ID           int64
	ICAO24       string
	Callsign     string
	FlightNumber string
	Airline      string
	Origin       string
	Destination  string
	DistanceKM   float64 // Distance to the observer when selected
	AltitudeFt   int
	Metar        string // Destination METAR at selection time, may be empty
	SeenAt       time.Time
}
