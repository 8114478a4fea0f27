package database

import (
	"database/sql"
	"fmt"

	"pixoo_tracker/internal/models"
)

// SightingRepository stores and queries rendered-flight records.
type SightingRepository interface {
	InsertSighting(s *models.Sighting) error
	RecentSightings(limit int) ([]*models.Sighting, error)
}

type sightingRepository struct {
	db *sql.DB
}

// NewSightingRepository wraps a database handle.
func NewSightingRepository(db *sql.DB) SightingRepository {
	return &sightingRepository{db: db}
}

// InsertSighting records one rendered flight.
func (r *sightingRepository) InsertSighting(s *models.Sighting) error {
	query := `INSERT INTO sightings (
		icao24, callsign, flight_number, airline, origin, destination,
		distance_km, altitude_ft, metar, seen_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query,
		s.ICAO24,
		s.Callsign,
		s.FlightNumber,
		s.Airline,
		s.Origin,
		s.Destination,
		s.DistanceKM,
		s.AltitudeFt,
		s.Metar,
		s.SeenAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sighting: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		s.ID = id
	}

	return nil
}

// RecentSightings returns the most recently rendered flights, newest
// first.
func (r *sightingRepository) RecentSightings(limit int) ([]*models.Sighting, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(`SELECT
		id, icao24, callsign, flight_number, airline, origin, destination,
		distance_km, altitude_ft, metar, seen_at
	FROM sightings ORDER BY seen_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sightings: %w", err)
	}
	defer rows.Close()

	var sightings []*models.Sighting
	for rows.Next() {
		s := &models.Sighting{}
		if err := rows.Scan(
			&s.ID,
			&s.ICAO24,
			&s.Callsign,
			&s.FlightNumber,
			&s.Airline,
			&s.Origin,
			&s.Destination,
			&s.DistanceKM,
			&s.AltitudeFt,
			&s.Metar,
			&s.SeenAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sighting: %w", err)
		}
		sightings = append(sightings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sightings: %w", err)
	}

	return sightings, nil
}
