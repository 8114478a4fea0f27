package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixoo_tracker/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sightings_test.db")

	db, err := New(dbPath)
	require.NoError(t, err)
	require.NotNil(t, db)

	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	return db
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)
	assert.NotNil(t, db)
}

func TestInsertSighting(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Sightings()

	s := &models.Sighting{
		ICAO24:       "4840d6",
		Callsign:     "RYR2263",
		FlightNumber: "FR2263",
		Airline:      "Ryanair",
		Origin:       "DUB",
		Destination:  "BER",
		DistanceKM:   12.4,
		AltitudeFt:   36000,
		Metar:        "EDDB 281550Z 24008KT 9999 FEW035 22/14 Q1018",
		SeenAt:       time.Now().UTC(),
	}

	err := repo.InsertSighting(s)
	require.NoError(t, err)
	assert.NotZero(t, s.ID)
}

func TestRecentSightings_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Sightings()

	base := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.InsertSighting(&models.Sighting{
			ICAO24:       "aaaaa" + string(rune('0'+i)),
			FlightNumber: "FR000" + string(rune('0'+i)),
			DistanceKM:   float64(i),
			SeenAt:       base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := repo.RecentSightings(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first
	assert.Equal(t, "FR0002", recent[0].FlightNumber)
	assert.Equal(t, "FR0001", recent[1].FlightNumber)
	assert.Equal(t, "aaaaa2", recent[0].ICAO24)
	assert.Equal(t, 2.0, recent[0].DistanceKM)
}

func TestRecentSightings_Empty(t *testing.T) {
	db := setupTestDB(t)

	recent, err := db.Sightings().RecentSightings(10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRecentSightings_DefaultLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Sightings()

	require.NoError(t, repo.InsertSighting(&models.Sighting{
		ICAO24: "4840d6",
		SeenAt: time.Now().UTC(),
	}))

	recent, err := repo.RecentSightings(0)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
