package tracker

import (
	"math"

	"pixoo_tracker/internal/models"
)

const earthRadiusKM = 6371

// Haversine returns the great-circle distance in kilometers between two
// coordinate pairs given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1 = lat1 * math.Pi / 180
	lon1 = lon1 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKM * c
}

// Nearest selects the flight closest to the observer. Flights without an
// airline code are skipped since no logo can be resolved for them, and
// flights without a position cannot be ranked. Returns false when nothing
// qualifies.
func Nearest(flights []models.Flight, lat, lon float64) (models.Flight, float64, bool) {
	var best models.Flight
	minDist := math.Inf(1)
	found := false

	for _, f := range flights {
		if !f.HasAirline() || !f.HasPosition() {
			continue
		}
		d := Haversine(lat, lon, f.Latitude, f.Longitude)
		if d < minDist {
			minDist = d
			best = f
			found = true
		}
	}

	return best, minDist, found
}
