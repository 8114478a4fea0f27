package tracker

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"pixoo_tracker/internal/models"
	"pixoo_tracker/internal/render"
)

// Feed provides the live flight list and per-flight enrichment.
type Feed interface {
	FlightsNear(ctx context.Context, lat, lon float64, radiusMeters int) ([]models.Flight, error)
	FlightDetails(ctx context.Context, feedID string) (*models.FlightDetails, error)
}

// LogoProvider resolves airline codes to banner images.
type LogoProvider interface {
	Banner(ctx context.Context, iata, icao string) (image.Image, string, error)
}

// WeatherProvider fetches the destination METAR.
type WeatherProvider interface {
	Fetch(ctx context.Context, icao string) (*models.Metar, error)
}

// Display uploads a looping animation to the device.
type Display interface {
	SendAnimation(ctx context.Context, frames []*image.RGBA, frameSpeedMs int) error
}

// SightingRecorder persists one record per rendered flight.
type SightingRecorder interface {
	InsertSighting(s *models.Sighting) error
}

// Task polls the feed on its interval, picks the nearest flight and
// re-renders the display when the selected aircraft changes. Implements
// the scheduler Task interface.
type Task struct {
	feed    Feed
	logos   LogoProvider
	weather WeatherProvider
	display Display
	repo    SightingRecorder

	lat          float64
	lon          float64
	radiusMeters int
	interval     time.Duration
	frameSpeedMs int
	palette      render.Palette

	lastIdentity string
}

// Config carries the tracker task settings.
type Config struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	Interval     time.Duration
	FrameSpeedMs int
	Palette      render.Palette
}

// New creates the poll task. The weather provider and recorder may be nil;
// both are best-effort extras.
func New(cfg Config, feed Feed, logoCache LogoProvider, weather WeatherProvider, display Display, repo SightingRecorder) *Task {
	return &Task{
		feed:         feed,
		logos:        logoCache,
		weather:      weather,
		display:      display,
		repo:         repo,
		lat:          cfg.Latitude,
		lon:          cfg.Longitude,
		radiusMeters: cfg.RadiusMeters,
		interval:     cfg.Interval,
		frameSpeedMs: cfg.FrameSpeedMs,
		palette:      cfg.Palette,
	}
}

// Name implements the scheduler Task interface.
func (t *Task) Name() string {
	return "flight-tracker"
}

// Interval implements the scheduler Task interface.
func (t *Task) Interval() time.Duration {
	return t.interval
}

// Run performs one poll cycle. Errors bubble up to the scheduler, which
// logs them; the loop retries on the next tick with the previous
// animation still playing on the device.
func (t *Task) Run(ctx context.Context) error {
	flights, err := t.feed.FlightsNear(ctx, t.lat, t.lon, t.radiusMeters)
	if err != nil {
		return fmt.Errorf("feed query failed: %w", err)
	}

	flight, distKM, ok := Nearest(flights, t.lat, t.lon)
	if !ok {
		slog.Debug("No trackable flights in range", "flights_seen", len(flights))
		return nil
	}

	identity := flight.Identity()
	if identity != "" && identity == t.lastIdentity {
		slog.Debug("Still tracking same aircraft", "identity", identity, "flight", flight.FlightNumber)
		return nil
	}

	info, details := t.enrich(ctx, &flight)

	frames := render.BuildAnimation(info, t.palette)
	if err := t.display.SendAnimation(ctx, frames, t.frameSpeedMs); err != nil {
		// Keep lastIdentity unchanged so the next cycle retries the upload
		return fmt.Errorf("animation upload failed: %w", err)
	}
	t.lastIdentity = identity

	slog.Info("New flight rendered",
		"identity", identity,
		"flight", info.FlightNumber,
		"origin", info.Origin,
		"destination", info.Destination,
		"distance_km", fmt.Sprintf("%.1f", distKM),
	)

	t.record(ctx, &flight, details, info, distKM)
	return nil
}

// enrich merges the feed row with the details payload and resolves the
// logo banner. Every enrichment step is best effort.
func (t *Task) enrich(ctx context.Context, flight *models.Flight) (render.FlightInfo, *models.FlightDetails) {
	info := render.FlightInfo{
		Origin:        flight.Origin,
		Destination:   flight.Destination,
		FlightNumber:  flight.FlightNumber,
		AircraftType:  flight.AircraftType,
		Registration:  flight.Registration,
		AltitudeFt:    flight.Altitude,
		GroundSpeedKt: flight.GroundSpeed,
		Heading:       flight.Heading,
		HasHeading:    flight.HasPosition(),
	}

	details, err := t.feed.FlightDetails(ctx, flight.FeedID)
	if err != nil {
		slog.Warn("Flight details unavailable", "feed_id", flight.FeedID, "error", err)
		details = nil
	}

	iata := flight.AirlineIATA()
	icao := flight.AirlineICAO
	if details != nil {
		info.AirlineName = details.AirlineName
		if details.FlightNumber != "" {
			info.FlightNumber = details.FlightNumber
		}
		if details.AircraftTypeICAO != "" {
			info.AircraftType = details.AircraftTypeICAO
		}
		if details.Registration != "" {
			info.Registration = details.Registration
		}
		if details.OriginIATA != "" {
			info.Origin = details.OriginIATA
		}
		if details.DestinationIATA != "" {
			info.Destination = details.DestinationIATA
		}
		if details.AirlineIATA != "" {
			iata = details.AirlineIATA
		}
		if details.AirlineICAO != "" {
			icao = details.AirlineICAO
		}
	}

	if t.logos != nil && (iata != "" || icao != "") {
		logo, _, err := t.logos.Banner(ctx, iata, icao)
		if err != nil {
			slog.Warn("Airline logo unavailable", "iata", iata, "icao", icao, "error", err)
		} else {
			info.Logo = logo
		}
	}

	return info, details
}

// record stores the sighting, attaching the destination METAR when it can
// be fetched.
func (t *Task) record(ctx context.Context, flight *models.Flight, details *models.FlightDetails, info render.FlightInfo, distKM float64) {
	if t.repo == nil {
		return
	}

	sighting := &models.Sighting{
		ICAO24:       flight.ICAO24,
		Callsign:     flight.Callsign,
		FlightNumber: info.FlightNumber,
		Airline:      info.AirlineName,
		Origin:       info.Origin,
		Destination:  info.Destination,
		DistanceKM:   distKM,
		AltitudeFt:   flight.Altitude,
		SeenAt:       time.Now(),
	}

	if t.weather != nil && details != nil && details.DestinationICAO != "" {
		if m, err := t.weather.Fetch(ctx, details.DestinationICAO); err != nil {
			slog.Debug("Destination METAR unavailable", "icao", details.DestinationICAO, "error", err)
		} else {
			sighting.Metar = m.Raw
		}
	}

	if err := t.repo.InsertSighting(sighting); err != nil {
		slog.Error("Failed to record sighting", "identity", flight.Identity(), "error", err)
	}
}
