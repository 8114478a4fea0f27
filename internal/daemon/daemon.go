package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pixoo_tracker/internal/config"
	"pixoo_tracker/internal/database"
	"pixoo_tracker/internal/fr24"
	"pixoo_tracker/internal/logos"
	"pixoo_tracker/internal/metar"
	"pixoo_tracker/internal/pixoo"
	"pixoo_tracker/internal/render"
	"pixoo_tracker/internal/scheduler"
	"pixoo_tracker/internal/tracker"
)

// Daemon wires the feed client, logo cache, display client and sighting
// log into the poll task and owns their lifecycle.
type Daemon struct {
	ctx       context.Context
	cancel    context.CancelFunc
	scheduler *scheduler.Scheduler
	database  *database.DB
	device    *pixoo.Client
	cfg       *config.Config
}

// New builds a daemon from validated configuration.
func New(cfg *config.Config) (*Daemon, error) {
	ctx, cancel := context.WithCancel(context.Background())

	db, err := database.New(cfg.DBPath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	palette, err := render.NewPalette(
		cfg.Display.ColorText,
		cfg.Display.ColorAccent,
		cfg.Display.ColorBG,
		cfg.Display.ColorBox,
	)
	if err != nil {
		db.Close()
		cancel()
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}

	feed := fr24.NewClient()

	logoCache, err := logos.NewCache(cfg.LogoDir, palette.Background, feed)
	if err != nil {
		db.Close()
		cancel()
		return nil, fmt.Errorf("failed to initialize logo cache: %w", err)
	}

	device := pixoo.NewClient(cfg.Device.Addr)

	task := tracker.New(
		tracker.Config{
			Latitude:     cfg.Observer.Latitude,
			Longitude:    cfg.Observer.Longitude,
			RadiusMeters: cfg.Observer.RadiusMeters,
			Interval:     time.Duration(cfg.Observer.RefreshSecs) * time.Second,
			FrameSpeedMs: cfg.Display.FrameSpeedMs,
			Palette:      palette,
		},
		feed,
		logoCache,
		metar.NewFetcher(),
		device,
		db.Sightings(),
	)

	sched := scheduler.New(ctx)
	sched.AddTask(task)

	return &Daemon{
		ctx:       ctx,
		cancel:    cancel,
		scheduler: sched,
		database:  db,
		device:    device,
		cfg:       cfg,
	}, nil
}

// Start applies the configured brightness and begins polling.
func (d *Daemon) Start() error {
	slog.Info("Starting daemon",
		"device", d.cfg.Device.Addr,
		"observer_lat", d.cfg.Observer.Latitude,
		"observer_lon", d.cfg.Observer.Longitude,
		"refresh_seconds", d.cfg.Observer.RefreshSecs,
	)

	// Best effort: the device may be briefly offline at startup
	if err := d.device.SetBrightness(d.ctx, d.cfg.Device.Brightness); err != nil {
		slog.Warn("Failed to set device brightness", "error", err)
	}

	d.scheduler.Start()
	return nil
}

// Stop gracefully stops the daemon
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")
	d.cancel()
	d.scheduler.Stop()

	if err := d.database.Close(); err != nil {
		slog.Error("Error closing database", "error", err)
	}

	slog.Info("Daemon stopped")
	return nil
}
