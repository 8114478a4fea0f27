package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"pixoo_tracker/internal/render"
)

// Config holds all configuration for the tracker
type Config struct {
	Device   DeviceConfig
	Observer ObserverConfig
	Display  DisplayConfig
	LogoDir  string
	DBPath   string
	Log      LogConfig
}

// DeviceConfig identifies the Pixoo64 on the local network
type DeviceConfig struct {
	Addr       string // host:port of the device HTTP API
	Brightness int    // 0-100, applied at startup
}

// ObserverConfig is the fixed point flights are tracked around
type ObserverConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int // search radius around the observer
	RefreshSecs  int // seconds between poll cycles
}

// DisplayConfig holds rendering settings
type DisplayConfig struct {
	FrameSpeedMs int    // animation frame duration on the device
	ColorText    string // hex colors, #RRGGBB
	ColorAccent  string
	ColorBG      string
	ColorBox     string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("device.addr", "192.168.1.100:80")
	v.SetDefault("device.brightness", 80)
	v.SetDefault("observer.latitude", 52.363)
	v.SetDefault("observer.longitude", 14.060)
	v.SetDefault("observer.radius_meters", 100000)
	v.SetDefault("observer.refresh_seconds", 60)
	v.SetDefault("display.frame_speed_ms", 300)
	v.SetDefault("display.color_text", "#FFFF00")
	v.SetDefault("display.color_accent", "#00BA0F")
	v.SetDefault("display.color_background", "#BABABA")
	v.SetDefault("display.color_box", "#454545")
	v.SetDefault("logo_dir", "airline_logos")
	v.SetDefault("db_path", "sightings.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/pixoo-tracker")
	v.AddConfigPath(".")

	// Check for config file path from environment variable
	if configPath := os.Getenv("PIXOO_TRACKER_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists). Not finding one is fine, defaults
	// plus environment variables are a valid configuration.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PIXOO_TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Device: DeviceConfig{
			Addr:       v.GetString("device.addr"),
			Brightness: v.GetInt("device.brightness"),
		},
		Observer: ObserverConfig{
			Latitude:     v.GetFloat64("observer.latitude"),
			Longitude:    v.GetFloat64("observer.longitude"),
			RadiusMeters: v.GetInt("observer.radius_meters"),
			RefreshSecs:  v.GetInt("observer.refresh_seconds"),
		},
		Display: DisplayConfig{
			FrameSpeedMs: v.GetInt("display.frame_speed_ms"),
			ColorText:    v.GetString("display.color_text"),
			ColorAccent:  v.GetString("display.color_accent"),
			ColorBG:      v.GetString("display.color_background"),
			ColorBox:     v.GetString("display.color_box"),
		},
		LogoDir: v.GetString("logo_dir"),
		DBPath:  v.GetString("db_path"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.Device.Addr == "" {
		return fmt.Errorf("device.addr is required")
	}

	if cfg.Device.Brightness < 0 || cfg.Device.Brightness > 100 {
		return fmt.Errorf("device.brightness must be between 0 and 100")
	}

	if cfg.Observer.Latitude < -90 || cfg.Observer.Latitude > 90 {
		return fmt.Errorf("observer.latitude must be between -90 and 90")
	}

	if cfg.Observer.Longitude < -180 || cfg.Observer.Longitude > 180 {
		return fmt.Errorf("observer.longitude must be between -180 and 180")
	}

	if cfg.Observer.RadiusMeters <= 0 {
		return fmt.Errorf("observer.radius_meters must be greater than 0")
	}

	if cfg.Observer.RefreshSecs <= 0 {
		return fmt.Errorf("observer.refresh_seconds must be greater than 0")
	}

	if cfg.Display.FrameSpeedMs <= 0 {
		return fmt.Errorf("display.frame_speed_ms must be greater than 0")
	}

	colors := map[string]string{
		"display.color_text":       cfg.Display.ColorText,
		"display.color_accent":     cfg.Display.ColorAccent,
		"display.color_background": cfg.Display.ColorBG,
		"display.color_box":        cfg.Display.ColorBox,
	}
	for key, val := range colors {
		if _, err := render.ParseColor(val); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
