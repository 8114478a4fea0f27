// Package logos maintains the on-disk cache of airline logo banners.
// Logos are downloaded once per airline code, normalized to the 64x20
// banner the display layout expects, and stored as PNG.
package logos

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"pixoo_tracker/internal/render"
)

// Banner dimensions match the logo area of the flight-strip layout.
const (
	BannerWidth  = render.Width
	BannerHeight = render.LogoHeight
)

// Downloader fetches the raw logo asset for an airline.
type Downloader interface {
	AirlineLogo(ctx context.Context, iata, icao string) ([]byte, string, error)
}

// Cache resolves airline codes to processed banner images, hitting the
// network only on a cache miss.
type Cache struct {
	dir    string
	bg     color.RGBA
	source Downloader
}

// NewCache creates the cache directory if needed. The background color
// should match the display background so flattened logos blend in.
func NewCache(dir string, bg color.RGBA, source Downloader) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logo cache dir: %w", err)
	}
	return &Cache{dir: dir, bg: bg, source: source}, nil
}

// Key builds the cache filename base for an airline: IATA code preferred,
// ICAO fallback, restricted to filename-safe characters.
func Key(iata, icao string) string {
	base := iata
	if base == "" {
		base = icao
	}

	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "airline_logo"
	}
	return b.String()
}

// Banner returns the 64x20 logo image for an airline and the path of the
// cached file. On a cache miss the asset is downloaded, processed and
// written back; on any failure an error is returned and the caller
// renders without a logo.
func (c *Cache) Banner(ctx context.Context, iata, icao string) (image.Image, string, error) {
	path := filepath.Join(c.dir, Key(iata, icao)+".png")

	if img, err := loadPNG(path); err == nil {
		return img, path, nil
	}

	data, ctype, err := c.source.AirlineLogo(ctx, iata, icao)
	if err != nil {
		return nil, "", err
	}

	banner, err := process(data, ctype, c.bg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to process logo for %s/%s: %w", iata, icao, err)
	}

	if err := savePNG(path, banner); err != nil {
		// The image is still usable this cycle; only the cache write failed.
		slog.Warn("Failed to write logo cache file", "path", path, "error", err)
		return banner, "", nil
	}

	return banner, path, nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
