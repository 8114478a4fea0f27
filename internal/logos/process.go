package logos

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

// process turns a downloaded logo asset into the banner image: decode or
// rasterize, flatten transparency onto the display background, then
// downscale onto a centered 64x20 canvas.
func process(data []byte, contentType string, bg color.RGBA) (*image.RGBA, error) {
	var src image.Image
	var err error

	if looksLikeSVG(data, contentType) {
		src, err = rasterizeSVG(data)
	} else {
		src, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("logo has zero size")
	}

	// Scale to fit inside the banner while preserving aspect ratio
	scale := float64(BannerWidth) / float64(b.Dx())
	if s := float64(BannerHeight) / float64(b.Dy()); s < scale {
		scale = s
	}
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	banner := image.NewRGBA(image.Rect(0, 0, BannerWidth, BannerHeight))
	xdraw.Draw(banner, banner.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)

	x := (BannerWidth - w) / 2
	y := (BannerHeight - h) / 2
	// Drawing with Over onto the solid background flattens any alpha
	xdraw.CatmullRom.Scale(banner, image.Rect(x, y, x+w, y+h), src, b, xdraw.Over, nil)

	return banner, nil
}

// looksLikeSVG sniffs SVG assets, which image.Decode cannot handle.
func looksLikeSVG(data []byte, contentType string) bool {
	if strings.Contains(contentType, "svg") {
		return true
	}
	head := strings.TrimSpace(string(data[:min(len(data), 512)]))
	return strings.HasPrefix(head, "<?xml") && strings.Contains(head, "<svg") ||
		strings.HasPrefix(head, "<svg")
}

// rasterizeSVG renders an SVG at its native viewbox size.
func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		// No usable viewbox; render at a size comfortably above the banner
		w, h = 256, 80
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return rgba, nil
}
