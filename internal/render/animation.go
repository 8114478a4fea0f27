package render

import (
	"image"
	"image/color"
)

// Flight-strip layout geometry. The top 20 rows hold the airline logo
// banner, the middle band the route with the animated airplane, and the
// lower half a departure-board style stats area.
const (
	LogoHeight = 20

	routeBoxY      = 21
	routeBoxHeight = 11
	routeTextY     = 24
	routeLineY     = 26

	// Horizontal span the airplane travels between the airport codes.
	RouteStart = 21
	RouteEnd   = 43

	planeWidth = 5
	planeY     = 24

	infoBoxY   = 33
	infoUpperY = 37
	infoSepY   = 48
	infoLowerY = 53
)

// AirplaneCycle is the number of positions in one airplane pass: it
// enters from the left edge of the route span and exits on the right.
const AirplaneCycle = (RouteEnd - RouteStart) + planeWidth

// FrameCount is the total animation length. One airplane pass; each frame
// is a separate upload to the device, which gets unreliable above ~40.
const FrameCount = AirplaneCycle

// InfoPages is the number of stat pages cycled through the lower board.
const InfoPages = 3

// FramesPerPage is how long each stat page stays up.
const FramesPerPage = FrameCount / InfoPages

// FlightInfo carries the values the animation displays. Empty strings and
// zero numbers render as dash placeholders.
type FlightInfo struct {
	AirlineName   string
	Origin        string // IATA, 3 chars shown
	Destination   string
	FlightNumber  string
	AircraftType  string // ICAO type code
	Registration  string
	AltitudeFt    int
	GroundSpeedKt int
	Heading       int
	HasHeading    bool
	Logo          image.Image // 64x20 banner, nil when unresolved
}

// labelValue is one departure-board row.
type labelValue struct {
	label string
	value string
}

// BuildAnimation renders all frames for one flight. The airplane advances
// one pixel per frame across the route span while the lower board cycles
// through three stat pages.
func BuildAnimation(info FlightInfo, p Palette) []*image.RGBA {
	pages := [InfoPages][2]labelValue{
		{{"FLT", orDashes(info.FlightNumber, 7)}, {"ALT", FormatFlightLevel(info.AltitudeFt)}},
		{{"TYPE", orDashes(info.AircraftType, 4)}, {"REG", orDashes(info.Registration, 7)}},
		{{"SPD", FormatSpeed(info.GroundSpeedKt)}, {"HDG", FormatHeading(info.Heading, info.HasHeading)}},
	}

	frames := make([]*image.RGBA, 0, FrameCount)
	for frame := 0; frame < FrameCount; frame++ {
		c := NewCanvas(p.Background)

		drawTopSection(c, info, p)

		planeX := RouteStart - planeWidth + frame%AirplaneCycle
		drawAirplane(c, planeX, planeY, RouteStart, RouteEnd, p.Plane)

		pageIdx := frame / FramesPerPage
		if pageIdx >= InfoPages {
			pageIdx = InfoPages - 1
		}
		drawInfoPage(c, pages[pageIdx][0], pages[pageIdx][1], p)

		frames = append(frames, c.Image())
	}

	return frames
}

// drawTopSection draws the logo banner and the route box.
func drawTopSection(c *Canvas, info FlightInfo, p Palette) {
	if info.Logo != nil {
		c.DrawImage(info.Logo, 0, 0)
	} else if info.AirlineName != "" {
		name := info.AirlineName
		if len(name) > 10 {
			name = name[:10]
		}
		c.DrawText(name, CenterX(Width, name), 7, p.Plane)
	}

	c.DashedHLine(LogoHeight, 0, Width, 2, 4, p.Separator)

	c.FillRect(0, routeBoxY, Width, routeBoxHeight, p.Box)

	origin := orDashes(info.Origin, 3)
	dest := orDashes(info.Destination, 3)
	c.DrawText(origin, 2, routeTextY, p.Text)
	c.DrawText(dest, Width-2-TextWidth(dest), routeTextY, p.Text)

	// Dashed route line between the airport codes
	for x := RouteStart; x < RouteEnd; x += 3 {
		c.FillRect(x, routeLineY, 2, 1, p.RouteLine)
	}
}

// drawAirplane draws the 5x5 right-pointing airplane icon, clipped to the
// [clipLeft, clipRight) span so it slides in and out of the route.
func drawAirplane(c *Canvas, x, y, clipLeft, clipRight int, col color.RGBA) {
	// Fuselage
	for px := x; px < x+5; px++ {
		if px >= clipLeft && px < clipRight {
			c.SetPixel(px, y+2, col)
		}
	}
	// Wings
	if x+2 >= clipLeft && x+2 < clipRight {
		c.FillRect(x+2, y, 1, 5, col)
	}
	// Tail
	if x >= clipLeft && x < clipRight {
		c.FillRect(x, y+1, 1, 3, col)
	}
}

// drawInfoPage draws the lower departure-board area with two centered
// label/value rows.
func drawInfoPage(c *Canvas, upper, lower labelValue, p Palette) {
	c.FillRect(0, infoBoxY, Width, Height-infoBoxY, p.Box)
	c.DashedHLine(infoBoxY-1, 0, Width, 2, 4, p.Separator)

	drawLabelValue(c, upper, infoUpperY, p)
	c.DashedHLine(infoSepY, 0, Width, 2, 4, p.Separator)
	drawLabelValue(c, lower, infoLowerY, p)
}

// drawLabelValue centers "LABEL VALUE" as a unit, label muted, value in
// the text color.
func drawLabelValue(c *Canvas, lv labelValue, y int, p Palette) {
	full := lv.label + " " + lv.value
	x := CenterX(Width, full)
	c.DrawText(lv.label, x, y, p.Label)
	c.DrawText(lv.value, x+(len(lv.label)+1)*GlyphAdvance, y, p.Text)
}
