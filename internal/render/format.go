package render

import "fmt"

// FormatFlightLevel converts an altitude in feet to flight level notation.
// Below 1000ft the aircraft is treated as on or near the ground.
func FormatFlightLevel(altitudeFt int) string {
	if altitudeFt < 1000 {
		return "GND"
	}
	return fmt.Sprintf("FL%03d", altitudeFt/100)
}

// FormatSpeed formats a ground speed in knots.
func FormatSpeed(speedKt int) string {
	if speedKt <= 0 {
		return "---KT"
	}
	return fmt.Sprintf("%dKT", speedKt)
}

// FormatHeading formats a heading as three-digit degrees, or dashes when
// the feed did not report one.
func FormatHeading(deg int, known bool) string {
	if !known {
		return "---"
	}
	return fmt.Sprintf("%03d", deg%360)
}

// orDashes substitutes a dash placeholder for empty values and truncates
// to the field width.
func orDashes(s string, width int) string {
	if s == "" {
		dashes := make([]byte, width)
		for i := range dashes {
			dashes[i] = '-'
		}
		return string(dashes)
	}
	if len(s) > width {
		return s[:width]
	}
	return s
}
