package render

// 5x5 bitmap font for the 64px matrix. Each glyph is five rows, low five
// bits used, bit 4 is the leftmost column. Glyphs advance 6px (5px glyph
// plus 1px spacing). Vector fonts cannot hit pixel-exact 5px glyphs, so
// the face is embedded directly like other LED matrix projects do.

const (
	glyphWidth  = 5
	glyphHeight = 5
	// GlyphAdvance is the horizontal step per character.
	GlyphAdvance = glyphWidth + 1
)

var glyphs = map[rune][glyphHeight]uint8{
	'A': {0b01110, 0b10001, 0b11111, 0b10001, 0b10001},
	'B': {0b11110, 0b10001, 0b11110, 0b10001, 0b11110},
	'C': {0b01111, 0b10000, 0b10000, 0b10000, 0b01111},
	'D': {0b11110, 0b10001, 0b10001, 0b10001, 0b11110},
	'E': {0b11111, 0b10000, 0b11110, 0b10000, 0b11111},
	'F': {0b11111, 0b10000, 0b11110, 0b10000, 0b10000},
	'G': {0b01111, 0b10000, 0b10011, 0b10001, 0b01111},
	'H': {0b10001, 0b10001, 0b11111, 0b10001, 0b10001},
	'I': {0b11111, 0b00100, 0b00100, 0b00100, 0b11111},
	'J': {0b00111, 0b00010, 0b00010, 0b10010, 0b01100},
	'K': {0b10001, 0b10010, 0b11100, 0b10010, 0b10001},
	'L': {0b10000, 0b10000, 0b10000, 0b10000, 0b11111},
	'M': {0b10001, 0b11011, 0b10101, 0b10001, 0b10001},
	'N': {0b10001, 0b11001, 0b10101, 0b10011, 0b10001},
	'O': {0b01110, 0b10001, 0b10001, 0b10001, 0b01110},
	'P': {0b11110, 0b10001, 0b11110, 0b10000, 0b10000},
	'Q': {0b01110, 0b10001, 0b10101, 0b10010, 0b01101},
	'R': {0b11110, 0b10001, 0b11110, 0b10010, 0b10001},
	'S': {0b01111, 0b10000, 0b01110, 0b00001, 0b11110},
	'T': {0b11111, 0b00100, 0b00100, 0b00100, 0b00100},
	'U': {0b10001, 0b10001, 0b10001, 0b10001, 0b01110},
	'V': {0b10001, 0b10001, 0b10001, 0b01010, 0b00100},
	'W': {0b10001, 0b10001, 0b10101, 0b11011, 0b10001},
	'X': {0b10001, 0b01010, 0b00100, 0b01010, 0b10001},
	'Y': {0b10001, 0b01010, 0b00100, 0b00100, 0b00100},
	'Z': {0b11111, 0b00010, 0b00100, 0b01000, 0b11111},
	'0': {0b01110, 0b10011, 0b10101, 0b11001, 0b01110},
	'1': {0b00100, 0b01100, 0b00100, 0b00100, 0b01110},
	'2': {0b11110, 0b00001, 0b01110, 0b10000, 0b11111},
	'3': {0b11110, 0b00001, 0b00110, 0b00001, 0b11110},
	'4': {0b10001, 0b10001, 0b11111, 0b00001, 0b00001},
	'5': {0b11111, 0b10000, 0b11110, 0b00001, 0b11110},
	'6': {0b01110, 0b10000, 0b11110, 0b10001, 0b01110},
	'7': {0b11111, 0b00001, 0b00010, 0b00100, 0b01000},
	'8': {0b01110, 0b10001, 0b01110, 0b10001, 0b01110},
	'9': {0b01110, 0b10001, 0b01111, 0b00001, 0b01110},
	'-': {0b00000, 0b00000, 0b01110, 0b00000, 0b00000},
	'.': {0b00000, 0b00000, 0b00000, 0b00000, 0b00100},
	'/': {0b00001, 0b00010, 0b00100, 0b01000, 0b10000},
	'>': {0b01000, 0b00100, 0b00010, 0b00100, 0b01000},
	' ': {0b00000, 0b00000, 0b00000, 0b00000, 0b00000},
}

// TextWidth estimates rendered text width in pixels.
func TextWidth(s string) int {
	if len(s) == 0 {
		return 1
	}
	return len(s)*GlyphAdvance - 1
}

// CenterX returns the x offset that centers the text within rectWidth.
func CenterX(rectWidth int, s string) int {
	x := (rectWidth - TextWidth(s)) / 2
	if x < 0 {
		return 0
	}
	return x
}
