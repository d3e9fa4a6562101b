package vt102

// NamedColor is one of the 8 standard ANSI colors addressable by SGR
// 30-37/40-47. There are no bright variants, no 256-color palette and no
// direct RGB: VT102 hardware only ever drove 8 colors.
type NamedColor uint8

const (
	Black NamedColor = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// Rgb is the reference RGB value a renderer should use to paint a
// NamedColor. It exists purely for demo/render purposes; the screen model
// itself never stores RGB.
type Rgb struct {
	R, G, B uint8
}

// ToRgb returns the reference color for c.
//
// Index 4 is Blue. The original backend's color table mislabeled this slot
// "cyan", a transcription bug inherited from whoever first wrote out the
// ANSI table by hand; ECMA-48 assigns 34/44 (index 4) to blue and 36/46
// (index 6) to cyan.
func (c NamedColor) ToRgb() Rgb {
	switch c {
	case Black:
		return Rgb{0, 0, 0}
	case Red:
		return Rgb{170, 0, 0}
	case Green:
		return Rgb{0, 170, 0}
	case Yellow:
		return Rgb{170, 85, 0}
	case Blue:
		return Rgb{0, 0, 170}
	case Magenta:
		return Rgb{170, 0, 170}
	case Cyan:
		return Rgb{0, 170, 170}
	case White:
		return Rgb{170, 170, 170}
	default:
		return Rgb{0, 0, 0}
	}
}

// DefaultForeground and DefaultBackground are the colors SGR 39/49 and a
// hard reset restore.
const (
	DefaultForeground = White
	DefaultBackground = Black
)

// Attr is a text rendering attribute bit. VT102 SGR only ever toggles
// reverse video; the bit is kept as a flag set (rather than a bool) so a
// Handler implementation can extend it with Bold/Underline without
// changing the call signature.
type Attr uint8

const (
	AttrNone    Attr = 0
	AttrReverse Attr = 1 << 0
)

func (a Attr) Has(attr Attr) bool { return a&attr != 0 }
func (a Attr) Add(attr Attr) Attr { return a | attr }

// LineClearMode specifies how EraseInLine clears the current line.
type LineClearMode uint8

const (
	LineClearRight LineClearMode = iota // cursor to end of line
	LineClearLeft                       // beginning of line to cursor
	LineClearAll                        // entire line
)

// ClearMode specifies how EraseInDisplay clears the screen.
type ClearMode uint8

const (
	ClearBelow ClearMode = iota // cursor to end of screen
	ClearAbove                  // beginning of screen to cursor
	ClearAll                    // entire screen
)

// TabulationClearMode specifies how ClearTabStop clears tab stops.
type TabulationClearMode uint8

const (
	TabClearCurrent TabulationClearMode = iota
	TabClearAll
)

func (m TabulationClearMode) String() string {
	switch m {
	case TabClearCurrent:
		return "TabClearCurrent"
	case TabClearAll:
		return "TabClearAll"
	default:
		return "Unknown"
	}
}

// CharsetIndex identifies a G-set slot. VT102 has G0 and G1; it never
// implements the VT220 G2/G3 slots, but they are kept here so
// ConfigureCharset/SetActiveCharset stay total functions instead of
// panicking on an out-of-range index.
type CharsetIndex int

const (
	G0 CharsetIndex = iota
	G1
	G2
	G3
)

func (c CharsetIndex) String() string {
	switch c {
	case G0:
		return "G0"
	case G1:
		return "G1"
	case G2:
		return "G2"
	case G3:
		return "G3"
	default:
		return "Unknown"
	}
}

// StandardCharset is a charset that can be designated into a G-set slot.
type StandardCharset int

const (
	StandardCharsetASCII StandardCharset = iota
	StandardCharsetSpecialLineDrawing
)

func (s StandardCharset) String() string {
	switch s {
	case StandardCharsetASCII:
		return "ASCII"
	case StandardCharsetSpecialLineDrawing:
		return "SpecialLineDrawing"
	default:
		return "Unknown"
	}
}

// SpecialGraphicsMap maps the bytes 0x5F..0x7E to the box-drawing glyph a
// renderer should display when the special line drawing charset is active
// (designated via ESC ( 0 / ESC ) 0, selected with SO/SI). The screen model
// keeps storing the raw byte; this table is a presentation-layer lookup
// used by consumers such as the tcell renderer, since a single byte cell
// cannot hold a multi-byte UTF-8 box-drawing rune.
var SpecialGraphicsMap = map[byte]rune{
	'_': ' ',
	'`': '◆',
	'a': '▒',
	'b': '␉',
	'c': '␌',
	'd': '␍',
	'e': '␊',
	'f': '°',
	'g': '±',
	'h': '␤',
	'i': '␋',
	'j': '┘',
	'k': '┐',
	'l': '┌',
	'm': '└',
	'n': '┼',
	'o': '⎺',
	'p': '⎻',
	'q': '─',
	'r': '⎼',
	's': '⎽',
	't': '├',
	'u': '┤',
	'v': '┴',
	'w': '┬',
	'x': '│',
	'y': '≤',
	'z': '≥',
	'{': 'π',
	'|': '≠',
	'}': '£',
	'~': '·',
}

// Glyph returns the display rune for a stored byte b given which charset is
// active. ASCII passes the byte through unchanged; special line drawing
// substitutes from SpecialGraphicsMap where defined.
func Glyph(b byte, charset StandardCharset) rune {
	if charset == StandardCharsetSpecialLineDrawing {
		if r, ok := SpecialGraphicsMap[b]; ok {
			return r
		}
	}
	return rune(b)
}

// C0 names the C0 control bytes (0x00-0x1F) used throughout the parser and
// handler implementations.
var C0 = struct {
	NUL, BEL, BS, HT, LF, VT, FF, CR, SO, SI, CAN, SUB, ESC byte
}{
	NUL: 0x00, BEL: 0x07, BS: 0x08, HT: 0x09, LF: 0x0A, VT: 0x0B, FF: 0x0C,
	CR: 0x0D, SO: 0x0E, SI: 0x0F, CAN: 0x18, SUB: 0x1A, ESC: 0x1B,
}
