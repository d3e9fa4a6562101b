// Package screen implements the VT102 screen model: a fixed-size grid of
// byte cells with packed per-cell rendition, a cursor, a scrolling region
// and the handful of presentation primitives every VT operation is built
// from.
package screen

import (
	"errors"
	"fmt"

	"github.com/dterm/vt102"
)

// ErrOutOfMemory is returned by NewScreen/Resize when the requested
// dimensions cannot be allocated. It is the one resource-exhaustion error
// this module defines. Non-positive dimensions are reported by a separate,
// plain error; every other failure mode is either a programmer error
// (panic) or malformed input (silently absorbed).
var ErrOutOfMemory = errors.New("screen: out of memory")

// rendition packs a cell's foreground (bits 0-2), reverse flag (bit 3),
// background (bits 4-6) and special-graphics flag (bit 7) into a single
// byte, per the storage model's "one byte per cell, parallel to the
// character byte" rule.
type rendition uint8

const (
	renditionFgMask      rendition = 0x07
	renditionReverseBit  rendition = 1 << 3
	renditionBgShift               = 4
	renditionBgMask      rendition = 0x07 << renditionBgShift
	renditionGraphicsBit rendition = 1 << 7
)

func packRendition(fg, bg vt102.NamedColor, reverse, graphics bool) rendition {
	r := rendition(fg&0x07) | rendition(bg&0x07)<<renditionBgShift
	if reverse {
		r |= renditionReverseBit
	}
	if graphics {
		r |= renditionGraphicsBit
	}
	return r
}

func (r rendition) fg() vt102.NamedColor { return vt102.NamedColor(r & renditionFgMask) }
func (r rendition) bg() vt102.NamedColor {
	return vt102.NamedColor((r & renditionBgMask) >> renditionBgShift)
}
func (r rendition) reverse() bool  { return r&renditionReverseBit != 0 }
func (r rendition) graphics() bool { return r&renditionGraphicsBit != 0 }

// MaxDimension bounds width and height to keep width*height allocations
// from overflowing int on any supported platform and to give Resize a
// concrete threshold past which it reports ErrOutOfMemory instead of
// attempting an enormous allocation.
const MaxDimension = 1 << 16

// Screen is the VT102 display buffer (C1/C2): a width*height grid of bytes
// and packed renditions, a cursor, a scrolling region and tab stops.
type Screen struct {
	width, height int

	cells      []byte
	renditions []rendition

	cursorX, cursorY int
	cursorVisible    bool

	savedX, savedY   int
	savedRendition   rendition
	savedCharset     vt102.CharsetIndex
	hasSavedPosition bool

	curFg, curBg vt102.NamedColor
	curAttr      vt102.Attr

	activeCharset           vt102.CharsetIndex
	g0Charset, g1Charset    vt102.StandardCharset
	usingGraphicsForCurrent bool

	topMargin, bottomMargin int // 0-based, inclusive

	tabStops []bool

	dirtyLines  []bool
	mustRefresh bool

	bellCount int
}

// NewScreen allocates a Screen of the given size, cursor at (0,0), default
// colors, the full height as the scrolling region and tab stops on every
// 8th column.
func NewScreen(width, height int) (*Screen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen: invalid dimensions %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, ErrOutOfMemory
	}

	s := &Screen{width: width, height: height}
	if err := s.allocate(); err != nil {
		return nil, err
	}
	s.resetState()
	return s, nil
}

func (s *Screen) allocate() error {
	n := s.width * s.height
	if n/s.width != s.height { // overflow guard
		return ErrOutOfMemory
	}
	cells := make([]byte, n)
	renditions := make([]rendition, n)
	dirty := make([]bool, s.height)
	tabs := make([]bool, s.width)

	for i := range cells {
		cells[i] = ' '
	}
	for i := 0; i < s.width; i += 8 {
		tabs[i] = true
	}

	s.cells = cells
	s.renditions = renditions
	s.dirtyLines = dirty
	s.tabStops = tabs
	return nil
}

func (s *Screen) resetState() {
	s.cursorX, s.cursorY = 0, 0
	s.cursorVisible = true
	s.hasSavedPosition = false
	s.curFg, s.curBg = vt102.DefaultForeground, vt102.DefaultBackground
	s.curAttr = vt102.AttrNone
	s.activeCharset = vt102.G0
	s.g0Charset = vt102.StandardCharsetASCII
	s.g1Charset = vt102.StandardCharsetASCII
	s.usingGraphicsForCurrent = false
	s.topMargin, s.bottomMargin = 0, s.height-1
	s.bellCount = 0
	s.MarkAllDirty()
}

// Width and Height return the current screen dimensions.
func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Resize changes the screen's dimensions in place, preserving as much of
// the existing content as fits in the new bounds. Cells that grow the grid
// are filled with blanks at rendition 0 (fg=Black, bg=Black); the cursor is
// clamped to the new bounds, the scrolling region is reset to the full new
// height and the tab stops are reset to every 8th column.
func (s *Screen) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("screen: invalid dimensions %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return ErrOutOfMemory
	}

	n := width * height
	if n/width != height {
		return ErrOutOfMemory
	}

	newCells := make([]byte, n)
	newRenditions := make([]rendition, n)
	for i := range newCells {
		newCells[i] = ' '
	}

	copyWidth := width
	if s.width < copyWidth {
		copyWidth = s.width
	}
	copyHeight := height
	if s.height < copyHeight {
		copyHeight = s.height
	}
	for y := 0; y < copyHeight; y++ {
		srcOff := y * s.width
		dstOff := y * width
		copy(newCells[dstOff:dstOff+copyWidth], s.cells[srcOff:srcOff+copyWidth])
		copy(newRenditions[dstOff:dstOff+copyWidth], s.renditions[srcOff:srcOff+copyWidth])
	}

	s.width, s.height = width, height
	s.cells = newCells
	s.renditions = newRenditions
	s.dirtyLines = make([]bool, height)
	newTabs := make([]bool, width)
	for i := 0; i < width; i += 8 {
		newTabs[i] = true
	}
	s.tabStops = newTabs

	s.ClampCursor()
	s.topMargin = 0
	s.bottomMargin = height - 1
	s.MarkAllDirty()
	return nil
}

func (s *Screen) index(x, y int) int { return y*s.width + x }

// ClampCursor forces the cursor back inside [0, width) x [0, height).
func (s *Screen) ClampCursor() {
	if s.cursorX < 0 {
		s.cursorX = 0
	}
	if s.cursorX >= s.width {
		s.cursorX = s.width - 1
	}
	if s.cursorY < 0 {
		s.cursorY = 0
	}
	if s.cursorY >= s.height {
		s.cursorY = s.height - 1
	}
}

// CursorPosition returns the 0-based cursor column and row.
func (s *Screen) CursorPosition() (x, y int) { return s.cursorX, s.cursorY }

// CursorVisible reports whether the cursor should be rendered.
func (s *Screen) CursorVisible() bool { return s.cursorVisible }

// SetCursorVisible sets cursor visibility (DECTCEM).
func (s *Screen) SetCursorVisible(visible bool) { s.cursorVisible = visible }

// BellCount returns how many times Bell has fired since the last reset.
// It exists so a consumer without an audio/visual bell can still observe
// that one was requested.
func (s *Screen) BellCount() int { return s.bellCount }

// Bell records a bell request.
func (s *Screen) Bell() { s.bellCount++ }

// MoveRelative shifts the cursor by (dx, dy), clamped to the screen.
func (s *Screen) MoveRelative(dx, dy int) {
	s.cursorX += dx
	s.cursorY += dy
	s.ClampCursor()
}

// MoveAbsolute moves the cursor to a 1-based (row, col), clamped.
func (s *Screen) MoveAbsolute(row, col int) {
	s.cursorX = col - 1
	s.cursorY = row - 1
	s.ClampCursor()
}

// MoveColumn moves the cursor to a 1-based column on the current row.
func (s *Screen) MoveColumn(col int) {
	s.cursorX = col - 1
	s.ClampCursor()
}

// MoveRow moves the cursor to a 1-based row on the current column.
func (s *Screen) MoveRow(row int) {
	s.cursorY = row - 1
	s.ClampCursor()
}

// ActiveCharset returns which G-set slot is currently shifted in.
func (s *Screen) ActiveCharset() vt102.CharsetIndex { return s.activeCharset }

// SetActiveCharset shifts in G0 or G1 (SI/SO). Anything else is a no-op:
// VT102 wiring only ever connects SO/SI to G0/G1.
func (s *Screen) SetActiveCharset(index vt102.CharsetIndex) {
	if index == vt102.G0 || index == vt102.G1 {
		s.activeCharset = index
		s.usingGraphicsForCurrent = s.currentCharset() == vt102.StandardCharsetSpecialLineDrawing
	}
}

// ConfigureCharset designates a standard charset into a G-set slot.
func (s *Screen) ConfigureCharset(index vt102.CharsetIndex, charset vt102.StandardCharset) {
	switch index {
	case vt102.G0:
		s.g0Charset = charset
	case vt102.G1:
		s.g1Charset = charset
	}
	s.usingGraphicsForCurrent = s.currentCharset() == vt102.StandardCharsetSpecialLineDrawing
}

func (s *Screen) currentCharset() vt102.StandardCharset {
	if s.activeCharset == vt102.G1 {
		return s.g1Charset
	}
	return s.g0Charset
}

// PutCell writes b at (x, y) with the current rendition, does not move the
// cursor, and marks the row dirty. Out-of-bounds coordinates are ignored.
func (s *Screen) PutCell(x, y int, b byte) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := s.index(x, y)
	s.cells[i] = b
	s.renditions[i] = packRendition(s.curFg, s.curBg, s.curAttr.Has(vt102.AttrReverse), s.usingGraphicsForCurrent)
	s.markDirty(y)
}

// Cell returns the raw byte, foreground, background and reverse flag stored
// at (x, y). Use Glyph for the rune a renderer should display.
func (s *Screen) Cell(x, y int) (b byte, fg, bg vt102.NamedColor, reverse bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' ', vt102.DefaultForeground, vt102.DefaultBackground, false
	}
	i := s.index(x, y)
	r := s.renditions[i]
	return s.cells[i], r.fg(), r.bg(), r.reverse()
}

// Glyph returns the rune a renderer should display for the cell at (x, y),
// honoring whichever charset was active when it was written.
func (s *Screen) Glyph(x, y int) rune {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return ' '
	}
	i := s.index(x, y)
	charset := vt102.StandardCharsetASCII
	if s.renditions[i].graphics() {
		charset = vt102.StandardCharsetSpecialLineDrawing
	}
	return vt102.Glyph(s.cells[i], charset)
}

// Fill overwrites every cell in [x0,x1) x [y0,y1) with a blank at rendition
// 0 (fg=Black, bg=Black, no reverse, no graphics) regardless of the current
// SGR state. Erased cells always reset to rendition 0, never the active
// color, matching every erase/scroll-fill/insert-delete path in the
// original backend (it memsets the rendition buffer to 0 on erase rather
// than stamping the current attribute byte).
func (s *Screen) Fill(x0, y0, x1, y1 int, b byte) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > s.height {
		y1 = s.height
	}
	for y := y0; y < y1; y++ {
		rowX0, rowX1 := x0, x1
		if rowX0 < 0 {
			rowX0 = 0
		}
		if rowX1 > s.width {
			rowX1 = s.width
		}
		for x := rowX0; x < rowX1; x++ {
			i := s.index(x, y)
			s.cells[i] = b
			s.renditions[i] = rendition(0)
		}
		if rowX1 > rowX0 {
			s.markDirty(y)
		}
	}
}

// FillRow blanks an entire row.
func (s *Screen) FillRow(y int, b byte) { s.Fill(0, y, s.width, y+1, b) }

// CopyRow copies the contents of row src to row dst verbatim, including
// rendition.
func (s *Screen) CopyRow(dst, src int) {
	if dst == src || dst < 0 || dst >= s.height || src < 0 || src >= s.height {
		return
	}
	dOff, sOff := dst*s.width, src*s.width
	copy(s.cells[dOff:dOff+s.width], s.cells[sOff:sOff+s.width])
	copy(s.renditions[dOff:dOff+s.width], s.renditions[sOff:sOff+s.width])
	s.markDirty(dst)
}

// SetMargins sets the 0-based inclusive scrolling region. bottom is
// clamped to the last row rather than rejecting the whole request, so a
// DECSTBM naming a bottom past the screen still sets a region instead of
// leaving margins untouched. top < 0 or top >= bottom (after clamping)
// still leaves margins unchanged.
func (s *Screen) SetMargins(top, bottom int) {
	if bottom >= s.height {
		bottom = s.height - 1
	}
	if top < 0 || top >= bottom {
		return
	}
	s.topMargin, s.bottomMargin = top, bottom
}

// Margins returns the current 0-based inclusive scrolling region.
func (s *Screen) Margins() (top, bottom int) { return s.topMargin, s.bottomMargin }

// ScrollUpRegion scrolls the active scrolling region up by n lines,
// discarding lines that fall off the top and filling new lines at the
// bottom with blanks.
func (s *Screen) ScrollUpRegion(n int) {
	top, bottom := s.topMargin, s.bottomMargin
	if n <= 0 || top >= bottom {
		return
	}
	regionHeight := bottom - top + 1
	if n > regionHeight {
		n = regionHeight
	}
	for y := top; y <= bottom-n; y++ {
		s.CopyRow(y, y+n)
	}
	for y := bottom - n + 1; y <= bottom; y++ {
		s.FillRow(y, ' ')
	}
}

// ScrollDownRegion scrolls the active scrolling region down by n lines,
// discarding lines that fall off the bottom and filling new lines at the
// top with blanks.
func (s *Screen) ScrollDownRegion(n int) {
	top, bottom := s.topMargin, s.bottomMargin
	if n <= 0 || top >= bottom {
		return
	}
	regionHeight := bottom - top + 1
	if n > regionHeight {
		n = regionHeight
	}
	for y := bottom; y >= top+n; y-- {
		s.CopyRow(y, y-n)
	}
	for y := top; y < top+n; y++ {
		s.FillRow(y, ' ')
	}
}

func (s *Screen) markDirty(y int) {
	if y >= 0 && y < len(s.dirtyLines) {
		s.dirtyLines[y] = true
	}
}

// MarkAllDirty flags every line and sets the coarse must-refresh flag, for
// renderers that want a cheap "redraw everything" signal instead of
// diffing dirty lines one by one.
func (s *Screen) MarkAllDirty() {
	for i := range s.dirtyLines {
		s.dirtyLines[i] = true
	}
	s.mustRefresh = true
}

// MustRefresh reports whether a full redraw was requested since the last
// ClearDirty.
func (s *Screen) MustRefresh() bool { return s.mustRefresh }

// DirtyLines returns the 0-based indices of every line touched since the
// last ClearDirty.
func (s *Screen) DirtyLines() []int {
	lines := make([]int, 0, len(s.dirtyLines))
	for i, dirty := range s.dirtyLines {
		if dirty {
			lines = append(lines, i)
		}
	}
	return lines
}

// ClearDirty resets the dirty-line tracking and must-refresh flag. A
// renderer calls this once it has consumed DirtyLines/MustRefresh.
func (s *Screen) ClearDirty() {
	for i := range s.dirtyLines {
		s.dirtyLines[i] = false
	}
	s.mustRefresh = false
}
