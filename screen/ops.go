package screen

import "github.com/dterm/vt102"

// DisplayChar writes a byte at the cursor and advances it. Wrap is eager:
// writing the last column immediately moves the cursor to column 0 of the
// next line (scrolling if already on the bottom margin), so the cursor
// never rests at x == width between feeds.
func (s *Screen) DisplayChar(b byte) {
	s.PutCell(s.cursorX, s.cursorY, b)
	s.cursorX++
	if s.cursorX >= s.width {
		s.cursorX = 0
		s.LineFeed()
	}
}

// LineFeed moves the cursor down one line, scrolling the active region up
// if the cursor is already on the bottom margin.
func (s *Screen) LineFeed() {
	if s.cursorY == s.bottomMargin {
		s.ScrollUpRegion(1)
		return
	}
	if s.cursorY < s.height-1 {
		s.cursorY++
	}
}

// CarriageReturn moves the cursor to column 0.
func (s *Screen) CarriageReturn() { s.cursorX = 0 }

// Backspace moves the cursor back one column, stopping at column 0.
func (s *Screen) Backspace() {
	if s.cursorX > 0 {
		s.cursorX--
	}
}

// Tab advances the cursor to the next tab stop (or the last column if none
// remain) by writing spaces at the current rendition through DisplayChar,
// one column at a time, the way the original backend's horiz_tab loops
// display_char(' '). Tab-filled cells therefore pick up the active SGR
// background and mark their row dirty, same as any other printed cell.
func (s *Screen) Tab() {
	target := s.width - 1
	for x := s.cursorX + 1; x < s.width; x++ {
		if s.tabStops[x] {
			target = x
			break
		}
	}
	for s.cursorX < target {
		s.DisplayChar(' ')
	}
}

// TabForward moves forward by n tab stops.
func (s *Screen) TabForward(n int) {
	for i := 0; i < n; i++ {
		s.Tab()
	}
}

// TabBackward moves backward by n tab stops.
func (s *Screen) TabBackward(n int) {
	for i := 0; i < n; i++ {
		found := false
		for x := s.cursorX - 1; x >= 0; x-- {
			if s.tabStops[x] {
				s.cursorX = x
				found = true
				break
			}
		}
		if !found {
			s.cursorX = 0
			return
		}
	}
}

// SetTabStop sets a tab stop at the current column.
func (s *Screen) SetTabStop() {
	if s.cursorX >= 0 && s.cursorX < s.width {
		s.tabStops[s.cursorX] = true
	}
}

// ClearTabStop clears the tab stop at the cursor, or every tab stop.
func (s *Screen) ClearTabStop(mode vt102.TabulationClearMode) {
	switch mode {
	case vt102.TabClearCurrent:
		if s.cursorX >= 0 && s.cursorX < s.width {
			s.tabStops[s.cursorX] = false
		}
	case vt102.TabClearAll:
		for i := range s.tabStops {
			s.tabStops[i] = false
		}
	}
}

// CursorIndex is IND: move the cursor down one line, scrolling the active
// region if already on the bottom margin. The column is never touched.
func (s *Screen) CursorIndex() { s.LineFeed() }

// CursorReverseIndex is RI: move the cursor up one line, scrolling the
// active region down if already on the top margin. The column is never
// touched.
//
// The backend this was ported from passed the cursor's current column as
// the row delta here, which silently relocated the cursor horizontally on
// every reverse index. RI only ever moves vertically.
func (s *Screen) CursorReverseIndex() {
	if s.cursorY == s.topMargin {
		s.ScrollDownRegion(1)
		return
	}
	if s.cursorY > 0 {
		s.cursorY--
	}
}

// NextLine is NEL: carriage return plus line feed.
func (s *Screen) NextLine() {
	s.CarriageReturn()
	s.LineFeed()
}

// SaveCursor stores the cursor position, rendition and active charset
// (DECSC).
func (s *Screen) SaveCursor() {
	s.savedX, s.savedY = s.cursorX, s.cursorY
	s.savedRendition = packRendition(s.curFg, s.curBg, s.curAttr.Has(vt102.AttrReverse), s.usingGraphicsForCurrent)
	s.savedCharset = s.activeCharset
	s.hasSavedPosition = true
}

// RestoreCursor restores a previously saved cursor position, rendition and
// active charset (DECRC). If nothing was saved yet, it resets to the
// screen's origin, matching the behavior of a DECRC issued before any
// DECSC.
func (s *Screen) RestoreCursor() {
	if !s.hasSavedPosition {
		s.cursorX, s.cursorY = 0, 0
		return
	}
	s.cursorX, s.cursorY = s.savedX, s.savedY
	s.curFg = s.savedRendition.fg()
	s.curBg = s.savedRendition.bg()
	if s.savedRendition.reverse() {
		s.curAttr = s.curAttr.Add(vt102.AttrReverse)
	} else {
		s.curAttr = vt102.AttrNone
	}
	s.activeCharset = s.savedCharset
	s.usingGraphicsForCurrent = s.currentCharset() == vt102.StandardCharsetSpecialLineDrawing
	s.ClampCursor()
}

// EraseInDisplay erases part or all of the screen.
func (s *Screen) EraseInDisplay(mode vt102.ClearMode) {
	switch mode {
	case vt102.ClearBelow:
		s.Fill(s.cursorX, s.cursorY, s.width, s.cursorY+1, ' ')
		s.Fill(0, s.cursorY+1, s.width, s.height, ' ')
	case vt102.ClearAbove:
		s.Fill(0, 0, s.width, s.cursorY, ' ')
		s.Fill(0, s.cursorY, s.cursorX+1, s.cursorY+1, ' ')
	case vt102.ClearAll:
		s.Fill(0, 0, s.width, s.height, ' ')
	}
}

// EraseInLine erases part or all of the current line.
func (s *Screen) EraseInLine(mode vt102.LineClearMode) {
	switch mode {
	case vt102.LineClearRight:
		s.Fill(s.cursorX, s.cursorY, s.width, s.cursorY+1, ' ')
	case vt102.LineClearLeft:
		s.Fill(0, s.cursorY, s.cursorX+1, s.cursorY+1, ' ')
	case vt102.LineClearAll:
		s.FillRow(s.cursorY, ' ')
	}
}

// InsertBlank inserts n blank cells at the cursor, shifting the remainder
// of the line right and dropping cells that fall off the right edge.
func (s *Screen) InsertBlank(n int) {
	if n <= 0 {
		return
	}
	y := s.cursorY
	if n > s.width-s.cursorX {
		n = s.width - s.cursorX
	}
	for x := s.width - 1; x >= s.cursorX+n; x-- {
		srcI, dstI := s.index(x-n, y), s.index(x, y)
		s.cells[dstI] = s.cells[srcI]
		s.renditions[dstI] = s.renditions[srcI]
	}
	s.Fill(s.cursorX, y, s.cursorX+n, y+1, ' ')
}

// DeleteChars deletes n characters at the cursor, shifting the remainder of
// the line left and filling the vacated right edge with blanks.
func (s *Screen) DeleteChars(n int) {
	if n <= 0 {
		return
	}
	y := s.cursorY
	if n > s.width-s.cursorX {
		n = s.width - s.cursorX
	}
	for x := s.cursorX; x < s.width-n; x++ {
		srcI, dstI := s.index(x+n, y), s.index(x, y)
		s.cells[dstI] = s.cells[srcI]
		s.renditions[dstI] = s.renditions[srcI]
	}
	s.Fill(s.width-n, y, s.width, y+1, ' ')
	s.markDirty(y)
}

// EraseChars blanks n characters at the cursor in place, without shifting
// the rest of the line.
func (s *Screen) EraseChars(n int) {
	if n <= 0 {
		return
	}
	end := s.cursorX + n
	if end > s.width {
		end = s.width
	}
	s.Fill(s.cursorX, s.cursorY, end, s.cursorY+1, ' ')
}

// InsertLines inserts n blank lines at the cursor row, within the active
// scrolling region, shifting lines below down.
func (s *Screen) InsertLines(n int) {
	if n <= 0 || s.cursorY < s.topMargin || s.cursorY > s.bottomMargin {
		return
	}
	if n > s.bottomMargin-s.cursorY+1 {
		n = s.bottomMargin - s.cursorY + 1
	}
	for y := s.bottomMargin; y >= s.cursorY+n; y-- {
		s.CopyRow(y, y-n)
	}
	for y := s.cursorY; y < s.cursorY+n; y++ {
		s.FillRow(y, ' ')
	}
}

// DeleteLines deletes n lines at the cursor row, within the active
// scrolling region, shifting lines below up.
func (s *Screen) DeleteLines(n int) {
	if n <= 0 || s.cursorY < s.topMargin || s.cursorY > s.bottomMargin {
		return
	}
	if n > s.bottomMargin-s.cursorY+1 {
		n = s.bottomMargin - s.cursorY + 1
	}
	for y := s.cursorY; y <= s.bottomMargin-n; y++ {
		s.CopyRow(y, y+n)
	}
	for y := s.bottomMargin - n + 1; y <= s.bottomMargin; y++ {
		s.FillRow(y, ' ')
	}
}

// SetTopAndBottomMargins sets the scrolling region from 1-based top/bottom.
// bottom == 0 means "default to the bottom of the screen", since a CSI
// parameter of 0 and an omitted parameter are indistinguishable by the
// time they reach here.
func (s *Screen) SetTopAndBottomMargins(top, bottom int) {
	if bottom == 0 {
		bottom = s.height
	}
	s.SetMargins(top-1, bottom-1)
	s.MoveAbsolute(1, 1)
}

// ApplySGR applies a flat list of SGR parameters to the current rendition
// state. VT102 hardware only implements reset (0), reverse video (7), the
// eight foreground colors (30-37, default 39) and the eight background
// colors (40-47, default 49); every other code is recognized and ignored.
func (s *Screen) ApplySGR(params []uint16) {
	if len(params) == 0 {
		s.curFg, s.curBg = vt102.DefaultForeground, vt102.DefaultBackground
		s.curAttr = vt102.AttrNone
		return
	}
	for _, p := range params {
		switch {
		case p == 0:
			s.curFg, s.curBg = vt102.DefaultForeground, vt102.DefaultBackground
			s.curAttr = vt102.AttrNone
		case p == 7:
			s.curFg, s.curBg = s.curBg, s.curFg
		case p >= 30 && p <= 37:
			s.curFg = vt102.NamedColor(p - 30)
		case p == 39:
			s.curFg = vt102.DefaultForeground
		case p >= 40 && p <= 47:
			s.curBg = vt102.NamedColor(p - 40)
		case p == 49:
			s.curBg = vt102.DefaultBackground
		}
	}
}

// Reset restores the screen to its just-allocated state: default colors,
// cursor at the origin, full-height scrolling region, cursor visible,
// every tab stop back to its default every-8th-column layout, and the
// screen cleared.
func (s *Screen) Reset() {
	s.resetState()
	for i := 0; i < s.width; i += 8 {
		s.tabStops[i] = true
	}
	for i := 0; i < s.width; i++ {
		if i%8 != 0 {
			s.tabStops[i] = false
		}
	}
	s.Fill(0, 0, s.width, s.height, ' ')
}
