package screen

import (
	"fmt"

	"github.com/dterm/vt102"
)

// DefaultHandler adapts a *Screen to vt102.Handler: every semantic terminal
// operation the Processor dispatches is translated directly into a Screen
// primitive call. Device responses (DA, DSR) are written through Emit,
// which the caller wires to whatever carries bytes back to the terminal's
// controlling process (a PTY master, a test buffer, ...).
type DefaultHandler struct {
	Screen *Screen
	Emit   func([]byte)

	vt102.NoopHandler
}

// NewDefaultHandler creates a DefaultHandler over screen, sending device
// responses to emit. A nil emit silently discards responses.
func NewDefaultHandler(s *Screen, emit func([]byte)) *DefaultHandler {
	if emit == nil {
		emit = func([]byte) {}
	}
	return &DefaultHandler{Screen: s, Emit: emit}
}

func (h *DefaultHandler) Input(b byte) { h.Screen.DisplayChar(b) }

func (h *DefaultHandler) Bell() { h.Screen.Bell() }

func (h *DefaultHandler) LineFeed() { h.Screen.LineFeed() }

func (h *DefaultHandler) CarriageReturn() { h.Screen.CarriageReturn() }

func (h *DefaultHandler) Backspace() { h.Screen.Backspace() }

func (h *DefaultHandler) Tab() { h.Screen.Tab() }

func (h *DefaultHandler) SetTabStop() { h.Screen.SetTabStop() }

func (h *DefaultHandler) ClearTabStop(mode vt102.TabulationClearMode) { h.Screen.ClearTabStop(mode) }

func (h *DefaultHandler) TabForward(count int) { h.Screen.TabForward(count) }

func (h *DefaultHandler) TabBackward(count int) { h.Screen.TabBackward(count) }

func (h *DefaultHandler) MoveCursorRelative(dx, dy int) { h.Screen.MoveRelative(dx, dy) }

func (h *DefaultHandler) MoveCursorAbsolute(row, col int) { h.Screen.MoveAbsolute(row, col) }

func (h *DefaultHandler) MoveCursorColumnAbsolute(col int) { h.Screen.MoveColumn(col) }

func (h *DefaultHandler) MoveCursorRowAbsolute(row int) { h.Screen.MoveRow(row) }

func (h *DefaultHandler) CursorIndex() { h.Screen.CursorIndex() }

func (h *DefaultHandler) CursorReverseIndex() { h.Screen.CursorReverseIndex() }

func (h *DefaultHandler) NextLine() { h.Screen.NextLine() }

func (h *DefaultHandler) SaveCursor() { h.Screen.SaveCursor() }

func (h *DefaultHandler) RestoreCursor() { h.Screen.RestoreCursor() }

func (h *DefaultHandler) EraseInDisplay(mode vt102.ClearMode) { h.Screen.EraseInDisplay(mode) }

func (h *DefaultHandler) EraseInLine(mode vt102.LineClearMode) { h.Screen.EraseInLine(mode) }

func (h *DefaultHandler) InsertBlank(count int) { h.Screen.InsertBlank(count) }

func (h *DefaultHandler) DeleteChars(count int) { h.Screen.DeleteChars(count) }

func (h *DefaultHandler) EraseChars(count int) { h.Screen.EraseChars(count) }

func (h *DefaultHandler) InsertLines(count int) { h.Screen.InsertLines(count) }

func (h *DefaultHandler) DeleteLines(count int) { h.Screen.DeleteLines(count) }

func (h *DefaultHandler) ScrollUp(count int) { h.Screen.ScrollUpRegion(count) }

func (h *DefaultHandler) ScrollDown(count int) { h.Screen.ScrollDownRegion(count) }

func (h *DefaultHandler) SetTopAndBottomMargins(top, bottom int) {
	h.Screen.SetTopAndBottomMargins(top, bottom)
}

func (h *DefaultHandler) SetSGR(params []uint16) { h.Screen.ApplySGR(params) }

func (h *DefaultHandler) SetCursorVisible(visible bool) { h.Screen.SetCursorVisible(visible) }

func (h *DefaultHandler) ConfigureCharset(index vt102.CharsetIndex, charset vt102.StandardCharset) {
	h.Screen.ConfigureCharset(index, charset)
}

func (h *DefaultHandler) SetActiveCharset(index vt102.CharsetIndex) {
	h.Screen.SetActiveCharset(index)
}

// IdentifyTerminal answers a Device Attributes request (CSI c) by
// reporting VT102 with no extensions.
//
// The backend this was ported from left query_terminal_id unimplemented,
// so a DA request got no reply at all; a real VT102 always answers one.
func (h *DefaultHandler) IdentifyTerminal() {
	h.Emit([]byte("\x1b[?6c"))
}

// DeviceStatus answers a Device Status Report (CSI n). Kind 5 reports
// overall status ("OK"); kind 6 reports the cursor position (CPR). Any
// other kind is recognized and ignored.
func (h *DefaultHandler) DeviceStatus(kind int) {
	switch kind {
	case 5:
		h.Emit([]byte("\x1b[0n"))
	case 6:
		x, y := h.Screen.CursorPosition()
		h.Emit([]byte(fmt.Sprintf("\x1b[%d;%dR", y+1, x+1)))
	}
}

func (h *DefaultHandler) Reset() { h.Screen.Reset() }

// Resize grows or shrinks the backing Screen, satisfying vt102.Resizer so a
// caller holding only a *vt102.Terminal can still resize it.
func (h *DefaultHandler) Resize(width, height int) error { return h.Screen.Resize(width, height) }

var _ vt102.Handler = (*DefaultHandler)(nil)
var _ vt102.Resizer = (*DefaultHandler)(nil)
