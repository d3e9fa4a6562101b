package vt102

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopHandlerNeverPanics(t *testing.T) {
	h := &NoopHandler{}

	assert.NotPanics(t, func() {
		h.Input('x')
		h.Bell()
		h.LineFeed()
		h.CarriageReturn()
		h.Backspace()
		h.Tab()
		h.SetTabStop()
		h.ClearTabStop(TabClearAll)
		h.TabForward(1)
		h.TabBackward(1)
		h.MoveCursorRelative(1, 1)
		h.MoveCursorAbsolute(1, 1)
		h.MoveCursorColumnAbsolute(1)
		h.MoveCursorRowAbsolute(1)
		h.CursorIndex()
		h.CursorReverseIndex()
		h.NextLine()
		h.SaveCursor()
		h.RestoreCursor()
		h.EraseInDisplay(ClearAll)
		h.EraseInLine(LineClearAll)
		h.InsertBlank(1)
		h.DeleteChars(1)
		h.EraseChars(1)
		h.InsertLines(1)
		h.DeleteLines(1)
		h.ScrollUp(1)
		h.ScrollDown(1)
		h.SetTopAndBottomMargins(1, 24)
		h.SetSGR([]uint16{0})
		h.SetCursorVisible(false)
		h.ConfigureCharset(G0, StandardCharsetASCII)
		h.SetActiveCharset(G0)
		h.IdentifyTerminal()
		h.DeviceStatus(5)
		h.Reset()
		h.Hook(nil, nil, false, 'p')
		h.Put('x')
		h.Unhook()
	})
}

var _ Handler = (*NoopHandler)(nil)
