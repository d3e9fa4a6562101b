package vt102_test

import (
	"testing"

	"github.com/dterm/vt102"
	"github.com/dterm/vt102/screen"
	"github.com/stretchr/testify/assert"
)

func TestTerminalFeedWritesThroughToHandler(t *testing.T) {
	term, s, _ := newTestTerminal(t, 10, 5)

	term.Feed([]byte("hi"))

	b, _, _, _ := s.Cell(0, 0)
	assert.Equal(t, byte('h'), b)
	b, _, _, _ = s.Cell(1, 0)
	assert.Equal(t, byte('i'), b)
}

func TestTerminalCloseStopsFeed(t *testing.T) {
	term, s, _ := newTestTerminal(t, 10, 5)

	term.Close()
	term.Feed([]byte("hi"))

	b, _, _, _ := s.Cell(0, 0)
	assert.Equal(t, byte(' '), b)
}

func TestTerminalResetIssuesRIS(t *testing.T) {
	term, s, _ := newTestTerminal(t, 10, 5)

	term.Feed([]byte("hi"))
	term.Reset()

	b, _, _, _ := s.Cell(0, 0)
	assert.Equal(t, byte(' '), b)
	x, y := s.CursorPosition()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestTerminalResetAfterCloseIsNoop(t *testing.T) {
	term, s, _ := newTestTerminal(t, 10, 5)

	term.Feed([]byte("hi"))
	term.Close()
	term.Reset()

	b, _, _, _ := s.Cell(0, 0)
	assert.Equal(t, byte('h'), b)
}

func TestTerminalResizeForwardsToResizerHandler(t *testing.T) {
	term, s, _ := newTestTerminal(t, 10, 5)

	err := term.Resize(20, 8)

	assert.NoError(t, err)
	assert.Equal(t, 20, s.Width())
	assert.Equal(t, 8, s.Height())
}

func TestTerminalResizeOnClosedTerminalIsNoop(t *testing.T) {
	term, s, _ := newTestTerminal(t, 10, 5)

	term.Close()
	err := term.Resize(20, 8)

	assert.NoError(t, err)
	assert.Equal(t, 10, s.Width())
}

type nonResizableHandler struct {
	vt102.NoopHandler
}

func TestTerminalResizeOnNonResizerHandlerIsNoop(t *testing.T) {
	term := vt102.NewTerminal(&nonResizableHandler{})

	err := term.Resize(20, 8)

	assert.NoError(t, err)
}

func TestScreenDefaultHandlerImplementsResizer(t *testing.T) {
	var _ vt102.Resizer = (*screen.DefaultHandler)(nil)
}
