// Command vtrender runs a shell inside a pseudo terminal, feeds its output
// through a vt102 screen, and paints the screen's dirty lines onto a tcell
// surface every time the PTY produces more bytes.
package main

import (
	"log"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"

	"github.com/dterm/vt102"
	"github.com/dterm/vt102/screen"
)

func colorOf(c vt102.NamedColor) tcell.Color {
	switch c {
	case vt102.Black:
		return tcell.ColorBlack
	case vt102.Red:
		return tcell.ColorMaroon
	case vt102.Green:
		return tcell.ColorGreen
	case vt102.Yellow:
		return tcell.ColorOlive
	case vt102.Blue:
		return tcell.ColorNavy
	case vt102.Magenta:
		return tcell.ColorPurple
	case vt102.Cyan:
		return tcell.ColorTeal
	case vt102.White:
		return tcell.ColorSilver
	default:
		return tcell.ColorDefault
	}
}

func paintDirty(ts tcell.Screen, s *screen.Screen) {
	for _, y := range s.DirtyLines() {
		for x := 0; x < s.Width(); x++ {
			_, fg, bg, _ := s.Cell(x, y)
			style := tcell.StyleDefault.Foreground(colorOf(fg)).Background(colorOf(bg))
			ts.SetContent(x, y, s.Glyph(x, y), nil, style)
		}
	}
	s.ClearDirty()
	cx, cy := s.CursorPosition()
	if s.CursorVisible() {
		ts.ShowCursor(cx, cy)
	} else {
		ts.HideCursor()
	}
	ts.Show()
}

func main() {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	ts, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating tcell screen: %v", err)
	}
	if err := ts.Init(); err != nil {
		log.Fatalf("initializing tcell screen: %v", err)
	}
	defer ts.Fini()

	width, height := ts.Size()
	s, err := screen.NewScreen(width, height)
	if err != nil {
		log.Fatalf("allocating vt102 screen: %v", err)
	}

	cmd := exec.Command(shell)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		log.Fatalf("starting pty: %v", err)
	}
	defer ptmx.Close()

	handler := screen.NewDefaultHandler(s, func(b []byte) { ptmx.Write(b) })
	term := vt102.NewTerminal(handler)

	events := make(chan tcell.Event, 16)
	go ts.ChannelEvents(events, nil)

	ptyData := make(chan []byte, 16)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				ptyData <- chunk
			}
			if err != nil {
				close(ptyData)
				return
			}
		}
	}()

	paintDirty(ts, s)

	for {
		select {
		case data, ok := <-ptyData:
			if !ok {
				return
			}
			term.Feed(data)
			paintDirty(ts, s)
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				if e.Key() == tcell.KeyCtrlC && e.Modifiers() == tcell.ModCtrl {
					return
				}
				ptmx.Write([]byte(string(e.Rune())))
			case *tcell.EventResize:
				w, h := e.Size()
				term.Resize(w, h)
				pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)})
				ts.Sync()
			}
		}
	}
}
