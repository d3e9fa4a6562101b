// Command vtcapture starts a TUI program inside a pseudo terminal, feeds its
// output through a vt102 screen for a fixed duration, and prints a one-line
// summary followed by the final frame.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/dterm/vt102"
	"github.com/dterm/vt102/screen"
)

func getTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		return 120, 40
	}
	return width, height
}

func capture(program string, args []string, duration time.Duration) ([]byte, int, int, error) {
	width, height := getTerminalSize()

	cmd := exec.Command(program, args...)
	cmd.Env = append(os.Environ(), "TERM=vt102")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)}); err != nil {
		log.Printf("warning: unable to set pty size: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	var output []byte
	buf := make([]byte, 4096)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				ptmx.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
				n, err := ptmx.Read(buf)
				if n > 0 {
					output = append(output, buf[:n]...)
				}
				if err != nil {
					continue
				}
			}
		}
	}()

	<-ctx.Done()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
	}

	if cmd.Process != nil {
		cmd.Process.Kill()
		cmd.Wait()
	}

	return output, width, height, nil
}

func render(data []byte, width, height int) string {
	s, err := screen.NewScreen(width, height)
	if err != nil {
		log.Fatalf("allocating screen: %v", err)
	}
	handler := screen.NewDefaultHandler(s, nil)
	term := vt102.NewTerminal(handler)
	term.Feed(data)

	var sb strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sb.WriteRune(s.Glyph(x, y))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func main() {
	programs := []struct {
		name string
		args []string
	}{
		{"htop", nil},
		{"top", nil},
		{"ps", []string{"aux"}},
	}

	var data []byte
	var width, height int
	var used string

	for _, p := range programs {
		out, w, h, err := capture(p.name, p.args, 2*time.Second)
		if err != nil {
			continue
		}
		data, width, height, used = out, w, h, p.name
		break
	}

	if data == nil {
		fmt.Println("no capturable program found (tried htop, top, ps)")
		os.Exit(1)
	}

	fmt.Printf("captured %d bytes from %s (%dx%d)\n\n", len(data), used, width, height)
	fmt.Print(render(data, width, height))
}
