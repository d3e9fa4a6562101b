package diag

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(orig)
		log.SetFlags(flags)
	}()
	fn()
	return buf.String()
}

func TestMalformedLogsPrefixedMessage(t *testing.T) {
	l := New()

	out := captureLog(t, func() {
		l.Malformed("CSI action %q exceeded limits", 'm')
	})

	assert.Contains(t, out, "malformed: CSI action 'm' exceeded limits")
}

func TestIgnoredLogsPrefixedMessage(t *testing.T) {
	l := New()

	out := captureLog(t, func() {
		l.Ignored("private mode %d has no VT102 mapping", 2026)
	})

	assert.Contains(t, out, "ignored: private mode 2026 has no VT102 mapping")
}

func TestRepeatedMessageIsRateLimited(t *testing.T) {
	l := New()

	out := captureLog(t, func() {
		for i := 0; i < DefaultRepeatLimit+3; i++ {
			l.Ignored("ESC %q has no VT102 mapping", 'x')
		}
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, DefaultRepeatLimit+1)
	assert.Contains(t, lines[DefaultRepeatLimit], "further occurrences suppressed")
}

func TestDistinctFormatsAreCountedSeparately(t *testing.T) {
	l := New()

	out := captureLog(t, func() {
		l.Malformed("CSI action %q exceeded limits", 'm')
		l.Ignored("CSI action %q has no VT102 mapping", 'm')
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
}
