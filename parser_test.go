package vt102

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParserCreation(t *testing.T) {
	parser := NewParser()
	assert.NotNil(t, parser)
	assert.Equal(t, StateGround, parser.State())
	assert.Empty(t, parser.intermediates)
	assert.False(t, parser.ignoring)
}

func TestParserSimpleText(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("Hello"))

	assert.Equal(t, []byte("Hello"), performer.printed)
	assert.Empty(t, performer.executed)
}

func TestParserHighByteIsPrintable(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	// Bytes 0x80..0xFF are printable 8-bit cells, not a UTF-8 lead byte.
	parser.Advance(performer, []byte{0x41, 0xC3, 0xA9})

	assert.Equal(t, []byte{0x41, 0xC3, 0xA9}, performer.printed)
	assert.Equal(t, StateGround, parser.State())
}

func TestParserControlCharacters(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected []byte
	}{
		{"Backspace", []byte{0x08}, []byte{0x08}},
		{"Tab", []byte{0x09}, []byte{0x09}},
		{"Line Feed", []byte{0x0A}, []byte{0x0A}},
		{"Carriage Return", []byte{0x0D}, []byte{0x0D}},
		{"Bell", []byte{0x07}, []byte{0x07}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser()
			performer := &MockPerformer{}

			parser.Advance(performer, tt.input)
			assert.Equal(t, tt.expected, performer.executed)
			assert.Empty(t, performer.printed)
		})
	}
}

func TestParserNULAndDELAreIgnored(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte{0x00, 0x7F})

	assert.Empty(t, performer.printed)
	assert.Empty(t, performer.executed)
}

func TestParserMixedTextAndControl(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("Hello\nWorld\rX"))

	assert.Equal(t, []byte("HelloWorldX"), performer.printed)
	assert.Equal(t, []byte{0x0A, 0x0D}, performer.executed)
}

func TestParserEscapeSequence(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte{0x1B})

	assert.Equal(t, StateEscape, parser.State())
	assert.Empty(t, performer.printed)
	assert.Empty(t, performer.executed)
}

func TestParserEscDispatchReturnsToGround(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1bD"))

	assert.Equal(t, StateGround, parser.State())
	assert.Len(t, performer.escDispatched, 1)
	assert.Equal(t, byte('D'), performer.escDispatched[0].b)
}

func TestParserCSISimple(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1b[2J"))

	assert.Equal(t, StateGround, parser.State())
	assert.Len(t, performer.csiDispatched, 1)
	d := performer.csiDispatched[0]
	assert.Equal(t, byte('J'), d.action)
	assert.Equal(t, [][]uint16{{2}}, d.params.Iter())
}

func TestParserCSIMultipleParams(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1b[1;30;42m"))

	assert.Len(t, performer.csiDispatched, 1)
	d := performer.csiDispatched[0]
	assert.Equal(t, byte('m'), d.action)
	assert.Equal(t, [][]uint16{{1}, {30}, {42}}, d.params.Iter())
}

func TestParserCSIEmptyParamsDefaultToZero(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1b[;H"))

	assert.Len(t, performer.csiDispatched, 1)
	assert.Equal(t, [][]uint16{{0}, {0}}, performer.csiDispatched[0].params.Iter())
}

func TestParserCSIPrivateMarker(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1b[?25h"))

	assert.Len(t, performer.csiDispatched, 1)
	d := performer.csiDispatched[0]
	assert.Equal(t, byte('h'), d.action)
	assert.Equal(t, []byte{'?'}, d.intermediates)
	assert.Equal(t, [][]uint16{{25}}, d.params.Iter())
}

func TestParserCSIParamSaturates(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1b[99999999A"))

	assert.Len(t, performer.csiDispatched, 1)
	assert.Equal(t, [][]uint16{{65535}}, performer.csiDispatched[0].params.Iter())
}

func TestParserCSITooManyParamsSetsIgnore(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	input := []byte("\x1b[" + repeat("1;", MaxParams+5) + "m")
	parser.Advance(performer, input)

	assert.Len(t, performer.csiDispatched, 1)
	assert.True(t, performer.csiDispatched[0].ignore)
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func TestParserOSCDiscarded(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1b]0;title\x07A"))

	assert.Equal(t, StateGround, parser.State())
	assert.Len(t, performer.oscDispatched, 1)
	assert.True(t, performer.oscDispatched[0].bellTerminated)
	assert.Equal(t, []byte{'A'}, performer.printed)
}

func TestParserOSCTerminatedByST(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1b]0;title\x1b\\A"))

	assert.Equal(t, StateGround, parser.State())
	assert.Len(t, performer.oscDispatched, 1)
	assert.False(t, performer.oscDispatched[0].bellTerminated)
	assert.Equal(t, []byte{'A'}, performer.printed)
}

func TestParserDCSRoundTrip(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	// 'd' is the DCS final byte and goes to Hook; only "ata" is passed through.
	parser.Advance(performer, []byte("\x1bPdata\x1b\\A"))

	assert.Equal(t, StateGround, parser.State())
	assert.True(t, performer.hookCalled)
	assert.Equal(t, []byte("ata"), performer.putBytes)
	assert.True(t, performer.unhookCalled)
	assert.Equal(t, []byte{'A'}, performer.printed)
}

func TestParserSOSPMApcStringNeverDesyncs(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	parser.Advance(performer, []byte("\x1b_anything goes here\x1b\\A"))

	assert.Equal(t, StateGround, parser.State())
	assert.Equal(t, []byte{'A'}, performer.printed)
}

func TestParserCSIIgnoreSwallowsUntilFinal(t *testing.T) {
	parser := NewParser()
	performer := &MockPerformer{}

	// Two private markers is malformed; the sequence is swallowed but the
	// parser returns to Ground cleanly once the final byte arrives.
	parser.Advance(performer, []byte("\x1b[?<5mA"))

	assert.Equal(t, StateGround, parser.State())
	assert.Empty(t, performer.csiDispatched)
	assert.Equal(t, []byte{'A'}, performer.printed)
}
