package vt102

// Terminal is the module's external host facade: the four operations a
// caller needs to drive a VT102 instance (create, feed bytes, resize,
// tear down) without reaching into the parser/processor/screen machinery
// directly.
//
// Terminal itself only wires a Processor to a Handler; it is deliberately
// thin so a caller that wants a different Handler (a headless test double,
// say) can construct its own Processor instead of going through Terminal.
type Terminal struct {
	processor *Processor
	handler   Handler
	closed    bool
}

// NewTerminal creates a Terminal backed by handler. It takes no dimensions:
// the screen size lives in whatever handler was built around; Terminal
// itself carries no screen state.
func NewTerminal(handler Handler) *Terminal {
	return &Terminal{
		processor: NewProcessor(handler),
		handler:   handler,
	}
}

// Feed advances the terminal by data, dispatching every complete sequence
// it contains into the Handler. It is a no-op once the terminal has been
// Closed.
func (t *Terminal) Feed(data []byte) {
	if t.closed {
		return
	}
	t.processor.Advance(data)
}

// Reset discards any partially parsed escape sequence and issues a full
// terminal reset (RIS) to the Handler.
func (t *Terminal) Reset() {
	if t.closed {
		return
	}
	t.processor.Reset()
	t.handler.Reset()
}

// Resizer is implemented by a Handler whose backing screen can change
// dimensions. Terminal itself holds no screen state, so resizing is an
// optional capability probed for at call time rather than part of Handler
// itself, the way io.ReaderFrom is probed for on an io.Writer.
type Resizer interface {
	Resize(width, height int) error
}

// Resize forwards to the Handler's Resize if it implements Resizer. It is a
// no-op, returning nil, for a Handler that does not (or a closed Terminal).
func (t *Terminal) Resize(width, height int) error {
	if t.closed {
		return nil
	}
	if r, ok := t.handler.(Resizer); ok {
		return r.Resize(width, height)
	}
	return nil
}

// Close marks the terminal inactive. Subsequent Feed calls are ignored.
func (t *Terminal) Close() {
	t.closed = true
}
