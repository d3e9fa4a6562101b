package vt102

// MaxIntermediates bounds the intermediate-byte buffer (0x20..0x2F bytes
// between the sequence introducer and its final byte). Two bytes are
// sufficient for every VT102 sequence.
const MaxIntermediates = 2

// MaxOSCRaw bounds how many bytes of an OSC string body are retained.
const MaxOSCRaw = 1024

// MaxOSCParams bounds how many ';'-separated OSC parameters are tracked.
const MaxOSCParams = 16

// Parser is the VT102 byte-stream state machine (C3). It consumes bytes one
// at a time (or in batches via Advance) and drives a Performer through the
// primitive events that make up an escape or control sequence.
//
// Advance is synchronous: it returns only once every transition triggered
// by the input has completed. The parser never rejects input — malformed
// sequences are silently absorbed and the state machine returns to Ground.
type Parser struct {
	state State

	intermediates []byte

	params               *Params
	currentParam         uint16
	hasCurrentParam      bool
	inSubparam           bool
	pendingTrailingParam bool

	oscRaw       []byte
	oscParams    []int
	oscNumParams int

	ignoring   bool
	pendingESC bool // DCS passthrough/SOS-PM-APC: saw ESC, waiting to see if it's ST
}

// NewParser creates a parser in the Ground state.
func NewParser() *Parser {
	return &Parser{
		state:         StateGround,
		params:        NewParams(),
		intermediates: make([]byte, 0, MaxIntermediates),
		oscRaw:        make([]byte, 0, MaxOSCRaw),
		oscParams:     make([]int, 0, MaxOSCParams),
	}
}

// State returns the parser's current state.
func (p *Parser) State() State {
	return p.state
}

// Advance feeds bytes through the state machine, calling performer methods
// as sequences complete.
func (p *Parser) Advance(performer Performer, bytes []byte) {
	for _, b := range bytes {
		switch p.state {
		case StateGround:
			p.advanceGround(performer, b)
		case StateEscape:
			p.advanceEscape(performer, b)
		case StateEscapeIntermediate:
			p.advanceEscapeIntermediate(performer, b)
		case StateCSIEntry:
			p.advanceCSIEntry(performer, b)
		case StateCSIParam:
			p.advanceCSIParam(performer, b)
		case StateCSIIntermediate:
			p.advanceCSIIntermediate(performer, b)
		case StateCSIIgnore:
			p.advanceCSIIgnore(performer, b)
		case StateOSCString:
			p.advanceOSCString(performer, b)
		case StateDCSEntry:
			p.advanceDCSEntry(performer, b)
		case StateDCSParam:
			p.advanceDCSParam(performer, b)
		case StateDCSIntermediate:
			p.advanceDCSIntermediate(performer, b)
		case StateDCSPassthrough:
			p.advanceDCSPassthrough(performer, b)
		case StateDCSIgnore:
			p.advanceDCSIgnore(performer, b)
		case StateSOSPMApcString:
			p.advanceSOSPMApcString(b)
		}
	}
}

// advanceGround handles the Ground state. Every byte 0x20..0xFF that is not
// a control code is printable: there is no UTF-8 decoding and no C1 8-bit
// control introducer carve-out, only ESC-led 7-bit sequences matter here.
func (p *Parser) advanceGround(performer Performer, b byte) {
	switch {
	case b == 0x1B: // ESC
		p.resetParams()
		p.state = StateEscape
	case b == 0x00: // NUL: ignored
	case b < 0x20: // C0 controls: BEL, BS, HT, LF, VT, FF, CR, ...
		performer.Execute(b)
	case b == 0x7F: // DEL: ignored
	default: // 0x20..0x7E and 0x80..0xFF
		performer.Print(b)
	}
}

func (p *Parser) advanceEscape(performer Performer, b byte) {
	switch {
	case b < 0x20:
		performer.Execute(b)
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = StateEscapeIntermediate
	case b == 0x5B: // [
		p.state = StateCSIEntry
	case b == 0x5D: // ]
		p.state = StateOSCString
	case b == 0x50: // P
		p.state = StateDCSEntry
	case b == 0x58 || b == 0x5E || b == 0x5F: // X, ^, _
		p.state = StateSOSPMApcString
	case b >= 0x30 && b <= 0x7E:
		performer.EscDispatch(p.intermediates, p.ignoring, b)
		p.state = StateGround
	case b == 0x7F:
		// ignore
	default:
		p.state = StateGround
	}
}

func (p *Parser) advanceEscapeIntermediate(performer Performer, b byte) {
	switch {
	case b < 0x20:
		performer.Execute(b)
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b >= 0x30 && b <= 0x7E:
		performer.EscDispatch(p.intermediates, p.ignoring, b)
		p.state = StateGround
	case b == 0x7F:
		// ignore
	}
}

// advanceCSIEntry handles the byte immediately after `ESC [`.
func (p *Parser) advanceCSIEntry(performer Performer, b byte) {
	switch {
	case b < 0x20:
		performer.Execute(b)
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = StateCSIIntermediate
	case b >= 0x30 && b <= 0x39:
		p.paramDigit(b)
		p.state = StateCSIParam
	case b == 0x3A:
		p.paramSubparam()
		p.state = StateCSIParam
	case b == 0x3B:
		p.paramSeparator()
		p.state = StateCSIParam
	case b >= 0x3C && b <= 0x3F: // private marker: ? > = <
		p.collectIntermediate(b)
		p.state = StateCSIParam
	case b >= 0x40 && b <= 0x7E:
		p.csiDispatch(performer, b)
		p.state = StateGround
	case b == 0x7F:
		// ignore
	}
}

func (p *Parser) advanceCSIParam(performer Performer, b byte) {
	switch {
	case b < 0x20:
		performer.Execute(b)
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = StateCSIIntermediate
	case b >= 0x30 && b <= 0x39:
		p.paramDigit(b)
	case b == 0x3A:
		p.paramSubparam()
	case b == 0x3B:
		p.paramSeparator()
	case b >= 0x3C && b <= 0x3F:
		// a private marker is only valid as the first byte after CSI; one
		// arriving later (after digits, a separator or another marker) is
		// malformed, so swallow the rest of the sequence.
		p.state = StateCSIIgnore
	case b >= 0x40 && b <= 0x7E:
		p.csiDispatch(performer, b)
		p.state = StateGround
	case b == 0x7F:
		// ignore
	}
}

func (p *Parser) advanceCSIIntermediate(performer Performer, b byte) {
	switch {
	case b < 0x20:
		performer.Execute(b)
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b >= 0x30 && b <= 0x3F:
		p.state = StateCSIIgnore
	case b >= 0x40 && b <= 0x7E:
		p.csiDispatch(performer, b)
		p.state = StateGround
	case b == 0x7F:
		// ignore
	}
}

func (p *Parser) advanceCSIIgnore(performer Performer, b byte) {
	switch {
	case b < 0x20:
		performer.Execute(b)
	case b >= 0x20 && b <= 0x3F:
		// ignore
	case b >= 0x40 && b <= 0x7E:
		p.resetParams()
		p.state = StateGround
	case b == 0x7F:
		// ignore
	}
}

// advanceOSCString consumes an operating system command string. VT102 never
// interprets the body; it is collected for a no-op OscDispatch call and
// discarded once terminated.
func (p *Parser) advanceOSCString(performer Performer, b byte) {
	switch {
	case b == 0x07: // BEL terminates
		p.oscDispatch(performer, true)
		p.state = StateGround
	case b == 0x1B:
		p.oscPut(b)
	case b == '\\' && len(p.oscRaw) > 0 && p.oscRaw[len(p.oscRaw)-1] == 0x1B:
		p.oscRaw = p.oscRaw[:len(p.oscRaw)-1]
		p.oscDispatch(performer, false)
		p.state = StateGround
	default:
		p.oscPut(b)
	}
}

// advanceDCSEntry, advanceDCSParam, advanceDCSIntermediate,
// advanceDCSPassthrough and advanceDCSIgnore exist only to keep the state
// machine total in the presence of a device control string: VT102 never
// emits or requires one, but a stray DCS in the input stream must not
// desync the parser.

func (p *Parser) advanceDCSEntry(performer Performer, b byte) {
	switch {
	case b < 0x20:
		// ignore
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = StateDCSIntermediate
	case b >= 0x30 && b <= 0x39:
		p.paramDigit(b)
		p.state = StateDCSParam
	case b == 0x3A:
		p.paramSubparam()
		p.state = StateDCSParam
	case b == 0x3B:
		p.paramSeparator()
		p.state = StateDCSParam
	case b >= 0x3C && b <= 0x3F:
		p.collectIntermediate(b)
		p.state = StateDCSParam
	case b >= 0x40 && b <= 0x7E:
		p.dcsHook(performer, b)
	case b == 0x7F:
		// ignore
	}
}

func (p *Parser) advanceDCSParam(performer Performer, b byte) {
	switch {
	case b < 0x20:
		// ignore
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = StateDCSIntermediate
	case b >= 0x30 && b <= 0x39:
		p.paramDigit(b)
	case b == 0x3A:
		p.paramSubparam()
	case b == 0x3B:
		p.paramSeparator()
	case b >= 0x3C && b <= 0x3F:
		p.state = StateDCSIgnore
	case b >= 0x40 && b <= 0x7E:
		p.dcsHook(performer, b)
	case b == 0x7F:
		// ignore
	}
}

func (p *Parser) advanceDCSIntermediate(performer Performer, b byte) {
	switch {
	case b < 0x20:
		// ignore
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b >= 0x30 && b <= 0x3F:
		p.state = StateDCSIgnore
	case b >= 0x40 && b <= 0x7E:
		p.dcsHook(performer, b)
	case b == 0x7F:
		// ignore
	}
}

func (p *Parser) dcsHook(performer Performer, final byte) {
	p.finalizeCurrentParam()
	performer.Hook(p.params, p.intermediates, p.ignoring, final)
	p.state = StateDCSPassthrough
}

func (p *Parser) advanceDCSPassthrough(performer Performer, b byte) {
	switch {
	case b == 0x1B:
		p.pendingESC = true
	case b == '\\' && p.pendingESC:
		p.pendingESC = false
		performer.Unhook()
		p.state = StateGround
	case b == 0x18 || b == 0x1A: // CAN/SUB cancels
		performer.Unhook()
		performer.Execute(b)
		p.state = StateGround
	default:
		if p.pendingESC {
			performer.Put(0x1B)
			p.pendingESC = false
		}
		performer.Put(b)
	}
}

func (p *Parser) advanceDCSIgnore(performer Performer, b byte) {
	if b == 0x18 || b == 0x1A {
		p.resetParams()
		p.state = StateGround
	}
}

func (p *Parser) advanceSOSPMApcString(b byte) {
	switch {
	case b == 0x1B:
		p.pendingESC = true
	case b == '\\' && p.pendingESC:
		p.pendingESC = false
		p.state = StateGround
	default:
		p.pendingESC = false
	}
}

// --- helpers -----------------------------------------------------------

func (p *Parser) resetParams() {
	p.params.Clear()
	p.intermediates = p.intermediates[:0]
	p.ignoring = false
	p.oscRaw = p.oscRaw[:0]
	p.oscParams = p.oscParams[:0]
	p.oscNumParams = 0
	p.currentParam = 0
	p.hasCurrentParam = false
	p.inSubparam = false
	p.pendingTrailingParam = false
	p.pendingESC = false
}

func (p *Parser) collectIntermediate(b byte) {
	if len(p.intermediates) < MaxIntermediates {
		p.intermediates = append(p.intermediates, b)
	} else {
		p.ignoring = true
	}
}

// paramDigit accumulates a decimal digit into the current parameter,
// saturating at 65535.
func (p *Parser) paramDigit(b byte) {
	digit := uint16(b - '0')
	if !p.hasCurrentParam {
		p.currentParam = digit
		p.hasCurrentParam = true
		return
	}
	next := uint32(p.currentParam)*10 + uint32(digit)
	if next > 65535 {
		p.currentParam = 65535
	} else {
		p.currentParam = uint16(next)
	}
}

func (p *Parser) pushOrExtend(value uint16) {
	if p.params.IsFull() {
		p.ignoring = true
		return
	}
	if p.inSubparam {
		p.params.Extend(value)
	} else {
		p.params.Push(value)
	}
}

func (p *Parser) paramSeparator() {
	if p.hasCurrentParam {
		p.pushOrExtend(p.currentParam)
	} else if !p.inSubparam {
		p.pushOrExtend(0)
	}
	p.currentParam = 0
	p.hasCurrentParam = false
	p.inSubparam = false
	p.pendingTrailingParam = true
}

func (p *Parser) paramSubparam() {
	value := p.currentParam
	if !p.hasCurrentParam {
		value = 0
	}
	if p.params.IsFull() {
		p.ignoring = true
	} else if !p.inSubparam {
		p.params.Push(value)
		p.inSubparam = true
	} else {
		p.params.Extend(value)
	}
	p.currentParam = 0
	p.hasCurrentParam = false
	p.pendingTrailingParam = true
}

// finalizeCurrentParam pushes whatever parameter value is still pending when
// a CSI/DCS sequence is dispatched. A trailing separator or subparam colon
// with nothing after it (e.g. "\x1b[;H" or "\x1b[38:2") still denotes an
// explicit, defaulted-to-zero final parameter rather than no parameter at
// all, so pendingTrailingParam covers that case once hasCurrentParam is gone.
func (p *Parser) finalizeCurrentParam() {
	if p.hasCurrentParam {
		p.pushOrExtend(p.currentParam)
	} else if p.pendingTrailingParam {
		p.pushOrExtend(0)
	}
}

func (p *Parser) csiDispatch(performer Performer, action byte) {
	p.finalizeCurrentParam()
	performer.CsiDispatch(p.params, p.intermediates, p.ignoring, action)
	p.resetParams()
}

func (p *Parser) oscPut(b byte) {
	if len(p.oscRaw) >= MaxOSCRaw {
		return
	}
	if b == ';' && p.oscNumParams < MaxOSCParams {
		p.oscParams = append(p.oscParams, len(p.oscRaw))
		p.oscNumParams++
		return
	}
	p.oscRaw = append(p.oscRaw, b)
}

func (p *Parser) oscDispatch(performer Performer, bellTerminated bool) {
	params := make([][]byte, 0, p.oscNumParams+1)
	start := 0
	for _, end := range p.oscParams {
		if end > start && end <= len(p.oscRaw) {
			params = append(params, p.oscRaw[start:end])
		}
		start = end
	}
	if start < len(p.oscRaw) {
		params = append(params, p.oscRaw[start:])
	}
	performer.OscDispatch(params, bellTerminated)
	p.resetParams()
}
