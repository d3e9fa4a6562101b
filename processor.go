package vt102

import "github.com/dterm/vt102/internal/diag"

// Processor wraps a Parser and a Handler (C5). It is the bridge between the
// byte-stream state machine's primitive Performer callbacks and the
// semantic terminal operations a Handler exposes: nothing above a Processor
// ever sees a raw CSI byte again.
type Processor struct {
	parser  *Parser
	handler Handler
	log     *diag.Logger
}

// NewProcessor creates a Processor that dispatches into handler. Sequences
// the handler can't act on (malformed CSI, an SGR code or private mode this
// module never implements) are logged through an internal rate-limited
// diagnostic logger rather than rejected.
func NewProcessor(handler Handler) *Processor {
	return &Processor{
		parser:  NewParser(),
		handler: handler,
		log:     diag.New(),
	}
}

// Advance feeds bytes through the parser, driving handler via Performer
// callbacks translated into Handler calls.
func (p *Processor) Advance(bytes []byte) {
	performer := processorPerformer{handler: p.handler, log: p.log}
	p.parser.Advance(performer, bytes)
}

// Reset replaces the underlying parser with a fresh one, discarding any
// partially parsed sequence. It does not touch the Handler: a Handler's own
// Reset is a separate, semantic reset (RIS) the caller invokes explicitly.
func (p *Processor) Reset() {
	p.parser = NewParser()
}

// processorPerformer implements Performer by translating each primitive
// event into the matching Handler call.
type processorPerformer struct {
	handler Handler
	log     *diag.Logger
}

func (pp processorPerformer) Print(b byte) {
	pp.handler.Input(b)
}

func (pp processorPerformer) Execute(b byte) {
	switch b {
	case C0.BEL:
		pp.handler.Bell()
	case C0.BS:
		pp.handler.Backspace()
	case C0.HT:
		pp.handler.Tab()
	case C0.LF, C0.VT, C0.FF:
		pp.handler.LineFeed()
	case C0.CR:
		pp.handler.CarriageReturn()
	case C0.SO:
		pp.handler.SetActiveCharset(G1)
	case C0.SI:
		pp.handler.SetActiveCharset(G0)
	}
}

func (pp processorPerformer) Hook(params *Params, intermediates []byte, ignore bool, action byte) {
	pp.handler.Hook(params, intermediates, ignore, action)
}

func (pp processorPerformer) Put(b byte) {
	pp.handler.Put(b)
}

func (pp processorPerformer) Unhook() {
	pp.handler.Unhook()
}

// OscDispatch is a no-op: VT102 hardware predates OSC and defines no
// response to one. The sequence is still fully parsed (see advanceOSCString)
// so it can never leak bytes into Ground and desync the state machine.
func (pp processorPerformer) OscDispatch(params [][]byte, bellTerminated bool) {}

func (pp processorPerformer) CsiDispatch(params *Params, intermediates []byte, ignore bool, action byte) {
	if ignore {
		pp.log.Malformed("CSI sequence with action %q exceeded parameter/intermediate limits", action)
		return
	}

	groups := params.Iter()
	private := len(intermediates) > 0 && intermediates[0] == '?'

	switch action {
	case 'A': // CUU
		pp.handler.MoveCursorRelative(0, -getParam(groups, 0, 0, 1))
	case 'B': // CUD
		pp.handler.MoveCursorRelative(0, getParam(groups, 0, 0, 1))
	case 'C': // CUF
		pp.handler.MoveCursorRelative(getParam(groups, 0, 0, 1), 0)
	case 'D': // CUB
		pp.handler.MoveCursorRelative(-getParam(groups, 0, 0, 1), 0)
	case 'E': // CNL
		n := getParam(groups, 0, 0, 1)
		pp.handler.MoveCursorRelative(0, n)
		pp.handler.CarriageReturn()
	case 'F': // CPL
		n := getParam(groups, 0, 0, 1)
		pp.handler.MoveCursorRelative(0, -n)
		pp.handler.CarriageReturn()
	case 'G': // CHA
		pp.handler.MoveCursorColumnAbsolute(getParam(groups, 0, 0, 1))
	case 'H', 'f': // CUP / HVP
		row := getParam(groups, 0, 0, 1)
		col := getParam(groups, 1, 0, 1)
		pp.handler.MoveCursorAbsolute(row, col)
	case 'J': // ED
		pp.handler.EraseInDisplay(ClearMode(getParam(groups, 0, 0, 0)))
	case 'K': // EL
		pp.handler.EraseInLine(LineClearMode(getParam(groups, 0, 0, 0)))
	case 'L': // IL
		pp.handler.InsertLines(getParam(groups, 0, 0, 1))
	case 'M': // DL
		pp.handler.DeleteLines(getParam(groups, 0, 0, 1))
	case 'P': // DCH
		pp.handler.DeleteChars(getParam(groups, 0, 0, 1))
	case 'S': // SU
		pp.handler.ScrollUp(getParam(groups, 0, 0, 1))
	case 'T': // SD
		pp.handler.ScrollDown(getParam(groups, 0, 0, 1))
	case 'X': // ECH
		pp.handler.EraseChars(getParam(groups, 0, 0, 1))
	case '@': // ICH
		pp.handler.InsertBlank(getParam(groups, 0, 0, 1))
	case 'd': // VPA
		pp.handler.MoveCursorRowAbsolute(getParam(groups, 0, 0, 1))
	case 'm': // SGR
		sgr := flattenParams(groups)
		for _, v := range sgr {
			known := v == 0 || v == 7 || v == 39 || v == 49 ||
				(v >= 30 && v <= 37) || (v >= 40 && v <= 47)
			if !known {
				pp.log.Ignored("SGR %d has no VT102 mapping", v)
			}
		}
		pp.handler.SetSGR(sgr)
	case 'r': // DECSTBM
		top := getParam(groups, 0, 0, 1)
		bottom := getParam(groups, 1, 0, 0)
		pp.handler.SetTopAndBottomMargins(top, bottom)
	case 's': // DECSC via CSI s
		pp.handler.SaveCursor()
	case 'u': // DECRC via CSI u
		pp.handler.RestoreCursor()
	case 'h': // SM
		pp.setMode(groups, private, true)
	case 'l': // RM
		pp.setMode(groups, private, false)
	case 'n': // DSR
		pp.handler.DeviceStatus(getParam(groups, 0, 0, 0))
	case 'c': // DA
		if getParam(groups, 0, 0, 0) == 0 {
			pp.handler.IdentifyTerminal()
		}
	case 'g': // TBC
		switch getParam(groups, 0, 0, 0) {
		case 0:
			pp.handler.ClearTabStop(TabClearCurrent)
		case 3:
			pp.handler.ClearTabStop(TabClearAll)
		}
	case 'I': // CHT
		pp.handler.TabForward(getParam(groups, 0, 0, 1))
	case 'Z': // CBT
		pp.handler.TabBackward(getParam(groups, 0, 0, 1))
	default:
		pp.log.Ignored("CSI action %q has no VT102 mapping", action)
	}
}

// setMode handles SM/RM. The only private mode VT102 implements is cursor
// visibility (DECTCEM, ?25). Any other private or ANSI mode number is
// logged and ignored rather than treated as malformed input.
func (pp processorPerformer) setMode(groups [][]uint16, private, enable bool) {
	if !private {
		for _, group := range groups {
			if len(group) > 0 {
				pp.log.Ignored("mode %d has no VT102 mapping", group[0])
			}
		}
		return
	}
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		if group[0] == 25 {
			pp.handler.SetCursorVisible(enable)
			continue
		}
		pp.log.Ignored("private mode %d has no VT102 mapping", group[0])
	}
}

func (pp processorPerformer) EscDispatch(intermediates []byte, ignore bool, b byte) {
	if ignore {
		return
	}

	switch b {
	case '7': // DECSC
		pp.handler.SaveCursor()
	case '8': // DECRC
		pp.handler.RestoreCursor()
	case 'c': // RIS
		pp.handler.Reset()
	case 'D': // IND
		pp.handler.CursorIndex()
	case 'E': // NEL
		pp.handler.NextLine()
	case 'M': // RI
		pp.handler.CursorReverseIndex()
	case 'B':
		pp.configureCharset(intermediates, StandardCharsetASCII)
	case '0':
		pp.configureCharset(intermediates, StandardCharsetSpecialLineDrawing)
	case 'H': // HTS
		pp.handler.SetTabStop()
	default:
		pp.log.Ignored("ESC %q has no VT102 mapping", b)
	}
}

func (pp processorPerformer) configureCharset(intermediates []byte, charset StandardCharset) {
	if len(intermediates) != 1 {
		return
	}

	var index CharsetIndex
	switch intermediates[0] {
	case '(':
		index = G0
	case ')':
		index = G1
	case '*':
		index = G2
	case '+':
		index = G3
	default:
		return
	}

	pp.handler.ConfigureCharset(index, charset)
}

// getParam reads a single parameter value out of a CSI parameter group
// list, substituting defaultValue when the group/index is absent or the
// parameter was given as 0 (CSI parameters are conventionally "0 or
// omitted means default").
func getParam(groups [][]uint16, groupIdx, paramIdx int, defaultValue int) int {
	if groupIdx >= len(groups) {
		return defaultValue
	}
	group := groups[groupIdx]
	if paramIdx >= len(group) {
		return defaultValue
	}
	value := int(group[paramIdx])
	if value == 0 && defaultValue != 0 {
		return defaultValue
	}
	return value
}

// flattenParams collapses parameter groups into the flat list SetSGR
// expects; VT102 SGR never uses colon-separated subparameters, so only the
// first value of each group is kept.
func flattenParams(groups [][]uint16) []uint16 {
	if len(groups) == 0 {
		return []uint16{0}
	}
	out := make([]uint16, 0, len(groups))
	for _, group := range groups {
		if len(group) > 0 {
			out = append(out, group[0])
		}
	}
	if len(out) == 0 {
		return []uint16{0}
	}
	return out
}
