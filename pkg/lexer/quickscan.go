package lexer

// The quick-scan DFA is the lexer's fast path for the overwhelmingly
// common case: an identifier, a run of whitespace, or a single-char
// punctuation token with nothing unusual around it. It never handles
// strings, comments, or multi-digit numbers with exponents — any
// character outside its alphabet drops straight to the slow,
// hand-written scanner in lexer.go. Recognizing failure this way
// (rather than trying to quick-scan everything) is what keeps the
// table small.
//
// charClass buckets every code unit the DFA cares about; everything
// else maps to classOther and immediately fails the scan.
type charClass int

const (
	classWhite charClass = iota
	classCR
	classLF
	classLetterOrUnderscore
	classDigit
	classSingleCharPunct // one of the fixed-width, non-compoundable punctuation marks
	classDot
	classCompoundStart // could start a 2- or 3-char operator (=, <, >, ~, /, :, &, |)
	classOther
	classEndOfFile
)

// quickScanState names each DFA state. Bad must equal Done+1: a scan
// that lands in Bad has failed and the caller resets the window and
// falls back to the slow scanner, while a scan reaching Done (or
// DoneAfterNext, one unit later) has a token ready to cut out verbatim.
type quickScanState int

const (
	stateInitial quickScanState = iota
	stateFollowingWhite
	stateFollowingCR
	stateFollowingLF
	stateIdent
	stateNumber
	statePunctuation
	stateDot
	stateCompoundPunctStart
	stateDoneAfterNext
	stateDone
	stateBad
)

// invariant relied on by the fallback check in scanToken.
var _ = func() bool {
	if stateBad != stateDone+1 {
		panic("quickscan: Bad must equal Done + 1")
	}
	return true
}()

func classify(r rune) charClass {
	switch {
	case r == eof:
		return classEndOfFile
	case r == '\r':
		return classCR
	case r == '\n':
		return classLF
	case r == ' ' || r == '\t':
		return classWhite
	case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return classLetterOrUnderscore
	case r >= '0' && r <= '9':
		return classDigit
	case r == '.':
		return classDot
	case r == '=' || r == '<' || r == '>' || r == '~' || r == '/' || r == ':' || r == '&' || r == '|':
		return classCompoundStart
	case r == '+' || r == '-' || r == '*' || r == '^' || r == '#' ||
		r == '(' || r == ')' || r == '{' || r == '}' || r == ']' ||
		r == ';' || r == ',':
		return classSingleCharPunct
	// '[' is excluded: it may open a long-bracket string/comment, which
	// only the slow scanner checks for.
	default:
		return classOther
	}
}

// transition is the {state x class} -> state matrix. A pair not listed
// here ends the scan: runQuickScan accepts the run so far from the
// states it treats as complete, and reports stateBad from the others.
var transition = map[quickScanState]map[charClass]quickScanState{
	stateInitial: {
		classWhite:              stateFollowingWhite,
		classCR:                 stateFollowingCR,
		classLF:                 stateFollowingLF,
		classLetterOrUnderscore: stateIdent,
		classDigit:              stateNumber,
		classDot:                stateDot,
		classSingleCharPunct:    stateDone,
		classCompoundStart:      stateCompoundPunctStart,
		classEndOfFile:          stateBad,
	},
	stateFollowingWhite: {
		classWhite: stateFollowingWhite,
		classCR:    stateDone, // stop before the line break; caller re-enters for it
		classLF:    stateDone,
	},
	stateFollowingCR: {
		classLF: stateDoneAfterNext, // \r\n counts as one line-break run
	},
	stateFollowingLF: {},
	stateIdent: {
		classLetterOrUnderscore: stateIdent,
		classDigit:               stateIdent,
	},
	stateNumber: {
		classDigit: stateNumber,
	},
	stateDot:                {},
	statePunctuation:        {},
	stateCompoundPunctStart: {},
}

// quickScanResult reports what the DFA decided.
type quickScanResult struct {
	ok    bool
	state quickScanState
	width int // code units consumed, valid when ok
}

// runQuickScan drives the DFA starting at w's current offset without
// consuming anything; callers commit the result themselves via
// w.Advance(width). It stops as soon as no further transition exists,
// which for every state except stateFollowingWhite/stateFollowingCR
// means exactly one token's worth of input (identifiers and numbers
// are the only multi-character fast-path runs; compound operators like
// `==` or `...` always fall back to the slow scanner since telling
// `=` from `==` needs one unit of lookahead the table doesn't encode).
func runQuickScan(w *TextWindow) quickScanResult {
	state := stateInitial
	width := 0
	for {
		r := w.Peek(width)
		class := classify(r)
		next, ok := transition[state][class]
		if !ok {
			switch state {
			case stateIdent, stateNumber, stateDone, stateFollowingWhite, stateFollowingLF:
				return quickScanResult{ok: true, state: stateDone, width: width}
			case stateDoneAfterNext:
				return quickScanResult{ok: true, state: stateDone, width: width}
			default:
				return quickScanResult{ok: false, state: stateBad, width: 0}
			}
		}
		width++
		state = next
		if state == stateDone {
			return quickScanResult{ok: true, state: stateDone, width: width}
		}
		if state == stateBad {
			return quickScanResult{ok: false, state: stateBad, width: 0}
		}
	}
}
