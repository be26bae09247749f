package taggle

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// scanHandler is the set of lexical callbacks a Scanner reports to,
// ported from ScanHandler.hpp. Parser implements this interface.
type scanHandler interface {
	adup(buf string)
	aname(buf string)
	aval(buf string)
	cdsect(buf string)
	decl(buf string)
	entity(buf string)
	eof()
	etag(buf string)
	gi(buf string)
	pcdata(buf string)
	pi(buf string)
	pitarget(buf string)
	stagc(buf string)
	stage(buf string)
	cmnt(buf string)
	getEntity() rune
}

// Scanner is a table-driven lexer for tag-soup HTML: it classifies a
// stream of runes into lexical events (element names, attribute
// name/value pairs, character data, comments, declarations, processing
// instructions, CDATA sections and entity references) and reports them
// to a scanHandler, exactly as HTMLScanner.scan does against its
// statetable.
type Scanner struct {
	publicID, systemID             string
	lastLine, lastColumn           int
	currentLine, currentColumn     int
	state, nextState               scanState
	buf                            strings.Builder
}

var _ Locator = (*Scanner)(nil)

func NewScanner() *Scanner {
	return &Scanner{state: sPCDATA}
}

func (s *Scanner) LineNumber() int   { return s.lastLine }
func (s *Scanner) ColumnNumber() int { return s.lastColumn }
func (s *Scanner) PublicID() string  { return s.publicID }
func (s *Scanner) SystemID() string  { return s.systemID }

// ResetDocumentLocator seeds the locator identity and position counters
// at the start of a parse.
func (s *Scanner) ResetDocumentLocator(publicID, systemID string) {
	s.publicID = publicID
	s.systemID = systemID
	s.lastLine, s.lastColumn, s.currentLine, s.currentColumn = 0, 0, 0, 0
}

// StartCDATA forces the scanner's next state to CDATA content mode, so
// no markup is recognised until a matching end-tag. The driver calls
// this right after pushing an element flagged F_CDATA.
func (s *Scanner) StartCDATA() {
	s.nextState = sCDATA
}

// abort forces the scan loop to end after the current dispatch returns,
// the mechanism ParseContext uses to unwind a cancelled parse without
// an explicit stop signal in the scanHandler interface.
func (s *Scanner) abort() {
	s.nextState = sDONE
}

func (s *Scanner) mark() {
	s.lastLine, s.lastColumn = s.currentLine, s.currentColumn
}

// save appends a rune to the pending output buffer. In PCDATA or CDATA
// content it first flushes the buffer as a PCDATA chunk whenever the
// buffer holds a non-zero multiple of 4096 bytes, a stand-in for the
// near-capacity auto-flush in HTMLScanner.save.
func (s *Scanner) save(ch rune, h scanHandler) {
	if s.state == sPCDATA || s.state == sCDATA {
		if s.buf.Len() > 0 && s.buf.Len()%4096 == 0 {
			h.pcdata(s.buf.String())
			s.buf.Reset()
		}
	}
	s.buf.WriteRune(ch)
}

// runeUnreader lets the scanner push one rune back, used for the A_UNGET
// action and for the entity-terminator lookahead in A_ENTITY.
type runeUnreader interface {
	io.RuneScanner
}

// Scan runs the table-driven loop over r, reporting lexical events to h
// until end of input. It normalises CR/CRLF/LF to LF, drops stray
// control characters (everything below 0x20 except LF and TAB), and
// otherwise follows statetable exactly: exact matches on the current
// input rune win immediately, a matchChar of 0 is a wildcard fallback
// used only if no row in the block matches exactly.
func (s *Scanner) Scan(r io.Reader, h scanHandler) error {
	br, ok := r.(runeUnreader)
	if !ok {
		br = bufio.NewReader(r)
	}

	s.state = sPCDATA
	for s.state != sDONE {
		ch, err := readRuneOrEOF(br)
		if err != nil {
			return err
		}

		if ch == '\r' {
			next, err := readRuneOrEOF(br)
			if err != nil {
				return err
			}
			if next != '\n' {
				if next != -1 {
					br.UnreadRune()
				}
			}
			ch = '\n'
		}

		if ch == '\n' {
			s.currentLine++
			s.currentColumn = 0
		} else {
			s.currentColumn++
		}

		if !(ch >= 0x20 || ch == '\n' || ch == '\t' || ch == -1) {
			continue
		}

		action, next := lookupTransition(s.state, ch)
		if action == 0 {
			return fmt.Errorf("taggle: scanner can't cope with %q in state %d", ch, s.state)
		}
		s.nextState = next

		if err := s.dispatch(action, ch, br, h); err != nil {
			return err
		}
		s.state = s.nextState
	}
	h.eof()
	return nil
}

// readRuneOrEOF reads one rune, returning -1 (not an error) at EOF, the
// sentinel the original scanner's istream::get() uses.
func readRuneOrEOF(r runeUnreader) (rune, error) {
	ch, _, err := r.ReadRune()
	if err == io.EOF {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	return ch, nil
}

// lookupTransition performs the linear, short-circuiting scan of
// statetable for the given state/char pair: an exact match wins
// immediately; a wildcard row is remembered and used only if the block
// for this state ends (or a different state begins) without an exact
// match.
func lookupTransition(state scanState, ch rune) (scanAction, scanState) {
	var wildcardAction scanAction
	var wildcardNext scanState
	haveWildcard := false
	for _, row := range statetable {
		if row.state != state {
			if haveWildcard {
				break
			}
			continue
		}
		if row.matchChar == 0 {
			wildcardAction, wildcardNext = row.action, row.next
			haveWildcard = true
			continue
		}
		if row.matchChar == ch {
			return row.action, row.next
		}
	}
	if haveWildcard {
		return wildcardAction, wildcardNext
	}
	return 0, 0
}

func (s *Scanner) dispatch(action scanAction, ch rune, r runeUnreader, h scanHandler) error {
	switch action {
	case aADUP:
		h.adup(s.buf.String())
		s.buf.Reset()
	case aADUP_SAVE:
		h.adup(s.buf.String())
		s.buf.Reset()
		s.save(ch, h)
	case aADUP_STAGC:
		h.adup(s.buf.String())
		s.buf.Reset()
		h.stagc(s.buf.String())
	case aANAME:
		h.aname(s.buf.String())
		s.buf.Reset()
	case aANAME_ADUP:
		h.aname(s.buf.String())
		s.buf.Reset()
		h.adup(s.buf.String())
	case aANAME_ADUP_STAGC:
		h.aname(s.buf.String())
		s.buf.Reset()
		h.adup(s.buf.String())
		h.stagc(s.buf.String())
	case aAVAL:
		h.aval(s.buf.String())
		s.buf.Reset()
	case aAVAL_STAGC:
		h.aval(s.buf.String())
		s.buf.Reset()
		h.stagc(s.buf.String())
	case aCDATA:
		s.mark()
		buf := s.buf.String()
		if len(buf) > 1 {
			buf = buf[:len(buf)-2]
		}
		h.pcdata(buf)
		s.buf.Reset()
	case aENTITY_START:
		h.pcdata(s.buf.String())
		s.buf.Reset()
		s.save(ch, h)
	case aENTITY:
		return s.doEntity(ch, r, h)
	case aETAG:
		h.etag(s.buf.String())
		s.buf.Reset()
	case aDECL:
		h.decl(s.buf.String())
		s.buf.Reset()
	case aGI:
		h.gi(s.buf.String())
		s.buf.Reset()
	case aGI_STAGC:
		h.gi(s.buf.String())
		s.buf.Reset()
		h.stagc(s.buf.String())
	case aLT:
		s.mark()
		s.save('<', h)
		s.save(ch, h)
	case aLT_PCDATA:
		s.mark()
		s.save('<', h)
		h.pcdata(s.buf.String())
		s.buf.Reset()
	case aPCDATA:
		s.mark()
		h.pcdata(s.buf.String())
		s.buf.Reset()
	case aCMNT:
		s.mark()
		h.cmnt(s.buf.String())
		s.buf.Reset()
	case aMINUS3:
		s.save('-', h)
		s.save(' ', h)
	case aMINUS2:
		s.save('-', h)
		s.save(' ', h)
		s.save('-', h)
		s.save(ch, h)
	case aMINUS:
		s.save('-', h)
		s.save(ch, h)
	case aPI:
		s.mark()
		h.pi(s.buf.String())
		s.buf.Reset()
	case aPITARGET:
		h.pitarget(s.buf.String())
		s.buf.Reset()
	case aPITARGET_PI:
		h.pitarget(s.buf.String())
		s.buf.Reset()
		h.pi(s.buf.String())
	case aSAVE:
		s.save(ch, h)
	case aSKIP:
		// no-op
	case aSP:
		s.save(' ', h)
	case aSTAGC:
		h.stagc(s.buf.String())
		s.buf.Reset()
	case aEMPTYTAG:
		s.mark()
		if s.buf.Len() > 0 {
			h.gi(s.buf.String())
		}
		s.buf.Reset()
		h.stage(s.buf.String())
	case aUNGET:
		if ch != -1 {
			r.UnreadRune()
			s.currentColumn--
		}
	case aUNSAVE_PCDATA:
		buf := s.buf.String()
		if len(buf) > 0 {
			_, size := lastRune(buf)
			buf = buf[:len(buf)-size]
		}
		h.pcdata(buf)
		s.buf.Reset()
	default:
		return fmt.Errorf("taggle: scanner can't process action %d", action)
	}
	return nil
}

// doEntity implements the A_ENTITY case: it accumulates the body of an
// entity or character reference (S_ENT/S_NCR/S_XNCR), switching into
// the numeric sub-states on '#'/'x', and on the first character that
// can't extend the reference it resolves the name via h.entity/
// h.getEntity and either substitutes the resulting codepoint or leaves
// the reference's text untouched.
func (s *Scanner) doEntity(ch rune, r runeUnreader, h scanHandler) error {
	s.mark()
	switch {
	case s.state == sENT && ch == '#':
		s.nextState = sNCR
		s.save(ch, h)
		return nil
	case s.state == sNCR && (ch == 'x' || ch == 'X'):
		s.nextState = sXNCR
		s.save(ch, h)
		return nil
	case s.state == sENT && isLetterOrDigit(ch):
		s.save(ch, h)
		return nil
	case s.state == sNCR && isDigit(ch):
		s.save(ch, h)
		return nil
	case s.state == sXNCR && (isDigit(ch) || strings.ContainsRune(hexLetters, ch)):
		s.save(ch, h)
		return nil
	}

	// The whole entity reference has been collected.
	buf := s.buf.String()
	if len(buf) > 0 {
		h.entity(buf[1:])
	} else {
		h.entity(buf)
	}
	ent := h.getEntity()
	if ent != 0 {
		s.buf.Reset()
		if ent < 0x20 {
			ent = 0x20 // control becomes space
		}
		s.save(ent, h)
		if ch != ';' && ch != -1 {
			r.UnreadRune()
			s.currentColumn--
		}
	} else if ch != -1 {
		r.UnreadRune()
		s.currentColumn--
	}
	s.nextState = sPCDATA
	return nil
}

func lastRune(s string) (rune, int) {
	for i := len(s) - 1; i >= 0; i-- {
		if utf8RuneStart(s[i]) {
			r, size := decodeRune(s[i:])
			return r, size
		}
	}
	return 0, 0
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func decodeRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}
