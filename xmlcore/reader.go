// Package xmlcore implements the event parser layer: a pull-based
// state machine that turns bytes from an xmlsrc.Source into a lexical
// Event stream, tracking element nesting and optionally checking
// well-formedness.
package xmlcore

import (
	"bytes"

	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

type state int

const (
	stateInit state = iota
	stateClosed
	stateOpened
	stateEmptyPending
	stateExit
)

type elemStackEntry struct {
	name  []byte
	depth int
}

// Reader is the L1 tokenizer: a single-owner, single-threaded pull
// parser over an xmlsrc.Source.
type Reader struct {
	src    xmlsrc.Source
	cfg    *Config
	state  state
	stack  []elemStackEntry
	depth  int
	atDoc0 bool // true until the first event has been produced
	err    error
	pendingEmptyName []byte
}

// NewReader builds a Reader over src with cfg (nil selects defaults).
func NewReader(src xmlsrc.Source, cfg *Config) *Reader {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Reader{src: src, cfg: cfg, state: stateInit, atDoc0: true}
}

// Depth returns the current element nesting depth; Testable Property 2
// requires this equals Start-count minus End-count at every boundary.
func (r *Reader) Depth() int { return r.depth }

// Position returns the underlying source's current byte offset, used
// by every layer above for error reporting.
func (r *Reader) Position() int64 { return r.src.Position() }

// Read pulls the next Event. After Exit (EOF or a fatal error), every
// subsequent call keeps returning EOF.
func (r *Reader) Read() (Event, error) {
	if r.state == stateExit {
		return eofEvent, nil
	}

	if r.state == stateEmptyPending {
		r.state = stateClosed
		name := r.pendingEmptyName
		r.pendingEmptyName = nil
		r.depth--
		return newStartEvent(EventEnd, name), nil
	}

	ev, err := r.read()
	if err != nil {
		r.state = stateExit
		r.err = err
		return eofEvent, err
	}
	if ev.Kind == EventEOF {
		r.state = stateExit
	}
	return ev, nil
}

func (r *Reader) read() (Event, error) {
	text, stop, err := r.src.ReadTextSpan()
	if err != nil {
		return Event{}, ioErr(r.src.Position(), err)
	}
	if stop == 0 {
		// No more '<' or '&': the remaining bytes, if any, are
		// trailing text; EOF follows on the next call.
		if len(text) == 0 {
			if r.cfg.CheckEndNames && !r.cfg.AllowUnmatchedEnds && len(r.stack) > 0 {
				return Event{}, illFormed(r.src.Position(), ReasonMissingEndTag)
			}
			return eofEvent, nil
		}
		r.state = stateClosed
		return r.makeText(text), nil
	}
	if len(text) > 0 {
		// Emit the text now; the next Read() call re-scans from the
		// stop byte (still unconsumed) and classifies it.
		r.state = stateOpened
		return r.makeText(text), nil
	}

	if stop == '&' {
		return r.readReference()
	}

	// '<' is next; consume it and classify.
	if _, err := r.src.ReadByte(); err != nil {
		return Event{}, ioErr(r.src.Position(), err)
	}
	return r.classify()
}

func (r *Reader) makeText(text []byte) Event {
	r.atDoc0 = false
	if r.cfg.TrimTextStart {
		text = bytes.TrimLeft(text, " \t\r\n")
	}
	if r.cfg.TrimTextEnd {
		text = bytes.TrimRight(text, " \t\r\n")
	}
	return newTextEvent(EventText, text)
}

func (r *Reader) classify() (Event, error) {
	c, ok, err := r.src.PeekOne()
	if err != nil {
		return Event{}, ioErr(r.src.Position(), err)
	}
	if !ok {
		return Event{}, illFormed(r.src.Position(), ReasonUnexpectedEOF)
	}

	switch {
	case c == '!':
		r.src.ReadByte()
		return r.readBang()
	case c == '/':
		r.src.ReadByte()
		return r.readEndTag()
	case c == '?':
		r.src.ReadByte()
		return r.readPI()
	default:
		return r.readStartOrEmpty()
	}
}

func (r *Reader) readBang() (Event, error) {
	r.atDoc0 = false
	body, err := r.src.ReadBangElement()
	if err != nil {
		return Event{}, ioErr(r.src.Position(), err)
	}
	switch {
	case bytes.HasPrefix(body, []byte("[CDATA[")):
		content := body[len("[CDATA[") : len(body)-len("]]>")]
		r.state = stateClosed
		return newTextEvent(EventCData, content), nil
	case bytes.HasPrefix(body, []byte("--")):
		content := body[2 : len(body)-3]
		if r.cfg.CheckComments && bytes.Contains(content, []byte("--")) {
			return Event{}, illFormed(r.src.Position(), ReasonUnknownMarkup)
		}
		r.state = stateClosed
		return newTextEvent(EventComment, content), nil
	case hasCaseInsensitivePrefix(body, "DOCTYPE"):
		r.state = stateClosed
		return newTextEvent(EventDocType, body[:len(body)-1]), nil
	default:
		return Event{}, illFormed(r.src.Position(), ReasonUnknownMarkup)
	}
}

func hasCaseInsensitivePrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	return bytes.EqualFold(b[:len(prefix)], []byte(prefix))
}

func (r *Reader) readEndTag() (Event, error) {
	r.atDoc0 = false
	body, err := r.src.ReadElement()
	if err != nil {
		return Event{}, ioErr(r.src.Position(), err)
	}
	name := bytes.TrimRight(body[:len(body)-1], " \t\r\n")
	if !r.cfg.TrimMarkupNamesInClosingTags {
		name = body[:len(body)-1]
	}

	if r.cfg.CheckEndNames {
		if len(r.stack) == 0 {
			if r.cfg.AllowUnmatchedEnds {
				r.state = stateClosed
				return newStartEvent(EventEnd, name), nil
			}
			return Event{}, mismatchedEndTag(r.src.Position(), "", string(name))
		}
		top := r.stack[len(r.stack)-1]
		if !bytes.Equal(top.name, name) {
			if r.cfg.AllowUnmatchedEnds {
				r.state = stateClosed
				return newStartEvent(EventEnd, name), nil
			}
			return Event{}, mismatchedEndTag(r.src.Position(), string(top.name), string(name))
		}
		r.stack = r.stack[:len(r.stack)-1]
	} else if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	r.depth--
	r.state = stateClosed
	return newStartEvent(EventEnd, name), nil
}

func (r *Reader) readPI() (Event, error) {
	body, err := r.src.ReadElement()
	if err != nil {
		return Event{}, ioErr(r.src.Position(), err)
	}
	// body ends with "?>"; strip it.
	inner := body
	if bytes.HasSuffix(inner, []byte("?>")) {
		inner = inner[:len(inner)-2]
	} else {
		inner = bytes.TrimSuffix(inner, []byte(">"))
	}
	target, rest := splitNameRest(inner)
	if bytes.EqualFold(target, []byte("xml")) {
		if !r.atDoc0 {
			return Event{}, illFormed(r.src.Position(), ReasonXmlDeclNotAtStart)
		}
		r.atDoc0 = false
		r.state = stateClosed
		return newDeclEvent(bytes.TrimSpace(rest)), nil
	}
	r.atDoc0 = false
	r.state = stateClosed
	return newPIEvent(target, bytes.TrimSpace(rest)), nil
}

func splitNameRest(b []byte) (name, rest []byte) {
	for i, c := range b {
		if isSpaceByte(c) {
			return b[:i], b[i+1:]
		}
	}
	return b, nil
}

func (r *Reader) readReference() (Event, error) {
	r.atDoc0 = false
	start := r.src.Position()
	r.src.ReadByte() // consume '&'
	body, _, err := r.src.ReadBytesUntil(';')
	if err != nil {
		if r.cfg.AllowDanglingAmp {
			r.state = stateClosed
			return r.makeText([]byte("&")), nil
		}
		return Event{}, illFormed(start, ReasonUnclosedReference)
	}
	r.state = stateClosed
	return newTextEvent(EventGeneralRef, body), nil
}

func (r *Reader) readStartOrEmpty() (Event, error) {
	body, err := r.src.ReadElement()
	if err != nil {
		return Event{}, ioErr(r.src.Position(), err)
	}
	if r.cfg.MaxTokenSize > 0 && len(body) > r.cfg.MaxTokenSize {
		return Event{}, illFormed(r.src.Position(), ReasonUnexpectedEOF)
	}
	r.atDoc0 = false

	isEmpty := len(body) >= 2 && body[len(body)-2] == '/' && body[len(body)-1] == '>'
	var raw []byte
	if isEmpty {
		raw = body[:len(body)-2]
	} else {
		raw = body[:len(body)-1]
	}
	start := NewStart(raw)
	name := start.Name().Full()

	if r.cfg.CheckDuplicateAttrs {
		if err := checkDuplicates(start, r.src.Position()); err != nil {
			return Event{}, err
		}
	}

	if isEmpty {
		if r.cfg.ExpandEmptyElements {
			r.state = stateEmptyPending
			r.pendingEmptyName = append([]byte(nil), name...)
			r.depth++
			return newStartEvent(EventStart, raw), nil
		}
		r.state = stateClosed
		return newStartEvent(EventEmpty, raw), nil
	}

	if r.cfg.MaxDepth > 0 && len(r.stack) >= r.cfg.MaxDepth {
		return Event{}, illFormed(r.src.Position(), ReasonUnexpectedEOF)
	}
	r.stack = append(r.stack, elemStackEntry{name: append([]byte(nil), name...), depth: r.depth})
	r.depth++
	r.state = stateClosed
	return newStartEvent(EventStart, raw), nil
}

func checkDuplicates(start Start, pos int64) error {
	it := start.Attributes()
	seen := map[string]struct{}{}
	for {
		a, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		k := string(a.Name.Full())
		if _, dup := seen[k]; dup {
			return &Error{Kind: KindIllFormed, Reason: ReasonDuplicateAttribute, BytePosition: pos, Expected: k}
		}
		seen[k] = struct{}{}
	}
}
