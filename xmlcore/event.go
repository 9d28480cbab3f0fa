package xmlcore

import "bytes"

// EventKind discriminates the kinds of parse event a Reader can emit.
type EventKind int

const (
	EventEmpty EventKind = iota
	EventStart
	EventEnd
	EventText
	EventCData
	EventComment
	EventPI
	EventDecl
	EventDocType
	EventGeneralRef
	EventEOF
)

func (k EventKind) String() string {
	switch k {
	case EventEmpty:
		return "Empty"
	case EventStart:
		return "Start"
	case EventEnd:
		return "End"
	case EventText:
		return "Text"
	case EventCData:
		return "CData"
	case EventComment:
		return "Comment"
	case EventPI:
		return "PI"
	case EventDecl:
		return "Decl"
	case EventDocType:
		return "DocType"
	case EventGeneralRef:
		return "GeneralRef"
	case EventEOF:
		return "Eof"
	default:
		return "Unknown"
	}
}

// Start is the payload shared by Empty and Start events: the contiguous
// bytes from just after '<' up to (not including) '>' or '/>', plus the
// offset at which the name ends.
type Start struct {
	raw     []byte
	nameLen int
}

// NewStart builds a Start payload, locating the name/attribute boundary
// once.
func NewStart(raw []byte) Start {
	nameLen := len(raw)
	for i, c := range raw {
		if isNameBoundary(c) {
			nameLen = i
			break
		}
	}
	return Start{raw: raw, nameLen: nameLen}
}

func isNameBoundary(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '/':
		return true
	default:
		return false
	}
}

// Name returns the element's raw QName bytes.
func (s Start) Name() QName { return NewQName(s.raw[:s.nameLen]) }

// AttributesRaw returns the unparsed remainder after the name, with
// trailing whitespace and an Empty element's '/' marker trimmed off.
func (s Start) AttributesRaw() []byte {
	rest := s.raw[s.nameLen:]
	rest = bytes.TrimRight(rest, "/ \t\r\n")
	return rest
}

// Attributes returns a lazy pull iterator over the start tag's
// attributes.
func (s Start) Attributes() *AttrIter {
	return &AttrIter{data: s.AttributesRaw()}
}

// Raw returns the complete un-split tag bytes (for diagnostics/echo).
func (s Start) Raw() []byte { return s.raw }

// Attribute is a single parsed (name, value) pair; Value is the
// escaped form as it appeared in the document (unescape is the
// caller's responsibility, via escape.Unescape).
type Attribute struct {
	Name  QName
	Value []byte
}

// AttrIter parses attributes one at a time from a Start's attribute
// bytes, allocation-free beyond the QName/slice headers it returns.
type AttrIter struct {
	data []byte
	pos  int
	seen map[string]bool // unused: Next does no duplicate detection (see checkDuplicates)
}

// Next returns the next attribute, or ok=false when exhausted.
func (it *AttrIter) Next() (Attribute, bool, error) {
	for it.pos < len(it.data) && isSpaceByte(it.data[it.pos]) {
		it.pos++
	}
	if it.pos >= len(it.data) {
		return Attribute{}, false, nil
	}
	nameStart := it.pos
	for it.pos < len(it.data) && it.data[it.pos] != '=' && !isSpaceByte(it.data[it.pos]) {
		it.pos++
	}
	name := it.data[nameStart:it.pos]
	for it.pos < len(it.data) && isSpaceByte(it.data[it.pos]) {
		it.pos++
	}
	if it.pos >= len(it.data) || it.data[it.pos] != '=' {
		return Attribute{Name: NewQName(name)}, true, nil
	}
	it.pos++ // '='
	for it.pos < len(it.data) && isSpaceByte(it.data[it.pos]) {
		it.pos++
	}
	if it.pos >= len(it.data) {
		return Attribute{}, false, illFormed(int64(it.pos), ReasonUnexpectedEOF)
	}
	quote := it.data[it.pos]
	if quote != '"' && quote != '\'' {
		return Attribute{}, false, illFormed(int64(it.pos), ReasonUnexpectedEOF)
	}
	it.pos++
	valStart := it.pos
	for it.pos < len(it.data) && it.data[it.pos] != quote {
		it.pos++
	}
	if it.pos >= len(it.data) {
		return Attribute{}, false, illFormed(int64(it.pos), ReasonUnexpectedEOF)
	}
	value := it.data[valStart:it.pos]
	it.pos++ // closing quote
	return Attribute{Name: NewQName(name), Value: value}, true, nil
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// Decl is the XML declaration's content (after "<?xml" up to before
// "?>"), exposing version/encoding/standalone as attribute-style
// queries.
type Decl struct{ attrs []byte }

func (d Decl) lookup(name string) ([]byte, bool) {
	it := &AttrIter{data: d.attrs}
	for {
		a, ok, err := it.Next()
		if err != nil || !ok {
			return nil, false
		}
		if string(a.Name.Full()) == name {
			return a.Value, true
		}
	}
}

func (d Decl) Version() string {
	if v, ok := d.lookup("version"); ok {
		return string(v)
	}
	return ""
}

func (d Decl) Encoding() (string, bool) {
	v, ok := d.lookup("encoding")
	return string(v), ok
}

func (d Decl) Standalone() (string, bool) {
	v, ok := d.lookup("standalone")
	return string(v), ok
}

// PI is a processing instruction's content, split into target and the
// trailing bytes.
type PI struct {
	target  []byte
	content []byte
}

func (p PI) Target() []byte  { return p.target }
func (p PI) Content() []byte { return p.content }

// Event is the tagged union a Reader pulls off the stream one at a
// time. Exactly one of the payload accessors below is meaningful,
// selected by Kind. Content carries the
// decoder's escaped-form bytes; owned reports whether Content is a
// detached copy (true) or a borrow from the source's buffer (false).
type Event struct {
	Kind    EventKind
	Content []byte // Text/CData/Comment/GeneralRef/DocType raw bytes
	start   Start  // valid for EventStart/EventEmpty
	decl    Decl
	pi      PI
	owned   bool
}

func (e Event) Start() Start { return e.start }
func (e Event) Decl() Decl   { return e.decl }
func (e Event) PI() PI       { return e.pi }

// IsOwned reports whether Content is a detached copy rather than a
// borrow into the source's buffer.
func (e Event) IsOwned() bool { return e.owned }

// Owned returns a copy of e whose Content (and Start raw bytes, if
// any) is detached into freshly-allocated storage, safe to retain past
// the next pull. Converting borrowed→owned is always an explicit,
// caller-requested copy, never implicit.
func (e Event) Owned() Event {
	if e.owned {
		return e
	}
	out := e
	out.owned = true
	if e.Content != nil {
		out.Content = append([]byte(nil), e.Content...)
	}
	if e.start.raw != nil {
		raw := append([]byte(nil), e.start.raw...)
		out.start = Start{raw: raw, nameLen: e.start.nameLen}
	}
	return out
}

func newTextEvent(kind EventKind, content []byte) Event {
	return Event{Kind: kind, Content: content}
}

func newStartEvent(kind EventKind, raw []byte) Event {
	return Event{Kind: kind, start: NewStart(raw)}
}

func newDeclEvent(attrs []byte) Event {
	return Event{Kind: EventDecl, decl: Decl{attrs: attrs}}
}

func newPIEvent(target, content []byte) Event {
	return Event{Kind: EventPI, pi: PI{target: target, content: content}}
}

var eofEvent = Event{Kind: EventEOF}
