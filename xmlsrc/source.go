// Package xmlsrc supplies the byte-level sources consumed by xmlcore's
// event parser: a zero-copy slice source, a buffered io.Reader source,
// and a context-aware async source. None of them understand XML markup;
// they only track a cursor and hand back sub-slices or appended regions.
package xmlsrc

import "errors"

// ErrUnexpectedEOF is returned when a read operation hits end of input
// before its terminator (an unclosed markup construct). Callers wrap it
// with the construct name for error reporting.
var ErrUnexpectedEOF = errors.New("xmlsrc: unexpected EOF inside markup construct")

// Source is the contract every byte-level variant implements. Position
// is a monotonically increasing byte offset used for error reporting;
// it never decreases, even across ReadBytesUntil calls that return
// sub-slices of previously-buffered data.
type Source interface {
	// PeekOne returns the next byte without consuming it. The second
	// return value is false at end of input.
	PeekOne() (byte, bool, error)

	// ReadByte consumes and returns the next byte.
	ReadByte() (byte, error)

	// ReadBytesUntil reads and consumes bytes up to (not including) the
	// first occurrence of terminator, returning the consumed span
	// (excluding the terminator) and its length including the
	// terminator. If the terminator is never found, returns
	// ErrUnexpectedEOF.
	ReadBytesUntil(terminator byte) ([]byte, int, error)

	// ReadTextSpan reads top-level character data up to (not
	// including) the next '<' or '&', leaving that byte unconsumed so
	// the caller can read it explicitly; stop reports which one ended
	// the span (0 at genuine end of input, where neither was found).
	// Unlike ReadBytesUntil, running out of input without seeing '<'
	// or '&' is not an error: it is the normal end of a document whose
	// last event is trailing text.
	ReadTextSpan() (data []byte, stop byte, err error)

	// ReadBangElement reads the body of a `<!...` construct starting
	// just after `<!`, honoring `]]>` for CDATA and `-->` for comments
	// and balanced `<`/`>` nesting for DOCTYPE internal subsets. It
	// returns the full construct including the terminator.
	ReadBangElement() ([]byte, error)

	// ReadElement reads an element body (start or end tag) starting
	// just after `<` (or `</`), tracking quote state so a `>` inside a
	// quoted attribute value does not terminate the tag. Returns the
	// full tag including the terminating `>`.
	ReadElement() ([]byte, error)

	// SkipWhitespace consumes consecutive XML whitespace bytes
	// (\t \n \r space).
	SkipWhitespace() error

	// Position returns the current byte offset from the start of the
	// stream.
	Position() int64
}

// IsSpace reports whether b is XML whitespace per the Char production.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
