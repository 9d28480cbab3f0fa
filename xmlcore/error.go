package xmlcore

import "fmt"

// Kind discriminates the error taxonomy: syntax errors (IllFormed) vs.
// semantic errors surfaced by this layer and the ones built on top of
// it.
type Kind int

const (
	KindIllFormed Kind = iota
	KindEscape
	KindEncoding
	KindUnrecognizedGeneralEntity
	KindEntityRecursion
	KindIoError
)

func (k Kind) String() string {
	switch k {
	case KindIllFormed:
		return "IllFormed"
	case KindEscape:
		return "Escape"
	case KindEncoding:
		return "Encoding"
	case KindUnrecognizedGeneralEntity:
		return "UnrecognizedGeneralEntity"
	case KindEntityRecursion:
		return "EntityRecursion"
	case KindIoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Reason further classifies an IllFormed error.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnexpectedEOF
	ReasonMismatchedEndTag
	ReasonMissingEndTag
	ReasonUnknownMarkup
	ReasonXmlDeclNotAtStart
	ReasonUnclosedReference
	ReasonDuplicateAttribute
)

// Error is the concrete error type returned by the reader layers
// (xmlcore, xmlns, xmlent); xmldom and xmlmap report errors of their
// own. It carries the byte position reported by the underlying source
// (for AttrIter errors, the offset within the tag's attribute bytes),
// wrapping the cause the way a SyntaxError wraps an io error,
// generalized to a full Kind/Reason taxonomy.
type Error struct {
	Kind         Kind
	Reason       Reason
	BytePosition int64
	Expected     string // MismatchedEndTag.expected
	Found        string // MismatchedEndTag.found
	Err          error  // underlying cause, if any
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonMismatchedEndTag:
		return fmt.Sprintf("xmlcore: mismatched end tag at byte %d: expected %q, found %q", e.BytePosition, e.Expected, e.Found)
	case ReasonMissingEndTag:
		return fmt.Sprintf("xmlcore: missing end tag at byte %d", e.BytePosition)
	case ReasonUnknownMarkup:
		return fmt.Sprintf("xmlcore: unknown markup after '<!' at byte %d", e.BytePosition)
	case ReasonXmlDeclNotAtStart:
		return fmt.Sprintf("xmlcore: XML declaration not at document start (byte %d)", e.BytePosition)
	case ReasonUnclosedReference:
		return fmt.Sprintf("xmlcore: unclosed reference at byte %d", e.BytePosition)
	case ReasonDuplicateAttribute:
		return fmt.Sprintf("xmlcore: duplicate attribute %q at byte %d", e.Expected, e.BytePosition)
	}
	if e.Err != nil {
		return fmt.Sprintf("xmlcore: %s at byte %d: %v", e.Kind, e.BytePosition, e.Err)
	}
	return fmt.Sprintf("xmlcore: %s at byte %d", e.Kind, e.BytePosition)
}

func (e *Error) Unwrap() error { return e.Err }

func illFormed(pos int64, reason Reason) *Error {
	return &Error{Kind: KindIllFormed, Reason: reason, BytePosition: pos}
}

func mismatchedEndTag(pos int64, expected, found string) *Error {
	return &Error{Kind: KindIllFormed, Reason: ReasonMismatchedEndTag, BytePosition: pos, Expected: expected, Found: found}
}

func ioErr(pos int64, err error) *Error {
	return &Error{Kind: KindIoError, BytePosition: pos, Err: err}
}
