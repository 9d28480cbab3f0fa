// Package xmldom implements the DOM builder layer: it folds an event
// stream from any xmlcore/xmlns/xmlent reader into an in-memory
// Element tree, coalescing adjacent text into Text and whitespace-only
// Space nodes. Nodes hold plain owned strings rather than zero-copy
// slices into a single backing buffer, since the entity-resolving
// layers beneath may already have synthesized bytes that don't live
// in one contiguous buffer.
package xmldom

// Node is implemented by every tree member; the unexported
// siblingIndex keeps implementations confined to this package.
type Node interface {
	Parent() *Element
	InnerText() string
	siblingIndex() int
}

// Text is a run of coalesced character data (plain text or CDATA).
type Text struct {
	Value  string
	parent *Element
	index  int
}

func (t *Text) Parent() *Element  { return t.parent }
func (t *Text) InnerText() string { return t.Value }
func (t *Text) siblingIndex() int { return t.index }

// Space is a run of character data that is entirely XML whitespace.
// Kept distinct from Text so callers that want to ignore
// insignificant whitespace (e.g. pretty-printed documents) can filter
// on type alone.
type Space struct {
	Value  string
	parent *Element
	index  int
}

func (s *Space) Parent() *Element  { return s.parent }
func (s *Space) InnerText() string { return s.Value }
func (s *Space) siblingIndex() int { return s.index }

// Attribute is a single parsed (name, value) pair, retained as owned
// strings since a DOM tree is expected to outlive the reader that
// built it.
type Attribute struct {
	Name  string
	Value string
}

// Element is an XML element with its resolved name parts, attributes,
// and children.
type Element struct {
	Name         string // full "prefix:local" or "local"
	LocalName    string
	Prefix       string
	NamespaceURI string // resolved namespace URI, empty if none/unresolved

	Attributes []Attribute
	Children   []Node

	// BytePosition is the underlying reader's byte offset at the point
	// this element's start tag was parsed, for callers (xmlmap's
	// DeError) that need to report where in the source a problem was
	// found without re-scanning.
	BytePosition int64

	parent     *Element
	index      int
	namespaces map[string]string // prefix -> URI, snapshot at build time, for attribute NS lookups
}

func (e *Element) Parent() *Element  { return e.parent }
func (e *Element) siblingIndex() int { return e.index }

// InnerText concatenates the text content of this element and all its
// descendants, in document order, skipping nothing (Space runs count
// as text).
func (e *Element) InnerText() string {
	if len(e.Children) == 0 {
		return ""
	}
	onlyLeaf := true
	for _, c := range e.Children {
		if _, ok := c.(*Element); ok {
			onlyLeaf = false
			break
		}
	}
	if onlyLeaf && len(e.Children) == 1 {
		return e.Children[0].InnerText()
	}
	var out []byte
	e.collectText(&out)
	return string(out)
}

func (e *Element) collectText(out *[]byte) {
	for _, c := range e.Children {
		switch n := c.(type) {
		case *Element:
			n.collectText(out)
		default:
			*out = append(*out, n.InnerText()...)
		}
	}
}

// Attr looks up an attribute by its full name ("prefix:local" or
// "local"), returning ok=false if absent.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
