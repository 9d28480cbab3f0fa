package xmldom

import (
	"bytes"
	"errors"

	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmlns"
)

// EventSource is the minimal contract Build needs: any of
// xmlcore.Reader, xmlns.Reader, or xmlent.Reader satisfies it.
type EventSource interface {
	Read() (xmlcore.Event, error)
}

// namespaceResolver is implemented by xmlns.Reader (and anything that
// wraps it transitively, like xmlent.Reader, as long as it forwards
// these three methods). Build uses it opportunistically: trees built
// over a plain xmlcore.Reader simply leave NamespaceURI empty.
type namespaceResolver interface {
	ResolveElement(name xmlcore.QName) xmlns.Resolution
	ResolveAttribute(name xmlcore.QName) xmlns.Resolution
	CurrentBindings() []struct{ Prefix, URI []byte }
}

// positioner is implemented by xmlcore.Reader, xmlns.Reader, and
// xmlent.Reader alike; Build uses it opportunistically to stamp each
// Element with the byte offset of its start tag.
type positioner interface {
	Position() int64
}

var (
	errNoRoot          = errors.New("xmldom: document has no root element")
	errUnbalancedClose = errors.New("xmldom: End event with no open element")
	errMultipleRoots   = errors.New("xmldom: document has more than one root element")
)

// buildState is the result of folding one event into the tree:
// NeedData means more input is required before a node completes,
// Element/Text/Space report which kind of node was just finished,
// NoData reports a structural event that produced nothing (comments,
// PIs, decl, doctype).
type buildState int

const (
	NeedData buildState = iota
	StateElement
	StateText
	StateSpace
	NoData
)

// builder folds a pull-event stream into an Element tree, coalescing
// adjacent Text/CData runs into a single buffered run per element's
// direct text children.
type builder struct {
	resolver namespaceResolver
	pos      positioner

	root  *Element
	stack []*Element

	pending     bytes.Buffer
	pendingText bool // true once any byte has been appended
	allSpace    bool
}

// Build consumes src until EOF, returning the completed tree's root.
func Build(src EventSource) (*Element, error) {
	b := &builder{allSpace: true}
	if nr, ok := src.(namespaceResolver); ok {
		b.resolver = nr
	}
	if p, ok := src.(positioner); ok {
		b.pos = p
	}
	for {
		ev, err := src.Read()
		if err != nil {
			return nil, err
		}
		if ev.Kind == xmlcore.EventEOF {
			if _, err := b.feed(ev); err != nil {
				return nil, err
			}
			return b.root, nil
		}
		if _, err := b.feed(ev); err != nil {
			return nil, err
		}
	}
}

func (b *builder) feed(ev xmlcore.Event) (buildState, error) {
	switch ev.Kind {
	case xmlcore.EventStart, xmlcore.EventEmpty:
		b.flushPending()
		el := b.newElement(ev.Start())
		if err := b.attach(el); err != nil {
			return NoData, err
		}
		if ev.Kind == xmlcore.EventStart {
			b.stack = append(b.stack, el)
		}
		return StateElement, nil

	case xmlcore.EventEnd:
		b.flushPending()
		if len(b.stack) == 0 {
			return NoData, errUnbalancedClose
		}
		b.stack = b.stack[:len(b.stack)-1]
		return StateElement, nil

	case xmlcore.EventText:
		b.appendPending(ev.Content, isAllSpace(ev.Content))
		return NeedData, nil

	case xmlcore.EventCData:
		// CDATA is never whitespace-folded, even if its content is
		// blank: it is an explicit "preserve this text" marker.
		b.appendPending(ev.Content, false)
		return NeedData, nil

	case xmlcore.EventGeneralRef:
		// A raw, unresolved reference reaching this layer (the source
		// wasn't an xmlent.Reader) is folded back into literal text.
		lit := append([]byte("&"), ev.Content...)
		lit = append(lit, ';')
		b.appendPending(lit, false)
		return NeedData, nil

	case xmlcore.EventComment, xmlcore.EventPI, xmlcore.EventDecl, xmlcore.EventDocType:
		return NoData, nil

	case xmlcore.EventEOF:
		b.flushPending()
		if b.root == nil {
			return NoData, errNoRoot
		}
		if len(b.stack) != 0 {
			return NoData, errUnbalancedClose
		}
		return NoData, nil

	default:
		return NoData, nil
	}
}

func (b *builder) appendPending(data []byte, allSpace bool) {
	b.pending.Write(data)
	b.pendingText = true
	b.allSpace = b.allSpace && allSpace
}

// flushPending attaches the buffered text run, if any, as a Text or
// Space node and resets the accumulator.
func (b *builder) flushPending() buildState {
	if !b.pendingText {
		return NeedData
	}
	value := b.pending.String()
	allSpace := b.allSpace
	b.pending.Reset()
	b.pendingText = false
	b.allSpace = true

	if len(b.stack) == 0 {
		// Text outside the root element (leading/trailing whitespace
		// around a single-root document) carries no structural
		// meaning and is dropped.
		return NeedData
	}
	parent := b.stack[len(b.stack)-1]
	idx := len(parent.Children)
	if allSpace {
		parent.Children = append(parent.Children, &Space{Value: value, parent: parent, index: idx})
		return StateSpace
	}
	parent.Children = append(parent.Children, &Text{Value: value, parent: parent, index: idx})
	return StateText
}

func (b *builder) attach(el *Element) error {
	if len(b.stack) == 0 {
		if b.root != nil {
			return errMultipleRoots
		}
		b.root = el
		return nil
	}
	parent := b.stack[len(b.stack)-1]
	el.parent = parent
	el.index = len(parent.Children)
	parent.Children = append(parent.Children, el)
	return nil
}

func (b *builder) newElement(start xmlcore.Start) *Element {
	name := start.Name()
	el := &Element{
		Name:      string(name.Full()),
		LocalName: string(name.Local()),
		Prefix:    string(name.Prefix()),
	}
	if b.pos != nil {
		el.BytePosition = b.pos.Position()
	}

	it := start.Attributes()
	for {
		a, ok, err := it.Next()
		if err != nil || !ok {
			break
		}
		el.Attributes = append(el.Attributes, Attribute{Name: string(a.Name.Full()), Value: string(a.Value)})
	}

	if b.resolver != nil {
		if res := b.resolver.ResolveElement(name); res.Kind == xmlns.Bound {
			el.NamespaceURI = string(res.URI)
		}
		if bindings := b.resolver.CurrentBindings(); len(bindings) > 0 {
			el.namespaces = make(map[string]string, len(bindings))
			for _, bnd := range bindings {
				el.namespaces[string(bnd.Prefix)] = string(bnd.URI)
			}
		}
	}
	return el
}

func isAllSpace(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return false
		}
	}
	return true
}
