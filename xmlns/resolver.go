// Package xmlns implements the namespace layer: it wraps an
// xmlcore.Reader and maintains a scoped prefix→URI binding stack,
// exposing per-event resolution without per-event allocation. A flat
// per-element map copy can't restore a shadowed outer binding once
// the shadowing one pops, so bindings live on an explicit stack
// instead.
package xmlns

import (
	"bytes"

	"github.com/wilkmaciej/xml-streamer/xmlcore"
)

// ResolutionKind discriminates a namespace lookup's outcome.
type ResolutionKind int

const (
	Unbound ResolutionKind = iota
	Bound
	Unknown
)

// Resolution is the outcome of resolving a QName against the current
// binding scope.
type Resolution struct {
	Kind   ResolutionKind
	URI    []byte // valid when Kind == Bound
	Prefix []byte // valid when Kind == Unknown
}

type binding struct {
	prefix []byte
	uri    []byte
	depth  int
}

// Reader wraps an xmlcore.Reader, intercepting xmlns/xmlns:p attributes
// on Start/Empty and popping them on the matching End.
type Reader struct {
	inner      *xmlcore.Reader
	bindings   []binding
	pendingPop bool
	popDepth   int
}

// NewReader wraps inner with namespace tracking.
func NewReader(inner *xmlcore.Reader) *Reader {
	return &Reader{inner: inner}
}

// Position delegates to the wrapped xmlcore.Reader for error reporting.
func (r *Reader) Position() int64 { return r.inner.Position() }

// Depth returns the wrapped reader's current element nesting depth.
func (r *Reader) Depth() int { return r.inner.Depth() }

// Read pulls the next event, updating the binding stack as a
// side-effect of Start/Empty/End events.
//
// An Empty or End element's own namespace declarations must still be
// visible to a caller that resolves names against *this* event right
// after Read returns it (ReadResolved, or a direct ResolveElement/
// CurrentBindings call). So popping a scope is deferred until the
// start of the following Read call, once the caller has had its
// chance to resolve against the element that owns it.
func (r *Reader) Read() (xmlcore.Event, error) {
	if r.pendingPop {
		r.popToDepth(r.popDepth)
		r.pendingPop = false
	}

	ev, err := r.inner.Read()
	if err != nil {
		return ev, err
	}
	switch ev.Kind {
	case xmlcore.EventStart:
		// Depth() already reflects this element's own (post-push)
		// depth, so declarations bind at exactly that level.
		r.pushDeclarations(ev, r.inner.Depth())
	case xmlcore.EventEmpty:
		// Empty never touches the stack/depth counter, so its own
		// depth is one past the still-unchanged current depth; pushing
		// there scopes its declarations to itself alone, popped back
		// to the current depth just before the next event is read.
		selfDepth := r.inner.Depth() + 1
		r.pushDeclarations(ev, selfDepth)
		r.pendingPop = true
		r.popDepth = r.inner.Depth()
	case xmlcore.EventEnd:
		r.pendingPop = true
		r.popDepth = r.inner.Depth()
	}
	return ev, nil
}

// ReadResolved returns the resolution of the current element's own
// name alongside the event in one call, for callers that would
// otherwise immediately call ResolveElement on every Start/Empty.
func (r *Reader) ReadResolved() (Resolution, xmlcore.Event, error) {
	ev, err := r.Read()
	if err != nil {
		return Resolution{}, ev, err
	}
	switch ev.Kind {
	case xmlcore.EventStart, xmlcore.EventEmpty:
		return r.ResolveElement(ev.Start().Name()), ev, nil
	default:
		return Resolution{}, ev, nil
	}
}

func (r *Reader) pushDeclarations(ev xmlcore.Event, depth int) {
	it := ev.Start().Attributes()
	for {
		a, ok, err := it.Next()
		if err != nil || !ok {
			return
		}
		name := a.Name.Full()
		switch {
		case bytes.Equal(name, []byte("xmlns")):
			r.bindings = append(r.bindings, binding{prefix: nil, uri: a.Value, depth: depth})
		case bytes.HasPrefix(name, []byte("xmlns:")):
			prefix := name[len("xmlns:"):]
			r.bindings = append(r.bindings, binding{prefix: prefix, uri: a.Value, depth: depth})
		}
	}
}

// popToDepth removes bindings declared at or deeper than the element
// whose End just fired (i.e. depth strictly greater than the reader's
// current, post-pop depth).
func (r *Reader) popToDepth(depth int) {
	i := len(r.bindings)
	for i > 0 && r.bindings[i-1].depth > depth {
		i--
	}
	r.bindings = r.bindings[:i]
}

func (r *Reader) lookup(prefix []byte) ([]byte, bool) {
	for i := len(r.bindings) - 1; i >= 0; i-- {
		b := r.bindings[i]
		if (b.prefix == nil && prefix == nil) || bytes.Equal(b.prefix, prefix) {
			return b.uri, true
		}
	}
	return nil, false
}

// ResolveElement resolves name as an element name: an unprefixed name
// falls back to the default (xmlns="") binding.
func (r *Reader) ResolveElement(name xmlcore.QName) Resolution {
	prefix := name.Prefix()
	uri, ok := r.lookup(prefix)
	switch {
	case ok:
		return Resolution{Kind: Bound, URI: uri}
	case prefix == nil:
		return Resolution{Kind: Unbound}
	default:
		return Resolution{Kind: Unknown, Prefix: prefix}
	}
}

// ResolveAttribute resolves name as an attribute name: the default
// namespace never applies to unprefixed attributes per the XML
// Namespaces spec.
func (r *Reader) ResolveAttribute(name xmlcore.QName) Resolution {
	prefix := name.Prefix()
	if prefix == nil {
		return Resolution{Kind: Unbound}
	}
	uri, ok := r.lookup(prefix)
	if !ok {
		return Resolution{Kind: Unknown, Prefix: prefix}
	}
	return Resolution{Kind: Bound, URI: uri}
}

// CurrentBindings returns an iterator-like snapshot of
// (prefix, uri) pairs visible at the current scope, most-recently
// declared per prefix first, with shadowed entries excluded.
func (r *Reader) CurrentBindings() []struct{ Prefix, URI []byte } {
	seen := map[string]bool{}
	var out []struct{ Prefix, URI []byte }
	for i := len(r.bindings) - 1; i >= 0; i-- {
		b := r.bindings[i]
		key := string(b.prefix)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, struct{ Prefix, URI []byte }{b.prefix, b.uri})
	}
	return out
}
