// Package xmlent implements an entity-aware reader layered on top of
// xmlcore/xmlns: it captures DOCTYPE-declared general entities,
// resolves "&name;" references in-line, and splices the replacement
// event sequence into the outer stream while bounding recursion by
// depth. The resolver/replacement split mirrors a resolver trait
// commonly used to separate "what an entity expands to" from "how far
// may expansion recurse" in streaming XML parsers.
package xmlent

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wilkmaciej/xml-streamer/internal/xlog"
	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmlcore/escape"
	"github.com/wilkmaciej/xml-streamer/xmlns"
	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

// EventSource is the minimal contract xmlent.Reader needs from the
// layer it wraps: either a bare xmlcore.Reader or an xmlns.Reader sit
// underneath interchangeably.
type EventSource interface {
	Read() (xmlcore.Event, error)
}

// Replacement is the resolved form of a general entity reference: its
// text lives either inline (Internal) or must be read from another
// source entirely (External), matching the original's
// ReplacementText enum.
type Replacement struct {
	Internal   []byte
	External   io.Reader
	IsExternal bool
}

// DocTypeResolver captures DOCTYPE-declared entities and resolves
// general-entity references against them.
type DocTypeResolver interface {
	// Capture is called on every DocType event's raw bytes; it may be
	// called multiple times for documents with more than one DOCTYPE
	// (malformed, but the hook doesn't assume single-call).
	Capture(doctype []byte) error
	// Resolve looks up a previously captured (or predefined) entity by
	// name.
	Resolve(name string) (Replacement, bool)
}

const defaultMaxEntityDepth = 256

// Reader wraps an EventSource, splicing in sub-readers over resolved
// entity replacement text.
type Reader struct {
	inner      EventSource
	resolver   DocTypeResolver
	maxDepth   int
	subReaders []*xmlcore.Reader
	log        xlog.Logger
}

// Option configures a Reader at construction.
type Option func(*Reader)

// WithMaxEntityDepth overrides the default nesting bound of 256.
func WithMaxEntityDepth(n int) Option {
	return func(r *Reader) { r.maxDepth = n }
}

// WithDocTypeResolver installs a custom resolver; the default captures
// internal <!ENTITY name "value"> declarations only.
func WithDocTypeResolver(resolver DocTypeResolver) Option {
	return func(r *Reader) { r.resolver = resolver }
}

// WithLogger attaches a logger for Debug-level entity-expansion
// diagnostics. Unset, Reader logs nothing.
func WithLogger(l xlog.Logger) Option {
	return func(r *Reader) { r.log = l }
}

// NewReader wraps inner with entity expansion.
func NewReader(inner EventSource, opts ...Option) *Reader {
	r := &Reader{inner: inner, maxDepth: defaultMaxEntityDepth}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = NewEntityTable()
	}
	return r
}

// Read pulls the next event, transparently splicing in entity
// replacement text. A sub-reader's own events are routed through the
// same DocType/GeneralRef handling as the main stream, so an entity's
// replacement text may itself contain character references or further
// general-entity references.
func (r *Reader) Read() (xmlcore.Event, error) {
	for {
		var (
			ev  xmlcore.Event
			err error
		)
		if len(r.subReaders) > 0 {
			top := r.subReaders[len(r.subReaders)-1]
			ev, err = top.Read()
			if err != nil {
				return xmlcore.Event{}, err
			}
			if ev.Kind == xmlcore.EventEOF {
				r.subReaders = r.subReaders[:len(r.subReaders)-1]
				continue
			}
		} else {
			ev, err = r.inner.Read()
			if err != nil {
				return ev, err
			}
		}

		switch ev.Kind {
		case xmlcore.EventDocType:
			if err := r.resolver.Capture(ev.Content); err != nil {
				return xmlcore.Event{}, &xmlcore.Error{Kind: xmlcore.KindIllFormed, BytePosition: r.position(), Err: err}
			}
			return ev, nil

		case xmlcore.EventGeneralRef:
			name := ev.Content
			if len(name) > 0 && name[0] == '#' {
				ref := make([]byte, 0, len(name)+2)
				ref = append(ref, '&')
				ref = append(ref, name...)
				ref = append(ref, ';')
				repl, err := escape.Unescape(ref, nil)
				if err != nil {
					return xmlcore.Event{}, &xmlcore.Error{Kind: xmlcore.KindEscape, BytePosition: r.position(), Err: err}
				}
				return xmlcore.Event{Kind: xmlcore.EventText, Content: repl}, nil
			}
			if len(r.subReaders) >= r.maxDepth {
				r.log.Debug().Int("depth", len(r.subReaders)).Str("entity", string(name)).Msg("xmlent: entity expansion depth limit reached")
				return xmlcore.Event{}, &xmlcore.Error{Kind: xmlcore.KindEntityRecursion, BytePosition: r.position()}
			}
			repl, ok := r.resolver.Resolve(string(name))
			if !ok {
				r.log.Debug().Str("entity", string(name)).Msg("xmlent: unrecognized general entity")
				return xmlcore.Event{}, &xmlcore.Error{Kind: xmlcore.KindUnrecognizedGeneralEntity, BytePosition: r.position(), Err: fmt.Errorf("xmlent: unrecognized entity %q", name)}
			}
			sub, err := r.openSubReader(repl)
			if err != nil {
				return xmlcore.Event{}, err
			}
			r.subReaders = append(r.subReaders, sub)
			continue

		default:
			return ev, nil
		}
	}
}

func (r *Reader) openSubReader(repl Replacement) (*xmlcore.Reader, error) {
	if repl.IsExternal {
		buf, err := io.ReadAll(repl.External)
		if err != nil {
			return nil, &xmlcore.Error{Kind: xmlcore.KindIoError, BytePosition: r.position(), Err: err}
		}
		return xmlcore.NewReader(xmlsrc.NewBufferedSource(bytes.NewReader(buf), nil), xmlcore.NewConfig(xmlcore.WithCheckEndNames(false))), nil
	}
	return xmlcore.NewReader(xmlsrc.NewSliceSource(repl.Internal), xmlcore.NewConfig(xmlcore.WithCheckEndNames(false))), nil
}

// positioner is implemented by both xmlcore.Reader and xmlns.Reader;
// it lets Reader report a meaningful byte offset without depending on
// either concrete type.
type positioner interface {
	Position() int64
}

func (r *Reader) position() int64 {
	if p, ok := r.inner.(positioner); ok {
		return p.Position()
	}
	return 0
}

// Position forwards to the wrapped reader, if it exposes one, so
// callers above (like xmldom.Build) can stamp nodes with a byte
// offset without depending on a concrete reader type.
func (r *Reader) Position() int64 { return r.position() }

// namespaceReader is implemented by *xmlns.Reader; Reader forwards to
// it when wrapping one, so namespace resolution stays available
// through an xmlent.Reader without xmlent importing xmldom/xmlmap.
type namespaceReader interface {
	ResolveElement(name xmlcore.QName) xmlns.Resolution
	ResolveAttribute(name xmlcore.QName) xmlns.Resolution
	CurrentBindings() []struct{ Prefix, URI []byte }
}

// ResolveElement forwards to the wrapped xmlns.Reader, if any; it
// returns the Unbound resolution when this Reader was built over a
// bare xmlcore.Reader.
func (r *Reader) ResolveElement(name xmlcore.QName) xmlns.Resolution {
	if nr, ok := r.inner.(namespaceReader); ok {
		return nr.ResolveElement(name)
	}
	return xmlns.Resolution{Kind: xmlns.Unbound}
}

// ResolveAttribute forwards to the wrapped xmlns.Reader, if any.
func (r *Reader) ResolveAttribute(name xmlcore.QName) xmlns.Resolution {
	if nr, ok := r.inner.(namespaceReader); ok {
		return nr.ResolveAttribute(name)
	}
	return xmlns.Resolution{Kind: xmlns.Unbound}
}

// CurrentBindings forwards to the wrapped xmlns.Reader, if any.
func (r *Reader) CurrentBindings() []struct{ Prefix, URI []byte } {
	if nr, ok := r.inner.(namespaceReader); ok {
		return nr.CurrentBindings()
	}
	return nil
}
