package xmlmap

import (
	"github.com/wilkmaciej/xml-streamer/xmldom"
)

// EventSource is anything Build can read events from: a bare
// xmlcore.Reader, an xmlns.Reader, or an xmlent.Reader wrapping
// either. It is an alias of xmldom.EventSource, so this package
// imports no reader layer directly.
type EventSource = xmldom.EventSource

// Option configures a Stream or DOM call.
type Option func(*Options)

// WithRegistry supplies the variant registry used to resolve
// interface-typed fields.
func WithRegistry(reg *Registry) Option {
	return func(o *Options) { o.Registry = reg }
}

func buildOptions(opts []Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Stream decodes an entire document read from src into v, which must
// be a non-nil pointer to a struct. It builds the document's DOM
// first via xmldom.Build and decodes from that tree, so its result is
// always identical to calling DOM directly on the same document: there
// is one reflective walker, not two maintained in parallel.
func Stream(src EventSource, v any, opts ...Option) error {
	root, err := xmldom.Build(src)
	if err != nil {
		var pos int64
		if p, ok := src.(interface{ Position() int64 }); ok {
			pos = p.Position()
		}
		return deErr(pos, "", err)
	}
	return DOM(root, v, buildOptions(opts))
}

// Unmarshal decodes the full XML document in data into v.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return Stream(xmldom.NewByteSource(data), v, opts...)
}
