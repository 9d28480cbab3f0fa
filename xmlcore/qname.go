package xmlcore

import "bytes"

// QName is a qualified XML name stored as offsets into a backing byte
// slice: "prefix:local" when a colon is present, "local" only
// otherwise. The core never allocates to split a name.
type QName struct {
	raw       []byte
	colon     int // index of ':' in raw, or -1 if unqualified
}

// NewQName builds a QName from raw bytes, locating the prefix separator
// once.
func NewQName(raw []byte) QName {
	return QName{raw: raw, colon: bytes.IndexByte(raw, ':')}
}

// Prefix returns the bytes before ':', or nil when unqualified.
func (q QName) Prefix() []byte {
	if q.colon < 0 {
		return nil
	}
	return q.raw[:q.colon]
}

// Local returns the local-name bytes after the prefix.
func (q QName) Local() []byte {
	if q.colon < 0 {
		return q.raw
	}
	return q.raw[q.colon+1:]
}

// Full returns the complete raw name bytes, prefix and local combined.
func (q QName) Full() []byte { return q.raw }

// HasPrefix reports whether the name is qualified with a prefix.
func (q QName) HasPrefix() bool { return q.colon >= 0 }

// Equal compares two QNames by their full raw bytes.
func (q QName) Equal(o QName) bool { return bytes.Equal(q.raw, o.raw) }

// String renders the name for diagnostics. It copies.
func (q QName) String() string { return string(q.raw) }
