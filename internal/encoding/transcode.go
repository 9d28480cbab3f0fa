//go:build xml_encoding

package encoding

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"
)

// Transcode converts data from the named encoding (an IANA/WHATWG
// charset label, e.g. "iso-8859-1", "shift_jis") into UTF-8. Callers
// without the xml_encoding build tag only get UTF-8 support (Sniff
// plus a straight passthrough); this file is the optional widening.
func Transcode(data []byte, name string) ([]byte, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("encoding: unknown charset %q: %w", name, err)
	}
	decoder := enc.NewDecoder()
	var out bytes.Buffer
	if _, err := io.Copy(&out, decoder.Reader(bytes.NewReader(data))); err != nil {
		return nil, fmt.Errorf("encoding: transcoding from %q: %w", name, err)
	}
	return out.Bytes(), nil
}

// Supported reports whether name resolves to a known charset.
func Supported(name string) bool {
	_, err := htmlindex.Get(name)
	return err == nil
}
