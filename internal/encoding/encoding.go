// Package encoding provides helpers that sniff a document's byte
// encoding and transcode it to UTF-8. No reader in this module calls
// them, so xmlsrc receives documents exactly as given. Without the
// xml_encoding build tag Transcode handles only UTF-8; build with that
// tag to pull in golang.org/x/text and support the rest.
package encoding

import "bytes"

// Sniff inspects the first few bytes of data for a byte-order mark,
// returning the detected encoding name (one of "utf-8", "utf-16le",
// "utf-16be", "utf-32le", "utf-32be") and the number of BOM bytes to
// skip. No BOM yields ("utf-8", 0): UTF-8 is the default per the XML
// spec's own rule when no external encoding information is available.
func Sniff(data []byte) (name string, bomLen int) {
	switch {
	case bytes.HasPrefix(data, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return "utf-32be", 4
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return "utf-32le", 4
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return "utf-16be", 2
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return "utf-16le", 2
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8", 3
	default:
		return "utf-8", 0
	}
}

// DeclaredEncoding extracts the value of an XML declaration's
// encoding="..." pseudo-attribute from the raw bytes between "<?xml"
// and "?>", returning ok=false if absent.
func DeclaredEncoding(declAttrs []byte) (string, bool) {
	const needle = "encoding"
	idx := bytes.Index(declAttrs, []byte(needle))
	if idx < 0 {
		return "", false
	}
	rest := declAttrs[idx+len(needle):]
	rest = bytes.TrimLeft(rest, " \t\r\n")
	if len(rest) == 0 || rest[0] != '=' {
		return "", false
	}
	rest = bytes.TrimLeft(rest[1:], " \t\r\n")
	if len(rest) == 0 || (rest[0] != '\'' && rest[0] != '"') {
		return "", false
	}
	quote := rest[0]
	end := bytes.IndexByte(rest[1:], quote)
	if end < 0 {
		return "", false
	}
	return string(rest[1 : 1+end]), true
}
