// Package xmlmap implements the L5 structured deserializer: it walks
// a Go struct via reflection and fills it in from an XML document,
// using the same comma/pipe struct-tag grammar encoding/xml users
// already know. Grounded on arturoeanton-go-xml's generic
// Stream[T] + tag-driven decode (xml/streaming_decoder.go), the pack's
// only complete-repo example of reflective XML→struct mapping.
package xmlmap

import "strings"

// fieldTag is the parsed form of a `xml:"..."` struct tag.
type fieldTag struct {
	names     []string // alias list, "" means "use the field's own name"
	attr      bool
	chardata  bool // `,chardata` — the $text sentinel
	any       bool // `,any` — the $value sentinel, catches unmatched children
	omitEmpty bool
	skip      bool // tag is "-"
}

// parseFieldTag parses the contents of a field's `xml:"..."` tag. An
// absent tag (raw == "") yields a zero fieldTag whose names list is
// empty, signaling "match by field name".
func parseFieldTag(raw string) fieldTag {
	if raw == "-" {
		return fieldTag{skip: true}
	}
	parts := strings.Split(raw, ",")
	var ft fieldTag
	if parts[0] != "" {
		ft.names = strings.Split(parts[0], "|")
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "attr":
			ft.attr = true
		case "chardata":
			ft.chardata = true
		case "any":
			ft.any = true
		case "omitempty":
			ft.omitEmpty = true
		}
	}
	return ft
}

// matches reports whether localName is one of the tag's declared
// aliases, or, if none were declared, whether it equals fallback (the
// field's own name compared case-insensitively, matching
// encoding/xml's default behavior).
func (ft fieldTag) matches(localName, fallback string) bool {
	if len(ft.names) == 0 {
		return strings.EqualFold(localName, fallback)
	}
	for _, n := range ft.names {
		if strings.EqualFold(n, localName) {
			return true
		}
	}
	return false
}
