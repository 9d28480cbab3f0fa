package xmldom

import (
	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmlent"
	"github.com/wilkmaciej/xml-streamer/xmlns"
	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

// NewByteSource wraps an in-memory document in the standard
// core+namespace+entity reader stack, for callers that just want a
// tree from a []byte and don't need to configure xmlcore directly.
// Entity expansion is included so general references — including the
// five predefined ones — resolve to their replacement text instead of
// surfacing as literal "&name;" runs in chardata.
func NewByteSource(data []byte) EventSource {
	core := xmlcore.NewReader(xmlsrc.NewSliceSource(data), nil)
	return xmlent.NewReader(xmlns.NewReader(core))
}
