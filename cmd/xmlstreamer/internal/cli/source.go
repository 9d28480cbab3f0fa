package cli

import (
	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmlent"
	"github.com/wilkmaciej/xml-streamer/xmlns"
	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

// newEntityReader builds the standard core→namespace→entity reader
// stack over an in-memory document, the configuration every
// subcommand below reads through.
func newEntityReader(data []byte) *xmlent.Reader {
	core := xmlcore.NewReader(xmlsrc.NewSliceSource(data), xmlcore.NewConfig(xmlcore.EnableAllChecks(true)))
	return xmlent.NewReader(xmlns.NewReader(core))
}
