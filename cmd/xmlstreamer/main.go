// Command xmlstreamer is a small CLI over the xmlsrc/xmlcore/xmlns/
// xmlent/xmldom layers: well-formedness checking, raw event
// dumping, DOM-to-JSON conversion, and XPath evaluation against a
// document read from a file or stdin.
package main

import (
	"fmt"
	"os"

	"github.com/wilkmaciej/xml-streamer/cmd/xmlstreamer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xmlstreamer:", err)
		os.Exit(1)
	}
}
