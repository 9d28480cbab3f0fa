//go:build !xml_encoding

package encoding

import "fmt"

// Transcode is unavailable without the xml_encoding build tag; only
// UTF-8 documents (the XML default) are supported in that mode.
func Transcode(data []byte, name string) ([]byte, error) {
	if isUTF8Name(name) {
		return data, nil
	}
	return nil, fmt.Errorf("encoding: charset %q requires building with -tags xml_encoding", name)
}

// Supported reports whether name resolves to a known charset.
func Supported(name string) bool {
	return isUTF8Name(name)
}

func isUTF8Name(name string) bool {
	switch name {
	case "utf-8", "UTF-8", "utf8", "":
		return true
	default:
		return false
	}
}
