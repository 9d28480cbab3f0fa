// Package html5 is an opt-in HTML5 named-entity superset resolver: a
// compile-time constant lookup, never mutated at runtime. It sits
// behind no build tag; it is used only by callers that import it, and
// nothing else in this module does. The full ~2200-entry table defined
// by the WHATWG HTML5 standard is out of scope here; this package
// wires the same Resolver contract with a small representative subset
// that callers can extend.
package html5

import "github.com/wilkmaciej/xml-streamer/xmlcore/escape"

// entities holds a representative slice of the WHATWG table. It is a
// plain map literal, never written to after init — the same
// "static lookup" shape the full table would have.
var entities = map[string]string{
	"nbsp":   " ",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"hellip": "…",
	"mdash":  "—",
	"ndash":  "–",
	"laquo":  "«",
	"raquo":  "»",
	"eacute": "é",
	"euro":   "€",
	"le":     "≤",
	"ge":     "≥",
	"times":  "×",
	"divide": "÷",
}

// Resolver extends escape.PredefinedResolver with the HTML5 table
// above, falling back to the five predefined XML entities.
var Resolver escape.Resolver = resolver{}

type resolver struct{}

func (resolver) Resolve(name []byte) ([]byte, bool) {
	if repl, ok := entities[string(name)]; ok {
		return []byte(repl), true
	}
	return escape.PredefinedResolver{}.Resolve(name)
}
