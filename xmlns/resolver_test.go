package xmlns

import (
	"testing"

	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

// S4: namespace shadowing.
func TestNamespaceShadowing(t *testing.T) {
	input := `<a xmlns='u1'><a xmlns='u2'/></a>`
	core := xmlcore.NewReader(xmlsrc.NewSliceSource([]byte(input)), nil)
	r := NewReader(core)

	// outer start
	res, ev, err := r.ReadResolved()
	if err != nil {
		t.Fatalf("ReadResolved() error = %v", err)
	}
	if ev.Kind != xmlcore.EventStart || res.Kind != Bound || string(res.URI) != "u1" {
		t.Fatalf("outer start resolution = %+v, want Bound(u1)", res)
	}

	// inner empty
	res, ev, err = r.ReadResolved()
	if err != nil {
		t.Fatalf("ReadResolved() error = %v", err)
	}
	if ev.Kind != xmlcore.EventEmpty || res.Kind != Bound || string(res.URI) != "u2" {
		t.Fatalf("inner empty resolution = %+v, want Bound(u2)", res)
	}

	// outer end: resolving the *element name* after End has no
	// standing resolution call in this API, but the binding stack
	// itself must already have popped back to u1 for anything
	// resolved at this point.
	ev, err = r.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if ev.Kind != xmlcore.EventEnd {
		t.Fatalf("kind = %v, want End", ev.Kind)
	}
	got := r.ResolveElement(xmlcore.NewQName([]byte("a")))
	if got.Kind != Bound || string(got.URI) != "u1" {
		t.Fatalf("post-End resolution = %+v, want Bound(u1)", got)
	}
}

func TestNamespaceAttributeNotDefaultScoped(t *testing.T) {
	input := `<a xmlns='u1' attr="v"/>`
	core := xmlcore.NewReader(xmlsrc.NewSliceSource([]byte(input)), nil)
	r := NewReader(core)
	ev, err := r.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	it := ev.Start().Attributes()
	for {
		a, ok, err := it.Next()
		if err != nil {
			t.Fatalf("Attributes().Next() error = %v", err)
		}
		if !ok {
			break
		}
		if string(a.Name.Full()) == "attr" {
			res := r.ResolveAttribute(a.Name)
			if res.Kind != Unbound {
				t.Fatalf("unprefixed attribute resolution = %+v, want Unbound", res)
			}
		}
	}
}
