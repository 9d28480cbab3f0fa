package xmlent

import (
	"testing"

	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

func events(t *testing.T, r *Reader) []xmlcore.Event {
	t.Helper()
	var out []xmlcore.Event
	for {
		ev, err := r.Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if ev.Kind == xmlcore.EventEOF {
			return out
		}
		out = append(out, ev.Owned())
	}
}

func kinds(evs []xmlcore.Event) []xmlcore.EventKind {
	out := make([]xmlcore.EventKind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func eq(a, b []xmlcore.EventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newReader(input string) *Reader {
	core := xmlcore.NewReader(xmlsrc.NewSliceSource([]byte(input)), nil)
	return NewReader(core)
}

// S5: a DOCTYPE-declared internal entity resolves to text in place.
func TestInternalEntityResolvesToText(t *testing.T) {
	input := `<!DOCTYPE r [<!ENTITY x "v">]><r>&x;</r>`
	r := newReader(input)
	evs := events(t, r)

	want := []xmlcore.EventKind{
		xmlcore.EventDocType,
		xmlcore.EventStart,
		xmlcore.EventText,
		xmlcore.EventEnd,
	}
	if !eq(kinds(evs), want) {
		t.Fatalf("kinds = %v, want %v", kinds(evs), want)
	}
	if string(evs[2].Content) != "v" {
		t.Fatalf("entity replacement text = %q, want %q", evs[2].Content, "v")
	}
}

// Property 4: a named entity and its literal replacement text produce
// the same event sequence for the element's content.
func TestEntityReferenceEquivalence(t *testing.T) {
	viaEntity := newReader(`<!DOCTYPE r [<!ENTITY x "hello">]><r>&x;</r>`)
	viaLiteral := newReader(`<r>hello</r>`)

	a := events(t, viaEntity)
	b := events(t, viaLiteral)

	// Drop the DocType event from the entity-bearing stream before
	// comparing; the literal-text document has none.
	var aContent []xmlcore.Event
	for _, ev := range a {
		if ev.Kind != xmlcore.EventDocType {
			aContent = append(aContent, ev)
		}
	}

	if !eq(kinds(aContent), kinds(b)) {
		t.Fatalf("kinds mismatch: %v vs %v", kinds(aContent), kinds(b))
	}
	for i := range aContent {
		if string(aContent[i].Content) != string(b[i].Content) {
			t.Errorf("event %d content = %q, want %q", i, aContent[i].Content, b[i].Content)
		}
	}
}

// Character references resolve without any DOCTYPE declaration.
func TestCharRefResolvesInline(t *testing.T) {
	r := newReader(`<r>&#65;&#x42;</r>`)
	evs := events(t, r)
	want := []xmlcore.EventKind{xmlcore.EventStart, xmlcore.EventText, xmlcore.EventText, xmlcore.EventEnd}
	if !eq(kinds(evs), want) {
		t.Fatalf("kinds = %v, want %v", kinds(evs), want)
	}
	if string(evs[1].Content) != "A" || string(evs[2].Content) != "B" {
		t.Fatalf("content = %q, %q, want A, B", evs[1].Content, evs[2].Content)
	}
}

// A self-referencing entity is rejected by the depth limit, never by
// name-set tracking.
func TestEntityRecursionDepthLimit(t *testing.T) {
	core := xmlcore.NewReader(xmlsrc.NewSliceSource([]byte(`<!DOCTYPE r [<!ENTITY x "&x;">]><r>&x;</r>`)), nil)
	r := NewReader(core, WithMaxEntityDepth(4))

	_, err := r.Read() // DocType
	if err != nil {
		t.Fatalf("Read() DocType error = %v", err)
	}
	_, err = r.Read() // Start
	if err != nil {
		t.Fatalf("Read() Start error = %v", err)
	}
	_, err = r.Read() // first &x; expansion begins recursing
	if err == nil {
		t.Fatal("expected EntityRecursion error, got nil")
	}
	xerr, ok := err.(*xmlcore.Error)
	if !ok || xerr.Kind != xmlcore.KindEntityRecursion {
		t.Fatalf("error = %#v, want KindEntityRecursion", err)
	}
}

func TestUnrecognizedEntityError(t *testing.T) {
	r := newReader(`<r>&bogus;</r>`)
	if _, err := r.Read(); err != nil {
		t.Fatalf("Read() Start error = %v", err)
	}
	_, err := r.Read()
	if err == nil {
		t.Fatal("expected UnrecognizedGeneralEntity error, got nil")
	}
	xerr, ok := err.(*xmlcore.Error)
	if !ok || xerr.Kind != xmlcore.KindUnrecognizedGeneralEntity {
		t.Fatalf("error = %#v, want KindUnrecognizedGeneralEntity", err)
	}
}
