package xmlcore

import (
	"testing"

	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

func events(t *testing.T, input string, cfg *Config) []Event {
	t.Helper()
	r := NewReader(xmlsrc.NewSliceSource([]byte(input)), cfg)
	var out []Event
	for {
		ev, err := r.Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		out = append(out, ev)
		if ev.Kind == EventEOF {
			break
		}
	}
	return out
}

func kinds(evs []Event) []EventKind {
	out := make([]EventKind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func eq(a, b []EventKind) bool {
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

// S1: empty element.
func TestEmptyElement(t *testing.T) {
	evs := events(t, "<root/>", nil)
	want := []EventKind{EventEmpty, EventEOF}
	if !eq(kinds(evs), want) {
		t.Fatalf("kinds = %v, want %v", kinds(evs), want)
	}
}

// S2: text with entity reference.
func TestTextWithEntity(t *testing.T) {
	evs := events(t, "<r>&lt;3</r>", nil)
	want := []EventKind{EventStart, EventGeneralRef, EventText, EventEnd, EventEOF}
	if !eq(kinds(evs), want) {
		t.Fatalf("kinds = %v, want %v", kinds(evs), want)
	}
	if string(evs[1].Content) != "lt" {
		t.Errorf("GeneralRef content = %q, want lt", evs[1].Content)
	}
	if string(evs[2].Content) != "3" {
		t.Errorf("Text content = %q, want 3", evs[2].Content)
	}
}

// S3: CDATA preservation.
func TestCDataPreservation(t *testing.T) {
	evs := events(t, "<r><![CDATA[a<b&c]]></r>", nil)
	want := []EventKind{EventStart, EventCData, EventEnd, EventEOF}
	if !eq(kinds(evs), want) {
		t.Fatalf("kinds = %v, want %v", kinds(evs), want)
	}
	if string(evs[1].Content) != "a<b&c" {
		t.Errorf("CData content = %q, want a<b&c", evs[1].Content)
	}
}

// S6: mismatched end tag.
func TestMismatchedEndTag(t *testing.T) {
	r := NewReader(xmlsrc.NewSliceSource([]byte("<a></b>")), NewConfig(WithCheckEndNames(true)))
	for {
		ev, err := r.Read()
		if err != nil {
			xerr, ok := err.(*Error)
			if !ok || xerr.Reason != ReasonMismatchedEndTag {
				t.Fatalf("unexpected error = %v", err)
			}
			if xerr.Expected != "a" || xerr.Found != "b" {
				t.Fatalf("expected/found = %q/%q, want a/b", xerr.Expected, xerr.Found)
			}
			return
		}
		if ev.Kind == EventEOF {
			t.Fatal("expected mismatch error before EOF")
		}
	}
}

// S7: PI attribute parse.
func TestPIAttributeParse(t *testing.T) {
	evs := events(t, `<?xml-stylesheet href="style.css"?>`, nil)
	if evs[0].Kind != EventPI {
		t.Fatalf("kind = %v, want PI", evs[0].Kind)
	}
	pi := evs[0].PI()
	if string(pi.Target()) != "xml-stylesheet" {
		t.Errorf("target = %q, want xml-stylesheet", pi.Target())
	}
}

func TestElementStackInvariant(t *testing.T) {
	r := NewReader(xmlsrc.NewSliceSource([]byte("<a><b><c/></b></a>")), nil)
	wantDepths := map[EventKind]int{}
	_ = wantDepths
	depth := 0
	for {
		ev, err := r.Read()
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		switch ev.Kind {
		case EventStart:
			depth++
		case EventEnd:
			depth--
		}
		if r.Depth() != depth {
			t.Fatalf("Depth() = %d, want %d after %v", r.Depth(), depth, ev.Kind)
		}
		if ev.Kind == EventEOF {
			break
		}
	}
}

func TestDanglingAmpAllowed(t *testing.T) {
	evs := events(t, "<r>a & b</r>", NewConfig(WithAllowDanglingAmp(true)))
	// "a " then literal "&" then " b" -- exact split depends on scan, but
	// must not error and must still close the element.
	if evs[len(evs)-1].Kind != EventEOF {
		t.Fatalf("last event = %v, want EOF", evs[len(evs)-1].Kind)
	}
}
