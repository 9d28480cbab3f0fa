package xmldom

import (
	"testing"

	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmlns"
	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

func buildFrom(t *testing.T, input string) *Element {
	t.Helper()
	core := xmlcore.NewReader(xmlsrc.NewSliceSource([]byte(input)), nil)
	root, err := Build(xmlns.NewReader(core))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return root
}

func TestBuildSimpleTree(t *testing.T) {
	root := buildFrom(t, `<a x="1"><b>hi</b><c/></a>`)

	if root.LocalName != "a" {
		t.Fatalf("root.LocalName = %q, want a", root.LocalName)
	}
	if v, ok := root.Attr("x"); !ok || v != "1" {
		t.Fatalf("root attr x = %q, %v", v, ok)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(root.Children) = %d, want 2", len(root.Children))
	}

	b, ok := root.Children[0].(*Element)
	if !ok || b.LocalName != "b" {
		t.Fatalf("root.Children[0] = %#v, want element b", root.Children[0])
	}
	if len(b.Children) != 1 {
		t.Fatalf("len(b.Children) = %d, want 1", len(b.Children))
	}
	text, ok := b.Children[0].(*Text)
	if !ok || text.Value != "hi" {
		t.Fatalf("b.Children[0] = %#v, want Text(hi)", b.Children[0])
	}

	c, ok := root.Children[1].(*Element)
	if !ok || c.LocalName != "c" {
		t.Fatalf("root.Children[1] = %#v, want element c", root.Children[1])
	}
}

func TestBuildWhitespaceCoalescing(t *testing.T) {
	root := buildFrom(t, "<a>\n  <b/>\n  <c/>\n</a>")
	// Expect: Space, Element(b), Space, Element(c), Space.
	if len(root.Children) != 5 {
		t.Fatalf("len(root.Children) = %d, want 5: %#v", len(root.Children), root.Children)
	}
	if _, ok := root.Children[0].(*Space); !ok {
		t.Fatalf("root.Children[0] = %#v, want *Space", root.Children[0])
	}
	if _, ok := root.Children[2].(*Space); !ok {
		t.Fatalf("root.Children[2] = %#v, want *Space", root.Children[2])
	}
}

func TestBuildCDataNotSpace(t *testing.T) {
	root := buildFrom(t, `<a><![CDATA[   ]]></a>`)
	if len(root.Children) != 1 {
		t.Fatalf("len(root.Children) = %d, want 1", len(root.Children))
	}
	if _, ok := root.Children[0].(*Text); !ok {
		t.Fatalf("root.Children[0] = %#v, want *Text (CDATA stays Text even if blank)", root.Children[0])
	}
}

func TestBuildSkipsCommentsAndPIs(t *testing.T) {
	root := buildFrom(t, `<a><!--c--><?pi data?><b/></a>`)
	if len(root.Children) != 1 {
		t.Fatalf("len(root.Children) = %d, want 1 (comment/PI skipped)", len(root.Children))
	}
}

func TestBuildResolvesNamespace(t *testing.T) {
	root := buildFrom(t, `<a xmlns="urn:test"><b/></a>`)
	if root.NamespaceURI != "urn:test" {
		t.Fatalf("root.NamespaceURI = %q, want urn:test", root.NamespaceURI)
	}
	b := root.Children[0].(*Element)
	if b.NamespaceURI != "urn:test" {
		t.Fatalf("b.NamespaceURI = %q, want urn:test (inherited default)", b.NamespaceURI)
	}
}

func TestInnerTextNestedElements(t *testing.T) {
	root := buildFrom(t, `<a>x<b>y</b>z</a>`)
	if got := root.InnerText(); got != "xyz" {
		t.Fatalf("InnerText() = %q, want xyz", got)
	}
}
