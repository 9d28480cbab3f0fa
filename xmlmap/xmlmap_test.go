package xmlmap

import (
	"testing"

	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmldom"
	"github.com/wilkmaciej/xml-streamer/xmlns"
	"github.com/wilkmaciej/xml-streamer/xmlsrc"
)

type Item struct {
	SKU   string `xml:"sku,attr"`
	Qty   int    `xml:"qty,attr"`
	Label string `xml:",chardata"`
}

type Order struct {
	ID    string `xml:"id,attr"`
	Items []Item `xml:"item"`
	Note  string `xml:"note"`
	Tags  []string `xml:"tags"`
}

func decodeString(t *testing.T, input string, v any, opts ...Option) {
	t.Helper()
	core := xmlcore.NewReader(xmlsrc.NewSliceSource([]byte(input)), nil)
	root, err := xmldom.Build(xmlns.NewReader(core))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := DOM(root, v, buildOptions(opts)); err != nil {
		t.Fatalf("DOM() error = %v", err)
	}
}

func TestDecodeAttributesAndSequence(t *testing.T) {
	var order Order
	decodeString(t, `<order id="42">
		<item sku="A1" qty="2">widget</item>
		<item sku="B2" qty="1">gadget</item>
		<note>ship fast</note>
	</order>`, &order)

	if order.ID != "42" {
		t.Fatalf("order.ID = %q, want 42", order.ID)
	}
	if len(order.Items) != 2 {
		t.Fatalf("len(order.Items) = %d, want 2", len(order.Items))
	}
	if order.Items[0].SKU != "A1" || order.Items[0].Qty != 2 || order.Items[0].Label != "widget" {
		t.Fatalf("order.Items[0] = %+v", order.Items[0])
	}
	if order.Items[1].SKU != "B2" || order.Items[1].Qty != 1 || order.Items[1].Label != "gadget" {
		t.Fatalf("order.Items[1] = %+v", order.Items[1])
	}
	if order.Note != "ship fast" {
		t.Fatalf("order.Note = %q, want \"ship fast\"", order.Note)
	}
}

func TestDecodeListSplitsOnWhitespace(t *testing.T) {
	var order Order
	decodeString(t, `<order id="1"><tags>red blue green</tags></order>`, &order)
	want := []string{"red", "blue", "green"}
	if len(order.Tags) != len(want) {
		t.Fatalf("order.Tags = %v, want %v", order.Tags, want)
	}
	for i := range want {
		if order.Tags[i] != want[i] {
			t.Fatalf("order.Tags[%d] = %q, want %q", i, order.Tags[i], want[i])
		}
	}
}

type Shape interface{ isShape() }

type Circle struct {
	Radius float64 `xml:"radius,attr"`
}

func (Circle) isShape() {}

type Square struct {
	Side float64 `xml:"side,attr"`
}

func (Square) isShape() {}

type Drawing struct {
	Figure Shape `xml:"circle|square"`
}

func TestDecodeEnumVariantViaRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register((*Shape)(nil), "circle", func() any { return &Circle{} })
	reg.Register((*Shape)(nil), "square", func() any { return &Square{} })

	var d Drawing
	decodeString(t, `<drawing><circle radius="2.5"/></drawing>`, &d, WithRegistry(reg))

	c, ok := d.Figure.(*Circle)
	if !ok {
		t.Fatalf("d.Figure = %#v, want *Circle", d.Figure)
	}
	if c.Radius != 2.5 {
		t.Fatalf("c.Radius = %v, want 2.5", c.Radius)
	}
}

func TestUnmarshalMatchesDOM(t *testing.T) {
	doc := []byte(`<order id="7"><item sku="X" qty="3">x</item></order>`)

	var viaUnmarshal Order
	if err := Unmarshal(doc, &viaUnmarshal); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	var viaDOM Order
	decodeString(t, string(doc), &viaDOM)

	if viaUnmarshal.ID != viaDOM.ID || len(viaUnmarshal.Items) != len(viaDOM.Items) {
		t.Fatalf("Unmarshal result %+v != DOM result %+v", viaUnmarshal, viaDOM)
	}
}
