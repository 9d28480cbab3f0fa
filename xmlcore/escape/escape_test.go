package escape

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	tests := []string{
		"plain text",
		"a < b & c > d",
		`quotes "here" and 'there'`,
	}
	for _, s := range tests {
		escaped := Escape([]byte(s), Full)
		got, err := Unescape(escaped, nil)
		if err != nil {
			t.Fatalf("Unescape() error = %v", err)
		}
		if diff := cmp.Diff(s, string(got)); diff != "" {
			t.Errorf("round trip mismatch for %q (-want +got):\n%s", s, diff)
		}
	}
}

func TestUnescapeCharRefs(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"&#65;", "A"},
		{"&#x41;", "A"},
		{"&lt;3", "<3"},
	}
	for _, tc := range tests {
		got, err := Unescape([]byte(tc.in), nil)
		if err != nil {
			t.Fatalf("Unescape(%q) error = %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Errorf("Unescape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUnescapeRejectsOverlongCharRef(t *testing.T) {
	if _, err := Unescape([]byte("&#1234567890;"), nil); err == nil {
		t.Fatal("expected error for overlong decimal character reference")
	}
}

func TestUnescapeRejectsUnknownEntity(t *testing.T) {
	if _, err := Unescape([]byte("&bogus;"), nil); err == nil {
		t.Fatal("expected error for unrecognized entity")
	}
}

func TestEscapePolicies(t *testing.T) {
	in := []byte(`<a & "b" 'c'>`)
	if got := Escape(in, Minimal); string(got) != `&lt;a &amp; "b" 'c'>` {
		t.Errorf("Minimal = %q", got)
	}
	if got := Escape(in, Partial); string(got) != `&lt;a &amp; "b" 'c'&gt;` {
		t.Errorf("Partial = %q", got)
	}
}
