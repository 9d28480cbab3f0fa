package xmlsrc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSliceSourceReadElement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple start", `root>tail`, `root>`},
		{"quoted gt", `a b=">" c>tail`, `a b=">" c>`},
		{"single quote", `a b='>' >tail`, `a b='>' >`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSliceSource([]byte(tc.input))
			got, err := s.ReadElement()
			if err != nil {
				t.Fatalf("ReadElement() error = %v", err)
			}
			if diff := cmp.Diff(tc.want, string(got)); diff != "" {
				t.Errorf("ReadElement() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSliceSourceReadBangElement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"cdata", `[CDATA[a]]>b]]>rest`, `[CDATA[a]]>`},
		{"comment", `-- not -- a comment -->rest`, `-- not -- a comment -->`},
		{"doctype nested", `DOCTYPE r [<!ENTITY x "v">]>rest`, `DOCTYPE r [<!ENTITY x "v">]>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSliceSource([]byte(tc.input))
			got, err := s.ReadBangElement()
			if err != nil {
				t.Fatalf("ReadBangElement() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("ReadBangElement() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSliceSourceUnexpectedEOF(t *testing.T) {
	s := NewSliceSource([]byte(`unterminated`))
	if _, err := s.ReadElement(); err == nil {
		t.Fatal("expected error on unterminated tag")
	}
}
