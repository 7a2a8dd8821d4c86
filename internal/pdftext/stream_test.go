package pdftext

import (
	"reflect"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single show",
			content: `BT /F1 12 Tf 72 720 Td (JOHN) Tj ET`,
			want:    []string{"JOHN"},
		},
		{
			name: "vertical moves split lines",
			content: `BT 72 720 Td (JOHN) Tj
0 -12 Td (Hello there.) Tj
0 -12 Td (How are you?) Tj ET`,
			want: []string{"JOHN", "Hello there.", "How are you?"},
		},
		{
			name:    "horizontal move keeps the line",
			content: `BT 72 720 Td (Hello ) Tj 38 0 Td (there.) Tj ET`,
			want:    []string{"Hello there."},
		},
		{
			name:    "TJ array with kerning",
			content: `BT 72 720 Td [(He)-20(llo) 4 ( there.)] TJ ET`,
			want:    []string{"Hello there."},
		},
		{
			name:    "hex string",
			content: `BT 72 720 Td <48656C6C6F> Tj ET`,
			want:    []string{"Hello"},
		},
		{
			name:    "odd hex digit pads with zero",
			content: `BT 72 720 Td <5> Tj ET`,
			want:    []string{"P"},
		},
		{
			name:    "whitespace inside hex pairs",
			content: "BT 72 720 Td <4 86\t56C 6C6F> Tj ET",
			want:    []string{"Hello"},
		},
		{
			name:    "escaped parentheses",
			content: `BT 72 720 Td (a \(quiet\) word) Tj ET`,
			want:    []string{"a (quiet) word"},
		},
		{
			name:    "quote operator moves to next line",
			content: `BT 72 720 Td (first) Tj (second) ' ET`,
			want:    []string{"first", "second"},
		},
		{
			name: "text matrix changes split lines",
			content: `BT 9.96 0 0 9.96 56.64 793.56 Tm (header text) Tj
9.96 0 0 9.96 56.64 781.2 Tm (body text) Tj ET`,
			want: []string{"header text", "body text"},
		},
		{
			name: "matrix with same y keeps the line",
			content: `BT 9.96 0 0 9.96 56.64 793.56 Tm (left) Tj
9.96 0 0 9.96 208.08 793.56 Tm ( right) Tj ET`,
			want: []string{"left right"},
		},
		{
			name:    "T star breaks the line",
			content: `BT 72 720 Td (one) Tj T* (two) Tj ET`,
			want:    []string{"one", "two"},
		},
		{
			name: "marked content and names ignored",
			content: `/Artifact <</Subtype /Header >>BDC
BT /CS0 cs 0 scn /TT0 1 Tf 72 720 Td (kept) Tj ET EMC`,
			want: []string{"kept"},
		},
		{
			name:    "blank-only output dropped",
			content: `BT 72 720 Td ( ) Tj 0 -12 Td (   ) Tj ET`,
			want:    nil,
		},
		{
			name:    "empty stream",
			content: ``,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines([]byte(tt.content))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinesZeroYVariants(t *testing.T) {
	// "0.0" and "-0" are still zero moves.
	content := `BT 72 720 Td (He) Tj 10 0.0 Td (l) Tj 10 -0 Td (lo) Tj ET`
	want := []string{"Hello"}
	if got := Lines([]byte(content)); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}
