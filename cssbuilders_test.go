package bib2html

// Notes:
// - buildHighlightCSS: tests the starred-author color override block
// - isValidColor: tests hex and keyword acceptance, rejection of anything
//   that could smuggle extra declarations into the style block
// - buildPrintCSS: tests the print rules injected before PDF export

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuildHighlightCSS - Highlight Override Generation
// ---------------------------------------------------------------------------

func TestBuildHighlightCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		color    string
		expected string
	}{
		{
			name:     "hex color",
			color:    "#0040A0",
			expected: "span.selected { color: #0040A0; }\n",
		},
		{
			name:     "short hex color",
			color:    "#fff",
			expected: "span.selected { color: #fff; }\n",
		},
		{
			name:     "keyword color",
			color:    "navy",
			expected: "span.selected { color: navy; }\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildHighlightCSS(tt.color)
			if got != tt.expected {
				t.Errorf("buildHighlightCSS(%q) = %q, want %q", tt.color, got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsValidColor - Color Validation
// ---------------------------------------------------------------------------

func TestIsValidColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		color    string
		expected bool
	}{
		{
			name:     "six digit hex",
			color:    "#0040A0",
			expected: true,
		},
		{
			name:     "three digit hex",
			color:    "#fff",
			expected: true,
		},
		{
			name:     "uppercase hex digits",
			color:    "#ABCDEF",
			expected: true,
		},
		{
			name:     "keyword",
			color:    "navy",
			expected: true,
		},
		{
			name:     "long keyword",
			color:    "lightgoldenrodyellow",
			expected: true,
		},
		{
			name:     "mixed case keyword",
			color:    "DarkGreen",
			expected: true,
		},
		{
			name:     "empty string",
			color:    "",
			expected: false,
		},
		{
			name:     "hex with invalid digit",
			color:    "#gg0000",
			expected: false,
		},
		{
			name:     "hex with wrong length",
			color:    "#12345",
			expected: false,
		},
		{
			name:     "bare hash",
			color:    "#",
			expected: false,
		},
		{
			name:     "rgb function rejected",
			color:    "rgb(0, 64, 160)",
			expected: false,
		},
		{
			name:     "injection attempt rejected",
			color:    "red; } body { display: none",
			expected: false,
		},
		{
			name:     "keyword with digits rejected",
			color:    "color4",
			expected: false,
		},
		{
			name:     "keyword over length limit rejected",
			color:    strings.Repeat("a", 31),
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := isValidColor(tt.color)
			if got != tt.expected {
				t.Errorf("isValidColor(%q) = %v, want %v", tt.color, got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPrintCSS - Print Rules Generation
// ---------------------------------------------------------------------------

func TestBuildPrintCSS(t *testing.T) {
	t.Parallel()

	got := buildPrintCSS()

	if got == "" {
		t.Fatal("buildPrintCSS() returned empty, want CSS")
	}

	for _, want := range []string{
		"li {",
		"break-inside: avoid",
		"page-break-inside: avoid",
		"h1, h2, h3 {",
		"break-after: avoid",
		"page-break-after: avoid",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("buildPrintCSS() missing %q\nGot:\n%s", want, got)
		}
	}
}
