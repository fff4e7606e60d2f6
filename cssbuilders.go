package bib2html

import "fmt"

// buildHighlightCSS generates a color override for starred author names.
// Emitted after the base style so it wins the cascade.
func buildHighlightCSS(color string) string {
	return fmt.Sprintf("span.selected { color: %s; }\n", color)
}

// isValidColor reports whether color is a CSS hex color (#RGB, #RRGGBB)
// or a plain color keyword. Anything else is rejected so the generated
// style block never carries arbitrary declarations.
func isValidColor(color string) bool {
	if color == "" {
		return false
	}

	if color[0] == '#' {
		hex := color[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		for _, c := range hex {
			if !isHexDigit(c) {
				return false
			}
		}
		return true
	}

	// Color keyword: letters only ("navy", "darkgreen", ...)
	if len(color) > 30 {
		return false
	}
	for _, c := range color {
		if !('a' <= c && c <= 'z') && !('A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// buildPrintCSS generates the print rules injected before PDF export.
// Records and the headings above them must not split across pages.
func buildPrintCSS() string {
	return `
/* Print: keep each record on one page */
li {
  break-inside: avoid;
  page-break-inside: avoid;
}

/* Print: no heading alone at a page bottom */
h1, h2, h3 {
  break-after: avoid;
  page-break-after: avoid;
}
`
}
