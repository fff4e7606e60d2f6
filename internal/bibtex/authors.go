package bibtex

import (
	"fmt"
	"strings"
)

// Author is one display-ready author name.
type Author struct {
	Name    string
	Starred bool
}

// SplitAuthors splits a BibTeX author field on the " and " separator.
// Parts are trimmed and empties dropped; values are returned raw, the
// caller translates them.
func SplitAuthors(field string) []string {
	return splitClean(field, " and ")
}

// SplitStars splits a star_author field into match fragments. Both
// " and " and commas act as separators.
func SplitStars(field string) []string {
	var out []string
	for _, part := range splitClean(field, " and ") {
		out = append(out, splitClean(part, ",")...)
	}
	return out
}

func splitClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MarkStars resolves star fragments against author names. Both sides
// are expected in translated form. A fragment stars the single author
// containing it as a case-sensitive substring; fragments matching zero
// or several authors are skipped with a warning rather than guessed.
func MarkStars(names []string, fragments []string) ([]Author, []string) {
	authors := make([]Author, len(names))
	for i, n := range names {
		authors[i] = Author{Name: n}
	}
	var warnings []string
	for _, frag := range fragments {
		matched := -1
		unique := true
		for i, n := range names {
			if !strings.Contains(n, frag) {
				continue
			}
			if matched >= 0 {
				unique = false
				break
			}
			matched = i
		}
		switch {
		case matched < 0:
			warnings = append(warnings, fmt.Sprintf("star author %q matches no author", frag))
		case !unique:
			warnings = append(warnings, fmt.Sprintf("star author %q matches more than one author", frag))
		default:
			authors[matched].Starred = true
		}
	}
	return authors, warnings
}
