// Package bibtex scans BibTeX source text into tagged entries and
// provides the LaTeX-to-HTML translation and author helpers used when
// rendering a publication listing.
package bibtex

import "strings"

// Kind classifies a scanned entry.
type Kind int

// Entry kinds. Articles render, comments pass content through, other
// entry types are retained but produce no output.
const (
	KindArticle Kind = iota
	KindComment
	KindOther
)

// Entry is one balanced @type{...} block from a BibTeX file.
// Articles carry Key and Fields; comments carry Label and Body.
// Entries are immutable once returned by Parse.
type Entry struct {
	Kind   Kind
	Type   string            // entry type, lowercased ("article", "comment", "book", ...)
	Key    string            // citation key for keyed entries
	Label  string            // comment label, lowercased ("html", "markdown", ...)
	Body   string            // comment body, verbatim
	Fields map[string]string // field names lowercased, values raw
}

// Parse scans BibTeX source into entries, preserving input order.
// Parsing is best-effort and never fails: unrecognized entry types are
// returned as KindOther, malformed or unterminated trailing entries are
// dropped, and text between entries (including % comment lines) is
// ignored.
func Parse(src string) []Entry {
	s := scanner{src: src}
	var entries []Entry
	for {
		s.skipSpace()
		if s.eof() {
			return entries
		}
		if s.src[s.i] != '@' {
			s.i++
			continue
		}
		s.i++
		typ := strings.ToLower(s.ident())
		s.skipSpace()
		if s.eof() || s.src[s.i] != '{' {
			// Stray @ or unbraced directive. Resume at the next @.
			continue
		}
		s.i++

		if typ == "comment" {
			if e, ok := s.comment(); ok {
				entries = append(entries, e)
			}
			continue
		}
		if e, ok := s.keyed(typ); ok {
			entries = append(entries, e)
		}
	}
}

type scanner struct {
	src string
	i   int
}

func (s *scanner) eof() bool { return s.i >= len(s.src) }

// skipSpace advances past whitespace and % line comments.
func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.src[s.i] {
		case '%':
			for !s.eof() && s.src[s.i] != '\n' {
				s.i++
			}
		case ' ', '\t', '\r', '\n':
			s.i++
		default:
			return
		}
	}
}

// ident reads a run of ASCII letters.
func (s *scanner) ident() string {
	start := s.i
	for !s.eof() {
		c := s.src[s.i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			s.i++
			continue
		}
		break
	}
	return s.src[start:s.i]
}

// fieldName reads a BibTeX field name (letters, digits, underscore).
func (s *scanner) fieldName() string {
	start := s.i
	for !s.eof() {
		c := s.src[s.i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') ||
			('0' <= c && c <= '9') || c == '_' || c == '-' {
			s.i++
			continue
		}
		break
	}
	return strings.ToLower(s.src[start:s.i])
}

// balanced consumes up to the brace matching an already-consumed '{',
// honoring nested braces and backslash escapes. The closing brace is
// consumed but not included in the returned text.
func (s *scanner) balanced() (string, bool) {
	start := s.i
	depth := 1
	for !s.eof() {
		switch s.src[s.i] {
		case '\\':
			s.i += 2
		case '{':
			depth++
			s.i++
		case '}':
			depth--
			s.i++
			if depth == 0 {
				return s.src[start : s.i-1], true
			}
		default:
			s.i++
		}
	}
	return "", false
}

// comment scans an @comment{label, body} or @comment{label: body}
// block. The opening brace is already consumed. A comment without a
// label separator gets an empty label and is ignored by rendering.
func (s *scanner) comment() (Entry, bool) {
	raw, ok := s.balanced()
	if !ok {
		return Entry{}, false
	}
	label, body := splitComment(raw)
	return Entry{
		Kind:  KindComment,
		Type:  "comment",
		Label: strings.ToLower(strings.TrimSpace(label)),
		Body:  body,
	}, true
}

// splitComment splits a raw comment on the first top-level ',' or ':'.
func splitComment(raw string) (label, body string) {
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',', ':':
			if depth == 0 {
				return raw[:i], raw[i+1:]
			}
		}
	}
	return "", raw
}

// keyed scans the key and fields of an @type{key, ...} entry. The
// opening brace is already consumed. Articles get their fields parsed;
// every other keyed type is consumed whole and tagged KindOther.
func (s *scanner) keyed(typ string) (Entry, bool) {
	if typ != "article" {
		raw, ok := s.balanced()
		if !ok {
			return Entry{}, false
		}
		key := raw
		if j := strings.IndexByte(raw, ','); j >= 0 {
			key = raw[:j]
		}
		return Entry{Kind: KindOther, Type: typ, Key: strings.TrimSpace(key)}, true
	}

	key, ok := s.key()
	if !ok {
		return Entry{}, false
	}
	fields := make(map[string]string)
	for {
		s.skipSpace()
		if s.eof() {
			// Unterminated entry, dropped per the best-effort policy.
			return Entry{}, false
		}
		if s.src[s.i] == '}' {
			s.i++
			break
		}
		name := s.fieldName()
		if name == "" {
			if !s.skipField() {
				return Entry{}, false
			}
			continue
		}
		s.skipSpace()
		if s.eof() || s.src[s.i] != '=' {
			if !s.skipField() {
				return Entry{}, false
			}
			continue
		}
		s.i++
		s.skipSpace()
		value, ok := s.value()
		if !ok {
			return Entry{}, false
		}
		fields[name] = normalizeSpace(value) // duplicate names: last wins
		s.skipSpace()
		if !s.eof() && s.src[s.i] == ',' {
			s.i++
		}
	}
	return Entry{Kind: KindArticle, Type: typ, Key: key, Fields: fields}, true
}

// key reads the citation key up to the first ',' or the entry's own
// closing '}' (a keyed entry with no fields).
func (s *scanner) key() (string, bool) {
	s.skipSpace()
	start := s.i
	for !s.eof() {
		switch s.src[s.i] {
		case ',':
			key := strings.TrimSpace(s.src[start:s.i])
			s.i++
			return key, true
		case '}':
			return strings.TrimSpace(s.src[start:s.i]), true
		default:
			s.i++
		}
	}
	return "", false
}

// value reads one field value: {...} brace-delimited with the outer
// braces stripped, "..." quote-delimited, or bare up to the next
// top-level ',' or '}'.
func (s *scanner) value() (string, bool) {
	if s.eof() {
		return "", false
	}
	switch s.src[s.i] {
	case '{':
		s.i++
		return s.balanced()
	case '"':
		s.i++
		start := s.i
		for !s.eof() {
			switch s.src[s.i] {
			case '\\':
				s.i += 2
			case '"':
				v := s.src[start:s.i]
				s.i++
				return v, true
			default:
				s.i++
			}
		}
		return "", false
	default:
		start := s.i
		for !s.eof() && s.src[s.i] != ',' && s.src[s.i] != '}' {
			s.i++
		}
		return s.src[start:s.i], true
	}
}

// skipField resynchronizes after a malformed field by consuming up to
// the next top-level ',' or the entry's closing '}'.
func (s *scanner) skipField() bool {
	depth := 0
	for !s.eof() {
		switch s.src[s.i] {
		case '\\':
			s.i += 2
		case '{':
			depth++
			s.i++
		case '}':
			if depth == 0 {
				return true // leave for keyed to consume
			}
			depth--
			s.i++
		case ',':
			if depth == 0 {
				s.i++
				return true
			}
			s.i++
		default:
			s.i++
		}
	}
	return false
}

// normalizeSpace collapses whitespace runs to single spaces, joining
// values that continue across lines in the source.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
