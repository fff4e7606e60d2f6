package bibtex

import (
	"sort"
	"strings"
)

// translations is the fixed LaTeX-to-HTML table. Kept as an ordered
// list so the substitution scan can try longer patterns first; sorted
// once at init to keep the ordering invariant independent of how the
// table is edited.
var translations = []struct {
	pattern string
	repl    string
}{
	{`$^{\circ}$`, "°"}, // degree
	{`$\beta$`, "β"},
	{`{\AE}`, "Æ"},
	{`{\O}`, "Ø"},
	{`{\AA}`, "Å"},
	{`{\ae}`, "æ"},
	{`{\o}`, "ø"},
	{`{\aa}`, "å"},
	{`\&`, "&"},
}

func init() {
	sort.SliceStable(translations, func(i, j int) bool {
		return len(translations[i].pattern) > len(translations[j].pattern)
	})
}

// Translate replaces the supported LaTeX constructs with HTML or
// Unicode equivalents: the fixed character table above plus the
// italics commands \emph{...} and \textit{...}, which become
// <i>...</i> with nested braces preserved. Unknown constructs pass
// through unchanged; translation never fails.
func Translate(s string) string {
	return applyTable(translateItalics(s))
}

// applyTable walks the input once, replacing the longest matching
// table pattern at each position.
func applyTable(s string) string {
	if !strings.ContainsAny(s, `\$`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
scan:
	for i < len(s) {
		c := s[i]
		if c == '$' || c == '{' || c == '\\' {
			for _, t := range translations {
				if strings.HasPrefix(s[i:], t.pattern) {
					b.WriteString(t.repl)
					i += len(t.pattern)
					continue scan
				}
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// translateItalics rewrites \emph{...} and \textit{...} as <i>...</i>.
// Arguments are brace-matched rather than regexp-matched so nested
// groups survive, and are translated recursively. An unterminated
// command passes through unchanged.
func translateItalics(s string) string {
	if !strings.Contains(s, `\emph{`) && !strings.Contains(s, `\textit{`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	i := 0
	for i < len(s) {
		rest := s[i:]
		var cmd string
		switch {
		case strings.HasPrefix(rest, `\emph{`):
			cmd = `\emph{`
		case strings.HasPrefix(rest, `\textit{`):
			cmd = `\textit{`
		default:
			b.WriteByte(s[i])
			i++
			continue
		}
		arg, next, ok := braceArg(s, i+len(cmd))
		if !ok {
			b.WriteString(rest)
			break
		}
		b.WriteString("<i>")
		b.WriteString(translateItalics(arg))
		b.WriteString("</i>")
		i = next
	}
	return b.String()
}

// braceArg scans a brace-matched argument starting just inside the
// opening brace, returning the argument and the index past its close.
func braceArg(s string, start int) (arg string, next int, ok bool) {
	depth := 1
	i := start
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
			if depth == 0 {
				return s[start : i-1], i, true
			}
		default:
			i++
		}
	}
	return "", 0, false
}

// StripBraces removes the brace characters BibTeX uses for case
// protection, keeping their content. Title fields are cleaned this way
// after translation.
func StripBraces(s string) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '{' || r == '}' {
			return -1
		}
		return r
	}, s)
}
