package pipeline

import (
	"html"
	"regexp"
	"strings"

	"github.com/alnah/go-bib2html/internal/bibtex"
)

// Defaults for link targets the reference listing hardcoded.
const (
	DefaultDOIBase = "http://dx.doi.org/"
	DefaultPDFDir  = "./pdf"
)

// Markup constants. Names use non-breaking spaces so they never wrap,
// page ranges use an en dash.
const (
	nbsp   = " "
	enDash = "–"
	indent = "    "
)

// dashRuns matches hyphen runs in page ranges; BibTeX sources write
// both 100-110 and 100--110.
var dashRuns = regexp.MustCompile(`-+`)

// RecordRenderer builds one HTML list item per article entry.
type RecordRenderer struct {
	doiBase string
	pdfDir  string
}

// NewRecordRenderer creates a RecordRenderer. Empty arguments fall back
// to DefaultDOIBase and DefaultPDFDir.
func NewRecordRenderer(doiBase, pdfDir string) *RecordRenderer {
	if doiBase == "" {
		doiBase = DefaultDOIBase
	}
	if pdfDir == "" {
		pdfDir = DefaultPDFDir
	}
	return &RecordRenderer{doiBase: doiBase, pdfDir: pdfDir}
}

// RenderRecord renders an article entry as one <li> fragment. Every
// field is optional: absence omits the span or link, never the record.
// Returned warnings are star-author anomalies, prefixed with the entry
// key.
func (r *RecordRenderer) RenderRecord(e bibtex.Entry) (string, []string) {
	authors, warnings := starredAuthors(e)

	var b strings.Builder
	b.Grow(512)
	b.WriteString("<li>\n")

	writeAuthors(&b, authors)

	if year := e.Fields["year"]; year != "" {
		b.WriteString(indent + `<span class="year">` + year + "</span>,\n")
	}
	if title := cleanTitle(e.Fields["title"]); title != "" {
		b.WriteString(indent + `<span class="title">` + "\n")
		b.WriteString(indent + indent + title + "\n")
		b.WriteString(indent + "</span>\n")
	}
	if journal := bibtex.Translate(e.Fields["journal"]); journal != "" {
		b.WriteString(indent + `<span class="journal">` + journal + "</span>,\n")
	}
	if volume := e.Fields["volume"]; volume != "" {
		b.WriteString(indent + `<span class="volume">` + volume + "</span>,\n")
	}
	pages := e.Fields["pages"]
	if pages != "" {
		pages = dashRuns.ReplaceAllString(pages, enDash)
		b.WriteString(indent + `<span class="pages">` + pages + "</span>.\n")
	}
	// The doi is shown as text only when there is no page range to end
	// the citation line.
	if doi := e.Fields["doi"]; doi != "" && pages == "" {
		b.WriteString(indent + `<span class="doi">doi:` + doi + "</span>,\n")
	}

	writeLinks(&b, r.primaryURL(e), r.pdfHref(e))

	b.WriteString("</li>\n")
	return b.String(), prefixWarnings(e.Key, warnings)
}

// starredAuthors translates the author names and star fragments, then
// resolves which authors are highlighted.
func starredAuthors(e bibtex.Entry) ([]bibtex.Author, []string) {
	names := bibtex.SplitAuthors(e.Fields["author"])
	for i, n := range names {
		names[i] = bibtex.Translate(n)
	}
	frags := bibtex.SplitStars(e.Fields["star_author"])
	for i, f := range frags {
		frags[i] = bibtex.Translate(f)
	}
	return bibtex.MarkStars(names, frags)
}

// writeAuthors emits the author span: a single author plain, two joined
// with "and", three or more comma-separated with "and" before the last.
func writeAuthors(b *strings.Builder, authors []bibtex.Author) {
	if len(authors) == 0 {
		return
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		name := strings.ReplaceAll(a.Name, " ", nbsp)
		if a.Starred {
			name = `<span class="selected">` + name + `</span>`
		}
		names[i] = name
	}

	b.WriteString(indent + `<span class="author">` + "\n")
	switch len(names) {
	case 1:
		b.WriteString(indent + indent + names[0] + "\n")
	case 2:
		b.WriteString(indent + indent + names[0] + "\n")
		b.WriteString(indent + indent + "and " + names[1] + "\n")
	default:
		for _, n := range names[:len(names)-1] {
			b.WriteString(indent + indent + n + ",\n")
		}
		b.WriteString(indent + indent + "and " + names[len(names)-1] + "\n")
	}
	b.WriteString(indent + "</span>\n")
}

// writeLinks emits the trailing [ pdf | link ] bracket. Either link may
// be absent; with neither, no bracket is written.
func writeLinks(b *strings.Builder, primary, pdf string) {
	if primary == "" && pdf == "" {
		return
	}
	b.WriteString(indent + "<br>[" + nbsp)
	if pdf != "" {
		b.WriteString(`<a href="` + html.EscapeString(pdf) + `">pdf</a>`)
	}
	if pdf != "" && primary != "" {
		b.WriteString(" |\n" + indent + indent + "  ")
	}
	if primary != "" {
		b.WriteString(`<a href="` + html.EscapeString(primary) + `">link</a>`)
	}
	b.WriteString(nbsp + "]\n")
}

// primaryURL resolves the record's main link target: the DOI resolver
// URL when a doi exists, else the url field, else nothing.
func (r *RecordRenderer) primaryURL(e bibtex.Entry) string {
	if doi := e.Fields["doi"]; doi != "" {
		return r.doiBase + doi
	}
	return e.Fields["url"]
}

// pdfHref builds the local pdf link, filed under the publication year
// when one exists.
func (r *RecordRenderer) pdfHref(e bibtex.Entry) string {
	pdf := e.Fields["pdf"]
	if pdf == "" {
		return ""
	}
	if year := e.Fields["year"]; year != "" {
		return r.pdfDir + "/" + year + "/" + pdf
	}
	return r.pdfDir + "/" + pdf
}

// cleanTitle translates LaTeX first so table constructs are consumed,
// then strips the protective braces BibTeX uses for casing.
func cleanTitle(title string) string {
	return bibtex.StripBraces(bibtex.Translate(title))
}

func prefixWarnings(key string, warnings []string) []string {
	if key == "" || len(warnings) == 0 {
		return warnings
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = "entry " + key + ": " + w
	}
	return out
}
