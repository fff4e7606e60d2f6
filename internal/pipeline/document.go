package pipeline

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-bib2html/internal/bibtex"
)

// DefaultTitle is used when no page title is configured.
const DefaultTitle = "Publications"

// DocumentRenderer assembles the complete HTML page from scanned
// entries: article records grouped in ordered lists, interrupted by
// comment blocks, wrapped in a static head/body template.
type DocumentRenderer struct {
	Title    string
	Lang     string
	Style    string            // CSS for the document <style> block
	Date     string            // resolved footer date; empty omits the line
	Records  *RecordRenderer   // required
	Markdown MarkdownConverter // optional; nil drops markdown comments
}

// RenderDocument renders entries in input order. Articles open an <ol>
// when none is open; html and markdown comments close it and emit their
// block, so comment headings sit between numbered lists. Other entry
// kinds contribute nothing but never reorder the remainder.
func (r *DocumentRenderer) RenderDocument(ctx context.Context, entries []bibtex.Entry) (string, []string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.Grow(2048)
	r.writeHead(&b)

	var warnings []string
	inList := false
	for _, e := range entries {
		switch e.Kind {
		case bibtex.KindArticle:
			if !inList {
				b.WriteString("\n<ol>\n")
				inList = true
			}
			rec, warns := r.Records.RenderRecord(e)
			b.WriteString(rec)
			warnings = append(warnings, warns...)

		case bibtex.KindComment:
			block, recognized, err := r.commentBlock(ctx, e)
			if err != nil {
				return "", warnings, err
			}
			if !recognized {
				continue
			}
			if inList {
				b.WriteString("</ol>\n")
				inList = false
			}
			b.WriteString("\n" + block + "\n")

		default:
			// Non-article entry types are retained by the scanner but
			// render nothing.
		}
	}
	if inList {
		b.WriteString("</ol>\n")
	}

	r.writeFoot(&b)
	return b.String(), warnings, nil
}

// commentBlock resolves a comment entry to its rendered block. Raw html
// passes through verbatim, markdown is converted to a fragment, and any
// other label is ignored.
func (r *DocumentRenderer) commentBlock(ctx context.Context, e bibtex.Entry) (string, bool, error) {
	body := strings.TrimSpace(e.Body)
	switch e.Label {
	case "html":
		return body, true, nil
	case "markdown":
		if r.Markdown == nil {
			return "", false, nil
		}
		frag, err := r.Markdown.ToHTML(ctx, body)
		if err != nil {
			return "", false, fmt.Errorf("rendering markdown comment: %w", err)
		}
		return strings.TrimSpace(frag), true, nil
	default:
		return "", false, nil
	}
}

func (r *DocumentRenderer) writeHead(b *strings.Builder) {
	lang := r.Lang
	if lang == "" {
		lang = "en"
	}
	title := r.Title
	if title == "" {
		title = DefaultTitle
	}

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="` + html.EscapeString(lang) + `">` + "\n")
	b.WriteString("<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	if r.Style != "" {
		b.WriteString("<style>\n")
		b.WriteString(sanitizeCSS(r.Style))
		if !strings.HasSuffix(r.Style, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("</style>\n")
	}
	b.WriteString("</head>\n\n<body>\n")
}

func (r *DocumentRenderer) writeFoot(b *strings.Builder) {
	if r.Date != "" {
		b.WriteString("\n" + `<p class="generated">Generated ` + html.EscapeString(r.Date) + "</p>\n")
	}
	b.WriteString("\n</body>\n</html>\n")
}
