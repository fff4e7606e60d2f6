package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-bib2html/internal/bibtex"
)

func testDocumentRenderer() *DocumentRenderer {
	return &DocumentRenderer{
		Records:  NewRecordRenderer("", ""),
		Markdown: NewGoldmarkConverter(),
	}
}

// ---------------------------------------------------------------------------
// TestRenderDocument - Structure
// ---------------------------------------------------------------------------

func TestRenderDocument_Structure(t *testing.T) {
	t.Parallel()

	src := `@article{k1, author = {Jon Smith}, title = {A Study}, journal = {J. Test}, year = {2020}}`

	r := testDocumentRenderer()
	r.Title = "Group publications"
	r.Style = "span.author {color: #008000}"

	got, _, err := r.RenderDocument(context.Background(), bibtex.Parse(src))
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	wantContains := []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`<meta charset="utf-8">`,
		"<title>Group publications</title>",
		"<style>",
		"span.author {color: #008000}",
		"<ol>",
		"<li>",
		"A Study",
		"</li>",
		"</ol>",
		"</body>",
		"</html>",
	}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("RenderDocument() missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderDocument_DefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(*DocumentRenderer)
		wantContains []string
	}{
		{
			name:         "default title",
			mutate:       func(*DocumentRenderer) {},
			wantContains: []string{"<title>Publications</title>"},
		},
		{
			name:         "title escaped",
			mutate:       func(r *DocumentRenderer) { r.Title = "Fish & Chips <lab>" },
			wantContains: []string{"<title>Fish &amp; Chips &lt;lab&gt;</title>"},
		},
		{
			name:         "language override",
			mutate:       func(r *DocumentRenderer) { r.Lang = "nb" },
			wantContains: []string{`<html lang="nb">`},
		},
		{
			name:         "generated date footer",
			mutate:       func(r *DocumentRenderer) { r.Date = "2026-08-25" },
			wantContains: []string{`<p class="generated">Generated 2026-08-25</p>`},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := testDocumentRenderer()
			tt.mutate(r)

			got, _, err := r.RenderDocument(context.Background(), nil)
			if err != nil {
				t.Fatalf("RenderDocument() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderDocument() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestRenderDocument_NoDateNoFooterLine(t *testing.T) {
	t.Parallel()

	r := testDocumentRenderer()
	got, _, err := r.RenderDocument(context.Background(), nil)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if strings.Contains(got, `class="generated"`) {
		t.Errorf("RenderDocument() = %q, footer line should be absent", got)
	}
}

// ---------------------------------------------------------------------------
// TestRenderDocument - List Grouping
// ---------------------------------------------------------------------------

func TestRenderDocument_ListGrouping(t *testing.T) {
	t.Parallel()

	src := `
@article{a1, title = {First}}
@comment{html, <h2>2019</h2>}
@article{a2, title = {Second}}
@article{a3, title = {Third}}
`
	r := testDocumentRenderer()
	got, _, err := r.RenderDocument(context.Background(), bibtex.Parse(src))
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if n := strings.Count(got, "<ol>"); n != 2 {
		t.Errorf("got %d <ol> lists, want 2:\n%s", n, got)
	}
	if n := strings.Count(got, "</ol>"); n != 2 {
		t.Errorf("got %d </ol> closers, want 2", n)
	}
	if n := strings.Count(got, "<li>"); n != 3 {
		t.Errorf("got %d records, want 3", n)
	}
	if !strings.Contains(got, "<h2>2019</h2>") {
		t.Errorf("RenderDocument() missing verbatim html block:\n%s", got)
	}

	// The heading belongs between the two lists.
	heading := strings.Index(got, "<h2>2019</h2>")
	firstClose := strings.Index(got, "</ol>")
	secondOpen := strings.LastIndex(got, "<ol>")
	if !(firstClose < heading && heading < secondOpen) {
		t.Errorf("html block not between lists: close=%d heading=%d open=%d", firstClose, heading, secondOpen)
	}
}

func TestRenderDocument_OrderPreserved(t *testing.T) {
	t.Parallel()

	src := `
@article{a, title = {Alpha}}
@book{skip1, title = {Skipped}}
@article{b, title = {Beta}}
@misc{skip2, note = {Skipped}}
@article{c, title = {Gamma}}
`
	r := testDocumentRenderer()
	got, _, err := r.RenderDocument(context.Background(), bibtex.Parse(src))
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if n := strings.Count(got, "<li>"); n != 3 {
		t.Errorf("got %d records, want 3", n)
	}
	if strings.Contains(got, "Skipped") {
		t.Errorf("non-article content leaked into output:\n%s", got)
	}

	ia := strings.Index(got, "Alpha")
	ib := strings.Index(got, "Beta")
	ic := strings.Index(got, "Gamma")
	if !(ia < ib && ib < ic) {
		t.Errorf("records out of order: Alpha=%d Beta=%d Gamma=%d", ia, ib, ic)
	}
	// A single uninterrupted list.
	if n := strings.Count(got, "<ol>"); n != 1 {
		t.Errorf("got %d <ol> lists, want 1", n)
	}
}

// ---------------------------------------------------------------------------
// TestRenderDocument - Comment Blocks
// ---------------------------------------------------------------------------

func TestRenderDocument_Comments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		src          string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "html comment verbatim and unescaped",
			src:          `@comment{html, <h2 class="section">In review</h2>}`,
			wantContains: []string{`<h2 class="section">In review</h2>`},
		},
		{
			name:         "colon separator accepted",
			src:          `@comment{html: <hr>}`,
			wantContains: []string{"<hr>"},
		},
		{
			name:         "markdown comment rendered",
			src:          "@comment{markdown, ## Selected papers}",
			wantContains: []string{`<h2 id="selected-papers">Selected papers</h2>`},
		},
		{
			name:         "unknown label ignored",
			src:          `@comment{note, internal only}`,
			wantExcludes: []string{"internal only"},
		},
		{
			name:         "unlabeled comment ignored",
			src:          `@comment{jabref-meta}`,
			wantExcludes: []string{"jabref-meta"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := testDocumentRenderer()
			got, _, err := r.RenderDocument(context.Background(), bibtex.Parse(tt.src))
			if err != nil {
				t.Fatalf("RenderDocument() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderDocument() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RenderDocument() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestRenderDocument_UnknownLabelDoesNotSplitList(t *testing.T) {
	t.Parallel()

	src := `
@article{a1, title = {First}}
@comment{note, internal}
@article{a2, title = {Second}}
`
	r := testDocumentRenderer()
	got, _, err := r.RenderDocument(context.Background(), bibtex.Parse(src))
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if n := strings.Count(got, "<ol>"); n != 1 {
		t.Errorf("got %d <ol> lists, want 1 (ignored comment must not split)", n)
	}
}

func TestRenderDocument_NilMarkdownConverterIgnoresBlocks(t *testing.T) {
	t.Parallel()

	src := `
@article{a1, title = {First}}
@comment{markdown, ## Heading}
@article{a2, title = {Second}}
`
	r := testDocumentRenderer()
	r.Markdown = nil

	got, _, err := r.RenderDocument(context.Background(), bibtex.Parse(src))
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if strings.Contains(got, "Heading") {
		t.Errorf("markdown block rendered without a converter:\n%s", got)
	}
	if n := strings.Count(got, "<ol>"); n != 1 {
		t.Errorf("got %d <ol> lists, want 1", n)
	}
}

// ---------------------------------------------------------------------------
// TestRenderDocument - Warnings and Cancellation
// ---------------------------------------------------------------------------

func TestRenderDocument_CollectsWarnings(t *testing.T) {
	t.Parallel()

	src := `
@article{k1, author = {Jon Smith}, star_author = {Olsen}}
@article{k2, author = {Ann Smith and Jo Smithson}, star_author = {Smith}}
`
	r := testDocumentRenderer()
	_, warnings, err := r.RenderDocument(context.Background(), bibtex.Parse(src))
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings %v, want 2", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "entry k1") || !strings.Contains(warnings[1], "entry k2") {
		t.Errorf("warnings missing entry keys: %v", warnings)
	}
}

func TestRenderDocument_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := testDocumentRenderer()
	_, _, err := r.RenderDocument(ctx, bibtex.Parse(`@article{k1, title = {A}}`))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderDocument() error = %v, want context.Canceled", err)
	}
}

func TestRenderDocument_StyleCannotEscapeStyleTag(t *testing.T) {
	t.Parallel()

	r := testDocumentRenderer()
	r.Style = "</style><script>alert(1)</script>"

	got, _, err := r.RenderDocument(context.Background(), nil)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if strings.Contains(got, "</style><script>") {
		t.Errorf("style content escaped its block:\n%s", got)
	}
}
