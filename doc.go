// Package bib2html converts BibTeX bibliographies to HTML publication listings.
//
// # Quick Start
//
// Create a converter, convert a bibliography, and close when done:
//
//	conv, err := bib2html.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, bib2html.Input{
//	    BibTeX: "@article{k1, author = {Jon Smith}, title = {Arctic Data}, year = {2020}}",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("pubs.html", result.HTML, 0644)
//
// The result contains the HTML document (result.HTML), the number of
// rendered articles (result.Articles), and any warnings collected along
// the way (result.Warnings). With PDF export enabled, result.PDF holds
// the rendered PDF bytes as well.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. BibTeX scanning into tagged entries (articles, comments, other)
//  2. LaTeX-to-HTML character translation and author star matching
//  3. Record and document rendering (ordered lists, comment blocks)
//  4. Markdown comment rendering via Goldmark (GFM, syntax highlighting)
//  5. Optional PDF rendering via headless Chrome (go-rod)
//
// Articles render in input order; @comment{html, ...} blocks pass
// through verbatim between lists, and @comment{markdown, ...} blocks
// are rendered to HTML. Every other entry type is consumed without
// output and counted in result.Skipped.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := bib2html.New(
//	    bib2html.WithStyle("plain"),
//	    bib2html.WithDOIBase("https://doi.org/"),
//	    bib2html.WithPDFExport(nil),
//	    bib2html.WithTimeout(2 * time.Minute),
//	)
//
// Per-conversion values are passed via Input:
//
//	result, err := conv.Convert(ctx, bib2html.Input{
//	    BibTeX:        content,
//	    Title:         "Publications",
//	    GeneratedDate: "2026-08-25",         // footer line; empty omits it
//	    CSS:           "body { margin: 2em; }",
//	    SourceDir:     "/path/to/bibliography", // for relative links in PDF export
//	})
//
// # Custom Styles
//
// WithStyle accepts a built-in style name ("classic", "plain"), a path
// to a .css file, or raw CSS content. Additional styles can be loaded
// from a directory with custom-first fallback to the embedded set:
//
//	loader, err := bib2html.NewStyleLoader("/path/to/styles-dir")
//	conv, err := bib2html.New(bib2html.WithStyleLoader(loader))
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// HTML-only conversion never touches a browser.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package bib2html
