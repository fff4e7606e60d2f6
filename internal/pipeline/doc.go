// Package pipeline implements the BibTeX-to-HTML rendering pipeline.
//
// This package turns scanned entries into the final document:
//   - one <li> record per article entry (author, year, title, journal,
//     volume and pages spans, star-author highlighting, trailing links)
//   - raw HTML and Markdown comment blocks between publication lists
//   - document assembly with an embedded style block and footer
//   - CSS injection and relative-link rewriting for the PDF export path
//
// PDF generation itself is handled by the root bib2html package using
// headless Chrome (go-rod). The pipeline stays concerned with document
// structure and content.
package pipeline
