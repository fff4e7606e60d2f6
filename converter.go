package bib2html

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-bib2html/internal/assets"
	"github.com/alnah/go-bib2html/internal/bibtex"
	"github.com/alnah/go-bib2html/internal/fileutil"
	"github.com/alnah/go-bib2html/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector       = (*pipeline.CSSInjection)(nil)
	_ pdfExporter                = (*rodExporter)(nil)
	_ pdfRenderer                = (*rodRenderer)(nil)
)

// Converter orchestrates the BibTeX-to-HTML conversion pipeline.
// Create with New(), use Convert() for conversion, and Close() when done.
// Safe for sequential reuse; the browser (PDF export only) is launched
// lazily on first use and shared across conversions.
type Converter struct {
	cfg               converterConfig
	styleLoader       assets.StyleLoader // internal loader
	publicStyleLoader StyleLoader        // public loader (from WithStyleLoader)
	records           *pipeline.RecordRenderer
	markdown          pipeline.MarkdownConverter
	cssInjector       pipeline.CSSInjector
	pdfExporter       pdfExporter
}

// publicToInternalAdapter wraps a public StyleLoader to the internal interface.
type publicToInternalAdapter struct {
	pub StyleLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

// New creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithTimeout, WithPDFExport).
// Returns error if style resolution or option validation fails.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		styleLoader: assets.NewEmbeddedLoader(),
		markdown:    pipeline.NewGoldmarkConverter(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithStylePath: resolve to custom-first loader
	if c.cfg.stylePath != "" {
		resolver, err := assets.NewStyleResolver(c.cfg.stylePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStylePath, err)
		}
		c.styleLoader = resolver
	}

	// Handle WithStyleLoader (public interface): wrap to internal interface
	if c.publicStyleLoader != nil {
		c.styleLoader = &publicToInternalAdapter{pub: c.publicStyleLoader}
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.cfg.highlightColor != "" && !isValidColor(c.cfg.highlightColor) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHighlightColor, c.cfg.highlightColor)
	}

	if c.cfg.pdfExport {
		if err := c.cfg.page.Validate(); err != nil {
			return nil, err
		}
	}

	c.records = pipeline.NewRecordRenderer(c.cfg.doiBase, c.cfg.pdfDir)

	// Create PDF exporter if enabled and not injected (e.g., by tests)
	if c.cfg.pdfExport && c.pdfExporter == nil {
		c.pdfExporter = newRodExporter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline and returns the result containing HTML and,
// when export is enabled, PDF bytes. The context is used for cancellation
// and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	entries := bibtex.Parse(input.BibTeX)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	doc := &pipeline.DocumentRenderer{
		Title:    input.Title,
		Lang:     input.Lang,
		Style:    c.documentStyle(),
		Date:     input.GeneratedDate,
		Records:  c.records,
		Markdown: c.markdown,
	}
	htmlContent, warnings, err := doc.RenderDocument(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	// Caller CSS goes in last so it can override the document style
	if input.CSS != "" {
		htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, input.CSS)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	articles, skipped := countEntries(entries)
	res := &Result{
		HTML:     []byte(htmlContent),
		Articles: articles,
		Skipped:  skipped,
		Warnings: warnings,
	}

	if !c.cfg.pdfExport {
		return res, nil
	}

	// Rewrite relative links to absolute file:// URLs so they survive the
	// temp-file round-trip through the browser (if source directory provided)
	pdfHTML := htmlContent
	if input.SourceDir != "" {
		pdfHTML, err = pipeline.RewriteRelativePaths(pdfHTML, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}
	pdfHTML = c.cssInjector.InjectCSS(ctx, pdfHTML, buildPrintCSS())

	pdfBytes, err := c.pdfExporter.ExportPDF(ctx, pdfHTML, c.cfg.page)
	if err != nil {
		return nil, fmt.Errorf("exporting PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser, PDF export only).
func (c *Converter) Close() error {
	if c.pdfExporter != nil {
		return c.pdfExporter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. Called during New() after options are applied and the style
// loader is configured. With nothing configured the default style is
// loaded, so the document always carries a palette.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use style loader
	css, err := c.styleLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertStyleError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// documentStyle composes the CSS for the document <style> block: the
// resolved base style plus the optional starred-author color override.
func (c *Converter) documentStyle() string {
	style := c.cfg.resolvedStyle
	if c.cfg.highlightColor != "" {
		style += "\n" + buildHighlightCSS(c.cfg.highlightColor)
	}
	return style
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config
// load time. Both paths converge here, ensuring all inputs are validated
// before processing.
func (c *Converter) validateInput(input Input) error {
	if input.BibTeX == "" {
		return ErrEmptyBibTeX
	}
	if len(input.BibTeX) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(input.BibTeX), MaxInputSize)
	}
	return nil
}

// countEntries tallies rendered articles and skipped entry types.
// Comments are neither: they contribute blocks, not records.
func countEntries(entries []bibtex.Entry) (articles, skipped int) {
	for _, e := range entries {
		switch e.Kind {
		case bibtex.KindArticle:
			articles++
		case bibtex.KindOther:
			skipped++
		}
	}
	return articles, skipped
}
