package bib2html

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// MaxInputSize is the maximum accepted BibTeX source size in bytes.
// Bibliographies are small text files; anything larger is rejected
// before parsing starts.
const MaxInputSize = 16 << 20 // 16 MiB

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults). Zero values for
// individual fields also mean "use default" and are valid.
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.Size != "" && !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if p.Orientation != "" && !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	BibTeX        string // BibTeX source (required)
	Title         string // page <title>; empty uses the built-in default
	Lang          string // html lang attribute; empty uses "en"
	CSS           string // extra CSS appended after the document style (optional)
	GeneratedDate string // footer date line, already resolved; empty omits it
	SourceDir     string // base directory for relative links during PDF export (optional)
}

// Result holds conversion output.
type Result struct {
	HTML     []byte   // complete HTML document
	PDF      []byte   // nil unless the converter was created with WithPDFExport
	Articles int      // rendered @article records
	Skipped  int      // entries of other types, consumed without output
	Warnings []string // star-author anomalies and other non-fatal findings
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	styleInput     string
	resolvedStyle  string
	stylePath      string
	highlightColor string
	doiBase        string
	pdfDir         string
	pdfExport      bool
	page           *PageSettings
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("bib2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the document style. Accepts a built-in style name
// ("classic", "plain"), a path to a .css file, or raw CSS content.
// Resolution happens in New; an unknown name or unreadable path is a
// construction error.
func WithStyle(input string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = input
	}
}

// WithStylePath points the converter at a directory of custom styles
// (basePath/styles/{name}.css). Custom styles take precedence, with
// fallback to the embedded set for names not present there.
func WithStylePath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.stylePath = basePath
	}
}

// WithStyleLoader installs a custom style loader. Takes precedence over
// WithStylePath.
func WithStyleLoader(loader StyleLoader) Option {
	return func(c *Converter) {
		c.publicStyleLoader = loader
	}
}

// WithHighlightColor overrides the color of starred author names
// (span.selected). Accepts #RGB, #RRGGBB, or a CSS color name.
func WithHighlightColor(color string) Option {
	return func(c *Converter) {
		c.cfg.highlightColor = color
	}
}

// WithDOIBase sets the DOI resolver prefix used to build primary links
// from doi fields. Default is "http://dx.doi.org/".
func WithDOIBase(base string) Option {
	return func(c *Converter) {
		c.cfg.doiBase = base
	}
}

// WithPDFDir sets the directory prefix for bracket pdf links
// (<dir>/<year>/<file>). Default is "./pdf".
func WithPDFDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.pdfDir = dir
	}
}

// WithPDFExport enables PDF rendering of the finished document.
// Pass nil to use default page settings (US Letter, portrait, 0.5in
// margins). Settings are validated in New.
func WithPDFExport(page *PageSettings) Option {
	return func(c *Converter) {
		c.cfg.pdfExport = true
		c.cfg.page = page
	}
}
