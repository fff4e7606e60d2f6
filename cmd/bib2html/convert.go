package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bib2html "github.com/alnah/go-bib2html"
	"github.com/alnah/go-bib2html/internal/config"
	"github.com/alnah/go-bib2html/internal/fileutil"
	"github.com/alnah/go-bib2html/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input file specified")
	ErrTooManyArguments = errors.New("too many arguments")
	ErrInvalidExtension = errors.New("input file must have .bib extension")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrReadBibTeX       = errors.New("failed to read bibtex file")
	ErrWriteHTML        = errors.New("failed to write html file")
	ErrWritePDF         = errors.New("failed to write pdf file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// runConvert orchestrates the conversion: resolve paths, load and merge
// configuration, read the bibliography, run the library, write outputs.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	start := env.Now()

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		return err
	}
	outputPath := resolveOutputPath(inputPath, positional)

	// Load configuration
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	// Resolve "auto" footer date against the injected clock
	date, err := resolveFooterDate(cfg, env.Now)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadBibTeX, err)
	}

	opts, err := buildConverterOptions(cfg)
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	result, err := conv.Convert(ctx, bib2html.Input{
		BibTeX:        string(content),
		Title:         cfg.Page.Title,
		Lang:          cfg.Page.Lang,
		GeneratedDate: date,
		SourceDir:     filepath.Dir(inputPath),
	})
	if err != nil {
		return err
	}

	printWarnings(result, flags.common.quiet, env)

	if err := writeFile(outputPath, result.HTML, ErrWriteHTML); err != nil {
		return err
	}
	created := []string{outputPath}

	if result.PDF != nil {
		pdfPath := swapExtension(outputPath, ".pdf")
		if err := writeFile(pdfPath, result.PDF, ErrWritePDF); err != nil {
			return err
		}
		created = append(created, pdfPath)
	}

	printResult(result, inputPath, created, flags, env, env.Now().Sub(start))
	return nil
}

// resolveInputPath validates the positional arguments and returns the
// bibliography path. The CLI takes one input and at most one output.
func resolveInputPath(positional []string) (string, error) {
	if len(positional) == 0 {
		return "", ErrNoInput
	}
	if len(positional) > 2 {
		return "", fmt.Errorf("%w: expected <bibtex-file> [<html-file>], got %d arguments", ErrTooManyArguments, len(positional))
	}
	path := positional[0]
	if ext := filepath.Ext(path); ext != ".bib" {
		return "", fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return path, nil
}

// resolveOutputPath returns the HTML output path: the explicit second
// argument when given, else the input with its .bib swapped for .html.
func resolveOutputPath(inputPath string, positional []string) string {
	if len(positional) > 1 {
		return positional[1]
	}
	return swapExtension(inputPath, ".html")
}

// swapExtension replaces the path's extension with ext (dot included).
func swapExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Document flags
	if flags.doc.title != "" {
		cfg.Page.Title = flags.doc.title
	}
	if flags.doc.lang != "" {
		cfg.Page.Lang = flags.doc.lang
	}
	if flags.doc.date != "" {
		cfg.Footer.Date = flags.doc.date
		cfg.Footer.Generated = true
	}

	// Style flags. The -s value may be a name or a .css path; it lands in
	// whichever config slot it looks like and clears the other.
	if s := flags.style.style; s != "" {
		if fileutil.IsFilePath(s) || fileutil.IsCSS(s) {
			cfg.Style.Path, cfg.Style.Name = s, ""
		} else {
			cfg.Style.Name, cfg.Style.Path = s, ""
		}
	}
	if flags.style.stylePath != "" {
		cfg.Style.BasePath = flags.style.stylePath
	}
	if flags.style.highlight != "" {
		cfg.Style.Highlight = flags.style.highlight
	}

	// Link flags
	if flags.links.doiBase != "" {
		cfg.Links.DOIBase = flags.links.doiBase
	}
	if flags.links.pdfDir != "" {
		cfg.Links.PDFDir = flags.links.pdfDir
	}

	// PDF flags
	if flags.pdf {
		cfg.PDF.Export = true
	}
	if flags.timeout != "" {
		cfg.PDF.Timeout = flags.timeout
	}
	if flags.page.size != "" {
		cfg.PDF.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.PDF.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.PDF.Margin = flags.page.margin
	}
}

// resolveFooterDate resolves the footer date line. An explicit date value
// enables the line; generated: true without a date means "auto".
func resolveFooterDate(cfg *config.Config, now func() time.Time) (string, error) {
	date := cfg.Footer.Date
	if date == "" {
		if !cfg.Footer.Generated {
			return "", nil
		}
		date = "auto"
	}
	return bib2html.ResolveDate(date, now())
}

// buildConverterOptions assembles library options from the merged config.
// Empty config fields are not passed, so the library defaults apply.
func buildConverterOptions(cfg *config.Config) ([]bib2html.Option, error) {
	var opts []bib2html.Option

	if style := effectiveStyle(cfg); style != "" {
		opts = append(opts, bib2html.WithStyle(style))
	}
	if cfg.Style.BasePath != "" {
		opts = append(opts, bib2html.WithStylePath(cfg.Style.BasePath))
	}
	if cfg.Style.Highlight != "" {
		opts = append(opts, bib2html.WithHighlightColor(cfg.Style.Highlight))
	}

	if cfg.Links.DOIBase != "" {
		opts = append(opts, bib2html.WithDOIBase(cfg.Links.DOIBase))
	}
	if cfg.Links.PDFDir != "" {
		opts = append(opts, bib2html.WithPDFDir(cfg.Links.PDFDir))
	}

	timeout, err := resolveTimeout(cfg.PDF.Timeout)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, bib2html.WithTimeout(timeout))
	}

	if cfg.PDF.Export {
		opts = append(opts, bib2html.WithPDFExport(pageSettings(cfg)))
	}

	return opts, nil
}

// effectiveStyle returns the style argument for the converter: the path
// form wins over the name form. WithStyle sorts out which kind it got.
func effectiveStyle(cfg *config.Config) string {
	if cfg.Style.Path != "" {
		return cfg.Style.Path
	}
	return cfg.Style.Name
}

// pageSettings builds page settings from config; nil means all defaults.
func pageSettings(cfg *config.Config) *bib2html.PageSettings {
	if cfg.PDF.Size == "" && cfg.PDF.Orientation == "" && cfg.PDF.Margin == 0 {
		return nil
	}
	return &bib2html.PageSettings{
		Size:        cfg.PDF.Size,
		Orientation: cfg.PDF.Orientation,
		Margin:      cfg.PDF.Margin,
	}
}

// resolveTimeout parses the configured PDF render timeout. Empty means
// the library default.
func resolveTimeout(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use formats like 30s, 2m)", ErrInvalidTimeout, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %q", ErrInvalidTimeout, value)
	}
	return d, nil
}

// writeFile writes output bytes, creating the parent directory as needed.
// Failures wrap the given sentinel so exit codes map them to I/O.
func writeFile(path string, data []byte, sentinel error) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", sentinel, err)
		}
	}
	// #nosec G306 -- generated documents are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return nil
}

// printWarnings reports non-fatal findings (star-author anomalies, empty
// listings) on stderr. Quiet suppresses them.
func printWarnings(result *bib2html.Result, quiet bool, env *Environment) {
	if quiet {
		return
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(env.Stderr, "Warning: %s\n", w)
	}
	if result.Articles == 0 {
		fmt.Fprintf(env.Stderr, "Warning: rendered 0 publication records%s\n", hints.ForNoArticles())
	}
}

// printResult reports the conversion outcome. Quiet suppresses everything
// but errors; verbose adds entry counts and timing.
func printResult(result *bib2html.Result, inputPath string, created []string, flags *convertFlags, env *Environment, elapsed time.Duration) {
	if flags.common.quiet {
		return
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "%s: %d articles, %d skipped (%v)\n",
			inputPath, result.Articles, result.Skipped, elapsed.Round(time.Millisecond))
	}
	for _, path := range created {
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
}

// hintFor appends an actionable hint to error output when one applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, bib2html.ErrBrowserConnect),
		errors.Is(err, bib2html.ErrPageCreate),
		errors.Is(err, bib2html.ErrPageLoad):
		return hints.ForBrowserConnect()
	case errors.Is(err, bib2html.ErrPDFGeneration):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, bib2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(bib2html.StyleNames())
	case errors.Is(err, ErrWriteHTML), errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
