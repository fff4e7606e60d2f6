package main

import (
	"errors"
	"os"

	bib2html "github.com/alnah/go-bib2html"
	"github.com/alnah/go-bib2html/internal/config"
	"github.com/alnah/go-bib2html/internal/dateutil"
)

// Exit codes for bib2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors (PDF export only)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, bib2html.ErrBrowserConnect) ||
		errors.Is(err, bib2html.ErrPageCreate) ||
		errors.Is(err, bib2html.ErrPageLoad) ||
		errors.Is(err, bib2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadBibTeX) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyArguments) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, bib2html.ErrEmptyBibTeX) ||
		errors.Is(err, bib2html.ErrInputTooLarge) ||
		errors.Is(err, bib2html.ErrInvalidPageSize) ||
		errors.Is(err, bib2html.ErrInvalidOrientation) ||
		errors.Is(err, bib2html.ErrInvalidMargin) ||
		errors.Is(err, bib2html.ErrInvalidHighlightColor) ||
		errors.Is(err, bib2html.ErrStyleNotFound) ||
		errors.Is(err, bib2html.ErrInvalidStylePath) {
		return ExitUsage
	}

	return ExitGeneral
}
