package bib2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyBibTeX   = errors.New("bibtex content cannot be empty")
	ErrInputTooLarge = errors.New("bibtex content exceeds maximum size")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Highlight color validation errors.
	ErrInvalidHighlightColor = errors.New("invalid highlight color")

	// Style loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidStylePath = errors.New("invalid style path")
)
