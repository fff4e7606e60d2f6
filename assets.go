package bib2html

import (
	"errors"

	"github.com/alnah/go-bib2html/internal/assets"
)

// DefaultStyle is the name of the built-in CSS style applied when no
// style is configured. It reproduces the palette of the reference
// listing (blue highlight, green authors, dark red titles).
const DefaultStyle = assets.DefaultStyleName

// StyleLoader defines the contract for loading CSS styles by name.
// Implementations may load from filesystem, embedded assets, S3,
// database, etc.
//
// The library provides NewStyleLoader() for filesystem-based loading
// with fallback to embedded defaults. Implement this interface for
// custom backends.
type StyleLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)
}

// StyleNames returns the names of the built-in styles, sorted.
func StyleNames() []string {
	return assets.StyleNames()
}

// NewStyleLoader creates a StyleLoader for the given base path.
// If basePath is empty, returns a loader using only embedded styles.
// If basePath is set, custom styles take precedence with fallback to embedded.
//
// The basePath directory should contain styles/{name}.css files.
//
// Returns ErrInvalidStylePath if basePath is set but not a valid, readable directory.
func NewStyleLoader(basePath string) (StyleLoader, error) {
	resolver, err := assets.NewStyleResolver(basePath)
	if err != nil {
		return nil, convertStyleError(err)
	}
	return &styleLoaderAdapter{resolver: resolver}, nil
}

// styleLoaderAdapter wraps the internal StyleResolver to return public errors.
type styleLoaderAdapter struct {
	resolver *assets.StyleResolver
}

func (a *styleLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertStyleError(err)
	}
	return content, nil
}

// convertStyleError maps internal asset errors to public errors.
func convertStyleError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrInvalidStyleName):
		return wrapError(ErrStyleNotFound, err) // invalid name means not found
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidStylePath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidStylePath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedStyleError{sentinel: sentinel, original: original}
}

type wrappedStyleError struct {
	sentinel error
	original error
}

func (e *wrappedStyleError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedStyleError) Unwrap() error {
	return e.sentinel
}
