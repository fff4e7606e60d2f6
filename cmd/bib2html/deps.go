package main

import (
	"context"

	bib2html "github.com/alnah/go-bib2html"
)

// Converter is the interface for the conversion library.
type Converter interface {
	Convert(ctx context.Context, input bib2html.Input) (*bib2html.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*bib2html.Converter)(nil)
