package main

import (
	"io"
	"os"
	"time"

	bib2html "github.com/alnah/go-bib2html"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the converter constructor.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...bib2html.Option) (Converter, error)
}

// DefaultEnv returns the production environment backed by the real library.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...bib2html.Option) (Converter, error) {
			return bib2html.New(opts...)
		},
	}
}
