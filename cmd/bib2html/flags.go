package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document shell flags.
type documentFlags struct {
	title string
	lang  string
	date  string
}

// styleFlags holds style-related flags.
type styleFlags struct {
	style     string // name, .css path, or raw CSS
	stylePath string // custom styles directory
	highlight string // starred-author color override
}

// linkFlags holds hyperlink construction flags.
type linkFlags struct {
	doiBase string
	pdfDir  string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// convertFlags holds all flags for the convert operation.
type convertFlags struct {
	common  commonFlags
	doc     documentFlags
	style   styleFlags
	links   linkFlags
	page    pageFlags
	pdf     bool
	timeout string
	version bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document shell flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.title, "title", "t", "", "page title (\"\" = Publications)")
	fs.StringVar(&f.lang, "lang", "", "html lang attribute (\"\" = en)")
	fs.StringVar(&f.date, "date", "", "footer date (\"auto\", \"auto:FORMAT\", or literal)")
}

// addStyleFlags adds style flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "style name (classic, plain) or .css file path")
	fs.StringVar(&f.stylePath, "style-path", "", "custom styles directory")
	fs.StringVar(&f.highlight, "highlight", "", "starred-author color (hex or CSS name)")
}

// addLinkFlags adds hyperlink construction flags to a FlagSet.
func addLinkFlags(fs *flag.FlagSet, f *linkFlags) {
	fs.StringVar(&f.doiBase, "doi-base", "", "DOI resolver prefix")
	fs.StringVar(&f.pdfDir, "pdf-dir", "", "local pdf tree for bracket links")
}

// addPageFlags adds PDF page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.size, "page-size", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// parseConvertFlags parses conversion flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("bib2html", flag.ContinueOnError)
	f := &convertFlags{}

	// Output flags
	fs.BoolVar(&f.pdf, "pdf", false, "also export a PDF next to the HTML output")
	fs.StringVar(&f.timeout, "timeout", "", "PDF render timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "show version information")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.doc)
	addStyleFlags(fs, &f.style)
	addLinkFlags(fs, &f.links)
	addPageFlags(fs, &f.page)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
