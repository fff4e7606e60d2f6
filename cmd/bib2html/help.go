package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bib2html [flags] <bibtex-file> [<html-file>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a BibTeX bibliography as an HTML publication listing.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  doctor      Check the environment for PDF export")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'bib2html help convert' for conversion flags.")
}

// printConvertUsage prints usage for the conversion operation.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bib2html [flags] <bibtex-file> [<html-file>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a BibTeX bibliography as an HTML publication listing.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  bibtex-file   Input file; must end in .bib")
	fmt.Fprintln(w, "  html-file     Output file (default: input with .html extension)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --pdf                 Also export a PDF next to the HTML output")
	fmt.Fprintln(w, "      --timeout <dur>       PDF render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -t, --title <s>           Page title (\"\" = Publications)")
	fmt.Fprintln(w, "      --lang <s>            html lang attribute (\"\" = en)")
	fmt.Fprintln(w, "      --date <s>            Footer date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Generated] YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <s>           Style name (classic, plain) or .css file path")
	fmt.Fprintln(w, "      --style-path <dir>    Custom styles directory (styles/{name}.css)")
	fmt.Fprintln(w, "      --highlight <color>   Starred-author color (hex or CSS name)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Links:")
	fmt.Fprintln(w, "      --doi-base <url>      DOI resolver prefix (default http://dx.doi.org/)")
	fmt.Fprintln(w, "      --pdf-dir <dir>       Local pdf tree for bracket links (default ./pdf)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (PDF export):")
	fmt.Fprintln(w, "      --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version information")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: bib2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: bib2html doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the environment for PDF export readiness.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: bib2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
