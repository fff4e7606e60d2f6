package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --style
	Short    string   // -s (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.bib")
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"page-size":   {Values: []string{"letter", "a4", "legal"}},
	"orientation": {Values: []string{"portrait", "landscape"}},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},
	"style":  {FileGlob: "*.css"},

	// Directory flags
	"style-path": {IsDir: true},
	"pdf-dir":    {IsDir: true},
}

// buildConvertFlagSet creates a FlagSet with all convert command flags.
// This reuses the same flag registration as parseConvertFlags.
func buildConvertFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.BoolVar(&f.pdf, "pdf", false, "also export a PDF next to the HTML output")
	fs.StringVar(&f.timeout, "timeout", "", "PDF render timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "show version information")

	// Flag groups - same as parseConvertFlags
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.doc)
	addStyleFlags(fs, &f.style)
	addLinkFlags(fs, &f.links)
	addPageFlags(fs, &f.page)

	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	convertFlags := extractFlagsFromFlagSet(buildConvertFlagSet())

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert a BibTeX bibliography to HTML",
			Flags:       convertFlags,
			TakesFiles:  true,
			FilePattern: "*.bib",
		},
		{
			Name:  "version",
			Desc:  "Show version information",
			Flags: nil,
		},
		{
			Name:  "help",
			Desc:  "Show help for a command",
			Flags: nil,
		},
		{
			Name:  "doctor",
			Desc:  "Check the environment for PDF export",
			Flags: nil,
		},
		{
			Name:  "completion",
			Desc:  "Generate shell completion script",
			Flags: nil,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bib2html completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(bib2html completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(bib2html completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    bib2html completion fish > ~/.config/fish/completions/bib2html.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    bib2html completion powershell | Out-String | Invoke-Expression")
}

// commandNames returns the registered command names, sorted.
func commandNames(commands []commandDef) []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	sort.Strings(names)
	return names
}

// convertCommand returns the convert command definition; its flags apply
// to the default (no-command) invocation as well.
func convertCommand(commands []commandDef) commandDef {
	for _, c := range commands {
		if c.Name == "convert" {
			return c
		}
	}
	return commandDef{}
}

// longOptions renders "--name" for every flag, sorted.
func longOptions(flags []flagDef) []string {
	opts := make([]string, len(flags))
	for i, f := range flags {
		opts[i] = "--" + f.Long
	}
	sort.Strings(opts)
	return opts
}

// generateBash writes a bash completion script. The script completes
// command names in the first position, enum values after enum flags,
// and .bib files elsewhere.
func generateBash(w io.Writer) error {
	commands := getCommands()
	convert := convertCommand(commands)

	var b strings.Builder
	b.WriteString("# bash completion for bib2html\n")
	b.WriteString("_bib2html() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	// Flag-argument completion
	b.WriteString("    case \"$prev\" in\n")
	for _, f := range convert.Flags {
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "        --%s)\n", f.Long)
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(f.Values, " "))
			b.WriteString("            return\n            ;;\n")
		case flagFile:
			fmt.Fprintf(&b, "        --%s)\n", f.Long)
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
			b.WriteString("            return\n            ;;\n")
		case flagDir:
			fmt.Fprintf(&b, "        --%s)\n", f.Long)
			b.WriteString("            COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
			b.WriteString("            return\n            ;;\n")
		}
	}
	b.WriteString("    esac\n\n")

	// Subcommand arguments
	b.WriteString("    if [[ $COMP_CWORD -eq 2 && \"${COMP_WORDS[1]}\" == \"completion\" ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"$cur\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	fmt.Fprintf(&b, "    if [[ $COMP_CWORD -eq 2 && \"${COMP_WORDS[1]}\" == \"help\" ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(commandNames(commands), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	// Flags
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(longOptions(convert.Flags), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	// First position: commands and input files; elsewhere: files
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") $(compgen -f -X '!%s' -- \"$cur\") $(compgen -d -- \"$cur\") )\n",
		strings.Join(commandNames(commands), " "), convert.FilePattern)
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _bib2html bib2html\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes characters zsh treats specially inside _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("[", `\[`, "]", `\]`, "'", `'\''`, ":", `\:`)
	return r.Replace(s)
}

// zshAction returns the _arguments action for a flag's argument.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		return fmt.Sprintf(`:file:_files -g "%s"`, strings.ReplaceAll(f.FileGlob, ",", " "))
	case flagDir:
		return ":directory:_files -/"
	default:
		return ":" + f.Long + ":"
	}
}

// generateZsh writes a zsh completion script built on _arguments.
func generateZsh(w io.Writer) error {
	commands := getCommands()
	convert := convertCommand(commands)

	var b strings.Builder
	b.WriteString("# zsh completion for bib2html\n")
	b.WriteString("_bib2html() {\n")
	b.WriteString("    local context state state_descr line\n")
	b.WriteString("    typeset -A opt_args\n")
	b.WriteString("    local -a args\n")
	b.WriteString("    args=(\n")

	for _, f := range convert.Flags {
		body := "[" + zshEscape(f.Desc) + "]" + zshAction(f)
		if f.Short != "" {
			// Brace expansion yields one spec per form, sharing the exclusion group.
			fmt.Fprintf(&b, "        '(-%s --%s)'{-%s,--%s}'%s'\n", f.Short, f.Long, f.Short, f.Long, body)
		} else {
			fmt.Fprintf(&b, "        '--%s%s'\n", f.Long, body)
		}
	}

	b.WriteString("        '1:command or file:->first'\n")
	b.WriteString("        '*:file:_files'\n")
	b.WriteString("    )\n")
	b.WriteString("    _arguments -s $args\n\n")
	b.WriteString("    case $state in\n")
	b.WriteString("        first)\n")
	b.WriteString("            local -a commands\n")
	b.WriteString("            commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "                '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("            )\n")
	b.WriteString("            _describe -t commands 'command' commands\n")
	fmt.Fprintf(&b, "            _files -g \"%s\"\n", convert.FilePattern)
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("compdef _bib2html bib2html\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape escapes single quotes for fish string literals.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// generateFish writes a fish completion script.
func generateFish(w io.Writer) error {
	commands := getCommands()
	convert := convertCommand(commands)

	var b strings.Builder
	b.WriteString("# fish completion for bib2html\n")

	// Commands in the first position
	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c bib2html -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("complete -c bib2html -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'\n")

	// Flags
	for _, f := range convert.Flags {
		fmt.Fprintf(&b, "complete -c bib2html -l %s", f.Long)
		if f.Short != "" {
			fmt.Fprintf(&b, " -s %s", f.Short)
		}
		fmt.Fprintf(&b, " -d '%s'", fishEscape(f.Desc))
		switch f.Type {
		case flagBool:
			// no argument
		case flagEnum:
			fmt.Fprintf(&b, " -xa '%s'", strings.Join(f.Values, " "))
		case flagDir:
			b.WriteString(" -xa '(__fish_complete_directories)'")
		default:
			b.WriteString(" -r")
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// generatePowerShell writes a PowerShell argument completer.
func generatePowerShell(w io.Writer) error {
	commands := getCommands()
	convert := convertCommand(commands)

	var b strings.Builder
	b.WriteString("# powershell completion for bib2html\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName bib2html -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("    $completions = @(\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "        [System.Management.Automation.CompletionResult]::new('%s', '%s', 'ParameterValue', '%s')\n",
			c.Name, c.Name, psEscape(c.Desc))
	}
	for _, f := range convert.Flags {
		long := "--" + f.Long
		fmt.Fprintf(&b, "        [System.Management.Automation.CompletionResult]::new('%s', '%s', 'ParameterName', '%s')\n",
			long, long, psEscape(f.Desc))
		for _, v := range f.Values {
			fmt.Fprintf(&b, "        [System.Management.Automation.CompletionResult]::new('%s', '%s', 'ParameterValue', '%s value')\n",
				v, v, psEscape(f.Long))
		}
	}

	b.WriteString("    )\n")
	b.WriteString("    $completions | Where-Object { $_.CompletionText -like \"$wordToComplete*\" }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// psEscape escapes single quotes for PowerShell string literals.
func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
