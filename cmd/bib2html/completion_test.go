package main

// Notes:
// - Generated scripts are not executed here; tests pin the structural
//   markers each shell needs (function names, registration lines, enum
//   values) so regressions in the generators are caught.

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion - Script Generation
// ---------------------------------------------------------------------------

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash",
			shell: ShellBash,
			wantContains: []string{
				"_bib2html()",
				"complete -F _bib2html bib2html",
				"letter a4 legal",
				"--style",
				"--page-size",
				"compgen",
			},
		},
		{
			name:  "zsh",
			shell: ShellZsh,
			wantContains: []string{
				"compdef _bib2html bib2html",
				"_arguments",
				"(letter a4 legal)",
				"--style",
				"_describe -t commands",
			},
		},
		{
			name:  "fish",
			shell: ShellFish,
			wantContains: []string{
				"complete -c bib2html",
				"__fish_use_subcommand",
				"-xa 'letter a4 legal'",
				"-l style",
			},
		},
		{
			name:  "powershell",
			shell: ShellPowerShell,
			wantContains: []string{
				"Register-ArgumentCompleter",
				"CompletionResult",
				"--style",
				"'letter'",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			script := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(script, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}

			// Every command must be completable in every shell
			for _, cmd := range []string{"convert", "version", "help", "doctor", "completion"} {
				if !strings.Contains(script, cmd) {
					t.Errorf("%s script missing command %q", tt.shell, cmd)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("tcsh"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Fatalf("error = %v, want ErrUnsupportedShell", err)
	}
	if !strings.Contains(err.Error(), "tcsh") {
		t.Errorf("error = %q, want shell name included", err)
	}
}

// ---------------------------------------------------------------------------
// TestExtractFlagsFromFlagSet - Registry Extraction
// ---------------------------------------------------------------------------

func TestExtractFlagsFromFlagSet(t *testing.T) {
	t.Parallel()

	flags := extractFlagsFromFlagSet(buildConvertFlagSet())

	byName := make(map[string]flagDef, len(flags))
	for _, f := range flags {
		byName[f.Long] = f
	}

	t.Run("style is a css file flag with shorthand", func(t *testing.T) {
		t.Parallel()

		f, ok := byName["style"]
		if !ok {
			t.Fatal("style flag not extracted")
		}
		if f.Short != "s" {
			t.Errorf("Short = %q, want %q", f.Short, "s")
		}
		if f.Type != flagFile {
			t.Errorf("Type = %d, want flagFile", f.Type)
		}
		if f.FileGlob != "*.css" {
			t.Errorf("FileGlob = %q, want %q", f.FileGlob, "*.css")
		}
	})

	t.Run("page-size is an enum", func(t *testing.T) {
		t.Parallel()

		f, ok := byName["page-size"]
		if !ok {
			t.Fatal("page-size flag not extracted")
		}
		if f.Type != flagEnum {
			t.Errorf("Type = %d, want flagEnum", f.Type)
		}
		want := []string{"letter", "a4", "legal"}
		if len(f.Values) != len(want) {
			t.Fatalf("Values = %v, want %v", f.Values, want)
		}
		for i, v := range want {
			if f.Values[i] != v {
				t.Errorf("Values[%d] = %q, want %q", i, f.Values[i], v)
			}
		}
	})

	t.Run("pdf is boolean", func(t *testing.T) {
		t.Parallel()

		if f := byName["pdf"]; f.Type != flagBool {
			t.Errorf("Type = %d, want flagBool", f.Type)
		}
	})

	t.Run("margin is float", func(t *testing.T) {
		t.Parallel()

		if f := byName["margin"]; f.Type != flagFloat {
			t.Errorf("Type = %d, want flagFloat", f.Type)
		}
	})

	t.Run("style-path completes directories", func(t *testing.T) {
		t.Parallel()

		if f := byName["style-path"]; f.Type != flagDir {
			t.Errorf("Type = %d, want flagDir", f.Type)
		}
	})

	t.Run("every parse flag is extracted", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{
			"config", "quiet", "verbose",
			"title", "lang", "date",
			"style", "style-path", "highlight",
			"doi-base", "pdf-dir",
			"page-size", "orientation", "margin",
			"pdf", "timeout", "version",
		} {
			if _, ok := byName[name]; !ok {
				t.Errorf("flag %q missing from extraction", name)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestCompletionHelpers - Name Lists
// ---------------------------------------------------------------------------

func TestCommandNames(t *testing.T) {
	t.Parallel()

	names := commandNames(getCommands())
	if !sort.StringsAreSorted(names) {
		t.Errorf("commandNames() = %v, want sorted", names)
	}
	if len(names) != 5 {
		t.Errorf("got %d commands, want 5", len(names))
	}
}

func TestLongOptions(t *testing.T) {
	t.Parallel()

	opts := longOptions(extractFlagsFromFlagSet(buildConvertFlagSet()))
	if !sort.StringsAreSorted(opts) {
		t.Errorf("longOptions() = %v, want sorted", opts)
	}
	for _, o := range opts {
		if !strings.HasPrefix(o, "--") {
			t.Errorf("option %q missing -- prefix", o)
		}
	}
}
