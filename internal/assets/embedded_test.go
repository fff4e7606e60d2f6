package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()
	if loader == nil {
		t.Fatal("NewEmbeddedLoader() returned nil")
	}
}

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads classic style",
			styleName:   "classic",
			wantErr:     nil,
			wantContain: "span.selected",
		},
		{
			name:        "loads plain style",
			styleName:   "plain",
			wantErr:     nil,
			wantContain: "span.journal",
		},
		{
			name:      "returns ErrStyleNotFound for nonexistent",
			styleName: "nonexistent-style-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "returns ErrInvalidStyleName for empty name",
			styleName: "",
			wantErr:   ErrInvalidStyleName,
		},
		{
			name:      "returns ErrInvalidStyleName for path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidStyleName,
		},
		{
			name:      "returns ErrInvalidStyleName for backslash traversal",
			styleName: "..\\secret",
			wantErr:   ErrInvalidStyleName,
		},
		{
			name:      "returns ErrInvalidStyleName for name with dot",
			styleName: "style.name",
			wantErr:   ErrInvalidStyleName,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}

			if tt.wantContain != "" && !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestClassicStyleCarriesPalette(t *testing.T) {
	t.Parallel()

	got, err := LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(%q) error = %v", DefaultStyleName, err)
	}

	for _, want := range []string{"#0040A0", "#008000", "#A00000", "font-style: italic", "font-weight: bold"} {
		if !strings.Contains(got, want) {
			t.Errorf("classic style should contain %q", want)
		}
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	if len(names) == 0 {
		t.Fatal("StyleNames() returned no styles")
	}

	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}
	for _, want := range []string{"classic", "plain"} {
		if !found[want] {
			t.Errorf("StyleNames() = %v, want to include %q", names, want)
		}
	}
}

func TestEmbeddedLoader_ImplementsStyleLoader(t *testing.T) {
	t.Parallel()

	var _ StyleLoader = (*EmbeddedLoader)(nil)
}
