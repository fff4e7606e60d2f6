package pipeline

// Notes:
// - Error branches of html.Parse/html.Render are not exercised: the html
//   package accepts nearly any input for parsing
// - Traversal cases assert the observable behavior (path left relative)

import (
	"runtime"
	"strings"
	"testing"
)

func testBaseDir() string {
	if runtime.GOOS == "windows" {
		return `C:\bib`
	}
	return "/bib"
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	baseDir := testBaseDir()

	tests := []struct {
		name         string
		html         string
		baseDir      string
		wantContains []string
	}{
		{
			name:         "pdf link rewritten to file url",
			html:         `<html><body><a href="./pdf/2020/smith20.pdf">pdf</a></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{`href="file://`, "/pdf/2020/smith20.pdf"},
		},
		{
			name:         "relative link without dot slash rewritten",
			html:         `<html><body><a href="pdf/2019/a.pdf">pdf</a></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{`href="file://`},
		},
		{
			name:         "doi resolver link unchanged",
			html:         `<html><body><a href="http://dx.doi.org/10.1/xyz">link</a></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{`href="http://dx.doi.org/10.1/xyz"`},
		},
		{
			name:         "https link unchanged",
			html:         `<html><body><a href="https://example.com/p">link</a></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{`href="https://example.com/p"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<html><body><a href="#top">up</a></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{`href="#top"`},
		},
		{
			name:         "protocol-relative unchanged",
			html:         `<html><body><a href="//cdn.example.com/x.pdf">x</a></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{`href="//cdn.example.com/x.pdf"`},
		},
		{
			name:         "image source rewritten",
			html:         `<html><body><img src="./figures/map.png"></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{`src="file://`, "/figures/map.png"},
		},
		{
			name:         "traversal outside base left alone",
			html:         `<html><body><a href="../../etc/passwd">x</a></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{`href="../../etc/passwd"`},
		},
		{
			name:         "empty base dir returns input unchanged",
			html:         `<html><body><a href="./pdf/a.pdf">pdf</a></body></html>`,
			baseDir:      "",
			wantContains: []string{`href="./pdf/a.pdf"`},
		},
		{
			name:         "path with spaces percent encoded",
			html:         `<html><body><a href="./my papers/a.pdf">pdf</a></body></html>`,
			baseDir:      baseDir,
			wantContains: []string{"my%20papers"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, tt.baseDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_PreservesDocument(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html lang="en">
<head><title>Publications</title></head>
<body><ol><li><a href="./pdf/2020/a.pdf">pdf</a></li></ol></body>
</html>`

	got, err := RewriteRelativePaths(html, testBaseDir())
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}

	if !strings.Contains(strings.ToLower(got), "doctype") {
		t.Error("rewritten document lost its DOCTYPE")
	}
	for _, want := range []string{"<title>Publications</title>", "<ol>", `href="file://`} {
		if !strings.Contains(got, want) {
			t.Errorf("rewritten document missing %q:\n%s", want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsRelativePath
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"./pdf/2020/a.pdf", true},
		{"pdf/a.pdf", true},
		{"../up.pdf", true},
		{"", false},
		{"#anchor", false},
		{"http://dx.doi.org/10.1/x", false},
		{"https://example.com", false},
		{"file:///abs/a.pdf", false},
		{"data:image/png;base64,AA", false},
		{"//cdn.example.com/a.pdf", false},
		{"/abs/a.pdf", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
