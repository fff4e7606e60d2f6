package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// RewriteRelativePaths converts relative link and image paths in the
// rendered document to absolute file:// URLs anchored at baseDir.
//
// The listing's pdf links (./pdf/<year>/<file>) are relative to the
// bibliography file; a browser loading the document from a temporary
// file cannot resolve them, so the PDF exporter rewrites them first.
// The HTML written to disk keeps its relative links. An empty baseDir
// returns the content unchanged.
//
// Rewrites a[href] and img[src] only. Anchors, URLs with a scheme,
// protocol-relative URLs, absolute paths, and paths escaping baseDir
// are left alone.
func RewriteRelativePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	rewriteNode(doc, absBase)

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode walks the DOM rewriting link and image targets.
func rewriteNode(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "a":
			rewriteAttr(n, "href", baseDir)
		case "img":
			rewriteAttr(n, "src", baseDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, baseDir)
	}
}

func rewriteAttr(n *html.Node, name, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != name || !isRelativePath(attr.Val) {
			continue
		}
		abs := filepath.Join(baseDir, attr.Val)
		// Paths resolving outside baseDir stay relative.
		if !underDir(abs, baseDir) {
			continue
		}
		n.Attr[i].Val = fileURL(abs)
	}
}

// isRelativePath reports whether the value is a local relative path
// rather than an anchor, a URL, or an absolute path.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") || strings.HasPrefix(path, "data:") {
		return false
	}
	return !filepath.IsAbs(path)
}

// underDir reports whether abs sits inside dir after cleaning.
func underDir(abs, dir string) bool {
	cleanPath := filepath.Clean(abs)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// fileURL converts an absolute path to a file:// URL, percent-encoding
// as needed and normalizing Windows separators.
func fileURL(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
