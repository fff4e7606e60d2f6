package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-bib2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxTitleLength       = 200  // Page title
	MaxLangLength        = 35   // BCP 47 language tag
	MaxStyleNameLength   = 100  // Embedded style name
	MaxPathLength        = 2048 // Style path, base path, pdf directory
	MaxURLLength         = 2048 // DOI resolver base
	MaxDateLength        = 30   // "2025-12-31" or "December 31, 2025"
	MaxColorLength       = 30   // "#0040A0" or a CSS color keyword
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
)

// Config holds all configuration for bibliography generation.
type Config struct {
	Page   PageConfig   `yaml:"page"`
	Style  StyleConfig  `yaml:"style"`
	Links  LinksConfig  `yaml:"links"`
	Footer FooterConfig `yaml:"footer"`
	PDF    PDFConfig    `yaml:"pdf"`
}

// PageConfig defines the HTML document shell.
type PageConfig struct {
	Title string `yaml:"title"` // <title> text (empty = "Publications")
	Lang  string `yaml:"lang"`  // html lang attribute (empty = "en")
}

// StyleConfig defines CSS styling options.
type StyleConfig struct {
	Name      string `yaml:"name"`      // Name of style in internal/assets/styles/ (empty = "classic")
	Path      string `yaml:"path"`      // Direct .css file path (overrides name)
	BasePath  string `yaml:"basePath"`  // Custom styles directory (empty = embedded only)
	Highlight string `yaml:"highlight"` // Starred-author color override (hex or keyword)
}

// LinksConfig defines how record hyperlinks are built.
type LinksConfig struct {
	DOIBase string `yaml:"doiBase"` // DOI resolver prefix (empty = http://dx.doi.org/)
	PDFDir  string `yaml:"pdfDir"`  // Local pdf tree for bracket links (empty = ./pdf)
}

// FooterConfig defines the generated-date footer line.
type FooterConfig struct {
	Generated bool   `yaml:"generated"`
	Date      string `yaml:"date"` // "auto", "auto:FORMAT", or literal text
}

// PDFConfig defines PDF export settings.
type PDFConfig struct {
	Export      bool    `yaml:"export"`      // Also write a .pdf next to the .html
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
	Timeout     string  `yaml:"timeout"`     // render timeout, e.g. "30s", "2m" (default: 30s)
}

// Validate checks field lengths and enums to prevent abuse in multi-tenant
// scenarios. Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	if err := validateFieldLength("page.title", c.Page.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.lang", c.Page.Lang, MaxLangLength); err != nil {
		return err
	}

	if err := validateFieldLength("style.name", c.Style.Name, MaxStyleNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.path", c.Style.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.basePath", c.Style.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.highlight", c.Style.Highlight, MaxColorLength); err != nil {
		return err
	}

	if err := validateFieldLength("links.doiBase", c.Links.DOIBase, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("links.pdfDir", c.Links.PDFDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("footer.date", c.Footer.Date, MaxDateLength); err != nil {
		return err
	}

	if err := validateFieldLength("pdf.size", c.PDF.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if c.PDF.Size != "" {
		switch strings.ToLower(c.PDF.Size) {
		case "letter", "a4", "legal":
			// valid
		default:
			return fmt.Errorf("pdf.size: invalid value %q (must be letter, a4, or legal)", c.PDF.Size)
		}
	}

	if err := validateFieldLength("pdf.orientation", c.PDF.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if c.PDF.Orientation != "" {
		switch strings.ToLower(c.PDF.Orientation) {
		case "portrait", "landscape":
			// valid
		default:
			return fmt.Errorf("pdf.orientation: invalid value %q (must be portrait or landscape)", c.PDF.Orientation)
		}
	}

	if c.PDF.Margin < 0 || c.PDF.Margin > 5 {
		return fmt.Errorf("pdf.margin: must be between 0 and 5 inches, got %.2f", c.PDF.Margin)
	}

	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil {
			return fmt.Errorf("pdf.timeout: invalid duration %q (use formats like 30s, 2m)", c.PDF.Timeout)
		}
		if d <= 0 {
			return fmt.Errorf("pdf.timeout: must be positive, got %q", c.PDF.Timeout)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration. Empty fields fall back to
// the converter's built-in defaults at assembly time.
func DefaultConfig() *Config {
	return &Config{
		Page:   PageConfig{},
		Style:  StyleConfig{},
		Links:  LinksConfig{},
		Footer: FooterConfig{Generated: false},
		PDF:    PDFConfig{Export: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/bib2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "bib2html", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
