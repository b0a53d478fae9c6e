// Package config loads and validates the CLI's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mingzhu/go-md2html/internal/yamlutil"
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
	MaxTitleLength    = 200  // Document title
	MaxTOCTitleLength = 100  // TOC title
	MaxStyleLength    = 4096 // Style name, path, or inline CSS
	MaxPathLength     = 2048 // Directory paths
)

// Config holds all configuration for document generation.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	CSS      CSSConfig      `yaml:"css"`
	Assets   AssetsConfig   `yaml:"assets"`
	TOC      TOCConfig      `yaml:"toc"`
	Tables   TablesConfig   `yaml:"tables"`
	DOCX     DOCXConfig     `yaml:"docx"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// DocumentConfig defines document metadata options.
type DocumentConfig struct {
	Title string `yaml:"title"` // Optional - auto: first H1 per file
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name, file path, or inline CSS (empty = default)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`    // Empty = no title above TOC
	MaxDepth int    `yaml:"maxDepth"` // 1-6, default 3
}

// TablesConfig defines dynamic table layout options.
type TablesConfig struct {
	Disabled         bool               `yaml:"disabled"`         // Skip the layout pass entirely
	MinColumnWidth   float64            `yaml:"minColumnWidth"`   // px, 0 = default
	MaxColumnWidth   float64            `yaml:"maxColumnWidth"`   // px, 0 = default
	ContainerWidth   float64            `yaml:"containerWidth"`   // px, 0 = default
	ContainerPadding float64            `yaml:"containerPadding"` // px, 0 = default
	TypeWeights      map[string]float64 `yaml:"typeWeights"`      // per semantic type, partial OK
}

// DOCXConfig defines DOCX output options.
type DOCXConfig struct {
	Enabled bool `yaml:"enabled"` // Also produce .docx via pandoc
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("css.style", c.CSS.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}
	if c.TOC.Enabled && c.TOC.MaxDepth != 0 {
		if c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 6 {
			return fmt.Errorf("toc.maxDepth: must be between 1 and 6, got %d", c.TOC.MaxDepth)
		}
	}

	// Table bounds: zero means default; explicit values must be sane.
	// The full cross-field check happens when the layout engine merges defaults.
	if c.Tables.MinColumnWidth < 0 {
		return fmt.Errorf("tables.minColumnWidth: must not be negative, got %.1f", c.Tables.MinColumnWidth)
	}
	if c.Tables.MaxColumnWidth < 0 {
		return fmt.Errorf("tables.maxColumnWidth: must not be negative, got %.1f", c.Tables.MaxColumnWidth)
	}
	if c.Tables.MinColumnWidth > 0 && c.Tables.MaxColumnWidth > 0 &&
		c.Tables.MinColumnWidth > c.Tables.MaxColumnWidth {
		return fmt.Errorf("tables.minColumnWidth %.1f exceeds tables.maxColumnWidth %.1f",
			c.Tables.MinColumnWidth, c.Tables.MaxColumnWidth)
	}
	if c.Tables.ContainerWidth < 0 {
		return fmt.Errorf("tables.containerWidth: must not be negative, got %.1f", c.Tables.ContainerWidth)
	}
	if c.Tables.ContainerPadding < 0 {
		return fmt.Errorf("tables.containerPadding: must not be negative, got %.1f", c.Tables.ContainerPadding)
	}
	for typ, weight := range c.Tables.TypeWeights {
		if weight <= 0 {
			return fmt.Errorf("tables.typeWeights.%s: must be positive, got %.2f", typ, weight)
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

// DefaultConfig returns a neutral configuration with optional features disabled.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: ""},
		CSS:    CSSConfig{Style: ""},
		Assets: AssetsConfig{BasePath: ""},
		TOC:    TOCConfig{Enabled: false},
		Tables: TablesConfig{},
		DOCX:   DOCXConfig{Enabled: false},
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
// Tries locations in order: current directory, ~/.config/go-md2html/
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
			userPath := filepath.Join(userConfigDir, "go-md2html", name+ext)
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
