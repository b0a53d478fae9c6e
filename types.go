package md2html

import (
	"fmt"
	"time"

	"github.com/mingzhu/go-md2html/tablelayout"
)

// TOC depth bounds.
const (
	DefaultTOCMaxDepth = 3
	MinTOCDepth        = 1
	MaxTOCDepth        = 6
)

// Input contains conversion parameters for a single document.
type Input struct {
	Markdown string              // Markdown content (required)
	Title    string              // Document title (optional, first H1 used as fallback)
	CSS      string              // Custom CSS appended after the base style (optional)
	TOC      *TOC                // Table of contents config (optional, nil = no TOC)
	DOCX     bool                // Also produce a DOCX rendition via pandoc
	Tables   *tablelayout.Config // Per-document table layout override (optional)
}

// TOC configures the generated table of contents.
type TOC struct {
	Title    string // Heading above the TOC (optional)
	MaxDepth int    // Deepest heading level included (default 3)
}

// Validate checks that TOC settings are valid.
// Returns nil if t is nil (nil means no TOC).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if t.MaxDepth == 0 {
		return nil // filled with default at conversion time
	}
	if t.MaxDepth < MinTOCDepth || t.MaxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidTOCDepth, t.MaxDepth, MinTOCDepth, MaxTOCDepth)
	}
	return nil
}

// Result holds the artifacts of a conversion.
type Result struct {
	HTML []byte // Styled HTML document with table layout applied
	DOCX []byte // DOCX rendition, nil unless Input.DOCX was set
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string
	resolvedStyle string
	assetPath     string
	tableCfg      *tablelayout.Config
	disableTables bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the base stylesheet: a style name from the embedded
// assets, a file path, or raw CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath configures a directory of custom assets. Styles found under
// {path}/styles/ take precedence over the embedded defaults.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithTableLayout sets the default table layout configuration.
// The configuration is validated at construction; invalid bounds are fatal.
func WithTableLayout(cfg *tablelayout.Config) Option {
	return func(c *Converter) {
		c.cfg.tableCfg = cfg
	}
}

// WithoutTableLayout disables the dynamic table layout pass entirely.
func WithoutTableLayout() Option {
	return func(c *Converter) {
		c.cfg.disableTables = true
	}
}

// WithTextMeasurer replaces the text measurer used for table layout,
// e.g. with a tablelayout.BrowserMeasurer for real browser metrics.
func WithTextMeasurer(m tablelayout.TextMeasurer) Option {
	return func(c *Converter) {
		c.measurer = m
	}
}
