package tablelayout

import (
	"fmt"
	"time"
)

// SemanticType classifies a column by the content it carries.
// The type drives the allocation weight applied to the column's
// content-derived width.
type SemanticType string

// Known semantic types, mutually exclusive per column.
const (
	TypeIdentifier  SemanticType = "identifier"
	TypeNumeric     SemanticType = "numeric"
	TypeDescription SemanticType = "description"
	TypeFilename    SemanticType = "filename"
	TypeDefault     SemanticType = "default"
)

// Default configuration values in pixels.
const (
	DefaultMinColumnWidth   = 80.0
	DefaultMaxColumnWidth   = 400.0
	DefaultContainerPadding = 20.0
	DefaultContainerWidth   = 960.0
	DefaultResizeDebounce   = 250 * time.Millisecond
)

// cellPaddingAllowance is added to every measured content width to account
// for cell padding and borders.
const cellPaddingAllowance = 40.0

// longContentThreshold is the cell length (in characters) above which a column
// is flagged as carrying long content.
const longContentThreshold = 50

// Config controls width allocation and responsive behavior.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	MinColumnWidth    float64                  // px floor per column
	MaxColumnWidth    float64                  // px ceiling per column
	ContainerPadding  float64                  // px subtracted from container width
	ContainerWidth    float64                  // px assumed container width until a resize notification arrives
	DisableResponsive bool                     // ignore resize notifications; zero value keeps them on
	ResizeDebounce    time.Duration            // quiet period for window-level resize bursts
	ColumnTypeWeights map[SemanticType]float64 // multiplier per semantic type
}

// DefaultConfig returns a configuration with all defaults filled in.
func DefaultConfig() *Config {
	return &Config{
		MinColumnWidth:   DefaultMinColumnWidth,
		MaxColumnWidth:   DefaultMaxColumnWidth,
		ContainerPadding: DefaultContainerPadding,
		ContainerWidth:   DefaultContainerWidth,
		ResizeDebounce:   DefaultResizeDebounce,
		ColumnTypeWeights: map[SemanticType]float64{
			TypeIdentifier:  1.2,
			TypeNumeric:     0.8,
			TypeDescription: 2.0,
			TypeFilename:    1.5,
			TypeDefault:     1.0,
		},
	}
}

// Validate checks that all bounds are usable.
// Returns nil if c is nil (nil means use defaults).
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	if c.MinColumnWidth <= 0 {
		return fmt.Errorf("%w: minColumnWidth %.1f must be positive", ErrInvalidConfiguration, c.MinColumnWidth)
	}
	if c.MaxColumnWidth <= 0 {
		return fmt.Errorf("%w: maxColumnWidth %.1f must be positive", ErrInvalidConfiguration, c.MaxColumnWidth)
	}
	if c.MinColumnWidth > c.MaxColumnWidth {
		return fmt.Errorf("%w: minColumnWidth %.1f exceeds maxColumnWidth %.1f",
			ErrInvalidConfiguration, c.MinColumnWidth, c.MaxColumnWidth)
	}
	if c.ContainerPadding < 0 {
		return fmt.Errorf("%w: containerPadding %.1f must not be negative", ErrInvalidConfiguration, c.ContainerPadding)
	}
	if c.ContainerWidth <= 0 {
		return fmt.Errorf("%w: containerWidth %.1f must be positive", ErrInvalidConfiguration, c.ContainerWidth)
	}
	for typ, weight := range c.ColumnTypeWeights {
		if weight <= 0 {
			return fmt.Errorf("%w: weight for %q must be positive, got %.2f", ErrInvalidConfiguration, typ, weight)
		}
	}
	return nil
}

// weight returns the multiplier for a semantic type, falling back to the
// default type's weight, then 1.0 when no weight is configured.
func (c *Config) weight(typ SemanticType) float64 {
	if w, ok := c.ColumnTypeWeights[typ]; ok {
		return w
	}
	if w, ok := c.ColumnTypeWeights[TypeDefault]; ok {
		return w
	}
	return 1.0
}

// WithDefaults returns a copy of c with zero-valued fields replaced by
// defaults. A nil receiver yields the full default configuration. Partial
// configurations become valid complete ones, so callers can validate the
// result before handing it to a Manager.
func (c *Config) WithDefaults() *Config {
	return c.merged()
}

// merged returns a copy of c with zero-valued fields replaced by defaults.
// A nil receiver yields the full default configuration.
func (c *Config) merged() *Config {
	def := DefaultConfig()
	if c == nil {
		return def
	}

	out := *c
	if out.MinColumnWidth == 0 {
		out.MinColumnWidth = def.MinColumnWidth
	}
	if out.MaxColumnWidth == 0 {
		out.MaxColumnWidth = def.MaxColumnWidth
	}
	if out.ContainerPadding == 0 {
		out.ContainerPadding = def.ContainerPadding
	}
	if out.ContainerWidth == 0 {
		out.ContainerWidth = def.ContainerWidth
	}
	if out.ResizeDebounce == 0 {
		out.ResizeDebounce = def.ResizeDebounce
	}
	if out.ColumnTypeWeights == nil {
		out.ColumnTypeWeights = def.ColumnTypeWeights
	} else {
		// Partial weight overrides keep defaults for missing types.
		weights := make(map[SemanticType]float64, len(def.ColumnTypeWeights))
		for typ, w := range def.ColumnTypeWeights {
			weights[typ] = w
		}
		for typ, w := range out.ColumnTypeWeights {
			weights[typ] = w
		}
		out.ColumnTypeWeights = weights
	}
	return &out
}
