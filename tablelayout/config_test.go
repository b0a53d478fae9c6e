package tablelayout

// Notes:
// - Validate: tests fatal configuration errors (non-positive bounds,
//   inverted bounds, non-positive weights)
// - merged: tests default filling and partial weight overrides
// - weight: tests fallback chain for unconfigured types

import (
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestConfigValidate - Fatal Configuration Errors
// ---------------------------------------------------------------------------

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative min width",
			mutate:  func(c *Config) { c.MinColumnWidth = -10 },
			wantErr: true,
		},
		{
			name:    "negative max width",
			mutate:  func(c *Config) { c.MaxColumnWidth = -1 },
			wantErr: true,
		},
		{
			name:    "min exceeds max",
			mutate:  func(c *Config) { c.MinColumnWidth = 500 },
			wantErr: true,
		},
		{
			name:    "negative padding",
			mutate:  func(c *Config) { c.ContainerPadding = -5 },
			wantErr: true,
		},
		{
			name:    "negative container width",
			mutate:  func(c *Config) { c.ContainerWidth = -100 },
			wantErr: true,
		},
		{
			name:    "zero weight",
			mutate:  func(c *Config) { c.ColumnTypeWeights[TypeNumeric] = 0 },
			wantErr: true,
		},
		{
			name:    "negative weight",
			mutate:  func(c *Config) { c.ColumnTypeWeights[TypeDescription] = -2 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("Validate() error = %v, want ErrInvalidConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}

	t.Run("nil config is valid", func(t *testing.T) {
		t.Parallel()

		var cfg *Config
		if err := cfg.Validate(); err != nil {
			t.Errorf("nil Validate() error = %v, want nil", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConfigMerged - Default Filling
// ---------------------------------------------------------------------------

func TestConfigMerged(t *testing.T) {
	t.Parallel()

	t.Run("nil yields full defaults", func(t *testing.T) {
		t.Parallel()

		var cfg *Config
		got := cfg.merged()

		if got.MinColumnWidth != DefaultMinColumnWidth || got.MaxColumnWidth != DefaultMaxColumnWidth {
			t.Errorf("bounds = %.1f/%.1f, want defaults", got.MinColumnWidth, got.MaxColumnWidth)
		}
		if got.DisableResponsive {
			t.Error("DisableResponsive = true, want responsive on by default")
		}
		if got.ResizeDebounce != 250*time.Millisecond {
			t.Errorf("ResizeDebounce = %v, want 250ms", got.ResizeDebounce)
		}
	})

	t.Run("zero fields filled, set fields kept", func(t *testing.T) {
		t.Parallel()

		got := (&Config{MinColumnWidth: 60}).merged()

		if got.MinColumnWidth != 60 {
			t.Errorf("MinColumnWidth = %.1f, want 60 (explicit value kept)", got.MinColumnWidth)
		}
		if got.MaxColumnWidth != DefaultMaxColumnWidth {
			t.Errorf("MaxColumnWidth = %.1f, want default", got.MaxColumnWidth)
		}
		if got.ContainerWidth != DefaultContainerWidth {
			t.Errorf("ContainerWidth = %.1f, want default", got.ContainerWidth)
		}
	})

	t.Run("partial config keeps responsive handling on", func(t *testing.T) {
		t.Parallel()

		got := (&Config{MinColumnWidth: 100}).merged()

		if got.DisableResponsive {
			t.Error("partial config disabled responsive handling")
		}
		if got.ResizeDebounce != DefaultResizeDebounce {
			t.Errorf("ResizeDebounce = %v, want default", got.ResizeDebounce)
		}
	})

	t.Run("explicit disable survives the merge", func(t *testing.T) {
		t.Parallel()

		got := (&Config{DisableResponsive: true}).merged()

		if !got.DisableResponsive {
			t.Error("DisableResponsive = false, explicit value lost")
		}
	})

	t.Run("partial weight overrides keep other defaults", func(t *testing.T) {
		t.Parallel()

		got := (&Config{
			ColumnTypeWeights: map[SemanticType]float64{TypeDescription: 3.0},
		}).merged()

		if got.ColumnTypeWeights[TypeDescription] != 3.0 {
			t.Errorf("description weight = %.1f, want override 3.0", got.ColumnTypeWeights[TypeDescription])
		}
		if got.ColumnTypeWeights[TypeIdentifier] != 1.2 {
			t.Errorf("identifier weight = %.1f, want default 1.2", got.ColumnTypeWeights[TypeIdentifier])
		}
	})

	t.Run("merged does not mutate the input", func(t *testing.T) {
		t.Parallel()

		in := &Config{ColumnTypeWeights: map[SemanticType]float64{TypeDefault: 2.0}}
		_ = in.merged()

		if len(in.ColumnTypeWeights) != 1 {
			t.Errorf("input weights mutated: %v", in.ColumnTypeWeights)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConfigWeight - Weight Lookup
// ---------------------------------------------------------------------------

func TestConfigWeight(t *testing.T) {
	t.Parallel()

	cfg := &Config{ColumnTypeWeights: map[SemanticType]float64{
		TypeDefault: 1.1,
		TypeNumeric: 0.5,
	}}

	if got := cfg.weight(TypeNumeric); got != 0.5 {
		t.Errorf("weight(numeric) = %.2f, want 0.5", got)
	}
	if got := cfg.weight(TypeFilename); got != 1.1 {
		t.Errorf("weight(filename) = %.2f, want default type fallback 1.1", got)
	}
	if got := (&Config{}).weight(TypeIdentifier); got != 1.0 {
		t.Errorf("weight with no table = %.2f, want 1.0", got)
	}
}
