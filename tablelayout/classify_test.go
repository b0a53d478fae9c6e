package tablelayout

// Notes:
// - isNumericCell: tests the three numeric cell forms and non-numeric text
// - classifyColumn: tests statistics aggregation and type precedence
// - semanticType: tests header keyword precedence over content statistics

import (
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIsNumericCell - Numeric Cell Matching
// ---------------------------------------------------------------------------

func TestIsNumericCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "integer", input: "42", want: true},
		{name: "negative integer", input: "-7", want: true},
		{name: "decimal", input: "3.14", want: true},
		{name: "trailing dot decimal", input: "5.", want: true},
		{name: "scientific notation", input: "-2e10", want: true},
		{name: "scientific with decimal", input: "1.5E-3", want: true},
		{name: "p-value less-than", input: "p<0.05", want: true},
		{name: "p-value with spaces", input: "p < 0.05", want: true},
		{name: "p-value equals uppercase", input: "P=0.001", want: true},
		{name: "p-value scientific", input: "p < 1e-16", want: true},
		{name: "surrounding whitespace", input: "  3.14  ", want: true},
		{name: "empty string", input: "", want: false},
		{name: "whitespace only", input: "   ", want: false},
		{name: "not available", input: "N/A", want: false},
		{name: "identifier with digits", input: "gene1", want: false},
		{name: "two dots", input: "1.2.3", want: false},
		{name: "number with unit", input: "42 kb", want: false},
		{name: "bare sign", input: "-", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNumericCell(tt.input); got != tt.want {
				t.Errorf("isNumericCell(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSemanticType - Classification Precedence
// ---------------------------------------------------------------------------

func TestSemanticType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		header               string
		predominantlyNumeric bool
		longContent          bool
		want                 SemanticType
	}{
		{name: "gene header", header: "Gene Symbol", want: TypeIdentifier},
		{name: "id header", header: "Sample ID", want: TypeIdentifier},
		{name: "id substring wins over numeric content", header: "Identifier", predominantlyNumeric: true, want: TypeIdentifier},
		{name: "count header", header: "Read Count", want: TypeNumeric},
		{name: "p-value header", header: "P-Value", want: TypeNumeric},
		{name: "fold header", header: "Fold Change", want: TypeNumeric},
		{name: "numeric content without keyword", header: "Score", predominantlyNumeric: true, want: TypeNumeric},
		{name: "description header", header: "Description", want: TypeDescription},
		{name: "annotation header", header: "GO Annotation", want: TypeDescription},
		{name: "long content without keyword", header: "Notes", longContent: true, want: TypeDescription},
		{name: "file header", header: "Input File", want: TypeFilename},
		{name: "path header", header: "Output Path", want: TypeFilename},
		{name: "no match", header: "Sample", want: TypeDefault},
		{name: "case insensitive", header: "GENE", want: TypeIdentifier},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := semanticType(tt.header, tt.predominantlyNumeric, tt.longContent)
			if got != tt.want {
				t.Errorf("semanticType(%q, %v, %v) = %q, want %q",
					tt.header, tt.predominantlyNumeric, tt.longContent, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestClassifyColumn - Profile Construction
// ---------------------------------------------------------------------------

func TestClassifyColumn(t *testing.T) {
	t.Parallel()

	t.Run("numeric statistics", func(t *testing.T) {
		t.Parallel()

		p := classifyColumn(2, "Score", []string{"1.5", "2e3", "n/a", "p<0.01"})

		if p.Index != 2 {
			t.Errorf("Index = %d, want 2", p.Index)
		}
		if p.CellCount != 4 {
			t.Errorf("CellCount = %d, want 4", p.CellCount)
		}
		if p.NumericCellCount != 3 {
			t.Errorf("NumericCellCount = %d, want 3", p.NumericCellCount)
		}
		if p.TextCellCount != 1 {
			t.Errorf("TextCellCount = %d, want 1", p.TextCellCount)
		}
		if !p.PredominantlyNumeric {
			t.Error("PredominantlyNumeric = false, want true")
		}
		if p.Type != TypeNumeric {
			t.Errorf("Type = %q, want %q", p.Type, TypeNumeric)
		}
	})

	t.Run("long content flag", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("x", 80)
		p := classifyColumn(0, "Notes", []string{"short", long})

		if !p.LongContent {
			t.Error("LongContent = false, want true")
		}
		if p.MaxCellLength != 80 {
			t.Errorf("MaxCellLength = %d, want 80", p.MaxCellLength)
		}
		if p.Type != TypeDescription {
			t.Errorf("Type = %q, want %q", p.Type, TypeDescription)
		}
	})

	t.Run("exactly at threshold is not long", func(t *testing.T) {
		t.Parallel()

		p := classifyColumn(0, "Notes", []string{strings.Repeat("x", 50)})
		if p.LongContent {
			t.Error("LongContent = true for length 50, want false (threshold is exclusive)")
		}
	})

	t.Run("zero data cells yields default profile", func(t *testing.T) {
		t.Parallel()

		p := classifyColumn(1, "Gene", nil)

		if p.Type != TypeDefault {
			t.Errorf("Type = %q, want %q (classification skipped on empty data)", p.Type, TypeDefault)
		}
		if p.CellCount != 0 || p.NumericCellCount != 0 || p.TextCellCount != 0 || p.MaxCellLength != 0 {
			t.Errorf("counters not zero: %+v", p)
		}
	})

	t.Run("average cell length", func(t *testing.T) {
		t.Parallel()

		p := classifyColumn(0, "Sample", []string{"ab", "abcd"})
		if p.AvgCellLength != 3 {
			t.Errorf("AvgCellLength = %.1f, want 3.0", p.AvgCellLength)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		cells := []string{"1.5", "2.5", "text"}
		a := classifyColumn(0, "Value", cells)
		b := classifyColumn(0, "Value", cells)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("same input produced different profiles:\n%+v\n%+v", a, b)
		}
	})
}
