package tablelayout

import (
	"regexp"
	"strings"
)

// Numeric cell forms. A trimmed cell is numeric when it matches any of
// these; empty or whitespace-only text never is.
var (
	plainNumberPattern = regexp.MustCompile(`^-?\d+\.?\d*$`)
	scientificPattern  = regexp.MustCompile(`^-?\d+\.?\d*[eE][+-]?\d+$`)
	pValuePattern      = regexp.MustCompile(`(?i)^p\s*[<>=]\s*-?\d+\.?\d*([eE][+-]?\d+)?$`)
)

// Header keywords per semantic type, matched as case-insensitive substrings
// in precedence order.
var (
	identifierKeywords  = []string{"gene", "id", "symbol"}
	numericKeywords     = []string{"count", "value", "p-value", "fold"}
	descriptionKeywords = []string{"description", "annotation"}
	filenameKeywords    = []string{"file", "path"}
)

// ColumnProfile captures the content shape of one table column.
// Derived once per analysis pass and immutable until re-analysis.
type ColumnProfile struct {
	Index                int
	HeaderText           string
	Type                 SemanticType
	ContentWidth         float64 // px needed by the widest cell, padding included
	CellCount            int
	NumericCellCount     int
	TextCellCount        int
	MaxCellLength        int
	AvgCellLength        float64
	PredominantlyNumeric bool
	LongContent          bool
}

// isNumericCell reports whether a cell's displayed text reads as a number:
// plain integer/decimal, scientific notation, or a p-value expression.
func isNumericCell(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return plainNumberPattern.MatchString(trimmed) ||
		scientificPattern.MatchString(trimmed) ||
		pValuePattern.MatchString(trimmed)
}

// classifyColumn builds a profile from a column's header text and data cells.
// Classification is a pure function of the header and content statistics.
// A column with zero data cells gets a default profile; its width is filled
// in later by the allocator's minimum floor.
func classifyColumn(index int, header string, cells []string) ColumnProfile {
	p := ColumnProfile{
		Index:      index,
		HeaderText: header,
		Type:       TypeDefault,
	}

	if len(cells) == 0 {
		return p
	}

	totalLength := 0
	for _, cell := range cells {
		length := len([]rune(strings.TrimSpace(cell)))
		totalLength += length
		if length > p.MaxCellLength {
			p.MaxCellLength = length
		}
		if isNumericCell(cell) {
			p.NumericCellCount++
		} else {
			p.TextCellCount++
		}
	}
	p.CellCount = len(cells)
	p.AvgCellLength = float64(totalLength) / float64(len(cells))
	p.PredominantlyNumeric = p.NumericCellCount > p.TextCellCount
	p.LongContent = p.MaxCellLength > longContentThreshold
	p.Type = semanticType(header, p.PredominantlyNumeric, p.LongContent)
	return p
}

// semanticType picks the column type by precedence: header keywords first,
// content statistics as tie-breakers within the numeric and description
// rules. First match wins.
func semanticType(header string, predominantlyNumeric, longContent bool) SemanticType {
	h := strings.ToLower(header)

	if containsAny(h, identifierKeywords) {
		return TypeIdentifier
	}
	if containsAny(h, numericKeywords) || predominantlyNumeric {
		return TypeNumeric
	}
	if containsAny(h, descriptionKeywords) || longContent {
		return TypeDescription
	}
	if containsAny(h, filenameKeywords) {
		return TypeFilename
	}
	return TypeDefault
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
