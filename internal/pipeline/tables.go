package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Opening <table> tag with its attributes
	tableOpenPattern = regexp.MustCompile(`(?i)<table(\s[^>]*)?>`)

	// class attribute inside an opening tag
	classAttrPattern = regexp.MustCompile(`(?i)\bclass="([^"]*)"`)

	// Any table tag, opening or closing
	tableTagPattern = regexp.MustCompile(`(?i)<(/?)table[\s>]`)
)

// TableWrapper defines the contract for table container wrapping.
type TableWrapper interface {
	WrapTables(ctx context.Context, htmlContent string) string
}

// TableWrapping wraps each <table> in a scrollable container div and tags it
// for dynamic layout. The container provides horizontal overflow scrolling
// for tables wider than the viewport; the class marks tables the layout
// engine should manage.
type TableWrapping struct{}

// WrapTables surrounds every table with <div class="table-container"> and
// appends the dynamic-layout class to the table itself. Tables already
// carrying the class are left untouched, so the pass is idempotent.
func (w *TableWrapping) WrapTables(ctx context.Context, htmlContent string) string {
	// Check for cancellation
	if ctx.Err() != nil {
		return htmlContent
	}

	var out strings.Builder
	last := 0
	for _, loc := range tableOpenPattern.FindAllStringSubmatchIndex(htmlContent, -1) {
		if loc[0] < last {
			// Nested table already consumed with its parent
			continue
		}
		open := htmlContent[loc[0]:loc[1]]
		if strings.Contains(open, "dynamic-layout") {
			continue
		}

		out.WriteString(htmlContent[last:loc[0]])
		out.WriteString(`<div class="table-container">`)
		out.WriteString(tagTable(open))

		// Copy through the matching </table> and close the container
		rest := htmlContent[loc[1]:]
		end := closingTableIndex(rest)
		out.WriteString(rest[:end])
		out.WriteString(`</div>`)
		last = loc[1] + end
	}
	out.WriteString(htmlContent[last:])
	return out.String()
}

// tagTable adds the dynamic-layout class to an opening <table> tag.
func tagTable(open string) string {
	if m := classAttrPattern.FindStringSubmatchIndex(open); m != nil {
		return open[:m[3]] + " dynamic-layout" + open[m[3]:]
	}
	// No class attribute: insert one after "<table"
	return open[:6] + ` class="dynamic-layout"` + open[6:]
}

// closingTableIndex returns the offset just past the </table> that closes
// the table whose opening tag precedes s. Nested tables are balanced; an
// unclosed table consumes the remainder of the document.
func closingTableIndex(s string) int {
	depth := 1
	offset := 0
	for {
		loc := tableTagPattern.FindStringSubmatchIndex(s[offset:])
		if loc == nil {
			return len(s)
		}
		closing := loc[3] > loc[2] // non-empty "/" capture
		if closing {
			depth--
			if depth == 0 {
				// Consume through the closing ">"
				end := strings.Index(s[offset+loc[0]:], ">")
				if end == -1 {
					return len(s)
				}
				return offset + loc[0] + end + 1
			}
		} else {
			depth++
		}
		offset += loc[1]
	}
}
