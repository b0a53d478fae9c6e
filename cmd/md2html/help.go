package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to styled HTML with content-aware table layout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --docx                  Also produce DOCX output via pandoc")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>             Document title (\"\" = auto from H1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of contents:")
	fmt.Fprintln(w, "      --toc                   Generate a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>         Heading above the TOC")
	fmt.Fprintln(w, "      --toc-max-depth <n>     Max heading depth (1-6, default: 3)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tables:")
	fmt.Fprintln(w, "      --table-min-width <f>   Minimum column width in px")
	fmt.Fprintln(w, "      --table-max-width <f>   Maximum column width in px")
	fmt.Fprintln(w, "      --container-width <f>   Assumed container width in px")
	fmt.Fprintln(w, "      --container-padding <f> Container padding in px")
	fmt.Fprintln(w, "      --no-tables             Disable dynamic table layout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>             CSS style name, file path, or inline CSS")
	fmt.Fprintln(w, "      --asset-path <path>     Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
}
