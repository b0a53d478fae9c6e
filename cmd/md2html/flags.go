package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	maxDepth int
}

// tableFlags holds dynamic table layout flags.
type tableFlags struct {
	minWidth       float64
	maxWidth       float64
	containerWidth float64
	padding        float64
	disabled       bool
}

// assetFlags holds asset-related flags (CSS, custom asset path).
type assetFlags struct {
	style     string // Name, path, or inline CSS
	assetPath string // Override asset directory
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	docx     bool
	document documentFlags
	toc      tocFlags
	tables   tableFlags
	assets   assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = auto from H1)")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "generate a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
}

// addTableFlags adds dynamic table layout flags to a FlagSet.
func addTableFlags(fs *flag.FlagSet, f *tableFlags) {
	fs.Float64Var(&f.minWidth, "table-min-width", 0, "minimum column width in px (0 = default)")
	fs.Float64Var(&f.maxWidth, "table-max-width", 0, "maximum column width in px (0 = default)")
	fs.Float64Var(&f.containerWidth, "container-width", 0, "assumed container width in px (0 = default)")
	fs.Float64Var(&f.padding, "container-padding", 0, "container padding in px (0 = default)")
	fs.BoolVar(&f.disabled, "no-tables", false, "disable dynamic table layout")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// parseFlags parses command flags and returns positional args.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("md2html", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.docx, "docx", false, "also produce DOCX output via pandoc")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addTOCFlags(fs, &f.toc)
	addTableFlags(fs, &f.tables)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
