package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	md2html "github.com/mingzhu/go-md2html"
	"github.com/mingzhu/go-md2html/internal/config"
	"github.com/mingzhu/go-md2html/tablelayout"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
	ErrWriteDOCX    = errors.New("failed to write DOCX file")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2html.Input) (*md2html.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2html.Converter)(nil)

// conversionParams groups parameters shared across the batch.
type conversionParams struct {
	title string
	toc   *md2html.TOC
	docx  bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// run orchestrates the conversion process.
func run(args []string, env *Environment) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	// Resolve input path
	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files under %s", ErrNoInput, inputPath)
	}

	conv, err := buildConverter(flags, cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		title: cfg.Document.Title,
		toc:   buildTOC(cfg),
		docx:  cfg.DOCX.Enabled,
	}

	ctx := context.Background()
	workers := resolveWorkers(flags.workers, len(files))
	env.Log.Debug("starting conversion", "files", len(files), "workers", workers)

	results := convertBatch(ctx, conv, files, params, workers)
	return reportResults(results, flags.common.quiet, flags.common.verbose, env)
}

// resolveInputPath picks the input from positional args or the config default.
func resolveInputPath(positional []string, cfg *config.Config) (string, error) {
	if len(positional) > 0 {
		return positional[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w: pass a markdown file or directory", ErrNoInput)
}

// resolveWorkers returns the effective worker count for a batch.
func resolveWorkers(requested, fileCount int) int {
	n := requested
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > fileCount {
		n = fileCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// mergeFlags overlays non-zero CLI flags onto the loaded config.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.toc.enabled {
		cfg.TOC.Enabled = true
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}
	if flags.tables.disabled {
		cfg.Tables.Disabled = true
	}
	if flags.tables.minWidth != 0 {
		cfg.Tables.MinColumnWidth = flags.tables.minWidth
	}
	if flags.tables.maxWidth != 0 {
		cfg.Tables.MaxColumnWidth = flags.tables.maxWidth
	}
	if flags.tables.containerWidth != 0 {
		cfg.Tables.ContainerWidth = flags.tables.containerWidth
	}
	if flags.tables.padding != 0 {
		cfg.Tables.ContainerPadding = flags.tables.padding
	}
	if flags.docx {
		cfg.DOCX.Enabled = true
	}
}

// buildConverter assembles converter options from the merged config.
func buildConverter(flags *convertFlags, cfg *config.Config) (*md2html.Converter, error) {
	var opts []md2html.Option

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid timeout %q", flags.timeout)
		}
		opts = append(opts, md2html.WithTimeout(d))
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, md2html.WithStyle(cfg.CSS.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Tables.Disabled {
		opts = append(opts, md2html.WithoutTableLayout())
	} else if tcfg := buildTableConfig(cfg); tcfg != nil {
		opts = append(opts, md2html.WithTableLayout(tcfg))
	}

	return md2html.NewConverter(opts...)
}

// buildTableConfig translates config file table settings into a layout config.
// Returns nil when every setting is default.
func buildTableConfig(cfg *config.Config) *tablelayout.Config {
	t := cfg.Tables
	if t.MinColumnWidth == 0 && t.MaxColumnWidth == 0 && t.ContainerWidth == 0 &&
		t.ContainerPadding == 0 && len(t.TypeWeights) == 0 {
		return nil
	}

	out := &tablelayout.Config{
		MinColumnWidth:   t.MinColumnWidth,
		MaxColumnWidth:   t.MaxColumnWidth,
		ContainerWidth:   t.ContainerWidth,
		ContainerPadding: t.ContainerPadding,
	}
	if len(t.TypeWeights) > 0 {
		out.ColumnTypeWeights = make(map[tablelayout.SemanticType]float64, len(t.TypeWeights))
		for typ, w := range t.TypeWeights {
			out.ColumnTypeWeights[tablelayout.SemanticType(typ)] = w
		}
	}
	return out
}

// buildTOC translates config file TOC settings into the library type.
func buildTOC(cfg *config.Config) *md2html.TOC {
	if !cfg.TOC.Enabled {
		return nil
	}
	return &md2html.TOC{
		Title:    cfg.TOC.Title,
		MaxDepth: cfg.TOC.MaxDepth,
	}
}

// convertBatch processes files concurrently with a bounded worker set.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	res, err := conv.Convert(ctx, md2html.Input{
		Markdown: string(content),
		Title:    params.title,
		TOC:      params.toc,
		DOCX:     params.docx,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.HTML, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
		result.Duration = time.Since(start)
		return result
	}

	if params.docx {
		docxPath := docxOutputPath(f.OutputPath)
		// #nosec G306 -- DOCX files are meant to be readable
		if err := os.WriteFile(docxPath, res.DOCX, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteDOCX, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// reportResults logs conversion outcomes and returns an error when any failed.
func reportResults(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)

	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			env.Log.Error("conversion failed", "input", r.InputPath, "err", r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			env.Log.Info("converted", "input", r.InputPath, "output", r.OutputPath,
				"duration", r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if firstErr != nil {
		return fmt.Errorf("%d of %d conversions failed: first error: %w",
			summary.Failed, len(results), firstErr)
	}
	return nil
}
