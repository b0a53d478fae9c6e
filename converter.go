package md2html

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mingzhu/go-md2html/internal/assets"
	"github.com/mingzhu/go-md2html/internal/fileutil"
	"github.com/mingzhu/go-md2html/internal/pipeline"
	"github.com/mingzhu/go-md2html/tablelayout"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.TableWrapper         = (*pipeline.TableWrapping)(nil)
	_ pipeline.TOCInjector          = (*pipeline.TOCInjection)(nil)
)

// Converter orchestrates the markdown-to-HTML conversion pipeline.
// Create with NewConverter() and use Convert() for conversion.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	tableWrapper  pipeline.TableWrapper
	cssInjector   pipeline.CSSInjector
	tocInjector   pipeline.TOCInjector
	measurer      tablelayout.TextMeasurer
	docxConverter docxConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithTableLayout).
// Returns error if asset loading or table layout configuration fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout},
		assetLoader:   assets.NewEmbeddedLoader(),
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		tableWrapper:  &pipeline.TableWrapping{},
		cssInjector:   &pipeline.CSSInjection{},
		tocInjector:   pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: resolve to custom-first loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Invalid layout bounds are programmer errors; fail construction
	if c.cfg.tableCfg != nil {
		if err := c.cfg.tableCfg.WithDefaults().Validate(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Convert runs the full pipeline and returns the result containing HTML
// (and DOCX when requested). The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Title: explicit input wins, then the document's first H1
	title := input.Title
	if title == "" {
		title = pipeline.ExtractTitle(mdContent)
	}

	// Convert to HTML
	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent, title)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	// Convert highlight placeholders to <mark> tags.
	// This completes the ==text== feature started in preprocessing.
	// Done after Goldmark to avoid needing html.WithUnsafe().
	htmlContent = pipeline.ConvertMarkPlaceholders(htmlContent)

	// Wrap tables in scroll containers and tag them for layout
	htmlContent = c.tableWrapper.WrapTables(ctx, htmlContent)

	// Apply dynamic column widths
	if !c.cfg.disableTables {
		htmlContent, err = c.layoutTables(htmlContent, input.Tables)
		if err != nil {
			return nil, fmt.Errorf("laying out tables: %w", err)
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Build combined CSS (converter style + user CSS)
	// Order matters: converter style first (base), user CSS last (can override)
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}

	// Inject CSS
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Inject TOC (if provided)
	var tData *pipeline.TOCData
	if input.TOC != nil {
		tData = toTOCData(input.TOC)
	}
	htmlContent, err = c.tocInjector.InjectTOC(ctx, htmlContent, tData)
	if err != nil {
		return nil, fmt.Errorf("injecting TOC: %w", err)
	}

	res := &Result{
		HTML: []byte(htmlContent),
	}

	// DOCX rendition via pandoc (if requested)
	if input.DOCX {
		conv := c.docxConverter
		if conv == nil {
			conv, err = NewPandocConverter()
			if err != nil {
				return nil, err
			}
		}
		docx, err := conv.ToDOCX(ctx, htmlContent)
		if err != nil {
			return nil, err
		}
		res.DOCX = docx
	}

	return res, nil
}

// layoutTables runs the table layout engine over the document and returns
// the HTML with per-table style blocks applied.
func (c *Converter) layoutTables(htmlContent string, override *tablelayout.Config) (string, error) {
	doc, err := tablelayout.ParseString(htmlContent)
	if err != nil {
		return "", err
	}

	cfg := c.cfg.tableCfg
	if override != nil {
		cfg = override
	}

	var opts []tablelayout.ManagerOption
	if c.measurer != nil {
		opts = append(opts, tablelayout.WithMeasurer(c.measurer))
	}

	mgr, err := tablelayout.NewManager(doc, cfg, opts...)
	if err != nil {
		return "", err
	}
	mgr.ProcessAllTables()

	return doc.Render()
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter() after options are applied and the asset loader
// is configured. An empty style input selects the embedded default.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier at config load time.
// Both paths converge here, ensuring all inputs are validated before processing.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if err := input.TOC.Validate(); err != nil {
		return err
	}
	if input.Tables != nil {
		if err := input.Tables.WithDefaults().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// toTOCData converts the public TOC type to internal pipeline.TOCData.
// The minimum depth is fixed at 2: the H1 is the document title and never
// belongs in its own table of contents.
func toTOCData(t *TOC) *pipeline.TOCData {
	if t == nil {
		return nil
	}
	maxDepth := t.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return &pipeline.TOCData{
		Title:    t.Title,
		MinDepth: 2,
		MaxDepth: maxDepth,
	}
}
