// Package md2html converts Markdown documents to styled, standalone HTML
// with content-aware table layout.
//
// # Quick Start
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := conv.Convert(ctx, md2html.Input{
//		Markdown: "# Report\n\n| Gene | p-value |\n|---|---|\n| BRCA1 | 0.003 |",
//		TOC:      &md2html.TOC{Title: "Contents"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("report.html", res.HTML, 0o644)
//
// # Pipeline
//
// Convert runs the stages in order: Markdown preprocessing, Goldmark
// rendering (GFM tables, footnotes, syntax highlighting), table container
// wrapping, dynamic table layout, CSS injection, and optional TOC and DOCX
// generation.
//
// Tables get per-column widths computed from their content: each column is
// classified by header keywords and cell statistics, measured with real font
// metrics, and sized within configurable bounds. See the tablelayout package
// for the engine and its standalone API.
//
// # Styling
//
// The embedded default stylesheet is used unless WithStyle selects another
// built-in style, a CSS file path, or raw CSS. User CSS from Input.CSS is
// appended last and can override everything.
//
// # DOCX
//
// Setting Input.DOCX produces a DOCX rendition through the pandoc CLI, which
// must be installed and on PATH.
package md2html
