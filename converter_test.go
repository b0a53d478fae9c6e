package md2html

// Notes:
// - Tests use a deterministic fake measurer so table layout assertions don't
//   depend on real font metrics.
// - DOCX tests inject a fake converter; pandoc is never invoked.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mingzhu/go-md2html/tablelayout"
)

// fakeMeasurer reports width proportional to rune count.
type fakeMeasurer struct {
	pxPerRune float64
}

func (f *fakeMeasurer) MeasureBatch(texts []string, spec tablelayout.FontSpec) ([]float64, error) {
	widths := make([]float64, len(texts))
	for i, s := range texts {
		widths[i] = float64(len([]rune(s))) * f.pxPerRune
	}
	return widths, nil
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	opts = append(opts, WithTextMeasurer(&fakeMeasurer{pxPerRune: 10}))
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	return conv
}

const tableMarkdown = "# Report\n\n" +
	"| Gene | p-value | Description |\n" +
	"|---|---|---|\n" +
	"| BRCA1 | 0.003 | Tumor suppressor involved in DNA repair pathways |\n" +
	"| TP53 | 0.0001 | Guardian of the genome |\n"

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	t.Run("defaults resolve embedded style", func(t *testing.T) {
		t.Parallel()

		conv, err := NewConverter()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if conv.cfg.resolvedStyle == "" {
			t.Error("default style not resolved")
		}
	})

	t.Run("raw CSS style accepted", func(t *testing.T) {
		t.Parallel()

		conv, err := NewConverter(WithStyle("body { color: red; }"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if conv.cfg.resolvedStyle != "body { color: red; }" {
			t.Errorf("raw CSS not used verbatim: %q", conv.cfg.resolvedStyle)
		}
	})

	t.Run("unknown style name fails", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithStyle("no-such-style"))
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("expected ErrStyleNotFound, got %v", err)
		}
	})

	t.Run("invalid table bounds fail construction", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithTableLayout(&tablelayout.Config{
			MinColumnWidth: 500,
			MaxColumnWidth: 100,
		}))
		if !errors.Is(err, tablelayout.ErrInvalidConfiguration) {
			t.Errorf("expected ErrInvalidConfiguration, got %v", err)
		}
	})

	t.Run("invalid asset path fails construction", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithAssetPath("/nonexistent/assets/dir"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("expected ErrInvalidAssetPath, got %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// Convert - validation and basics
// ---------------------------------------------------------------------------

func TestConvertValidation(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	ctx := context.Background()

	t.Run("empty markdown rejected", func(t *testing.T) {
		t.Parallel()

		_, err := conv.Convert(ctx, Input{})
		if !errors.Is(err, ErrEmptyMarkdown) {
			t.Errorf("expected ErrEmptyMarkdown, got %v", err)
		}
	})

	t.Run("invalid TOC depth rejected", func(t *testing.T) {
		t.Parallel()

		_, err := conv.Convert(ctx, Input{
			Markdown: "# Doc",
			TOC:      &TOC{MaxDepth: 9},
		})
		if !errors.Is(err, ErrInvalidTOCDepth) {
			t.Errorf("expected ErrInvalidTOCDepth, got %v", err)
		}
	})

	t.Run("invalid per-document table config rejected", func(t *testing.T) {
		t.Parallel()

		_, err := conv.Convert(ctx, Input{
			Markdown: "# Doc",
			Tables:   &tablelayout.Config{MinColumnWidth: -1},
		})
		if !errors.Is(err, tablelayout.ErrInvalidConfiguration) {
			t.Errorf("expected ErrInvalidConfiguration, got %v", err)
		}
	})
}

func TestConvert(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	ctx := context.Background()

	t.Run("produces styled standalone document", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(ctx, Input{Markdown: "# Hello\n\nWorld."})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		html := string(res.HTML)
		for _, want := range []string{
			"<!DOCTYPE html>",
			"<style>",
			"Hello",
			"World.",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("first H1 becomes title", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(ctx, Input{Markdown: "# My Report\n\ntext"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(res.HTML), "<title>My Report</title>") {
			t.Error("H1 not used as title")
		}
	})

	t.Run("explicit title wins over H1", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(ctx, Input{Markdown: "# Heading\n\ntext", Title: "Override"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(res.HTML), "<title>Override</title>") {
			t.Error("explicit title not used")
		}
	})

	t.Run("user CSS appended after base style", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(ctx, Input{Markdown: "text", CSS: "h1 { color: purple; }"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		html := string(res.HTML)
		base := strings.Index(html, "table-container")
		user := strings.Index(html, "color: purple")
		if base == -1 || user == -1 || user < base {
			t.Error("user CSS not appended after base style")
		}
	})

	t.Run("highlight syntax becomes mark tags", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(ctx, Input{Markdown: "This is ==key== info."})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(res.HTML), "<mark>key</mark>") {
			t.Error("highlight not converted to <mark>")
		}
	})

	t.Run("cancelled context aborts conversion", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := conv.Convert(cancelled, Input{Markdown: "# Doc"})
		if err == nil {
			t.Error("expected error on cancellation")
		}
	})
}

// ---------------------------------------------------------------------------
// Convert - tables and TOC
// ---------------------------------------------------------------------------

func TestConvertTables(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("tables wrapped and managed", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t)
		res, err := conv.Convert(ctx, Input{Markdown: tableMarkdown})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		html := string(res.HTML)
		for _, want := range []string{
			`class="table-container"`,
			"dynamic-layout",
			"data-dtl-id",
			"data-dtl-for",
			"nth-child",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("layout disabled leaves tables unmanaged", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, WithoutTableLayout())
		res, err := conv.Convert(ctx, Input{Markdown: tableMarkdown})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		html := string(res.HTML)
		if strings.Contains(html, "data-dtl-id") {
			t.Error("table managed despite WithoutTableLayout")
		}
		// The scroll container is still applied
		if !strings.Contains(html, `class="table-container"`) {
			t.Error("table container missing")
		}
	})

	t.Run("per-document config overrides converter default", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, WithTableLayout(&tablelayout.Config{MinColumnWidth: 60}))
		res, err := conv.Convert(ctx, Input{
			Markdown: tableMarkdown,
			Tables:   &tablelayout.Config{MinColumnWidth: 120, MaxColumnWidth: 130},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(res.HTML), "min-width: 120px") {
			t.Error("per-document min width not applied")
		}
	})
}

func TestConvertTOC(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	ctx := context.Background()

	md := "# Title\n\n## First\n\ntext\n\n## Second\n\n### Nested\n\ntext"

	t.Run("nil TOC omits nav", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(ctx, Input{Markdown: md})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(string(res.HTML), `<nav class="toc">`) {
			t.Error("TOC present without being requested")
		}
	})

	t.Run("TOC lists numbered headings", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(ctx, Input{Markdown: md, TOC: &TOC{Title: "Contents"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		html := string(res.HTML)
		for _, want := range []string{
			`<nav class="toc">`,
			"Contents",
			"1. First",
			"2. Second",
			"2.1. Nested",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("MaxDepth limits nesting", func(t *testing.T) {
		t.Parallel()

		res, err := conv.Convert(ctx, Input{Markdown: md, TOC: &TOC{MaxDepth: 2}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(string(res.HTML), "2.1. Nested") {
			t.Error("H3 included despite MaxDepth 2")
		}
	})
}

// ---------------------------------------------------------------------------
// Convert - DOCX
// ---------------------------------------------------------------------------

// fakeDocxConverter records its input and returns canned bytes.
type fakeDocxConverter struct {
	gotHTML string
	fail    bool
}

func (f *fakeDocxConverter) ToDOCX(ctx context.Context, htmlContent string) ([]byte, error) {
	if f.fail {
		return nil, ErrDocxConversion
	}
	f.gotHTML = htmlContent
	return []byte("PK docx"), nil
}

func TestConvertDOCX(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("produces DOCX from final HTML", func(t *testing.T) {
		t.Parallel()

		fake := &fakeDocxConverter{}
		conv := newTestConverter(t)
		conv.docxConverter = fake

		res, err := conv.Convert(ctx, Input{Markdown: "# Doc\n\ntext", DOCX: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(res.DOCX) != "PK docx" {
			t.Errorf("unexpected DOCX bytes: %q", res.DOCX)
		}
		if fake.gotHTML != string(res.HTML) {
			t.Error("DOCX not generated from the final HTML")
		}
	})

	t.Run("conversion failure surfaces", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t)
		conv.docxConverter = &fakeDocxConverter{fail: true}

		_, err := conv.Convert(ctx, Input{Markdown: "# Doc", DOCX: true})
		if !errors.Is(err, ErrDocxConversion) {
			t.Errorf("expected ErrDocxConversion, got %v", err)
		}
	})

	t.Run("DOCX skipped when not requested", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t)
		res, err := conv.Convert(ctx, Input{Markdown: "# Doc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.DOCX != nil {
			t.Error("DOCX produced without being requested")
		}
	})
}
