package tablelayout

import (
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontSpec describes the computed font a cell's text renders with.
type FontSpec struct {
	SizePx float64 // rendered size in pixels
	Bold   bool    // weight >= 600 (header cells render bold)
	Family string  // informational; backends may ignore it
}

// DefaultFontSpec is the font assumed for table body cells when the host
// provides nothing more specific.
var DefaultFontSpec = FontSpec{SizePx: 16, Family: "sans-serif"}

// TextMeasurer measures the pixel width of rendered text. MeasureBatch
// measures every text in one batch so backends can acquire their
// measurement surface once per batch and release it before returning;
// the surface must never persist across calls.
type TextMeasurer interface {
	MeasureBatch(texts []string, spec FontSpec) ([]float64, error)
}

// fontMeasurer measures text with real font metrics from the embedded Go
// fonts. Regular and bold faces are parsed once; a sized face is created
// per batch and closed before the batch returns.
type fontMeasurer struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
}

// NewFontMeasurer returns a TextMeasurer backed by font metrics.
// It needs no browser and is the default backend.
func NewFontMeasurer() (TextMeasurer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing regular font: %v", ErrMeasurement, err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing bold font: %v", ErrMeasurement, err)
	}
	return &fontMeasurer{regular: regular, bold: bold}, nil
}

// MeasureBatch measures every text with a face sized from the FontSpec.
// Faces buffer glyph rasterization state and are not safe for concurrent
// use, so the whole batch runs under the measurer's lock.
func (m *fontMeasurer) MeasureBatch(texts []string, spec FontSpec) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.regular
	if spec.Bold {
		src = m.bold
	}

	size := spec.SizePx
	if size <= 0 {
		size = DefaultFontSpec.SizePx
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 1pt == 1px at 72 DPI
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating face: %v", ErrMeasurement, err)
	}
	defer face.Close()

	widths := make([]float64, len(texts))
	for i, text := range texts {
		widths[i] = measureString(face, size, text)
	}
	return widths, nil
}

// measureString sums per-rune advances. Runes the face has no glyph for
// (CJK and other scripts outside the Go fonts' coverage) fall back to a
// display-cell estimate: half an em per terminal cell.
func measureString(face font.Face, sizePx float64, text string) float64 {
	var total float64
	prev := rune(-1)
	for _, r := range text {
		advance, ok := face.GlyphAdvance(r)
		if !ok {
			total += sizePx * 0.5 * float64(runewidth.RuneWidth(r))
			prev = -1
			continue
		}
		if prev >= 0 {
			total += fixedToPx(face.Kern(prev, r))
		}
		total += fixedToPx(advance)
		prev = r
	}
	return total
}

// fixedToPx converts a 26.6 fixed-point value to float64 pixels.
func fixedToPx(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
