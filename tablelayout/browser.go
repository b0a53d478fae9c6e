package tablelayout

import (
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// browserMeasureTimeout bounds a single measurement batch.
const browserMeasureTimeout = 10 * time.Second

// measureScript measures text widths with the browser's own text metrics.
// The canvas never enters the visible flow, so nothing on the page shifts.
const measureScript = `(texts, font) => {
	const ctx = document.createElement('canvas').getContext('2d');
	ctx.font = font;
	return texts.map(t => ctx.measureText(t).width);
}`

// BrowserMeasurer measures text in a headless Chrome instance via an
// off-screen canvas, using the same text metrics a real page would see.
// The browser launches lazily on first use; each batch gets a fresh
// detached page that is closed before the batch returns.
type BrowserMeasurer struct {
	browser *rod.Browser
}

// NewBrowserMeasurer creates a BrowserMeasurer. The browser is not
// launched until the first measurement batch.
func NewBrowserMeasurer() *BrowserMeasurer {
	return &BrowserMeasurer{}
}

// ensureBrowser lazily connects to the browser.
func (m *BrowserMeasurer) ensureBrowser() error {
	if m.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: launching browser: %v", ErrMeasurement, err)
	}

	m.browser = rod.New().ControlURL(u)
	if err := m.browser.Connect(); err != nil {
		m.browser = nil
		return fmt.Errorf("%w: connecting to browser: %v", ErrMeasurement, err)
	}
	return nil
}

// MeasureBatch measures all texts in one page evaluation. The page is the
// measurement surface: created per batch, never rendered visibly, and
// closed before returning.
func (m *BrowserMeasurer) MeasureBatch(texts []string, spec FontSpec) ([]float64, error) {
	if err := m.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := m.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: creating measurement page: %v", ErrMeasurement, err)
	}
	defer page.Close()

	result, err := page.Timeout(browserMeasureTimeout).Eval(measureScript, texts, cssFont(spec))
	if err != nil {
		return nil, fmt.Errorf("%w: evaluating measurement script: %v", ErrMeasurement, err)
	}

	values := result.Value.Arr()
	if len(values) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d widths, got %d", ErrMeasurement, len(texts), len(values))
	}

	widths := make([]float64, len(values))
	for i, v := range values {
		widths[i] = v.Num()
	}
	return widths, nil
}

// Close releases the browser. Safe to call when no browser was launched.
func (m *BrowserMeasurer) Close() error {
	if m.browser != nil {
		err := m.browser.Close()
		m.browser = nil
		return err
	}
	return nil
}

// cssFont renders a FontSpec as a CSS font shorthand for canvas metrics.
func cssFont(spec FontSpec) string {
	size := spec.SizePx
	if size <= 0 {
		size = DefaultFontSpec.SizePx
	}
	family := spec.Family
	if family == "" {
		family = DefaultFontSpec.Family
	}
	weight := "normal"
	if spec.Bold {
		weight = "bold"
	}
	return fmt.Sprintf("%s %.4gpx %s", weight, size, family)
}

// Compile-time interface check.
var _ TextMeasurer = (*BrowserMeasurer)(nil)
