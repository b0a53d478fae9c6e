package tablelayout

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// TableAnalysis is the per-table result of a full content scan.
type TableAnalysis struct {
	Columns        []ColumnProfile
	RowCount       int // data rows, header excluded
	ContainerWidth float64
}

// TableLayoutRecord caches one table's analysis and allocation, keyed by
// the table's stable identifier. Owned exclusively by the Manager and
// overwritten on every recompute.
type TableLayoutRecord struct {
	Table      *Table
	Analysis   TableAnalysis
	Allocation []float64
	UpdatedAt  time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMeasurer replaces the default font-metrics measurer, e.g. with a
// BrowserMeasurer for real browser text metrics.
func WithMeasurer(m TextMeasurer) ManagerOption {
	return func(mgr *Manager) { mgr.measurer = m }
}

// WithLogger sets the logger used for per-table skip messages.
func WithLogger(l *log.Logger) ManagerOption {
	return func(mgr *Manager) { mgr.log = l }
}

// Manager runs the layout pipeline over a document's tables and owns the
// analysis cache and the injected style blocks. Create one per document;
// lifecycle is create, ProcessAllTables/Relayout, Teardown.
type Manager struct {
	mu       sync.Mutex
	doc      *Document
	cfg      *Config
	measurer TextMeasurer
	log      *log.Logger

	records map[string]*TableLayoutRecord
	nextID  int

	resizeTimer  *time.Timer
	resizeGen    uint64
	pendingWidth float64
	closed       bool
}

// NewManager creates a Manager for a parsed document. A nil config means
// defaults; zero-valued config fields are filled from defaults before the
// configuration is validated once, fatally.
func NewManager(doc *Document, cfg *Config, opts ...ManagerOption) (*Manager, error) {
	merged := cfg.merged()
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		doc:     doc,
		cfg:     merged,
		log:     log.New(io.Discard),
		records: make(map[string]*TableLayoutRecord),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.measurer == nil {
		measurer, err := NewFontMeasurer()
		if err != nil {
			return nil, err
		}
		m.measurer = measurer
	}
	return m, nil
}

// ProcessAllTables discovers every table in the document, assigns stable
// identifiers on first sight, and runs the full pipeline for each.
// Per-table failures are logged with the table's identifier and skipped so
// one malformed table never blocks layout of the others.
func (m *Manager) ProcessAllTables() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	for _, table := range m.doc.Tables() {
		id := m.ensureID(table)
		if err := m.processLocked(table, id); err != nil {
			m.log.Warn("skipping table", "table", id, "err", err)
		}
	}
}

// ProcessTable runs the full pipeline for a single table and returns its
// identifier, assigning one if the table was never seen.
func (m *Manager) ProcessTable(table *Table) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", ErrManagerClosed
	}

	id := m.ensureID(table)
	if err := m.processLocked(table, id); err != nil {
		return id, err
	}
	return id, nil
}

// Relayout recomputes a table's allocation from its cached column profiles
// for the current container width, without re-scanning content. If the
// table's column count changed since analysis, the record is invalidated
// and the table is fully reprocessed.
func (m *Manager) Relayout(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrManagerClosed
	}

	// With no intervening size change, relayout reuses the width the table
	// was last laid out for, so repeated calls yield identical allocations.
	width := m.cfg.ContainerWidth
	if rec, ok := m.records[id]; ok {
		width = rec.Analysis.ContainerWidth
	}
	return m.relayoutLocked(id, width)
}

// NotifyResize reports a new container width from a window-level resize.
// Notifications are debounced: each one resets the pending timer, and a
// single relayout of all tables runs once the quiet period elapses.
// Ignored when responsive handling is disabled.
func (m *Manager) NotifyResize(width float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.cfg.DisableResponsive {
		return
	}

	m.pendingWidth = width

	// Each notification supersedes the pending one. A fresh timer with the
	// current generation rather than Reset: a timer that already fired but
	// whose callback is still waiting on the mutex would otherwise be
	// re-armed and run the relayout a second time.
	m.resizeGen++
	gen := m.resizeGen
	if m.resizeTimer != nil {
		m.resizeTimer.Stop()
	}
	m.resizeTimer = time.AfterFunc(m.cfg.ResizeDebounce, func() {
		m.resizeSettled(gen)
	})
}

// NotifyTableResize reports a new container width for a single table.
// Container-level notifications are not debounced; the table relayouts
// immediately.
func (m *Manager) NotifyTableResize(id string, width float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrManagerClosed
	}
	if m.cfg.DisableResponsive {
		return nil
	}
	return m.relayoutLocked(id, width)
}

// Teardown removes every injected style block, stops the pending resize
// timer, and clears the cache. The manager cannot be used afterwards.
func (m *Manager) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true

	if m.resizeTimer != nil {
		m.resizeTimer.Stop()
		m.resizeTimer = nil
	}
	for id := range m.records {
		removeStyle(m.doc, id)
	}
	m.records = make(map[string]*TableLayoutRecord)
}

// Record returns the cached layout record for a table identifier.
func (m *Manager) Record(id string) (*TableLayoutRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	return rec, ok
}

// resizeSettled fires once the debounce quiet period elapses. A generation
// mismatch means this fire was superseded by a later notification whose own
// timer owns the relayout.
func (m *Manager) resizeSettled(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || gen != m.resizeGen {
		return
	}

	m.resizeTimer = nil
	m.cfg.ContainerWidth = m.pendingWidth
	for id := range m.records {
		if err := m.relayoutLocked(id, m.pendingWidth); err != nil {
			m.log.Warn("relayout failed", "table", id, "err", err)
		}
	}
}

// ensureID returns the table's stable identifier, assigning the next one
// on first sight. Identifiers already present in the document are reused.
func (m *Manager) ensureID(table *Table) string {
	if id := table.ID(); id != "" {
		return id
	}
	m.nextID++
	id := fmt.Sprintf("%s-%d", idPrefix, m.nextID)
	setAttr(table.node, tableIDAttr, id)
	return id
}

// processLocked runs classify, measure, allocate and style for one table.
func (m *Manager) processLocked(table *Table, id string) error {
	return m.processWidthLocked(table, id, m.cfg.ContainerWidth)
}

func (m *Manager) processWidthLocked(table *Table, id string, containerWidth float64) error {
	analysis, err := m.analyzeTable(table, containerWidth)
	if err != nil {
		return err
	}

	widths, err := allocate(analysis.Columns, m.cfg, analysis.ContainerWidth)
	if err != nil {
		return err
	}

	m.records[id] = &TableLayoutRecord{
		Table:      table,
		Analysis:   *analysis,
		Allocation: widths,
		UpdatedAt:  time.Now(),
	}
	applyStyle(m.doc, table, id, buildTableCSS(id, widths, m.cfg))
	return nil
}

// relayoutLocked reuses cached profiles and recomputes only the
// allocation for the given container width. Unknown or stale records
// fall back to a full reprocess.
func (m *Manager) relayoutLocked(id string, containerWidth float64) error {
	rec, ok := m.records[id]
	if !ok {
		return m.reprocessByID(id, containerWidth)
	}

	// Column count changed since analysis: the cached profiles no longer
	// describe the table, recompute everything.
	if rec.Table.ColumnCount() != len(rec.Analysis.Columns) {
		delete(m.records, id)
		return m.processWidthLocked(rec.Table, id, containerWidth)
	}

	widths, err := allocate(rec.Analysis.Columns, m.cfg, containerWidth)
	if err != nil {
		return err
	}

	rec.Analysis.ContainerWidth = containerWidth
	rec.Allocation = widths
	rec.UpdatedAt = time.Now()
	applyStyle(m.doc, rec.Table, id, buildTableCSS(id, widths, m.cfg))
	return nil
}

// reprocessByID locates a table by identifier and runs the full pipeline.
func (m *Manager) reprocessByID(id string, containerWidth float64) error {
	for _, table := range m.doc.Tables() {
		if table.ID() == id {
			return m.processWidthLocked(table, id, containerWidth)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTable, id)
}

// analyzeTable scans a table's content into column profiles with measured
// content widths. Header cells measure with the bold face, matching how
// browsers render th elements. Columns with zero data cells keep their
// default profile and skip measurement entirely.
func (m *Manager) analyzeTable(table *Table, containerWidth float64) (*TableAnalysis, error) {
	rows := table.Rows()
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	header := rows[0]
	dataRows := rows[1:]
	columnCount := len(header)

	// Column-major cell text, sized to the header's cell count.
	cells := make([][]string, columnCount)
	for _, row := range dataRows {
		for i := 0; i < columnCount && i < len(row); i++ {
			cells[i] = append(cells[i], row[i])
		}
	}

	profiles := make([]ColumnProfile, columnCount)
	for i := 0; i < columnCount; i++ {
		profiles[i] = classifyColumn(i, header[i], cells[i])
	}

	// Header-only table: nothing to measure, every profile stays default.
	if len(dataRows) == 0 {
		return &TableAnalysis{
			Columns:        profiles,
			ContainerWidth: containerWidth,
		}, nil
	}

	headerWidths, err := m.measurer.MeasureBatch(header, FontSpec{
		SizePx: DefaultFontSpec.SizePx,
		Family: DefaultFontSpec.Family,
		Bold:   true,
	})
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		if profiles[i].CellCount == 0 {
			continue
		}
		widths, err := m.measurer.MeasureBatch(cells[i], DefaultFontSpec)
		if err != nil {
			return nil, err
		}
		max := headerWidths[i]
		for _, w := range widths {
			if w > max {
				max = w
			}
		}
		profiles[i].ContentWidth = max + cellPaddingAllowance
	}

	return &TableAnalysis{
		Columns:        profiles,
		RowCount:       len(dataRows),
		ContainerWidth: containerWidth,
	}, nil
}
