// Package tablelayout computes adaptive column widths for HTML tables.
//
// The engine inspects each table's header text and cell values, classifies
// every column by content semantics (identifier, numeric, description,
// filename or default), measures the pixel width the content needs with
// real font metrics, and allocates a width per column that fits the
// container. The allocation is published back into the document as one
// scoped <style> block per table.
//
// # Quick Start
//
// Parse a document, create a manager, process, render:
//
//	doc, err := tablelayout.ParseString(htmlContent)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mgr, err := tablelayout.NewManager(doc, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.Teardown()
//
//	mgr.ProcessAllTables()
//	styled, err := doc.Render()
//
// # Responsive relayout
//
// The manager caches each table's content analysis. When the host reports
// a container size change, only the allocation is recomputed:
//
//	mgr.NotifyResize(720)              // window-level, debounced
//	mgr.NotifyTableResize("dtl-1", 640) // per table, immediate
//
// Window-level notifications are debounced with a single pending timer
// (default 250ms quiet period); only the final width of a resize burst
// triggers work. Content is never re-scanned unless a table's column count
// changed since analysis.
//
// # Measurement backends
//
// Text is measured with the embedded Go fonts by default, which needs no
// external processes. For metrics identical to a real browser, use the
// headless-Chrome backend:
//
//	bm := tablelayout.NewBrowserMeasurer()
//	defer bm.Close()
//	mgr, err := tablelayout.NewManager(doc, nil, tablelayout.WithMeasurer(bm))
package tablelayout
