package tablelayout

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document wraps a parsed HTML tree that the layout engine can inspect and
// mutate. All style output is written back into this tree.
type Document struct {
	root *html.Node
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(content string) (*Document, error) {
	return Parse(strings.NewReader(content))
}

// Render serializes the document, including any injected style blocks.
func (d *Document) Render() (string, error) {
	var buf strings.Builder
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.String(), nil
}

// Tables returns all <table> elements in document order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, &Table{node: n})
		}
	})
	return tables
}

// head returns the document's <head> element, or nil if absent.
// html.Parse always synthesizes one for well-formed input.
func (d *Document) head() *html.Node {
	var head *html.Node
	walk(d.root, func(n *html.Node) {
		if head == nil && n.Type == html.ElementNode && n.DataAtom == atom.Head {
			head = n
		}
	})
	return head
}

// walk visits every node in the tree in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// Table is a handle to a <table> element inside a Document.
type Table struct {
	node *html.Node
}

// Rows returns the display text of every cell, one slice per row, in
// document order. The first row is the header row. Rows inside <thead>,
// <tbody> and <tfoot> wrappers are flattened in order.
func (t *Table) Rows() [][]string {
	var rows [][]string
	walk(t.node, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Tr {
			return
		}
		// Skip rows belonging to a nested table.
		if owningTable(n) != t.node {
			return
		}
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
				cells = append(cells, textContent(c))
			}
		}
		rows = append(rows, cells)
	})
	return rows
}

// ColumnCount returns the cell count of the first row, or 0 for a table
// with no rows.
func (t *Table) ColumnCount() int {
	rows := t.Rows()
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// ID returns the stable layout identifier assigned to this table, or ""
// if the table has not been processed yet.
func (t *Table) ID() string {
	return getAttr(t.node, tableIDAttr)
}

// owningTable returns the nearest enclosing <table> element.
func owningTable(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Table {
			return p
		}
	}
	return nil
}

// textContent returns the concatenated text of a node, whitespace-normalized
// the way a browser would display it.
func textContent(n *html.Node) string {
	var buf strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	})
	return strings.Join(strings.Fields(buf.String()), " ")
}

// getAttr returns the value of an attribute, or "" if absent.
func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// setAttr sets or replaces an attribute value.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// addClass appends a class token if not already present.
func addClass(n *html.Node, class string) {
	existing := getAttr(n, "class")
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	if existing == "" {
		setAttr(n, "class", class)
		return
	}
	setAttr(n, "class", existing+" "+class)
}
