package tablelayout

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selector anchors written onto processed tables. The attribute carries the
// stable identifier; the class marks the table as managed so the generated
// selectors stay valid if the table moves within the document.
const (
	tableIDAttr  = "data-dtl-id"
	styleForAttr = "data-dtl-for"
	managedClass = "dtl-managed"
	idPrefix     = "dtl"
)

// buildTableCSS renders one rule set for a table's width allocation.
// Each column gets its share of the allocated total as a percentage plus
// explicit pixel clamps, under fixed table layout with ellipsis overflow.
func buildTableCSS(id string, widths []float64, cfg *Config) string {
	total := 0.0
	for _, w := range widths {
		total += w
	}

	selector := fmt.Sprintf(`table[%s=%q].%s`, tableIDAttr, id, managedClass)

	var buf strings.Builder
	fmt.Fprintf(&buf, `%s {
  table-layout: fixed;
  width: 100%%;
}
`, selector)

	for i, w := range widths {
		percent := 0.0
		if total > 0 {
			percent = w / total * 100
		}
		fmt.Fprintf(&buf, `%s th:nth-child(%d),
%s td:nth-child(%d) {
  width: %.2f%%;
  min-width: %.0fpx;
  max-width: %.0fpx;
  overflow: hidden;
  text-overflow: ellipsis;
  white-space: nowrap;
}
`, selector, i+1, selector, i+1, percent, cfg.MinColumnWidth, cfg.MaxColumnWidth)
	}

	return buf.String()
}

// applyStyle publishes a table's stylesheet into the document head.
// Exactly one style block exists per table at any time: reapplying
// replaces the block's contents instead of appending a duplicate.
func applyStyle(doc *Document, table *Table, id, css string) {
	setAttr(table.node, tableIDAttr, id)
	addClass(table.node, managedClass)

	if node := findStyleNode(doc, id); node != nil {
		replaceText(node, css)
		return
	}

	head := doc.head()
	if head == nil {
		// Fragment without a head; anchor the style next to the table.
		head = table.node.Parent
	}
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: styleForAttr, Val: id}},
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	if head == table.node.Parent {
		head.InsertBefore(style, table.node)
	} else {
		head.AppendChild(style)
	}
}

// removeStyle removes a table's style block, if present.
func removeStyle(doc *Document, id string) {
	if node := findStyleNode(doc, id); node != nil {
		node.Parent.RemoveChild(node)
	}
}

// findStyleNode locates the style block keyed to a table identifier.
func findStyleNode(doc *Document, id string) *html.Node {
	var found *html.Node
	walk(doc.root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && n.DataAtom == atom.Style && getAttr(n, styleForAttr) == id {
			found = n
		}
	})
	return found
}

// replaceText swaps a node's children for a single text child.
func replaceText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
