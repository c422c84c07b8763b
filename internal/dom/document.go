// Package dom applies effect plans to a parsed HTML document. It is the
// in-memory counterpart of the webview bridge and exists so that effect
// application and page inspection can run against real markup without a
// live rendering environment.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"accessly/internal/effects"
)

const (
	// GuideElementID is the stable identifier of the reading-guide
	// line. The document owns zero or one element with this id.
	GuideElementID = "accessly-reading-guide"

	// MountElementID is the expected application mount point. Element
	// rules are scoped to it when present.
	MountElementID = "app"

	// GuideStyle is the fixed presentation of the reading-guide line:
	// a viewport-wide horizontal bar, vertically centered, that never
	// intercepts pointer events.
	GuideStyle = "position: fixed; top: 50%; left: 0; width: 100%; height: 3px; background: #1e90ff; pointer-events: none; z-index: 2147483647"
)

// Document wraps a parsed HTML tree
type Document struct {
	root *html.Node
}

// Parse parses an HTML document from a reader
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	return &Document{root: root}, nil
}

// ParseString parses an HTML document from a string
func ParseString(source string) (*Document, error) {
	return Parse(strings.NewReader(source))
}

// Root returns the document root node
func (d *Document) Root() *html.Node {
	return d.root
}

// Render serializes the document back to HTML
func (d *Document) Render() (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, d.root); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// HasMount reports whether the application mount point exists
func (d *Document) HasMount() bool {
	return d.findByID(MountElementID) != nil
}

// Apply applies an effect plan to the document. Re-applying the same
// plan leaves the tree unchanged: style properties are replaced in
// place and the guide element is created only when absent.
func (d *Document) Apply(plan effects.Plan) {
	// Reconcile the guide before styling so wildcard rules see the
	// same tree on every application of the same plan.
	if plan.ShowGuide {
		d.ensureGuide()
	} else {
		d.removeGuide()
	}

	for _, rule := range plan.Rules {
		for _, node := range d.match(rule.Selector) {
			setStyleProperty(node, rule.Property, rule.Value)
		}
	}
}

// GuideCount returns the number of guide-line elements in the document
func (d *Document) GuideCount() int {
	count := 0
	walk(d.root, func(n *html.Node) {
		if attrValue(n, "id") == GuideElementID {
			count++
		}
	})

	return count
}

// Scope returns the subtree element-level operations apply to: the
// mount point when present, otherwise the document body.
func (d *Document) Scope() *html.Node {
	return d.scope()
}

func (d *Document) scope() *html.Node {
	if mount := d.findByID(MountElementID); mount != nil {
		return mount
	}

	if body := d.findElement("body"); body != nil {
		return body
	}

	return d.root
}

// match resolves the selectors plans emit: "html", "body", "*" and
// plain tag names. Root selectors always resolve document-wide; tag and
// wildcard selectors stay inside the scope subtree.
func (d *Document) match(selector string) []*html.Node {
	switch selector {
	case "html", "body":
		if node := d.findElement(selector); node != nil {
			return []*html.Node{node}
		}
		return nil
	case "*":
		var nodes []*html.Node
		walk(d.scope(), func(n *html.Node) {
			nodes = append(nodes, n)
		})
		return nodes
	default:
		var nodes []*html.Node
		walk(d.scope(), func(n *html.Node) {
			if n.Data == selector {
				nodes = append(nodes, n)
			}
		})
		return nodes
	}
}

func (d *Document) ensureGuide() {
	if d.findByID(GuideElementID) != nil {
		return
	}

	body := d.findElement("body")
	if body == nil {
		return
	}

	guide := &html.Node{
		Type: html.ElementNode,
		Data: "div",
		Attr: []html.Attribute{
			{Key: "id", Val: GuideElementID},
			{Key: "style", Val: GuideStyle},
		},
	}
	body.AppendChild(guide)
}

func (d *Document) removeGuide() {
	guide := d.findByID(GuideElementID)
	if guide == nil || guide.Parent == nil {
		return
	}

	guide.Parent.RemoveChild(guide)
}

func (d *Document) findByID(id string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) {
		if found == nil && attrValue(n, "id") == id {
			found = n
		}
	})

	return found
}

func (d *Document) findElement(tag string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) {
		if found == nil && n.Data == tag {
			found = n
		}
	})

	return found
}

// walk visits every element node in the subtree rooted at n
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}

	return ""
}

// setStyleProperty sets, replaces or (for an empty value) removes one
// property inside the node's inline style attribute, preserving the
// order and content of unrelated declarations.
func setStyleProperty(n *html.Node, property, value string) {
	declarations := parseStyle(attrValue(n, "style"))

	updated := declarations[:0]
	replaced := false
	for _, decl := range declarations {
		if decl[0] == property {
			if value == "" {
				continue
			}
			updated = append(updated, [2]string{property, value})
			replaced = true
			continue
		}
		updated = append(updated, decl)
	}

	if !replaced && value != "" {
		updated = append(updated, [2]string{property, value})
	}

	setAttr(n, "style", renderStyle(updated))
}

func parseStyle(style string) [][2]string {
	var declarations [][2]string
	for _, part := range strings.Split(style, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}

		declarations = append(declarations, [2]string{strings.TrimSpace(key), strings.TrimSpace(val)})
	}

	return declarations
}

func renderStyle(declarations [][2]string) string {
	parts := make([]string, 0, len(declarations))
	for _, decl := range declarations {
		parts = append(parts, decl[0]+": "+decl[1])
	}

	return strings.Join(parts, "; ")
}

func setAttr(n *html.Node, key, value string) {
	if value == "" {
		attrs := n.Attr[:0]
		for _, attr := range n.Attr {
			if attr.Key != key {
				attrs = append(attrs, attr)
			}
		}
		n.Attr = attrs
		return
	}

	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = value
			return
		}
	}

	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}
