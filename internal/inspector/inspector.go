// Package inspector produces a read-only snapshot of a page's
// structure: landmarks, headings and hyperlinks. A snapshot is built
// fresh on every call and never mutates the document.
package inspector

import (
	"strings"

	"golang.org/x/net/html"

	"accessly/internal/common"
)

// Landmark is a page landmark element (header/nav/main/footer)
type Landmark struct {
	Tag        string `json:"tag"`
	Identifier string `json:"identifier,omitempty"`
}

// Heading is a heading element with its text content
type Heading struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Link is a hyperlink with its target
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// PageStructure is one snapshot of the page. Empty categories are
// omitted from the serialized form so only non-empty sections render.
type PageStructure struct {
	SnapshotID string     `json:"snapshot_id"`
	Landmarks  []Landmark `json:"landmarks,omitempty"`
	Headings   []Heading  `json:"headings,omitempty"`
	Links      []Link     `json:"links,omitempty"`
}

var landmarkTags = map[string]bool{
	"header": true,
	"nav":    true,
	"main":   true,
	"footer": true,
}

var headingTags = map[string]bool{
	"h1": true,
	"h2": true,
	"h3": true,
	"h4": true,
	"h5": true,
	"h6": true,
}

// Inspect scans the document for landmark, heading and hyperlink
// elements and returns them as three flat lists in document order.
func Inspect(root *html.Node) *PageStructure {
	structure := &PageStructure{
		SnapshotID: common.GenerateUUID(),
	}

	var scan func(n *html.Node)
	scan = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case landmarkTags[n.Data]:
				structure.Landmarks = append(structure.Landmarks, Landmark{
					Tag:        n.Data,
					Identifier: attrValue(n, "id"),
				})
			case headingTags[n.Data]:
				structure.Headings = append(structure.Headings, Heading{
					Tag:  n.Data,
					Text: textContent(n),
				})
			case n.Data == "a":
				if href := attrValue(n, "href"); href != "" {
					structure.Links = append(structure.Links, Link{
						Text: textContent(n),
						Href: href,
					})
				}
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			scan(child)
		}
	}
	scan(root)

	return structure
}

// textContent returns the concatenated, whitespace-normalized text of
// a node's subtree
func textContent(n *html.Node) string {
	var sb strings.Builder

	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)

	return strings.Join(strings.Fields(sb.String()), " ")
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}

	return ""
}
