// Package htmllinks extracts hyperlinks from pasted HTML fragments.
package htmllinks

import (
	"fmt"
	"strings"

	"pastelink/pkg/markdown"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Anchor is an <a> element found in pasted HTML.
type Anchor struct {
	node *html.Node
}

// TextContent is the concatenated text of the anchor's descendants.
func (a Anchor) TextContent() string {
	return dom.CollectText(a.node)
}

// Href is the raw href attribute, or "" if the anchor has none.
func (a Anchor) Href() string {
	return dom.GetAttributeOr(a.node, "href", "")
}

// Extract parses an HTML fragment as a document and returns every anchor
// element in document order.
func Extract(fragment string) ([]Anchor, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	nodes := dom.FindAllNodes(doc, func(node *html.Node) bool {
		return node.Type == html.ElementNode && node.DataAtom == atom.A
	})

	anchors := make([]Anchor, 0, len(nodes))
	for _, node := range nodes {
		anchors = append(anchors, Anchor{node: node})
	}
	return anchors, nil
}

// Elements converts anchors for markdown.Transform.
func Elements(anchors []Anchor) []markdown.Element {
	elements := make([]markdown.Element, len(anchors))
	for i, a := range anchors {
		elements[i] = a
	}
	return elements
}
