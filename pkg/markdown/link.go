// Package markdown rewrites pasted plaintext into Markdown link syntax.
package markdown

// Element is a link-like element taken from pasted content.
type Element interface {
	TextContent() string
	Href() string
}

// Formatter renders one element as Markdown.
type Formatter func(Element) string

// Link is the visible text and destination of one hyperlink.
type Link struct {
	Label string
	URL   string
}

func (l Link) TextContent() string { return l.Label }

func (l Link) Href() string { return l.URL }

// FormatLink returns "[label](url)". Neither segment is validated or escaped,
// so empty values produce empty segments.
func FormatLink(label, url string) string {
	return "[" + label + "](" + url + ")"
}

// FormatElement is the Formatter used for anchors.
func FormatElement(el Element) string {
	return FormatLink(el.TextContent(), el.Href())
}
