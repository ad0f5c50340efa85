package markdown

import "strings"

// Transform walks elements in document order and replaces the first
// occurrence of each element's text in the remaining plaintext with
// format(element). The buffer is consumed left to right; elements whose text
// is not found in what remains are skipped and do not advance it.
func Transform(elements []Element, text string, format Formatter) string {
	var out strings.Builder
	remaining := text

	for _, el := range elements {
		content := el.TextContent()
		a := Align(remaining, content)
		if !a.Found() {
			continue
		}
		out.WriteString(strings.Replace(a.Prefix, content, format(el), 1))
		remaining = remaining[a.Consumed:]
	}

	out.WriteString(remaining)
	return out.String()
}

// Links adapts a slice of Link to the Element slice Transform expects.
func Links(links ...Link) []Element {
	elements := make([]Element, len(links))
	for i, l := range links {
		elements[i] = l
	}
	return elements
}
