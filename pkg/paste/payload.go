// Package paste rewrites link pastes into Markdown before they reach a
// plain-text field.
//
// A Handler is installed on a Surface, the host's editable field. When the
// surface dispatches a paste Event whose clipboard data carries a link, the
// handler suppresses the default paste and inserts the Markdown rewrite
// through the field's own insertion primitive instead.
package paste

import "pastelink/pkg/linkpreview"

const (
	MIMEPlain       = "text/plain"
	MIMEHTML        = "text/html"
	MIMELinkPreview = linkpreview.MIMEType
)

// Payload is the set of MIME-typed strings attached to one paste.
type Payload interface {
	Types() []string
	GetData(mimeType string) string
}

// MapPayload is a Payload that keeps types in insertion order.
type MapPayload struct {
	types []string
	data  map[string]string
}

func NewPayload() *MapPayload {
	return &MapPayload{data: make(map[string]string)}
}

// Set stores data under mimeType, replacing any previous value.
func (p *MapPayload) Set(mimeType, data string) *MapPayload {
	if _, ok := p.data[mimeType]; !ok {
		p.types = append(p.types, mimeType)
	}
	p.data[mimeType] = data
	return p
}

func (p *MapPayload) Types() []string {
	return append([]string(nil), p.types...)
}

// GetData returns "" for types that are not present.
func (p *MapPayload) GetData(mimeType string) string {
	return p.data[mimeType]
}

// HasType reports whether the payload advertises mimeType.
func HasType(p Payload, mimeType string) bool {
	for _, t := range p.Types() {
		if t == mimeType {
			return true
		}
	}
	return false
}
