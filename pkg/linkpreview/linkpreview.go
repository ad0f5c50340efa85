// Package linkpreview parses the "text/link-preview" clipboard payload that
// Microsoft Edge attaches when a link is copied from the address bar.
package linkpreview

import (
	"encoding/json"
	"fmt"
)

// MIMEType is the clipboard type carrying a link preview record.
const MIMEType = "text/link-preview"

// Record is a parsed link preview. Fields missing from the payload, or not
// carried as JSON strings, are left empty.
type Record struct {
	Title string
	URL   string
}

// ParseError reports a payload that is not a JSON object.
type ParseError struct {
	Data string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid link preview payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes a link preview payload.
func Parse(data string) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return Record{}, &ParseError{Data: data, Err: err}
	}
	if fields == nil {
		return Record{}, &ParseError{Data: data, Err: fmt.Errorf("payload is null")}
	}

	return Record{
		Title: stringField(fields, "title"),
		URL:   stringField(fields, "url"),
	}, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
