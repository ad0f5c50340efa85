// Package fixture stores clipboard payloads as YAML documents mapping MIME
// types to their data, so pastes can be replayed without a clipboard.
//
//	text/plain: Check this out
//	text/html: <a href="https://example.test/">Example</a>
//	text/link-preview:
//	  title: Example
//	  url: https://example.test/
//
// Mapping values are stored as compact JSON, which is how browsers carry
// text/link-preview. JSON documents are valid YAML and load the same way.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"pastelink/pkg/paste"

	"gopkg.in/yaml.v3"
)

// Parse decodes a fixture document, keeping the MIME types in document order.
func Parse(data []byte) (*paste.MapPayload, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("fixture is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("fixture must map MIME types to data, line %d", root.Line)
	}

	payload := paste.NewPayload()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		data, err := nodeData(value)
		if err != nil {
			return nil, fmt.Errorf("fixture entry %q: %w", key.Value, err)
		}
		payload.Set(key.Value, data)
	}
	return payload, nil
}

func nodeData(node *yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.MappingNode, yaml.SequenceNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return "", err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported value at line %d", node.Line)
	}
}

// Load reads a fixture file.
func Load(path string) (*paste.MapPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Marshal encodes a payload as a fixture document.
func Marshal(p paste.Payload) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, mimeType := range p.Types() {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: mimeType},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.GetData(mimeType)},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes a payload to path.
func Save(path string, p paste.Payload) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
