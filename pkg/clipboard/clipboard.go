// Package clipboard reads and writes the system clipboard as multi-format
// payloads. On Linux/Wayland every offered MIME type is available, which is
// what carries Edge's text/link-preview alongside text/html. Elsewhere only
// text/plain can be read, so link pastes are never rewritten there.
package clipboard

import (
	"pastelink/pkg/fixture"
	"pastelink/pkg/paste"

	atotto "github.com/atotto/clipboard"
)

// Wanted lists the MIME types Read transfers; other offered types are
// reported without data.
var Wanted = []string{paste.MIMEPlain, paste.MIMEHTML, paste.MIMELinkPreview}

// plainAliases are the names X11 and Wayland clients use for plain text.
var plainAliases = []string{"text/plain;charset=utf-8", "UTF8_STRING", "STRING", "TEXT"}

func wanted(mimeType string) bool {
	for _, w := range Wanted {
		if w == mimeType {
			return true
		}
	}
	for _, alias := range plainAliases {
		if alias == mimeType {
			return true
		}
	}
	return false
}

// WriteText replaces the clipboard with plain text.
func WriteText(text string) error {
	return atotto.WriteAll(text)
}

func readPlain() (*paste.MapPayload, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return nil, err
	}
	return paste.NewPayload().Set(paste.MIMEPlain, text), nil
}

// EncodeServeRequest and DecodeServeRequest carry a payload to the
// background clipboard owner over its stdin.
func EncodeServeRequest(p paste.Payload) ([]byte, error) {
	return fixture.Marshal(p)
}

func DecodeServeRequest(data []byte) (*paste.MapPayload, error) {
	return fixture.Parse(data)
}

// formats flattens a payload for serving, adding the plain-text aliases
// that other clients ask for.
func formats(p paste.Payload) map[string][]byte {
	out := make(map[string][]byte)
	for _, mimeType := range p.Types() {
		out[mimeType] = []byte(p.GetData(mimeType))
	}
	if plain, ok := out[paste.MIMEPlain]; ok {
		for _, alias := range plainAliases {
			if _, exists := out[alias]; !exists {
				out[alias] = plain
			}
		}
	}
	return out
}
