//go:build !linux

package clipboard

import (
	"context"

	"pastelink/pkg/paste"
)

func MultiFormat() bool {
	return false
}

// Read returns the clipboard's plain text. Other MIME types are not
// reachable through the portable clipboard API.
func Read(ctx context.Context) (*paste.MapPayload, error) {
	return readPlain()
}

// WriteMultiFormat copies content to the clipboard. On non-Linux platforms
// only plain text is supported.
func WriteMultiFormat(p paste.Payload) error {
	return WriteText(p.GetData(paste.MIMEPlain))
}

// ServeClipboard is not used on non-Linux platforms.
func ServeClipboard(p paste.Payload) error {
	return nil
}
