//go:build linux

package clipboard

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"syscall"

	"pastelink/pkg/clipboard/internal/wayland"
	"pastelink/pkg/paste"
)

// MultiFormat reports whether the full set of MIME types is reachable.
func MultiFormat() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// Read returns the current clipboard content. Without Wayland only
// text/plain is read.
func Read(ctx context.Context) (*paste.MapPayload, error) {
	if !MultiFormat() {
		return readPlain()
	}

	sel, err := wayland.Read(ctx, wanted)
	if err != nil {
		return nil, err
	}

	p := paste.NewPayload()
	for _, mimeType := range sel.Types {
		p.Set(mimeType, string(sel.Data[mimeType]))
	}
	// Some owners only offer a charset-qualified or X11 name for plain text.
	if !paste.HasType(p, paste.MIMEPlain) {
		for _, alias := range plainAliases {
			if data, ok := sel.Data[alias]; ok {
				p.Set(paste.MIMEPlain, string(data))
				break
			}
		}
	}
	return p, nil
}

// WriteMultiFormat publishes every MIME type of p. On Linux/Wayland it
// spawns a background clipboard-owner process; on X11 it falls back to
// plain text only.
func WriteMultiFormat(p paste.Payload) error {
	if !MultiFormat() {
		return WriteText(p.GetData(paste.MIMEPlain))
	}
	return spawnClipboardServer(p)
}

func spawnClipboardServer(p paste.Payload) error {
	request, err := EncodeServeRequest(p)
	if err != nil {
		return err
	}

	// Re-exec this binary as a daemonised subprocess.
	cmd := exec.Command(os.Args[0], "__clipboard-serve")
	cmd.Stdin = bytes.NewReader(request)
	// Detach from the parent's process group so the child survives parent exit.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd.Start() // don't Wait; parent returns immediately
}

// ServeClipboard owns the clipboard with p's content until another client
// takes it over. It backs the __clipboard-serve hidden command.
func ServeClipboard(p paste.Payload) error {
	return wayland.Serve(formats(p))
}
