package cmd

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"pastelink/pkg/paste"
)

type fakeClipboard struct {
	payload *paste.MapPayload
	reads   int
	writes  []string
	err     error
}

func (f *fakeClipboard) read(context.Context) (*paste.MapPayload, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeClipboard) write(text string) error {
	f.writes = append(f.writes, text)
	f.payload = paste.NewPayload().Set(paste.MIMEPlain, text)
	return nil
}

func edgeClipboard() *paste.MapPayload {
	return paste.NewPayload().
		Set(paste.MIMEPlain, "https://example.com/").
		Set(paste.MIMEHTML, `<a href="https://example.com/">Example Domain</a>`).
		Set(paste.MIMELinkPreview, `{"title":"Example Domain","url":"https://example.com/"}`)
}

func newTestWatcher(cb *fakeClipboard, out *bytes.Buffer) (*clipboardWatcher, *[]paste.Decision) {
	var recorded []paste.Decision
	return &clipboardWatcher{
		read:  cb.read,
		write: cb.write,
		record: func(_ paste.Payload, d paste.Decision) error {
			recorded = append(recorded, d)
			return nil
		},
		opts: paste.DefaultOptions(),
		out:  out,
	}, &recorded
}

func TestClipboardWatcher_RewritesOnce(t *testing.T) {
	cb := &fakeClipboard{payload: edgeClipboard()}
	var out bytes.Buffer
	w, recorded := newTestWatcher(cb, &out)

	for i := 0; i < 3; i++ {
		if err := w.poll(context.Background()); err != nil {
			t.Fatalf("poll() error = %v", err)
		}
	}

	if len(cb.writes) != 1 || cb.writes[0] != "[Example Domain](https://example.com/)" {
		t.Errorf("writes = %q", cb.writes)
	}
	if w.rewrites != 1 {
		t.Errorf("rewrites = %d, want 1", w.rewrites)
	}
	if len(*recorded) != 1 || (*recorded)[0].Path != paste.PathLinkPreview {
		t.Errorf("recorded = %+v", *recorded)
	}
	if !strings.Contains(out.String(), "[Example Domain](https://example.com/)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestClipboardWatcher_IgnoresPlainText(t *testing.T) {
	cb := &fakeClipboard{payload: paste.NewPayload().Set(paste.MIMEPlain, "hello")}
	var out bytes.Buffer
	w, recorded := newTestWatcher(cb, &out)

	if err := w.poll(context.Background()); err != nil {
		t.Fatalf("poll() error = %v", err)
	}
	if len(cb.writes) != 0 || len(*recorded) != 0 {
		t.Errorf("plain text was rewritten: writes=%q recorded=%d", cb.writes, len(*recorded))
	}
}

func TestClipboardWatcher_NewCopyIsRewritten(t *testing.T) {
	cb := &fakeClipboard{payload: edgeClipboard()}
	var out bytes.Buffer
	w, _ := newTestWatcher(cb, &out)

	if err := w.poll(context.Background()); err != nil {
		t.Fatalf("poll() error = %v", err)
	}
	cb.payload = paste.NewPayload().
		Set(paste.MIMEPlain, "https://go.dev/").
		Set(paste.MIMEHTML, `<a href="https://go.dev/">The Go Programming Language</a>`).
		Set(paste.MIMELinkPreview, `{"title":"The Go Programming Language","url":"https://go.dev/"}`)
	if err := w.poll(context.Background()); err != nil {
		t.Fatalf("poll() error = %v", err)
	}

	if len(cb.writes) != 2 || cb.writes[1] != "[The Go Programming Language](https://go.dev/)" {
		t.Errorf("writes = %q", cb.writes)
	}
}

func TestClipboardWatcher_DryRunLeavesClipboard(t *testing.T) {
	cb := &fakeClipboard{payload: edgeClipboard()}
	var out bytes.Buffer
	w, recorded := newTestWatcher(cb, &out)
	w.dryRun = true

	if err := w.poll(context.Background()); err != nil {
		t.Fatalf("poll() error = %v", err)
	}
	if len(cb.writes) != 0 || len(*recorded) != 0 {
		t.Errorf("dry run changed state: writes=%q recorded=%d", cb.writes, len(*recorded))
	}
	if !strings.Contains(out.String(), "[DRY-RUN]") {
		t.Errorf("output = %q", out.String())
	}
}

func TestClipboardWatcher_ReadError(t *testing.T) {
	readErr := stderrors.New("no selection")
	cb := &fakeClipboard{err: readErr}
	var out bytes.Buffer
	w, _ := newTestWatcher(cb, &out)

	if err := w.poll(context.Background()); !stderrors.Is(err, readErr) {
		t.Errorf("poll() error = %v, want %v", err, readErr)
	}
}

func TestRunWatch_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	var errs []error

	err := RunWatch(ctx, WatchConfig{
		Interval: time.Millisecond,
		RefreshFunc: func(context.Context) error {
			calls++
			if calls == 3 {
				cancel()
			}
			return stderrors.New("transient")
		},
		OnError: func(err error) { errs = append(errs, err) },
	})

	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("RunWatch() error = %v, want context.Canceled", err)
	}
	if calls != 3 {
		t.Errorf("RefreshFunc called %d times, want 3", calls)
	}
	if len(errs) != 3 {
		t.Errorf("OnError called %d times, want 3", len(errs))
	}
}

func TestFingerprint(t *testing.T) {
	a := paste.NewPayload().Set(paste.MIMEPlain, "ab").Set(paste.MIMEHTML, "c")
	b := paste.NewPayload().Set(paste.MIMEPlain, "a").Set(paste.MIMEHTML, "bc")
	if fingerprint(a) == fingerprint(b) {
		t.Error("fingerprint() collides for different payloads")
	}
	if fingerprint(a) != fingerprint(paste.NewPayload().Set(paste.MIMEPlain, "ab").Set(paste.MIMEHTML, "c")) {
		t.Error("fingerprint() differs for equal payloads")
	}
}

func TestClipboardWatcher_IgnoresOwnRewriteWithAliases(t *testing.T) {
	cb := &fakeClipboard{payload: edgeClipboard()}
	var out bytes.Buffer
	w, _ := newTestWatcher(cb, &out)
	// A Wayland owner taking over after the write offers plain-text aliases too.
	w.write = func(text string) error {
		cb.writes = append(cb.writes, text)
		cb.payload = paste.NewPayload().
			Set(paste.MIMEPlain, text).
			Set("text/plain;charset=utf-8", text).
			Set("UTF8_STRING", text)
		return nil
	}

	for i := 0; i < 3; i++ {
		if err := w.poll(context.Background()); err != nil {
			t.Fatalf("poll() error = %v", err)
		}
	}

	if w.examined != 1 {
		t.Errorf("examined = %d, want 1 (own rewrite must not be converted again)", w.examined)
	}
	if len(cb.writes) != 1 {
		t.Errorf("writes = %q, want one", cb.writes)
	}
}
