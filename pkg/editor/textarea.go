// Package editor provides an in-memory text field that dispatches paste
// events the way a browser textarea does.
package editor

import (
	"sync"

	"pastelink/pkg/paste"
)

type Kind int

const (
	KindPlain Kind = iota
	KindRich
)

// ParseKind maps "plain" and "rich" to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "plain", "textarea", "":
		return KindPlain, true
	case "rich", "contenteditable":
		return KindRich, true
	}
	return KindPlain, false
}

// TextArea holds a value and a selection measured in runes.
type TextArea struct {
	mu        sync.Mutex
	kind      Kind
	value     []rune
	selStart  int
	selEnd    int
	listeners []paste.Listener
}

func NewTextArea(kind Kind) *TextArea {
	return &TextArea{kind: kind}
}

func (t *TextArea) PlainText() bool {
	return t.kind == KindPlain
}

// SetValue replaces the content and places the cursor at the end.
func (t *TextArea) SetValue(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = []rune(s)
	t.selStart = len(t.value)
	t.selEnd = t.selStart
}

func (t *TextArea) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.value)
}

// Select sets the selection, clamping both ends to the content.
func (t *TextArea) Select(start, end int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	start = clamp(start, 0, len(t.value))
	end = clamp(end, 0, len(t.value))
	if end < start {
		start, end = end, start
	}
	t.selStart, t.selEnd = start, end
}

func (t *TextArea) Selection() (start, end int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selStart, t.selEnd
}

// InsertText replaces the selection with text and collapses the cursor
// after it.
func (t *TextArea) InsertText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ins := []rune(text)
	value := make([]rune, 0, len(t.value)-(t.selEnd-t.selStart)+len(ins))
	value = append(value, t.value[:t.selStart]...)
	value = append(value, ins...)
	value = append(value, t.value[t.selEnd:]...)
	t.value = value
	t.selStart += len(ins)
	t.selEnd = t.selStart
}

// AddPasteListener registers l once; adding it again has no effect.
func (t *TextArea) AddPasteListener(l paste.Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.listeners {
		if existing == l {
			return
		}
	}
	t.listeners = append(t.listeners, l)
}

func (t *TextArea) RemovePasteListener(l paste.Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, existing := range t.listeners {
		if existing == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

func (t *TextArea) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

// Paste dispatches a paste event to the listeners in registration order.
// Unless a listener prevents the default, the text/plain data is inserted.
func (t *TextArea) Paste(data paste.Payload) *paste.Event {
	t.mu.Lock()
	listeners := append([]paste.Listener(nil), t.listeners...)
	t.mu.Unlock()

	event := paste.NewEvent(data, t)
	for _, l := range listeners {
		l.OnPaste(event)
		if event.PropagationStopped() {
			break
		}
	}

	if !event.DefaultPrevented() && data != nil {
		t.InsertText(data.GetData(paste.MIMEPlain))
	}
	return event
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
