package paste

import "github.com/google/uuid"

// Field is the editable text field a paste targets.
type Field interface {
	// PlainText is false for rich editors, which are left alone.
	PlainText() bool
	// InsertText replaces the current selection, or inserts at the cursor.
	InsertText(text string)
}

// Listener receives paste events. Surfaces key listeners by identity, so a
// Listener must be a comparable value such as a pointer.
type Listener interface {
	OnPaste(event *Event)
}

// Surface is a Field that dispatches paste events to listeners.
type Surface interface {
	Field
	AddPasteListener(l Listener)
	RemovePasteListener(l Listener)
}

// Event is one paste dispatched to a surface's listeners.
type Event struct {
	ID            string
	ClipboardData Payload
	CurrentTarget Field

	defaultPrevented   bool
	propagationStopped bool
}

func NewEvent(data Payload, target Field) *Event {
	return &Event{
		ID:            uuid.New().String(),
		ClipboardData: data,
		CurrentTarget: target,
	}
}

// PreventDefault stops the surface from performing its own paste.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation stops delivery to the remaining listeners.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}
