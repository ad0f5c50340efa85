package paste

import (
	"strings"

	"pastelink/pkg/htmllinks"
	"pastelink/pkg/linkpreview"
	"pastelink/pkg/logger"
	"pastelink/pkg/markdown"
)

// Path is the rewrite strategy a Decision took.
type Path int

const (
	PathNone Path = iota
	PathLinkPreview
	PathAnchors
)

func (p Path) String() string {
	switch p {
	case PathLinkPreview:
		return "link-preview"
	case PathAnchors:
		return "anchors"
	default:
		return "none"
	}
}

// SkipReason explains why a paste was left to the default behaviour.
type SkipReason string

const (
	ReasonNoClipboardData SkipReason = "no clipboard data"
	ReasonNoHTML          SkipReason = "clipboard has no text/html"
	ReasonNoLinkPreview   SkipReason = "clipboard has no text/link-preview"
	ReasonNotPlainText    SkipReason = "target is not a plain-text field"
	ReasonEmptyHTML       SkipReason = "text/html is empty"
	ReasonEmptyText       SkipReason = "text/plain is empty"
	ReasonInvalidPreview  SkipReason = "text/link-preview is not a JSON object"
	ReasonInvalidHTML     SkipReason = "text/html could not be parsed"
	ReasonUnchanged       SkipReason = "no link found in text"
)

// Options tune when the handler activates.
type Options struct {
	// RequireLinkPreview limits rewriting to pastes that carry a
	// text/link-preview payload. With it set, the anchor walk over text/html
	// is never reached because the link preview always wins.
	RequireLinkPreview bool
}

func DefaultOptions() Options {
	return Options{RequireLinkPreview: true}
}

// Decision is the outcome of inspecting one paste.
type Decision struct {
	Handled bool
	Text    string
	Path    Path
	Reason  SkipReason
	Err     error
}

func skip(reason SkipReason) Decision {
	return Decision{Reason: reason}
}

// Decide inspects a clipboard payload pasted into field and returns the
// Markdown to insert, if any. It has no side effects.
func Decide(data Payload, field Field, opts Options) Decision {
	if data == nil {
		return skip(ReasonNoClipboardData)
	}
	if !HasType(data, MIMEHTML) {
		return skip(ReasonNoHTML)
	}
	hasPreview := HasType(data, MIMELinkPreview)
	if opts.RequireLinkPreview && !hasPreview {
		return skip(ReasonNoLinkPreview)
	}

	if field == nil || !field.PlainText() {
		return skip(ReasonNotPlainText)
	}

	textHTML := data.GetData(MIMEHTML)
	if textHTML == "" {
		return skip(ReasonEmptyHTML)
	}
	text := strings.TrimSpace(data.GetData(MIMEPlain))
	if text == "" {
		return skip(ReasonEmptyText)
	}

	var (
		out  string
		path Path
	)
	if hasPreview {
		record, err := linkpreview.Parse(data.GetData(MIMELinkPreview))
		if err != nil {
			return Decision{Reason: ReasonInvalidPreview, Err: err}
		}
		out = markdown.FormatLink(record.Title, record.URL)
		path = PathLinkPreview
	} else {
		anchors, err := htmllinks.Extract(textHTML)
		if err != nil {
			return Decision{Reason: ReasonInvalidHTML, Err: err}
		}
		out = markdown.Transform(htmllinks.Elements(anchors), text, markdown.FormatElement)
		path = PathAnchors
	}

	if out == text {
		return Decision{Path: path, Reason: ReasonUnchanged}
	}
	return Decision{Handled: true, Text: out, Path: path}
}

// Handler is the paste listener. Install it on every surface that should
// rewrite link pastes.
type Handler struct {
	opts Options
}

func NewHandler(opts Options) *Handler {
	return &Handler{opts: opts}
}

func (h *Handler) Install(s Surface) {
	s.AddPasteListener(h)
}

func (h *Handler) Uninstall(s Surface) {
	s.RemovePasteListener(h)
}

// OnPaste rewrites the paste into the event's target, or leaves the event
// untouched so the default paste proceeds.
func (h *Handler) OnPaste(event *Event) {
	d := Decide(event.ClipboardData, event.CurrentTarget, h.opts)
	if !d.Handled {
		if d.Err != nil {
			logger.Warn().Err(d.Err).Str("event", event.ID).Str("reason", string(d.Reason)).Msg("falling back to default paste")
		} else {
			logger.Debug().Str("event", event.ID).Str("reason", string(d.Reason)).Msg("paste not rewritten")
		}
		return
	}

	event.StopPropagation()
	event.PreventDefault()

	logger.Info().Str("event", event.ID).Stringer("path", d.Path).Msg("rewrote paste as markdown link")
	event.CurrentTarget.InsertText(d.Text)
}
