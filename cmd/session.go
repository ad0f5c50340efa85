package cmd

import (
	"context"
	stderrors "errors"
	"fmt"

	"pastelink/pkg/clipboard"
	"pastelink/pkg/editor"
	"pastelink/pkg/errors"
	"pastelink/pkg/fixture"
	"pastelink/pkg/history"
	"pastelink/pkg/paste"
)

const sourceClipboard = "clipboard"

// conversion is the result of pasting one payload into a fresh field.
type conversion struct {
	Decision paste.Decision
	Output   string
}

func pasteOptions(anyHTML bool) paste.Options {
	opts := paste.DefaultOptions()
	opts.RequireLinkPreview = appConfig.RequireLinkPreview() && !anyHTML
	return opts
}

// convertPayload pastes payload into a field of the given kind holding
// initial, with the handler installed, and returns what the field ends up
// containing.
func convertPayload(payload paste.Payload, kind editor.Kind, initial string, opts paste.Options) conversion {
	field := editor.NewTextArea(kind)
	field.SetValue(initial)

	handler := paste.NewHandler(opts)
	handler.Install(field)
	defer handler.Uninstall(field)

	decision := paste.Decide(payload, field, opts)
	field.Paste(payload)

	return conversion{Decision: decision, Output: field.Value()}
}

// readPayload loads a payload from the system clipboard or a fixture file.
func readPayload(from string) (*paste.MapPayload, error) {
	if from == "" || from == sourceClipboard {
		return readClipboard()
	}
	payload, err := fixture.Load(from)
	if err != nil {
		return nil, errors.FileError(from, err)
	}
	return payload, nil
}

func readClipboard() (*paste.MapPayload, error) {
	ctx, cancel := GetContext()
	defer cancel()

	payload, err := clipboard.Read(ctx)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.TimeoutError(fmt.Sprintf("clipboard read after %s", readTimeout))
		}
		return nil, errors.ClipboardError("read", err)
	}
	return payload, nil
}

// openHistory returns nil when history is disabled.
func openHistory() (*history.Store, error) {
	if !appConfig.HistoryEnabled() {
		return nil, nil
	}
	store, err := history.Open(appConfig.History.Path)
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeFileOperation, "failed to open history", err)
	}
	return store, nil
}

// recordRewrite appends a handled conversion to the history, if enabled.
func recordRewrite(source string, payload paste.Payload, d paste.Decision) error {
	if !d.Handled || IsDryRun() {
		return nil
	}
	store, err := openHistory()
	if err != nil || store == nil {
		return err
	}
	defer store.Close()

	_, err = store.Add(history.Entry{
		Source:   source,
		Path:     d.Path.String(),
		Plain:    payload.GetData(paste.MIMEPlain),
		Markdown: d.Text,
	})
	return err
}
