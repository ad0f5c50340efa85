package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pastelink/pkg/clipboard"
	"pastelink/pkg/config"
	"pastelink/pkg/editor"
	"pastelink/pkg/errors"
	"pastelink/pkg/logger"
	"pastelink/pkg/paste"
	"pastelink/pkg/progress"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type WatchConfig struct {
	Interval    time.Duration
	RefreshFunc func(ctx context.Context) error
	OnError     func(error)
	OnTick      func()
}

// RunWatch calls RefreshFunc immediately and then once per interval until
// ctx is cancelled.
func RunWatch(ctx context.Context, cfg WatchConfig) error {
	interval := cfg.Interval
	if interval <= 0 {
		interval = config.DefaultWatchInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if cfg.RefreshFunc != nil {
			if err := cfg.RefreshFunc(ctx); err != nil {
				if cfg.OnError != nil {
					cfg.OnError(err)
				}
			}
		}

		if cfg.OnTick != nil {
			cfg.OnTick()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// clipboardWatcher rewrites link-carrying clipboard content in place.
type clipboardWatcher struct {
	read   func(ctx context.Context) (*paste.MapPayload, error)
	write  func(text string) error
	record func(payload paste.Payload, d paste.Decision) error
	opts   paste.Options
	dryRun bool
	out    io.Writer
	// status, when set, shows a live status line and carries all output.
	status *progress.Spinner

	last     string
	written  string
	examined int
	rewrites int
}

// fingerprint identifies a payload so the same clipboard content is only
// looked at once.
func fingerprint(p paste.Payload) string {
	var b strings.Builder
	for _, mimeType := range p.Types() {
		b.WriteString(mimeType)
		b.WriteByte(0)
		b.WriteString(p.GetData(mimeType))
		b.WriteByte(0)
	}
	return b.String()
}

func (w *clipboardWatcher) poll(ctx context.Context) error {
	payload, err := w.read(ctx)
	if err != nil {
		return err
	}

	fp := fingerprint(payload)
	if fp == w.last {
		return nil
	}
	w.last = fp

	// The owner that took over after our write may offer extra plain-text
	// aliases, so recognise our own rewrite by its text.
	if w.written != "" && payload.GetData(paste.MIMEPlain) == w.written && !paste.HasType(payload, paste.MIMEHTML) {
		return nil
	}

	w.examined++
	result := convertPayload(payload, editor.KindPlain, "", w.opts)
	if !result.Decision.Handled {
		logger.Debug().Str("reason", string(result.Decision.Reason)).Msg("clipboard changed, nothing to rewrite")
		return nil
	}

	if w.dryRun {
		if w.status != nil {
			w.status.Println("[DRY-RUN] would replace clipboard with " + result.Output)
			return nil
		}
		PrintDryRun(w.out, "would replace clipboard with %s", result.Output)
		return nil
	}

	if err := w.write(result.Output); err != nil {
		return errors.ClipboardError("write", err)
	}
	w.rewrites++
	w.written = result.Output

	if w.status != nil {
		w.status.Println(color.GreenString("✓ %s", result.Output))
		w.status.SetMessage(fmt.Sprintf("watching clipboard (%d rewritten)", w.rewrites))
	} else {
		_, _ = color.New(color.FgGreen).Fprintf(w.out, "✓ %s\n", result.Output)
	}

	if w.record != nil {
		if err := w.record(payload, result.Decision); err != nil {
			logger.Warn().Err(err).Msg("failed to record history")
		}
	}
	return nil
}

var (
	watchInterval time.Duration
	watchAnyHTML  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rewrite copied links on the clipboard as Markdown",
	Long: `Poll the system clipboard and replace link-carrying content with its
Markdown rewrite, so that the next paste anywhere yields [title](url).

Reading text/html and text/link-preview requires a Wayland compositor with
the wlr-data-control protocol. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clipboard.MultiFormat() {
			return errors.NewWithSuggestion(errors.ExitCodeUnsupported,
				"watching for links needs the text/html clipboard type, which is only readable on Wayland",
				"Run inside a Wayland session, or use 'pastelink convert --from FILE'")
		}

		interval := appConfig.Watch.Interval
		if cmd.Flags().Changed("interval") {
			interval = watchInterval
		}
		if interval <= 0 {
			return errors.ValidationError("interval must be positive")
		}

		out := cmd.OutOrStdout()
		w := &clipboardWatcher{
			read: func(ctx context.Context) (*paste.MapPayload, error) {
				ctx, cancel := context.WithTimeout(ctx, readTimeout)
				defer cancel()
				return clipboard.Read(ctx)
			},
			write: clipboard.WriteText,
			record: func(payload paste.Payload, d paste.Decision) error {
				return recordRewrite(sourceClipboard, payload, d)
			},
			opts:   pasteOptions(watchAnyHTML),
			dryRun: IsDryRun(),
			out:    out,
		}

		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			w.status = progress.NewSpinner(out, "watching clipboard")
			w.status.Start()
			defer w.status.Stop()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info().Dur("interval", interval).Bool("require_link_preview", w.opts.RequireLinkPreview).Msg("watching clipboard")

		err := RunWatch(ctx, WatchConfig{
			Interval:    interval,
			RefreshFunc: w.poll,
			OnError: func(err error) {
				logger.Warn().Err(err).Msg("clipboard poll failed")
			},
		})
		logger.Info().Int("rewrites", w.rewrites).Msg("stopped watching clipboard")
		if ctx.Err() != nil {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", config.DefaultWatchInterval, "Polling interval")
	watchCmd.Flags().BoolVar(&watchAnyHTML, "any-html", false, "Rewrite anchors even without a text/link-preview record")
}
