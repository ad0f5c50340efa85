package cmd

import (
	"fmt"
	"strconv"
	"time"

	"pastelink/pkg/errors"
	"pastelink/pkg/filter"
	"pastelink/pkg/history"

	"github.com/spf13/cobra"
)

var (
	historyLimit       int
	historySearch      string
	historyMatch       string
	historyRewritePath string
)

// historyRow is the structured form of a history entry.
type historyRow struct {
	ID        string `json:"id" yaml:"id"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Source    string `json:"source" yaml:"source"`
	Path      string `json:"path" yaml:"path"`
	Plain     string `json:"plain" yaml:"plain"`
	Markdown  string `json:"markdown" yaml:"markdown"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent Markdown rewrites",
	Example: `  # Last 20 rewrites
  pastelink history

  # Rewrites mentioning github, fuzzily
  pastelink history --search ghub --match fuzzy

  # Only rewrites of address-bar copies, as JSON
  pastelink history --path link-preview --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit < 0 {
			return errors.ValidationError("--limit must not be negative")
		}

		entryFilter := &filter.EntryFilter{Path: historyRewritePath}
		if historySearch != "" {
			mode, err := filter.ParseMode(historyMatch)
			if err != nil {
				return errors.ValidationError(err.Error())
			}
			text, err := filter.NewStringFilter(historySearch, mode)
			if err != nil {
				return errors.ValidationError(err.Error())
			}
			entryFilter.Text = text
		}

		store, err := history.Open(appConfig.History.Path)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeFileOperation, "failed to open history", err)
		}
		defer store.Close()

		// Filter over everything, then apply the limit to what matched.
		entries, err := store.List(0)
		if err != nil {
			return err
		}
		entries = entryFilter.Apply(entries)
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}

		w := NewOutputWriter(outputFormat, cmd.OutOrStdout())
		if w.IsStructured() {
			rows := make([]historyRow, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, historyRow{
					ID:        e.ID,
					CreatedAt: e.CreatedAt.Format(time.RFC3339),
					Source:    e.Source,
					Path:      e.Path,
					Plain:     e.Plain,
					Markdown:  e.Markdown,
				})
			}
			return w.Write(rows)
		}

		printHistoryTable(cmd, entries)
		return nil
	},
}

func printHistoryTable(cmd *cobra.Command, entries []history.Entry) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No rewrites recorded.")
		return
	}

	const (
		colWhen   = 11
		colPath   = 12
		colSource = 16
		colText   = 60
	)

	fmt.Fprintf(out, "%-*s  %-*s  %-*s  %s\n", colWhen, "WHEN", colPath, "PATH", colSource, "SOURCE", "MARKDOWN")
	for _, e := range entries {
		fmt.Fprintf(out, "%-*s  %-*s  %-*s  %s\n",
			colWhen, FormatTimestamp(e.CreatedAt),
			colPath, e.Path,
			colSource, Truncate(e.Source, colSource),
			Truncate(e.Markdown, colText))
	}
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded rewrites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(appConfig.History.Path)
		if err != nil {
			return errors.NewWithError(errors.ExitCodeFileOperation, "failed to open history", err)
		}
		defer store.Close()

		entries, err := store.List(0)
		if err != nil {
			return err
		}

		confirmed, err := ConfirmDestructive(cmd.InOrStdin(), cmd.ErrOrStderr(), "clear the rewrite history", map[string]string{
			"database": appConfig.History.Path,
			"entries":  strconv.Itoa(len(entries)),
		})
		if err != nil {
			return err
		}
		if !confirmed {
			if IsDryRun() {
				return nil
			}
			return errors.CancelledError("history clear")
		}

		removed, err := store.Clear()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %d entries\n", removed)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to show (0 for all)")
	historyCmd.Flags().StringVar(&historySearch, "search", "", "Only show entries whose text, markdown or source matches")
	historyCmd.Flags().StringVar(&historyMatch, "match", "contains", "How --search matches (exact, contains, regex, fuzzy)")
	historyCmd.Flags().StringVar(&historyRewritePath, "path", "", "Only show rewrites made via this path (link-preview, anchors)")
}
