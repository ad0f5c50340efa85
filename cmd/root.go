package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"pastelink/pkg/completions"
	"pastelink/pkg/config"
	"pastelink/pkg/errors"
	"pastelink/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"
)

var (
	Version   string
	BuildTime string
	GitCommit string
)

var appConfig = config.Default()
var readTimeout time.Duration
var outputFormat string
var dryRunFlag bool
var assumeYesFlag bool
var copyToClipboardFlag bool
var logLevel string

var rootCmd = &cobra.Command{
	Use:   "pastelink",
	Short: "Rewrite link pastes as Markdown",
	Long: `pastelink turns a copied hyperlink into Markdown link syntax.

When the clipboard carries a link (an HTML anchor, or the text/link-preview
record Microsoft Edge attaches when copying from the address bar), the pasted
text becomes [title](url). Everything else is pasted unchanged.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appConfig = cfg

		// Explicit flag takes precedence over env var and config file
		level := appConfig.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger.SetLevel(level)

		if !cmd.Flags().Changed("timeout") {
			readTimeout = appConfig.Clipboard.ReadTimeout
		}
		if readTimeout <= 0 {
			readTimeout = config.DefaultReadTimeout
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		ver := Version
		if ver == "" {
			ver = "dev"
		}
		bt := BuildTime
		if bt == "" {
			bt = unknownValue
		}
		gc := GitCommit
		if gc == "" {
			gc = unknownValue
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pastelink version %s\n", ver)
		fmt.Fprintf(out, "Built: %s\n", bt)
		fmt.Fprintf(out, "Git commit: %s\n", gc)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

// GetContext bounds one clipboard operation by the read timeout.
func GetContext() (context.Context, context.CancelFunc) {
	timeout := readTimeout
	if timeout <= 0 {
		timeout = config.DefaultReadTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// historyPath resolves the history database for shell completion, which
// runs without the root pre-run hook.
func historyPath() string {
	if appConfig.History.Path == "" {
		if cfg, err := config.Load(); err == nil {
			appConfig = cfg
		}
	}
	return appConfig.History.Path
}

func init() {
	RegisterCommands(rootCmd)

	rootCmd.PersistentFlags().DurationVar(&readTimeout, "timeout", config.DefaultReadTimeout, "Timeout for clipboard reads (e.g., 500ms, 2s)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format for listings (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be done without changing the clipboard or history")
	rootCmd.PersistentFlags().BoolVarP(&assumeYesFlag, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&copyToClipboardFlag, "copy", false, "Copy the result to the clipboard")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	completions.RegisterCompletions(rootCmd, historyPath)
}
