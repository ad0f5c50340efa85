package cmd

import (
	"fmt"
	"os"

	"pastelink/pkg/config"
	"pastelink/pkg/errors"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pastelink configuration",
	Long: `Manage the pastelink configuration file.

Settings are read from the config file, then PASTELINK_* environment
variables fill anything the file leaves unset:

  PASTELINK_LOG_LEVEL             log level (debug, info, warn, error)
  PASTELINK_REQUIRE_LINK_PREVIEW  only rewrite pastes with a text/link-preview record
  PASTELINK_WATCH_INTERVAL        clipboard polling interval for 'watch'
  PASTELINK_HISTORY_PATH          rewrite history database`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := NewOutputWriter(outputFormat, cmd.OutOrStdout())
		if w.IsStructured() {
			return w.Write(appConfig)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current Configuration:")
		fmt.Fprintln(out, "======================")
		fmt.Fprintf(out, "Log Level: %s\n", appConfig.LogLevel)
		fmt.Fprintf(out, "Require Link Preview: %t\n", appConfig.RequireLinkPreview())
		fmt.Fprintf(out, "Watch Interval: %s\n", appConfig.Watch.Interval)
		fmt.Fprintf(out, "Clipboard Read Timeout: %s\n", appConfig.Clipboard.ReadTimeout)
		fmt.Fprintf(out, "History: %s\n", func() string {
			if !appConfig.HistoryEnabled() {
				return "(disabled)"
			}
			return appConfig.History.Path
		}())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return errors.NewWithSuggestion(errors.ExitCodeConfig,
				fmt.Sprintf("config file already exists at %s", path),
				"Use --force to overwrite it.")
		}

		cfg := config.Default()
		if IsDryRun() {
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			PrintDryRun(cmd.ErrOrStderr(), "would write %s:", path)
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
}
