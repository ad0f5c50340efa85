package completions

import (
	"fmt"
	"strings"
	"sync"

	"pastelink/pkg/history"

	"github.com/spf13/cobra"
)

type Completer struct {
	historyPath func() string
	sources     []string
	mu          sync.RWMutex
}

// NewCompleter completes history values from the database historyPath
// returns, resolved lazily so it follows the loaded configuration.
func NewCompleter(historyPath func() string) *Completer {
	return &Completer{historyPath: historyPath}
}

func (c *Completer) CompleteFieldKind(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	kinds := []string{
		"plain\tPlain-text field (textarea), links are rewritten",
		"rich\tRich-text field (contenteditable), pasted unchanged",
	}
	return c.filterPrefix(kinds, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteMatchMode(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	modes := []string{"contains", "exact", "regex", "fuzzy"}
	results := c.filterPrefix(modes, toComplete)

	for i, mode := range results {
		results[i] = fmt.Sprintf("%s\t%s", mode, getMatchDescription(mode))
	}

	return results, cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []string{"table", "json", "yaml"}
	results := c.filterPrefix(formats, toComplete)

	for i, format := range results {
		results[i] = fmt.Sprintf("%s\t%s", format, getFormatDescription(format))
	}

	return results, cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteRewritePath(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	paths := []string{
		"link-preview\tRewritten from a text/link-preview record",
		"anchors\tRewritten from text/html anchors",
	}
	return c.filterPrefix(paths, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// CompleteSource offers "clipboard" and fixture files for --from.
func (c *Completer) CompleteSource(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if strings.HasPrefix("clipboard", toComplete) && toComplete != "" {
		return []string{"clipboard\tRead the system clipboard"}, cobra.ShellCompDirectiveNoFileComp
	}
	return c.CompleteFixture(cmd, args, toComplete)
}

func (c *Completer) CompleteFixture(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}

// CompleteHistorySource suggests sources already seen in the history.
func (c *Completer) CompleteHistorySource(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	c.mu.RLock()
	cached := c.sources
	c.mu.RUnlock()

	if cached == nil {
		sources, err := c.loadSources()
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveNoFileComp
		}
		c.mu.Lock()
		c.sources = sources
		c.mu.Unlock()
		cached = sources
	}

	return c.filterPrefix(cached, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) loadSources() ([]string, error) {
	store, err := history.Open(c.historyPath())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	entries, err := store.List(200)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	sources := []string{}
	for _, e := range entries {
		if e.Source == "" || seen[e.Source] {
			continue
		}
		seen[e.Source] = true
		sources = append(sources, e.Source)
	}
	return sources, nil
}

func (c *Completer) filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func getMatchDescription(mode string) string {
	switch mode {
	case "contains":
		return "Case-insensitive substring"
	case "exact":
		return "Case-insensitive equality"
	case "regex":
		return "Regular expression"
	case "fuzzy":
		return "Characters in order, gaps allowed"
	default:
		return ""
	}
}

func getFormatDescription(format string) string {
	switch format {
	case "table":
		return "Human-readable columns"
	case "json":
		return "Indented JSON"
	case "yaml":
		return "YAML document"
	default:
		return ""
	}
}

func RegisterCompletions(rootCmd *cobra.Command, historyPath func() string) {
	completer := NewCompleter(historyPath)

	rootCmd.RegisterFlagCompletionFunc("format", completer.CompleteFormat)

	convertCmd, _, _ := rootCmd.Find([]string{"convert"})
	if convertCmd != nil && convertCmd != rootCmd {
		convertCmd.RegisterFlagCompletionFunc("from", completer.CompleteSource)
		convertCmd.RegisterFlagCompletionFunc("field", completer.CompleteFieldKind)
		convertCmd.RegisterFlagCompletionFunc("save", completer.CompleteFixture)
	}

	historyCmd, _, _ := rootCmd.Find([]string{"history"})
	if historyCmd != nil && historyCmd != rootCmd {
		historyCmd.RegisterFlagCompletionFunc("match", completer.CompleteMatchMode)
		historyCmd.RegisterFlagCompletionFunc("path", completer.CompleteRewritePath)
		historyCmd.RegisterFlagCompletionFunc("search", completer.CompleteHistorySource)
	}

	loadCmd, _, _ := rootCmd.Find([]string{"clipboard", "load"})
	if loadCmd != nil && loadCmd != rootCmd {
		loadCmd.ValidArgsFunction = completer.CompleteFixture
	}
}
