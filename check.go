package main

import (
	"errors"
	"fmt"

	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/internal/check"
	"github.com/spf13/cobra"
)

// errUnhealthy is returned when an audit item fails, to signal exit code 1 without printing a message.
var errUnhealthy = errors.New("unhealthy")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit navigation, timing and history configuration",
		Long: `Audits the console configuration and reports one line per item:

  1. Navigation file  (parses and validates navigation.toml)
  2. Width estimates  (entries without a pre-paint tab width)
  3. Timing           (resize debounce and dropdown close grace)
  4. History          (the sqlite database opens)

Warnings do not affect the exit code. Exit code 1 if any item fails.`,
		RunE: runCheck,
		// Suppress usage on error; health failures are not usage errors.
		SilenceUsage: true,
		// Suppress cobra's "Error: ..." line for the unhealthy sentinel.
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("verbose", "v", false, "list every navigation entry")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := config.LoadConfig()
	historyPath, err := config.HistoryPath()
	if err != nil {
		return fmt.Errorf("get history path: %w", err)
	}

	result := check.Audit(cfg, historyPath)
	renderItems(cmd, result.Items)
	if verbose {
		renderEntries(cmd, result)
	}

	ok, total := result.Summary()
	pct := 0
	if total > 0 {
		pct = ok * 100 / total
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nHealth: %d/%d OK (%d%%)\n", ok, total, pct)

	if pct < 100 {
		return errUnhealthy
	}
	return nil
}

func renderItems(cmd *cobra.Command, items []check.Item) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nConfiguration:\n")
	for _, it := range items {
		fmt.Fprintf(out, "  %s %-16s %s\n", statusGlyph(it.Status), it.Name, it.Detail)
	}
}

func renderEntries(cmd *cobra.Command, result check.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nEntries:\n")
	for _, e := range result.Entries {
		suffix := ""
		if e.HasDropdown {
			suffix = " ▾"
		}
		fmt.Fprintf(out, "  %-16s %s%s\n", e.Name, e.Path, suffix)
	}
}

func statusGlyph(s check.Status) string {
	switch s {
	case check.StatusOK:
		return "✓"
	case check.StatusWarn:
		return "⊘"
	case check.StatusFail:
		return "✗"
	default:
		return "?"
	}
}
