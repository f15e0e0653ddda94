package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/nav"
	"github.com/kastheco/chartdesk/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// fallbackWidth is used when stdout is not a terminal and no width is given.
const fallbackWidth = 80

// executeNavPartition renders the top-bar partition of entries at width as
// text. Exported for testing without cobra plumbing.
func executeNavPartition(entries []nav.Entry, width int, m nav.Measurer) string {
	p, avail := ui.PartitionAt(entries, width, m)

	var sb strings.Builder
	fmt.Fprintf(&sb, "width %d, entry area %d\n", width, avail)
	sb.WriteString("visible:\n")
	writeEntries(&sb, p.Visible, m)
	sb.WriteString("more:\n")
	writeEntries(&sb, p.Overflow, m)
	return sb.String()
}

func writeEntries(sb *strings.Builder, entries []nav.Entry, m nav.Measurer) {
	if len(entries) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("  %-24s %3d %s", e.Name, m.Width(e), e.Path)
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

// terminalWidth returns the width of stdout, or fallbackWidth when it is not
// a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

// resolveNavigation loads the entries at file, or at the configured
// navigation path when file is empty.
func resolveNavigation(file string) ([]nav.Entry, string, error) {
	if file == "" {
		path, err := config.LoadConfig().NavigationPath()
		if err != nil {
			return nil, "", err
		}
		file = path
	}
	entries, err := config.LoadNavigation(file)
	return entries, file, err
}

// NewNavCmd builds the `chartdesk nav` command.
func NewNavCmd() *cobra.Command {
	var (
		width    int
		estimate bool
		file     string
	)
	navCmd := &cobra.Command{
		Use:   "nav",
		Short: "Print which navigation entries fit the top bar at a width",
		Long: `Partition the navigation entries the way the top bar does and print
the inline entries and the ones moved into the more menu. Without --width
the current terminal width is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, path, err := resolveNavigation(file)
			if err != nil {
				return fmt.Errorf("load navigation %s: %w", path, err)
			}
			if width <= 0 {
				width = terminalWidth()
			}
			var m nav.Measurer = ui.TabMeasurer{}
			if estimate {
				m = ui.NewTabEstimator()
			}
			fmt.Fprint(cmd.OutOrStdout(), executeNavPartition(entries, width, m))
			return nil
		},
	}
	navCmd.Flags().IntVarP(&width, "width", "w", 0, "Container width in cells (default: terminal width)")
	navCmd.Flags().BoolVar(&estimate, "estimate", false, "Use the static width table instead of rendering tabs")
	navCmd.Flags().StringVarP(&file, "file", "f", "", "Navigation TOML file (default: configured navigation file)")
	return navCmd
}
