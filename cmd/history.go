package cmd

import (
	"fmt"
	"strings"

	"github.com/kastheco/chartdesk/config"
	"github.com/kastheco/chartdesk/config/history"
	"github.com/spf13/cobra"
)

// executeHistory lists recent navigation events, newest first.
func executeHistory(l history.Logger, route, session string, limit int) (string, error) {
	events, err := l.Query(history.QueryFilter{Route: route, Session: session, Limit: limit})
	if err != nil {
		return "", fmt.Errorf("query history: %w", err)
	}
	if len(events) == 0 {
		return "no navigation events\n", nil
	}
	var sb strings.Builder
	for _, e := range events {
		line := fmt.Sprintf("%s  %-8s  %-20s %-8s %-20s %s",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Session, e.Kind, e.Layout, e.Route, e.Message)
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return sb.String(), nil
}

// NewHistoryCmd builds the `chartdesk history` command.
func NewHistoryCmd() *cobra.Command {
	var (
		route   string
		session string
		limit   int
	)
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent navigation events",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.HistoryPath()
			if err != nil {
				return err
			}
			l, err := history.NewSQLiteLogger(path)
			if err != nil {
				return err
			}
			defer l.Close()

			out, err := executeHistory(l, route, session, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	historyCmd.Flags().StringVarP(&route, "route", "r", "", "Only events for this route")
	historyCmd.Flags().StringVarP(&session, "session", "s", "", "Only events from this session id")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of events (up to 500)")
	return historyCmd
}
