package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show status and priority counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := app.Dashboard.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(sum))
			return nil
		},
	}
}

func newTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "List submit and completion events by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Dashboard.Timeline(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No dated events.")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, e := range events {
				rows = append(rows, []string{e.Date, string(e.Type), e.BRD, formatter.Truncate(e.Title, 40), e.PIC})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"DATE", "EVENT", "BRD NO", "PROJECT", "PIC"}, rows))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var uid string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the change journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			entries, err := app.History.List(cmd.Context(), strings.TrimSpace(uid), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "Only entries for this project uid")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries (0 for all)")
	return cmd
}
