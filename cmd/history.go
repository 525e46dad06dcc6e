package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sharewarp/timetrack/internal/history"
	"github.com/sharewarp/timetrack/internal/session"
	"github.com/sharewarp/timetrack/internal/store"
	"github.com/sharewarp/timetrack/internal/timefmt"
)

var historyPage int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the paginated entry history, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyPage, "page", 1, "Page number (1-based)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	username, err := requireLogin()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	client, cfg, err := loadStoreClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sess := session.New(client, username,
		session.WithClock(configuredClock(cfg)),
		session.WithPageSize(cfg.History.PageSize),
	)
	defer sess.Close()

	if err := sess.Refresh(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load history: %v\n", err)
		os.Exit(2)
	}

	sess.SetPage(historyPage)
	page := sess.Page()

	if len(page.Records) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	for _, r := range page.Records {
		printRecord(r)
	}

	fmt.Printf("\nPage %d of %d · Total: %s\n",
		page.Number, page.TotalPages, timefmt.MinutesToHHMM(sess.TotalMinutes()))
	return nil
}

// printRecord prints one history line like
// "2025-01-10 09:00–10:30  Design (01:30)".
func printRecord(r store.Record) {
	startStr, endStr := "?", "?"
	if t, err := time.Parse(time.RFC3339, r.Fields.StartTime); err == nil {
		startStr = t.Local().Format("2006-01-02 15:04")
	}
	if t, err := time.Parse(time.RFC3339, r.Fields.EndTime); err == nil {
		endStr = t.Local().Format("15:04")
	}

	durStr := ""
	if mins := history.RecordMinutes(r); mins > 0 {
		durStr = fmt.Sprintf(" (%s)", timefmt.MinutesToHHMM(mins))
	}

	fmt.Printf("%s–%s  %s%s\n", startStr, endStr, r.Fields.Task, durStr)
}
