package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharewarp/timetrack/internal/history"
	"github.com/sharewarp/timetrack/internal/timefmt"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the total time logged across all entries",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	username, err := requireLogin()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	client, _, err := loadStoreClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	records, err := client.QueryRecords(ctx, username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load history: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Total: %s across %d entries.\n",
		timefmt.MinutesToHHMM(history.TotalMinutes(records)), len(records))
	return nil
}
