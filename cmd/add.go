package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sharewarp/timetrack/internal/entry"
	"github.com/sharewarp/timetrack/internal/model"
	"github.com/sharewarp/timetrack/internal/session"
	"github.com/sharewarp/timetrack/internal/timefmt"
)

var (
	addTask      string
	addMode      string
	addStart     string
	addEnd       string
	addStartTime string
	addDuration  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a time entry",
	Long: `Add a time entry to the remote record store.

Manual mode takes explicit local start and end date-times:
  ttrack add --task Design --mode manual --start 2025-01-10T09:00 --end 2025-01-10T10:30

Auto mode takes a start time of day plus a duration in minutes; the date
is today's date at the moment of submission:
  ttrack add --task Design --mode auto --start-time 09:00 --duration 90`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTask, "task", "", "Task name (required)")
	addCmd.Flags().StringVar(&addMode, "mode", "manual", "Entry mode: manual or auto")
	addCmd.Flags().StringVar(&addStart, "start", "", "Manual mode: local start date-time (2006-01-02T15:04)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "Manual mode: local end date-time (2006-01-02T15:04)")
	addCmd.Flags().StringVar(&addStartTime, "start-time", "", "Auto mode: local start time (15:04)")
	addCmd.Flags().StringVar(&addDuration, "duration", "", "Auto mode: duration in minutes")
}

func parseMode(s string) (model.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual":
		return model.ModeManual, nil
	case "auto":
		return model.ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want manual or auto)", s)
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(addMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	draft := model.Draft{
		Task:          addTask,
		Mode:          mode,
		StartDateTime: addStart,
		EndDateTime:   addEnd,
		StartTime:     addStartTime,
		Duration:      addDuration,
	}

	printPreview(draft)

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
	sess.SetDraft(draft)

	errs, err := sess.Submit(ctx)
	if len(errs) > 0 {
		for _, f := range entry.FieldOrder {
			if msg, ok := errs[f]; ok {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", f, msg)
			}
		}
		os.Exit(1)
	}

	var refreshErr *session.RefreshError
	switch {
	case errors.As(err, &refreshErr):
		fmt.Println("Entry added.")
		fmt.Fprintf(os.Stderr, "Warning: %v\n", refreshErr)
		return nil
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to send entry: %v\n", err)
		os.Exit(2)
	}

	fmt.Println("Entry added.")
	fmt.Printf("Total logged: %s across %d entries.\n",
		timefmt.MinutesToHHMM(sess.TotalMinutes()), len(sess.Records()))
	return nil
}

// printPreview mirrors the live summary shown while an entry is edited:
// current start time, current duration, and range warnings.
func printPreview(d model.Draft) {
	if start, ok := d.CurrentStartTime(); ok {
		fmt.Printf("Start: %s\n", start)
	}
	if d.PreviewRange() == model.RangeInvalid {
		fmt.Println("Duration: invalid time range")
	} else if mins := d.CurrentDuration(); mins > 0 {
		fmt.Printf("Duration: %s\n", timefmt.MinutesToHHMM(float64(mins)))
	}
	if d.SpansMultipleDays() {
		fmt.Println("Note: this task spans multiple days.")
	}
}
