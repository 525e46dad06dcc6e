package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sharewarp/timetrack/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in by checking the username against the user directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := args[0]
	ctx := cmd.Context()

	client, _, err := loadStoreClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	exists, err := client.UserExists(ctx, username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		os.Exit(2)
	}
	if !exists {
		fmt.Fprintln(os.Stderr, "Login failed: Invalid username.")
		os.Exit(1)
	}

	if err := config.SaveSession(config.SessionState{
		Username:   username,
		LoggedInAt: time.Now(),
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Logged in as %q.\n", username)
	return nil
}
