package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and their directory profile",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	username, err := requireLogin()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := cmd.Context()
	client, _, err := loadStoreClient(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Logged in as %q.\n", username)

	profile, err := client.FetchProfile(ctx, username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not fetch profile: %v\n", err)
		os.Exit(2)
	}
	if profile == nil {
		fmt.Println("No directory profile found.")
		return nil
	}

	fmt.Printf("  Name: %s\n", profile.FullName)
	if profile.Role != "" {
		fmt.Printf("  Role: %s\n", profile.Role)
	}
	if profile.Picture != "" {
		fmt.Printf("  Picture: %s\n", profile.Picture)
	}
	return nil
}
