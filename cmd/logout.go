package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharewarp/timetrack/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored login session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := config.ClearSession(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println("Logged out.")
	return nil
}
