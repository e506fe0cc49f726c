// ABOUTME: Logout command for the proptrack CLI
// ABOUTME: Clears the locally stored session

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Long:  `Clear the locally stored tokens and profile. No backend call is made.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runLogout(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns an exit code
func runLogout(w io.Writer) int {
	_, store, err := newStore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if !store.Snapshot().Authenticated() {
		fmt.Fprintln(w, "Not signed in.")
		return 0
	}

	store.Logout()
	fmt.Fprintln(w, "Signed out.")
	return 0
}
