// ABOUTME: Password change command for the proptrack CLI
// ABOUTME: Validates inputs locally before calling the backend

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vitoteks-art/property-rental-platform/internal/validate"
)

var (
	passwdCurrent string
	passwdNew     string
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Long: `Change the password of the signed-in user.

The new password is validated locally first; if omitted, it is read from
stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runPasswd(ctx, os.Stdin, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	passwdCmd.Flags().StringVar(&passwdCurrent, "current", "", "Current password (required)")
	passwdCmd.Flags().StringVar(&passwdNew, "new", "", "New password (read from stdin if omitted)")
	_ = passwdCmd.MarkFlagRequired("current")
	rootCmd.AddCommand(passwdCmd)
}

// runPasswd executes the password change and returns an exit code
func runPasswd(ctx context.Context, in io.Reader, w io.Writer) int {
	newPassword := passwdNew
	if newPassword == "" {
		newPassword = readLine(in)
	}
	if err := validate.Password(newPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	api, store, err := newStore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	token := store.Snapshot().Access
	if token == "" {
		fmt.Fprintln(w, "Not signed in. Run 'proptrack login' first.")
		return 1
	}

	if err := api.ChangePassword(ctx, token, passwdCurrent, newPassword); err != nil {
		fmt.Fprintf(w, "Password change failed: %v\n", err)
		return 1
	}

	fmt.Fprintln(w, "Password updated.")
	return 0
}
