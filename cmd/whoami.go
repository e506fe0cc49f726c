// ABOUTME: Whoami command for the proptrack CLI
// ABOUTME: Validates the stored session and prints the signed-in identity

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long:  `Validate the stored session against the backend and print the current identity.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami validates the session and prints the user, returning an
// exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	_, store, err := newStore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Bootstrap revalidates the token; an expired session comes back
	// unauthenticated rather than erroring
	store.Bootstrap(ctx)

	state := store.Snapshot()
	if !state.Authenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'proptrack login' first.")
		return 1
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(state.User))
	} else {
		fmt.Fprintln(w, formatUserHuman(state.User))
	}
	return 0
}

// formatUserHuman formats a user profile for human readability
func formatUserHuman(user *client.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = "(not set)"
	}
	phone := user.Phone
	if phone == "" {
		phone = "(not set)"
	}
	timezone := user.Timezone
	if timezone == "" {
		timezone = "(not set)"
	}

	return fmt.Sprintf(`Username:  %s
Name:      %s
Email:     %s
Role:      %s
Phone:     %s
Timezone:  %s`,
		user.Username, name, user.Email, user.Role, phone, timezone)
}

// formatUserJSON formats a user profile as JSON
func formatUserJSON(user *client.User) string {
	data, _ := json.MarshalIndent(user, "", "  ")
	return string(data)
}
