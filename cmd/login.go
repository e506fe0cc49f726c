// ABOUTME: Login command for the proptrack CLI
// ABOUTME: Exchanges credentials for a persisted session

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a session",
	Long: `Authenticate against the PropTrack backend and store the session locally.

The password can be passed with --password, via PROPTRACK_PASSWORD, or
piped on stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdin, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username (required)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prefer PROPTRACK_PASSWORD or stdin)")
	_ = loginCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login and returns an exit code
func runLogin(ctx context.Context, in io.Reader, w io.Writer) int {
	password := loginPassword
	if password == "" {
		password = os.Getenv("PROPTRACK_PASSWORD")
	}
	if password == "" {
		password = readLine(in)
	}
	if password == "" {
		fmt.Fprintln(w, "Error: no password given")
		return 2
	}

	_, store, err := newStore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	req := client.LoginRequest{Username: loginUsername, Password: password}
	if err := store.Login(ctx, req); err != nil {
		fmt.Fprintf(w, "Login failed: %v\n", err)
		return 1
	}

	user := store.Snapshot().User
	fmt.Fprintf(w, "Signed in as %s (%s)\n", user.Username, user.Role)
	return 0
}

// readLine reads a single trimmed line, for piped passwords
func readLine(in io.Reader) string {
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
