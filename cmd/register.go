// ABOUTME: Register command for the proptrack CLI
// ABOUTME: Creates an account and starts a session in one step

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/validate"
)

var (
	registerUsername  string
	registerEmail     string
	registerPassword  string
	registerFirstName string
	registerLastName  string
	registerRole      string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Long: `Create a PropTrack account and store the resulting session locally.

Only tenant and landlord accounts can self-register.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdin, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Account username (required)")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password (prefer PROPTRACK_PASSWORD or stdin)")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerRole, "role", "TENANT", "Account role: TENANT or LANDLORD")
	_ = registerCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes the registration and returns an exit code
func runRegister(ctx context.Context, in io.Reader, w io.Writer) int {
	password := registerPassword
	if password == "" {
		password = os.Getenv("PROPTRACK_PASSWORD")
	}
	if password == "" {
		password = readLine(in)
	}
	if err := validate.Password(password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	role := client.Role(strings.ToUpper(registerRole))
	if role != client.RoleTenant && role != client.RoleLandlord {
		fmt.Fprintf(w, "Error: role must be TENANT or LANDLORD, got %q\n", registerRole)
		return 2
	}

	_, store, err := newStore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	req := client.RegisterRequest{
		Username:  registerUsername,
		Email:     registerEmail,
		Password:  password,
		FirstName: registerFirstName,
		LastName:  registerLastName,
		Role:      role,
	}
	if err := store.Register(ctx, req); err != nil {
		fmt.Fprintf(w, "Registration failed: %v\n", err)
		return 1
	}

	user := store.Snapshot().User
	fmt.Fprintf(w, "Account created. Signed in as %s (%s)\n", user.Username, user.Role)
	return 0
}
