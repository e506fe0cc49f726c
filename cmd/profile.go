// ABOUTME: Profile commands for the proptrack CLI
// ABOUTME: Shows and updates the editable profile fields

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vitoteks-art/property-rental-platform/internal/phone"
	"github.com/vitoteks-art/property-rental-platform/internal/profile"
)

var (
	profileName     string
	profileCountry  string
	profilePhone    string
	profileTimezone string
	profileBio      string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	Long:  `Display the profile fields of the signed-in user.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Long:  `Display the profile fields of the signed-in user.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long: `Update profile fields on the backend. Only the given flags change;
everything else keeps its current value.

The full name is split on the last space: "Ada Mary Lovelace" becomes
first name "Ada Mary" and last name "Lovelace".`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runProfileUpdate(ctx, cmd, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "Full name")
	profileUpdateCmd.Flags().StringVar(&profileCountry, "phone-country", "", "Phone country: NG, US, GB, or GH")
	profileUpdateCmd.Flags().StringVar(&profilePhone, "phone", "", "Local phone number")
	profileUpdateCmd.Flags().StringVar(&profileTimezone, "timezone", "", "IANA timezone, e.g. Africa/Lagos")
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "Professional bio")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileUpdate applies flag edits through the form controller and
// returns an exit code
func runProfileUpdate(ctx context.Context, cmd *cobra.Command, w io.Writer) int {
	api, store, err := newStore()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Validate the session first so the form seeds from fresh data
	store.Bootstrap(ctx)
	if !store.Snapshot().Authenticated() {
		fmt.Fprintln(w, "Not signed in. Run 'proptrack login' first.")
		return 1
	}

	form := profile.New(store, api)

	if cmd.Flags().Changed("name") {
		form.SetFullName(profileName)
	}
	if cmd.Flags().Changed("phone-country") {
		country := phone.Country(profileCountry)
		if !country.Supported() {
			fmt.Fprintf(w, "Error: unknown phone country %q\n", profileCountry)
			return 2
		}
		form.SetPhoneCountry(country)
	}
	if cmd.Flags().Changed("phone") {
		form.SetPhoneLocal(profilePhone)
	}
	if cmd.Flags().Changed("timezone") {
		form.SetTimezone(profileTimezone)
	}
	if cmd.Flags().Changed("bio") {
		form.SetBio(profileBio)
	}

	if !form.Dirty() {
		fmt.Fprintln(w, "Nothing to update.")
		return 0
	}

	if err := form.Save(ctx); err != nil {
		fmt.Fprintf(w, "Update failed: %v\n", err)
		return 1
	}

	fmt.Fprintln(w, "Profile updated.")
	fmt.Fprintln(w, formatUserHuman(store.Snapshot().User))
	return 0
}
