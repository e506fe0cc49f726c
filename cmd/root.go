// ABOUTME: Root command for the proptrack CLI
// ABOUTME: Handles global flags, env loading, and shared client/session setup

package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
	"github.com/vitoteks-art/property-rental-platform/internal/config"
	"github.com/vitoteks-art/property-rental-platform/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "proptrack",
	Short: "Terminal client for the PropTrack property-management platform",
	Long: `proptrack is a terminal client for the PropTrack platform.

Sign in once and your session is stored locally; subsequent commands and
the interactive UI reuse it until you log out or the session expires.

Environment Variables:
  PROPTRACK_API_URL     Backend API URL (default: http://localhost:8000)
  PROPTRACK_CONFIG_DIR  Where the session file is stored (default: XDG config dir)
  PROPTRACK_DEBUG_LOG   Write debug logs to the given file`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env in the working directory is a convenience for development;
	// missing files are fine
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PROPTRACK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	cobra.OnInitialize(setupLogging)
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// setupLogging routes slog to the debug log file when configured.
// Logs are discarded otherwise so they never corrupt TUI output.
func setupLogging() {
	path := os.Getenv("PROPTRACK_DEBUG_LOG")
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

// newStore builds the API client and session store from configuration.
// The --api-url flag wins over the environment.
func newStore() (*client.Client, *session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	c := client.New(cfg.APIURL)
	store := session.New(c, session.NewFile(cfg.ConfigDir))
	return c, store, nil
}
