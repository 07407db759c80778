// ABOUTME: Root command for the sdcch-dim CLI
// ABOUTME: Handles global flags and launches the TUI when no subcommand is given

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ubaidashraf22/RF/backend/logger"
	"github.com/ubaidashraf22/RF/cli/internal/client"
	"github.com/ubaidashraf22/RF/cli/internal/tui"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "sdcch-dim",
	Short: "SDCCH signalling channel dimensioning",
	Long: `sdcch-dim sizes SDCCH signalling capacity per GSM cell from busy-hour
traffic and plans the physical channel retyping that realizes it.

Run without a subcommand to start the interactive terminal UI.

Environment Variables:
  SDCCH_API_URL  Backend API URL (default: http://localhost:8080)
  LOG_LEVEL      debug, info, warn, error (default: info)
  LOG_FORMAT     text, json (default: text)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(client.New(GetAPIURL()))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() { logger.Init(os.Stderr) })
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SDCCH_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("SDCCH_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
