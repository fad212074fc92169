// Package cmd provides the CLI commands for breakminder.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/breakminder/breakminder/internal/config"
	"github.com/breakminder/breakminder/internal/logging"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagAddr  string
	flagDebug bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "breakminder",
	Short: "A break reminder daemon for screen workers",
	Long: `Breakminder runs a background daemon that reminds you to blink, drink
water, stand up and stretch, and can count down a one-shot timer.

Examples:
  breakminder daemon start
  breakminder reminders set water 30
  breakminder timer start "in 20 minutes"
  breakminder stats`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			logging.InitDebug()
		}
		if flagAddr != "" {
			config.Global.Bus.ListenAddr = flagAddr
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "",
		"Daemon bus address (default 127.0.0.1:7641, or $BREAKMINDER_ADDR)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("breakminder %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Die prints an error to stderr.
func Die(err error) {
	os.Stderr.WriteString("Error: " + err.Error() + "\n")
}
