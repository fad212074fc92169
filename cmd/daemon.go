package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/breakminder/breakminder/internal/config"
	"github.com/breakminder/breakminder/internal/daemon"
	"github.com/breakminder/breakminder/internal/storage"
)

var flagDataDir string

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the breakminder background daemon",
}

var daemonRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daemon in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagDataDir
		if path == "" {
			path = storage.DefaultPath()
		}

		db, err := storage.Open(storage.Options{Path: path})
		if err != nil {
			return fmt.Errorf("cannot open database: %w", err)
		}
		defer db.Close()

		d := daemon.New(config.Global, db)
		return d.Run(context.Background())
	},
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon in the background",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := daemon.StartBackground(); err != nil {
			return err
		}
		cmd.Println(renderOK("Daemon started"))
		return nil
	},
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := daemon.StopBackground(); err != nil {
			return err
		}
		cmd.Println(renderOK("Daemon stopped"))
		return nil
	},
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

// runStatus prints the daemon status; also the bare `breakminder` output.
func runStatus(cmd *cobra.Command) error {
	status := daemon.GetStatus()
	if !status.Running {
		cmd.Println(renderDim("Daemon is not running"))
		return nil
	}
	cmd.Println(renderOK(fmt.Sprintf("Daemon running (pid %d) on %s", status.PID, status.Addr)))
	return nil
}

func init() {
	daemonRunCmd.Flags().StringVar(&flagDataDir, "data-dir", "",
		"Database directory (default: XDG data home)")

	daemonCmd.AddCommand(daemonRunCmd)
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
}
