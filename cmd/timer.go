package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/breakminder/breakminder/internal/bus"
	"github.com/breakminder/breakminder/internal/parser"
	"github.com/breakminder/breakminder/internal/validate"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Control the one-shot countdown timer",
}

var timerStartCmd = &cobra.Command{
	Use:   "start <minutes | natural phrase>",
	Short: "Start a countdown (1-120 minutes)",
	Long: `Start a one-shot countdown timer. The duration can be a bare number of
minutes or a natural phrase:

  breakminder timer start 20
  breakminder timer start "in 45 minutes"
  breakminder timer start "in an hour"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := parser.Minutes(strings.Join(args, " "), time.Now())
		if err != nil {
			return err
		}
		// First enforcement point; the daemon validates again.
		if err := validate.OneShotMinutes(minutes); err != nil {
			return err
		}

		c, err := dialDaemon()
		if err != nil {
			return err
		}
		defer c.close()

		req := bus.StartOneShotPayload{Minutes: minutes}
		if _, err := c.request(bus.ActionStartOneShotTimer, req); err != nil {
			return err
		}
		cmd.Println(renderOK(fmt.Sprintf("Timer set for %d minutes", minutes)))
		return nil
	},
}

var timerCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the running countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dialDaemon()
		if err != nil {
			return err
		}
		defer c.close()

		if _, err := c.request(bus.ActionCancelOneShotTimer, nil); err != nil {
			return err
		}
		cmd.Println(renderOK("Timer cancelled"))
		return nil
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the remaining countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := dialDaemon()
		if err != nil {
			return err
		}
		defer c.close()

		state, err := fetchState(c)
		if err != nil {
			return err
		}

		if !state.OneShotArmed {
			cmd.Println(renderDim("No timer running"))
			return nil
		}
		remaining := time.Duration(state.OneShotRemaining) * time.Millisecond
		cmd.Println(renderRow("remaining", formatCountdown(remaining)))
		return nil
	},
}

// formatCountdown formats a remaining duration as MM:SS or HH:MM:SS.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func init() {
	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerCancelCmd)
	timerCmd.AddCommand(timerStatusCmd)
}
