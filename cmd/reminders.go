package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/breakminder/breakminder/internal/bus"
	"github.com/breakminder/breakminder/internal/model"
	"github.com/breakminder/breakminder/internal/validate"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Show and edit the recurring break reminders",
}

var remindersShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current reminder configuration",
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

		printReminders(cmd, state)
		return nil
	},
}

var remindersSetCmd = &cobra.Command{
	Use:   "set <kind> <minutes>",
	Short: "Set a reminder interval (0 disables it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := validate.Kind(args[0])
		if err != nil {
			return err
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("minutes must be a number, got %q", args[1])
		}
		// First enforcement point; the daemon validates again.
		if err := validate.Interval(minutes); err != nil {
			return err
		}

		return updateReminder(cmd, kind, func(cfg *bus.ReminderConfigPayload) {
			cfg.IntervalMinutes = minutes
			cfg.Enabled = minutes > 0
		})
	},
}

var remindersEnableCmd = &cobra.Command{
	Use:   "enable <kind>",
	Short: "Enable a reminder at its stored interval",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := validate.Kind(args[0])
		if err != nil {
			return err
		}
		return updateReminder(cmd, kind, func(cfg *bus.ReminderConfigPayload) {
			cfg.Enabled = true
		})
	},
}

var remindersDisableCmd = &cobra.Command{
	Use:   "disable <kind>",
	Short: "Disable a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := validate.Kind(args[0])
		if err != nil {
			return err
		}
		return updateReminder(cmd, kind, func(cfg *bus.ReminderConfigPayload) {
			cfg.Enabled = false
		})
	},
}

var remindersSoundCmd = &cobra.Command{
	Use:   "sound on|off",
	Short: "Toggle reminder sound",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch args[0] {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
		}

		c, err := dialDaemon()
		if err != nil {
			return err
		}
		defer c.close()

		state, err := fetchState(c)
		if err != nil {
			return err
		}

		req := bus.UpdateRemindersPayload{
			Reminders:    state.Reminders,
			SoundEnabled: enabled,
		}
		if _, err := c.request(bus.ActionUpdateReminders, req); err != nil {
			return err
		}
		cmd.Println(renderOK(fmt.Sprintf("Sound %s", args[0])))
		return nil
	},
}

// updateReminder applies one kind's edit on top of the daemon's current
// state and submits the full desired set.
func updateReminder(cmd *cobra.Command, kind model.Kind, edit func(*bus.ReminderConfigPayload)) error {
	c, err := dialDaemon()
	if err != nil {
		return err
	}
	defer c.close()

	state, err := fetchState(c)
	if err != nil {
		return err
	}

	cfg := state.Reminders[string(kind)]
	edit(&cfg)
	state.Reminders[string(kind)] = cfg

	req := bus.UpdateRemindersPayload{
		Reminders:    state.Reminders,
		SoundEnabled: state.SoundEnabled,
	}
	if _, err := c.request(bus.ActionUpdateReminders, req); err != nil {
		return err
	}

	if cfg.Enabled && cfg.IntervalMinutes > 0 {
		cmd.Println(renderOK(fmt.Sprintf("%s: every %d minutes", kind, cfg.IntervalMinutes)))
	} else {
		cmd.Println(renderOK(fmt.Sprintf("%s: off", kind)))
	}
	return nil
}

func printReminders(cmd *cobra.Command, state *bus.StatePayload) {
	cmd.Println(renderTitle("Reminders"))
	for _, kind := range model.Kinds() {
		cfg := state.Reminders[string(kind)]
		if cfg.Enabled && cfg.IntervalMinutes > 0 {
			cmd.Println(renderRow(string(kind), fmt.Sprintf("every %d minutes", cfg.IntervalMinutes)))
		} else {
			cmd.Println(renderRow(string(kind), "off"))
		}
	}
	sound := "off"
	if state.SoundEnabled {
		sound = "on"
		if !state.SoundSupported {
			sound = "on (playback unsupported on this platform)"
		}
	}
	cmd.Println(renderRow("sound", sound))
}

func init() {
	remindersCmd.AddCommand(remindersShowCmd)
	remindersCmd.AddCommand(remindersSetCmd)
	remindersCmd.AddCommand(remindersEnableCmd)
	remindersCmd.AddCommand(remindersDisableCmd)
	remindersCmd.AddCommand(remindersSoundCmd)
}
