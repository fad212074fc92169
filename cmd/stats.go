package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's water count",
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

		cmd.Println(renderTitle("Today"))
		glasses := "glasses"
		if state.Count == 1 {
			glasses = "glass"
		}
		cmd.Println(renderRow("water", fmt.Sprintf("%d %s", state.Count, glasses)))
		return nil
	},
}
