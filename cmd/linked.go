package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linkedCmd = &cobra.Command{
	Use:   "linked {on|off}",
	Short: "Toggle linked mode on the active profile",
	Long: "Linked mode suppresses all preference tiers and applies the single " +
		"configured override gift. Turning it off restores the tier sets it replaced.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch args[0] {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if e.session.Active() == nil {
			fmt.Println("No active profile; use 'favorcalc compute --linked' for a one-off linked computation.")
			return nil
		}
		e.session.SetLinked(on)
		if err := e.session.Save(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Linked mode %s for %s\n", args[0], e.session.ActiveName())
		return nil
	},
}
