package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arantir/favorcalc/internal/profile"
)

var giftCmd = &cobra.Command{
	Use:   "gift",
	Short: "Inspect the gift catalog and edit quantities and preferences",
}

var giftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the gift catalog with resolved experience values",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p := e.session.Active()
		quantities := map[int]int{}
		if p != nil {
			quantities = p.Quantities()
		}

		rules := e.engine.RulesFor(p)
		fmt.Printf("%-8s %-24s %5s %6s %5s\n", "ID", "NAME", "BASE", "ACTUAL", "QTY")
		for _, g := range e.catalog.Gifts() {
			actual := e.engine.ActualExp(rules, g.ID, g.BaseExp)
			fmt.Printf("%-8d %-24s %5d %6d %5d\n", g.ID, g.Name, g.BaseExp, actual, quantities[g.ID])
		}
		return nil
	},
}

var giftSetCmd = &cobra.Command{
	Use:   "set ID QTY",
	Short: "Set the owned quantity of a gift",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse gift id %q: %w", args[0], err)
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("parse quantity %q: %w", args[1], err)
		}
		return withSavedProfile(cmd, func(e *env) error {
			if _, ok := e.catalog.ByID(id); !ok {
				fmt.Fprintf(os.Stderr, "warning: gift %d is not in the catalog and will not contribute experience\n", id)
			}
			return e.session.SetQuantity(id, qty)
		})
	},
}

var giftTierCmd = &cobra.Command{
	Use:   "tier ID {40|60|180|240|none}",
	Short: "Assign a gift to a preference tier, or clear it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse gift id %q: %w", args[0], err)
		}
		return withSavedProfile(cmd, func(e *env) error {
			if args[1] == "none" {
				return e.session.ClearTier(id)
			}
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse tier %q: %w", args[1], err)
			}
			tier := profile.Tier(value)
			if !tier.Valid() {
				return &profile.ValidationError{Field: "tier", Reason: "must be 40, 60, 180, 240 or none"}
			}
			if g, ok := e.catalog.ByID(id); ok && g.BaseExp != tier.Bracket() {
				fmt.Fprintf(os.Stderr, "warning: gift %d has base %d; tier %d only applies to base %d gifts\n",
					id, g.BaseExp, int(tier), tier.Bracket())
			}
			return e.session.AssignTier(tier, id)
		})
	},
}

func init() {
	giftCmd.AddCommand(giftListCmd)
	giftCmd.AddCommand(giftSetCmd)
	giftCmd.AddCommand(giftTierCmd)
}
