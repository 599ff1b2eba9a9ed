package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arantir/favorcalc/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage student profiles",
}

var profileNewCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create and activate a new profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.session.CreateProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created profile %q\n", p.Name())
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		names, err := e.session.Profiles(cmd.Context())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No saved profiles.")
			return nil
		}
		active := e.session.ActiveName()
		for _, name := range names {
			marker := "  "
			if name == active {
				marker = "* "
			}
			fmt.Println(marker + name)
		}
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Activate a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.session.UseProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		if e.session.ActiveName() != args[0] {
			fmt.Printf("No profile named %q\n", args[0])
			return nil
		}
		fmt.Printf("Active profile: %s\n", args[0])
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.session.DeleteProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted profile %q\n", args[0])
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active profile's settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p := e.session.Active()
		if p == nil {
			fmt.Println("No active profile.")
			return nil
		}

		fmt.Printf("Profile: %s\n", p.Name())
		fmt.Printf("Start: level %d, exp %d\n", p.StartLevel(), p.StartExp())
		fmt.Printf("Linked: %v\n", p.Linked())
		for _, t := range profile.AllTiers() {
			ids := p.TierGifts(t)
			if len(ids) == 0 {
				continue
			}
			parts := make([]string, len(ids))
			for i, id := range ids {
				parts[i] = strconv.Itoa(id)
			}
			fmt.Printf("Tier %d gifts: %s\n", int(t), strings.Join(parts, ", "))
		}
		quantities := p.Quantities()
		if len(quantities) == 0 {
			fmt.Println("No gift quantities set.")
			return nil
		}
		for _, g := range e.catalog.Gifts() {
			if qty := quantities[g.ID]; qty > 0 {
				fmt.Printf("%d x %s (%d)\n", qty, g.Name, g.ID)
			}
		}
		return nil
	},
}

var profileLevelCmd = &cobra.Command{
	Use:   "level N",
	Short: "Set the starting level (resets in-level exp)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse level %q: %w", args[0], err)
		}
		return withSavedProfile(cmd, func(e *env) error {
			return e.session.SetStartLevel(level)
		})
	},
}

var profileExpCmd = &cobra.Command{
	Use:   "exp N",
	Short: "Set the experience already accrued within the starting level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parse exp %q: %w", args[0], err)
		}
		return withSavedProfile(cmd, func(e *env) error {
			return e.session.SetStartExp(exp)
		})
	},
}

var profileExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export all profiles to an exchange file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		data, err := e.session.ExportProfiles(cmd.Context())
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Printf("Exported profiles to %s\n", args[0])
		return nil
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import profiles from an exchange file (existing names are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		added, err := e.session.ImportProfiles(cmd.Context(), data)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d new profile(s)\n", added)
		return nil
	},
}

// withSavedProfile runs mutate against an open environment and persists the
// active profile afterwards.
func withSavedProfile(cmd *cobra.Command, mutate func(e *env) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := mutate(e); err != nil {
		return err
	}
	return e.session.Save(cmd.Context())
}

func init() {
	profileCmd.AddCommand(profileNewCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileLevelCmd)
	profileCmd.AddCommand(profileExpCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileImportCmd)
}
