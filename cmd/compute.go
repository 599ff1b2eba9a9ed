package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arantir/favorcalc/internal/favor"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Project the reachable favor level",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompute(cmd)
	},
}

func init() {
	computeCmd.Flags().Bool("linked", false, "Treat the student as linked when no profile is active")
}

func runCompute(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if linked, _ := cmd.Flags().GetBool("linked"); linked && e.session.Active() == nil {
		e.session.SetLinked(true)
	}

	printProjection(e, e.session.Project())
	return nil
}

func printProjection(e *env, proj favor.Projection) {
	if name := e.session.ActiveName(); name != "" {
		fmt.Printf("Profile: %s\n", name)
	} else {
		fmt.Println("No active profile; computing with base preferences.")
	}
	fmt.Printf("Current: level %d, exp %d\n", proj.StartLevel, proj.StartExp)
	fmt.Printf("Experience from gifts: %d\n", proj.ExpGained)
	fmt.Printf("Projected level: %d\n", proj.ReachedLevel)
	if proj.HasNext {
		fmt.Printf("Experience needed for level %d: %d\n", proj.ReachedLevel+1, proj.ExpToNext)
	} else {
		fmt.Println("Reached the highest tabulated level.")
	}
}
