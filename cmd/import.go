package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arantir/favorcalc/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import [FILE]",
	Short: "Import gift quantities from an inventory export (stdin if no file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var content []byte
		var err error
		if len(args) == 1 {
			content, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
		} else {
			content, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}

		items, err := importer.Parse(string(content))
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		applied, err := e.session.ImportQuantities(items)
		if err != nil {
			return err
		}
		if err := e.session.Save(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("Imported quantities for %d gift(s)\n", applied)
		printProjection(e, e.session.Project())
		return nil
	},
}
