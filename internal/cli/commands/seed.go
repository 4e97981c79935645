package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	var sample bool

	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Load cubes and relations from a YAML seed file",
		Long: `Load cube and relation definitions from a YAML file into the model.

The file lists cubes (name plus columns) and relations (left, right,
left_column, right_column, cardinality). Cubes that already exist are
skipped; invalid relations abort the load.`,
		Example: `  # Load from a seed file
  cubeql seed model.yaml

  # Load the built-in sample model
  cubeql seed --sample`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sample && len(args) == 0 {
				return fmt.Errorf("a seed file is required (or use --sample)")
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if sample {
				if err := cmdCtx.Engine.SeedSampleData(); err != nil {
					return fmt.Errorf("failed to seed sample data: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Seeded sample cubes and relations")
				return nil
			}

			if err := cmdCtx.Engine.LoadSeedFile(args[0]); err != nil {
				return err
			}

			model := cmdCtx.Engine.Model()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s: %d cubes, %d relations\n",
				args[0], len(model.Cubes()), len(model.Relations()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "Seed the built-in sample model instead of a file")

	return cmd
}
