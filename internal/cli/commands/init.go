package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cubeql/internal/config"
)

const defaultConfigContent = `# cubeql project configuration
state_path: .cubeql/model.db
output: table
port: 4600
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var withSample bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a cubeql project in the current directory",
		Long: `Create a cubeql.yaml config file and the model database.

With --sample, the model is pre-populated with a small e-commerce
example (customers, orders, order items, products, categories).`,
		Example: `  # Initialize an empty project
  cubeql init

  # Initialize with sample data
  cubeql init --sample`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, withSample)
		},
	}

	cmd.Flags().BoolVar(&withSample, "sample", false, "Seed the model with sample cubes and relations")

	return cmd
}

func runInit(cmd *cobra.Command, withSample bool) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(config.ConfigFileName); os.IsNotExist(err) {
		if err := os.WriteFile(config.ConfigFileName, []byte(defaultConfigContent), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", config.ConfigFileName, err)
		}
		_, _ = fmt.Fprintf(out, "Created %s\n", config.ConfigFileName)
	} else {
		_, _ = fmt.Fprintf(out, "%s already exists, skipping\n", config.ConfigFileName)
	}

	// Opening the engine creates the state database and runs migrations.
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	_, _ = fmt.Fprintf(out, "Initialized model database at %s\n", cmdCtx.Cfg.StatePath)

	if withSample {
		if err := cmdCtx.Engine.SeedSampleData(); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
		_, _ = fmt.Fprintln(out, "Seeded sample cubes and relations")
	}

	return nil
}
