package commands

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cubes and relations in the model",
		Example: `  # List the model as tables
  cubeql list

  # List as JSON
  cubeql list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	model := cmdCtx.Engine.Model()

	rows, err := cmdCtx.Engine.ListRelations()
	if err != nil {
		return err
	}

	if cmdCtx.Cfg.Output == "json" {
		type cubeOut struct {
			Name    string   `json:"name"`
			Columns []string `json:"columns"`
		}
		cubes := make([]cubeOut, 0, len(model.Cubes()))
		for _, cube := range model.Cubes() {
			cubes = append(cubes, cubeOut{Name: cube.Name, Columns: cube.Columns})
		}
		return renderJSON(out, map[string]any{
			"cubes":     cubes,
			"relations": rows,
		})
	}

	renderCubesTable(out, model.Cubes())
	renderRelationsTable(out, rows)
	return nil
}
