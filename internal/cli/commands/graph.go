package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the cube graph",
		Long: `Show the cube graph: root cubes, topological order, and edges.

With --output json, emits the node/edge export used by the UI.`,
		Example: `  # Show the graph
  cubeql graph

  # Export as JSON
  cubeql graph --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd)
		},
	}

	return cmd
}

func runGraph(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	model := cmdCtx.Engine.Model()

	if cmdCtx.Cfg.Output == "json" {
		return renderJSON(out, model.GraphData())
	}

	roots := model.RootCubes()
	if len(roots) > 0 {
		_, _ = fmt.Fprintf(out, "Roots: %s\n", strings.Join(roots, ", "))
	}

	sorted := model.TopologicalSort()
	if len(sorted) > 0 {
		_, _ = fmt.Fprintf(out, "Order: %s\n", strings.Join(sorted, " -> "))
	}

	relations := model.Relations()
	if len(relations) == 0 {
		_, _ = fmt.Fprintln(out, "(no relations)")
		return nil
	}
	_, _ = fmt.Fprintln(out, "Edges:")
	for _, rel := range relations {
		_, _ = fmt.Fprintf(out, "  %s\n", rel.Label())
	}
	return nil
}
