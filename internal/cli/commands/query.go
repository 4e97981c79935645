package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var showPlan bool

	cmd := &cobra.Command{
		Use:   "query <cube.column> [cube.column...]",
		Short: "Generate SQL for a column selection",
		Long: `Plan a join path covering the selected columns and print the SQL.

Columns are qualified as cube.column. The planner picks the start cube
that minimizes total join hops and joins the remaining cubes along
shortest paths.`,
		Example: `  # Single cube
  cubeql query orders.total

  # Across cubes
  cubeql query orders.total customers.name

  # Show the join plan alongside the SQL
  cubeql query orders.total customers.name --plan`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, showPlan)
		},
	}

	cmd.Flags().BoolVar(&showPlan, "plan", false, "Print the join plan before the SQL")

	return cmd
}

func runQuery(cmd *cobra.Command, columns []string, showPlan bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	model := cmdCtx.Engine.Model()

	plan, err := model.Plan(columns)
	if err != nil {
		return err
	}
	sql := model.RenderSQL(plan, columns)

	if cmdCtx.Cfg.Output == "json" {
		return renderJSON(out, map[string]any{
			"start": plan.Start,
			"joins": plan.Joins,
			"sql":   sql,
		})
	}

	if showPlan {
		renderPlanTable(out, plan)
	}
	_, _ = fmt.Fprintln(out, sql)
	return nil
}
