package core

import (
	"fmt"
	"strings"
)

// RenderSQL turns a join plan and the originally selected columns into
// SQL clause text. A plan with no joins selects every column of the
// start cube.
func (m *Model) RenderSQL(plan Plan, selected []string) string {
	if len(plan.Joins) == 0 {
		cube := m.cubes[plan.Start]
		cols := make([]string, len(cube.Columns))
		for i, col := range cube.Columns {
			cols[i] = fmt.Sprintf("%s.%s", cube.Name, col)
		}
		return fmt.Sprintf("SELECT %s\nFROM %s", strings.Join(cols, ", "), cube.Name)
	}

	parts := make([]string, 0, len(plan.Joins)+2)
	parts = append(parts,
		fmt.Sprintf("SELECT %s", strings.Join(selected, ", ")),
		fmt.Sprintf("FROM %s", plan.Start),
	)
	for _, join := range plan.Joins {
		parts = append(parts, join.SQL())
	}
	return strings.Join(parts, "\n")
}

// GenerateSQL plans the selected columns and renders the result.
// Planner failures are collapsed into an "Error: "-prefixed string for
// display; callers that need to branch on failure should use Plan and
// RenderSQL instead.
func (m *Model) GenerateSQL(selected []string) string {
	plan, err := m.Plan(selected)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return m.RenderSQL(plan, selected)
}
