package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/cubeql/pkg/core"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderCubesTable(w io.Writer, cubes []*core.Cube) {
	if len(cubes) == 0 {
		_, _ = fmt.Fprintln(w, "(no cubes)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Cube", "Columns"})
	for _, cube := range cubes {
		t.AppendRow(table.Row{cube.Name, strings.Join(cube.Columns, ", ")})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d cubes)\n", len(cubes))
}

func renderRelationsTable(w io.Writer, rows []core.RelationRow) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(no relations)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Left", "Right", "Join", "Cardinality"})
	for _, row := range rows {
		t.AppendRow(table.Row{
			row.ID,
			row.LeftCube,
			row.RightCube,
			fmt.Sprintf("%s.%s = %s.%s", row.LeftCube, row.LeftColumn, row.RightCube, row.RightColumn),
			string(row.Cardinality),
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d relations)\n", len(rows))
}

func renderPlanTable(w io.Writer, plan core.Plan) {
	_, _ = fmt.Fprintf(w, "Start: %s\n", plan.Start)
	if len(plan.Joins) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "From", "To", "On", "Join"})
	for i, join := range plan.Joins {
		t.AppendRow(table.Row{
			i + 1,
			join.FromCube,
			join.ToCube,
			fmt.Sprintf("%s.%s = %s.%s", join.FromCube, join.LeftColumn, join.ToCube, join.RightColumn),
			join.Cardinality.JoinKeyword(),
		})
	}
	t.Render()
}
