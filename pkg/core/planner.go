package core

import (
	"errors"
	"strings"
)

// Plan is an ordered join sequence rooted at a start cube. An empty
// Joins list means the selection touches a single cube and no join is
// required.
type Plan struct {
	Start string
	Joins []Join
}

// columnRef is a parsed "cube.column" reference.
type columnRef struct {
	Cube   string
	Column string
}

// parseColumnRef validates a "cube.column" reference against the model.
func (m *Model) parseColumnRef(ref string) (columnRef, error) {
	cubeName, colName, found := strings.Cut(ref, ".")
	if !found {
		return columnRef{}, &InvalidColumnFormatError{Ref: ref}
	}
	cube, ok := m.cubes[cubeName]
	if !ok {
		return columnRef{}, &UnknownCubeError{Name: cubeName}
	}
	if !cube.HasColumn(colName) {
		return columnRef{}, &InvalidColumnError{Cube: cubeName, Column: colName}
	}
	return columnRef{Cube: cubeName, Column: colName}, nil
}

// Plan computes the ordered list of joins needed to query the selected
// columns, each given in "cube.column" form.
//
// The start cube is the one that reaches every other selected cube with
// the minimum total hop count; ties break by cube insertion order, so
// planning the same selection against the same model state is
// deterministic. The join list is reconstructed from a predecessor-edge
// BFS rooted at the start cube, with shared path prefixes emitted once.
func (m *Model) Plan(selected []string) (Plan, error) {
	if len(selected) == 0 {
		return Plan{}, errors.New("no columns selected")
	}

	needed := make(map[string]bool)
	for _, ref := range selected {
		parsed, err := m.parseColumnRef(ref)
		if err != nil {
			return Plan{}, err
		}
		needed[parsed.Cube] = true
	}

	if len(needed) == 1 {
		for name := range needed {
			return Plan{Start: name}, nil
		}
	}

	// Candidate start cubes: those whose reachable set covers every
	// other needed cube. Insertion-order iteration plus strict-less
	// comparison keeps the earliest minimal candidate.
	distances := m.Reachability()
	start := ""
	bestCost := 0
	for _, name := range m.order {
		reach := distances[name]
		cost := 0
		covers := true
		for target := range needed {
			if target == name {
				continue
			}
			d, ok := reach[target]
			if !ok {
				covers = false
				break
			}
			cost += d
		}
		if !covers {
			continue
		}
		if start == "" || cost < bestCost {
			start = name
			bestCost = cost
		}
	}
	if start == "" {
		cubes := make([]string, 0, len(needed))
		for _, name := range m.order {
			if needed[name] {
				cubes = append(cubes, name)
			}
		}
		return Plan{}, &UnreachableError{Cubes: cubes}
	}

	// BFS from the start cube recording, per visited cube, the single
	// incoming edge used to reach it.
	joinTo := make(map[string]Join)
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, rel := range m.adjacency[current] {
			target := rel.RightCube
			if visited[target] {
				continue
			}
			visited[target] = true
			joinTo[target] = Join{
				FromCube:    current,
				ToCube:      target,
				LeftColumn:  rel.LeftColumn,
				RightColumn: rel.RightColumn,
				Cardinality: rel.Cardinality,
			}
			queue = append(queue, target)
		}
	}

	// Walk predecessor edges backward from each needed cube to the
	// start (or to a cube already joined), then emit the chain in
	// start-ward to target-ward order, skipping joins whose target is
	// already included.
	joined := map[string]bool{start: true}
	var joins []Join
	for _, target := range m.order {
		if !needed[target] || target == start {
			continue
		}

		var path []Join
		for current := target; current != start && !joined[current]; {
			join, ok := joinTo[current]
			if !ok {
				break
			}
			path = append([]Join{join}, path...)
			current = join.FromCube
		}

		for _, join := range path {
			if joined[join.ToCube] {
				continue
			}
			joins = append(joins, join)
			joined[join.ToCube] = true
		}
	}

	return Plan{Start: start, Joins: joins}, nil
}
