package core

// reachability is the memoized derived state over the adjacency
// structure. It is discarded wholesale on any structural mutation and
// rebuilt on first read; mutations are rare relative to reads, so
// recomputing beats incremental patching.
type reachability struct {
	// distances maps cube -> reachable cube -> hop count (directed BFS).
	distances map[string]map[string]int
	// queryable maps cube -> set of cubes it can be queried together
	// with (symmetric closure of distances, including the cube itself).
	queryable map[string]map[string]bool
}

// reachable returns the memoized reachability state, computing it if stale.
func (m *Model) reachable() *reachability {
	if m.reach != nil {
		return m.reach
	}

	distances := make(map[string]map[string]int, len(m.order))
	for _, start := range m.order {
		dist := make(map[string]int)
		visited := map[string]bool{start: true}
		type hop struct {
			name  string
			depth int
		}
		queue := []hop{{start, 0}}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, rel := range m.adjacency[current.name] {
				target := rel.RightCube
				if visited[target] {
					continue
				}
				visited[target] = true
				dist[target] = current.depth + 1
				queue = append(queue, hop{target, current.depth + 1})
			}
		}
		distances[start] = dist
	}

	// Per-pair symmetric closure: if a reaches b, a and b can be
	// queried together. Deliberately not the transitive union across
	// all reachable sets (see DESIGN.md).
	queryable := make(map[string]map[string]bool, len(m.order))
	for _, name := range m.order {
		queryable[name] = map[string]bool{name: true}
	}
	for source, dist := range distances {
		for target := range dist {
			queryable[source][target] = true
			queryable[target][source] = true
		}
	}

	m.reach = &reachability{distances: distances, queryable: queryable}
	return m.reach
}

// Reachability returns, for each cube, the cubes reachable from it by
// following directed relation edges, with BFS hop counts. The result is
// the cache's backing data and must not be mutated by callers.
func (m *Model) Reachability() map[string]map[string]int {
	return m.reachable().distances
}

// AllReachability returns, for each cube, the set of cubes it can be
// queried together with: the cube itself plus every cube connected to
// it by a directed path in either direction.
func (m *Model) AllReachability() map[string]map[string]bool {
	return m.reachable().queryable
}
