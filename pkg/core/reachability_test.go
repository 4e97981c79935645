package core

import (
	"maps"
	"testing"
)

// chainModel builds a -> b -> c.
func chainModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel("chain")
	a := testCube(t, m, "a", "id", "b_id")
	b := testCube(t, m, "b", "id", "c_id")
	c := testCube(t, m, "c", "id")
	testRelation(t, m, a, b, "b_id", "id", OneToMany)
	testRelation(t, m, b, c, "c_id", "id", OneToMany)
	return m
}

func TestReachability_HopCounts(t *testing.T) {
	m := chainModel(t)

	reach := m.Reachability()
	want := map[string]map[string]int{
		"a": {"b": 1, "c": 2},
		"b": {"c": 1},
		"c": {},
	}
	for cube, dist := range want {
		if !maps.Equal(reach[cube], dist) {
			t.Errorf("reachability[%s] = %v, want %v", cube, reach[cube], dist)
		}
	}
}

// bfsDistances is an independent from-scratch BFS used to cross-check
// the cache after mutations.
func bfsDistances(m *Model, start string) map[string]int {
	dist := map[string]int{}
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, rel := range m.OutgoingRelations(current) {
			if visited[rel.RightCube] {
				continue
			}
			visited[rel.RightCube] = true
			dist[rel.RightCube] = dist[current] + 1
			queue = append(queue, rel.RightCube)
		}
	}
	return dist
}

func TestReachability_RecomputedAfterMutation(t *testing.T) {
	m := chainModel(t)

	// Prime the cache, then mutate.
	_ = m.Reachability()
	if !m.RemoveCube("b") {
		t.Fatal("failed to remove b")
	}

	reach := m.Reachability()
	for _, name := range m.CubeNames() {
		want := bfsDistances(m, name)
		if !maps.Equal(reach[name], want) {
			t.Errorf("stale cache for %s: got %v, want %v", name, reach[name], want)
		}
	}

	if _, ok := reach["b"]; ok {
		t.Error("removed cube still present in reachability")
	}
}

func TestAllReachability_SymmetricClosure(t *testing.T) {
	m := chainModel(t)
	d := NewCube("d", "id")
	if err := m.AddCube(d); err != nil {
		t.Fatal(err)
	}

	all := m.AllReachability()

	// a reaches b and c, so all three can be queried together, in both
	// directions.
	for _, pair := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}} {
		if !all[pair[0]][pair[1]] || !all[pair[1]][pair[0]] {
			t.Errorf("expected %s and %s to be queryable together", pair[0], pair[1])
		}
	}

	// Every cube includes itself.
	for _, name := range m.CubeNames() {
		if !all[name][name] {
			t.Errorf("expected %s to include itself", name)
		}
	}

	// d is isolated.
	if len(all["d"]) != 1 {
		t.Errorf("expected isolated cube to only see itself, got %v", all["d"])
	}
}
