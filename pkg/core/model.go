package core

import (
	"fmt"
	"slices"
)

// Model stores cubes and the relations between them as a DAG.
//
// The adjacency map (cube name -> outgoing relations) is the single
// source of truth for edges; Relations() is a derived view. Cube
// iteration follows insertion order, which makes planner tie-breaking
// deterministic.
type Model struct {
	Name string

	cubes     map[string]*Cube
	order     []string // cube names in insertion order
	adjacency map[string][]Relation

	// reach is the memoized reachability state; nil means stale and is
	// recomputed on next read.
	reach *reachability
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		cubes:     make(map[string]*Cube),
		adjacency: make(map[string][]Relation),
	}
}

// invalidateReachability discards the memoized reachability state. It
// must be called at every mutation site.
func (m *Model) invalidateReachability() {
	m.reach = nil
}

// AddCube adds a cube to the model.
func (m *Model) AddCube(cube *Cube) error {
	if _, exists := m.cubes[cube.Name]; exists {
		return &DuplicateCubeError{Name: cube.Name}
	}
	m.cubes[cube.Name] = cube
	m.order = append(m.order, cube.Name)
	m.invalidateReachability()
	return nil
}

// RemoveCube removes a cube and every relation where it is an endpoint.
// It reports whether the cube existed.
func (m *Model) RemoveCube(name string) bool {
	if _, exists := m.cubes[name]; !exists {
		return false
	}

	// Drop outgoing relations.
	delete(m.adjacency, name)

	// Drop incoming relations from every other source, pruning entries
	// that become empty.
	for source, rels := range m.adjacency {
		kept := slices.DeleteFunc(slices.Clone(rels), func(r Relation) bool {
			return r.RightCube == name
		})
		if len(kept) == 0 {
			delete(m.adjacency, source)
		} else {
			m.adjacency[source] = kept
		}
	}

	delete(m.cubes, name)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == name })
	m.invalidateReachability()
	return true
}

// GetCube returns the cube with the given name.
func (m *Model) GetCube(name string) (*Cube, bool) {
	cube, ok := m.cubes[name]
	return cube, ok
}

// HasCube reports whether the model contains a cube with the given name.
func (m *Model) HasCube(name string) bool {
	_, ok := m.cubes[name]
	return ok
}

// Cubes returns all cubes in insertion order.
func (m *Model) Cubes() []*Cube {
	cubes := make([]*Cube, 0, len(m.order))
	for _, name := range m.order {
		cubes = append(cubes, m.cubes[name])
	}
	return cubes
}

// CubeNames returns all cube names in insertion order.
func (m *Model) CubeNames() []string {
	return slices.Clone(m.order)
}

// Relations returns every relation as a flat list, following cube
// insertion order for sources and adjacency order within a source.
func (m *Model) Relations() []Relation {
	var rels []Relation
	for _, name := range m.order {
		rels = append(rels, m.adjacency[name]...)
	}
	return rels
}

// OutgoingRelations returns the outgoing relations of a cube.
func (m *Model) OutgoingRelations(name string) []Relation {
	return slices.Clone(m.adjacency[name])
}

// RenameCube renames a cube, rewriting the endpoint names of every
// relation that references it.
func (m *Model) RenameCube(oldName, newName string) error {
	cube, exists := m.cubes[oldName]
	if !exists {
		return &UnknownCubeError{Name: oldName}
	}
	if oldName == newName {
		return nil
	}
	if _, taken := m.cubes[newName]; taken {
		return &DuplicateCubeError{Name: newName}
	}

	cube.Name = newName
	delete(m.cubes, oldName)
	m.cubes[newName] = cube
	if i := slices.Index(m.order, oldName); i >= 0 {
		m.order[i] = newName
	}

	if rels, ok := m.adjacency[oldName]; ok {
		delete(m.adjacency, oldName)
		m.adjacency[newName] = rels
	}
	for source, rels := range m.adjacency {
		for i, rel := range rels {
			if rel.LeftCube == oldName {
				rel.LeftCube = newName
			}
			if rel.RightCube == oldName {
				rel.RightCube = newName
			}
			m.adjacency[source][i] = rel
		}
	}

	m.invalidateReachability()
	return nil
}

// UpdateCubeColumns replaces a cube's column list. Relations whose join
// column disappears are silently dropped; this is a cascading
// consistency fix-up, not a validation failure. Reports whether the
// cube existed.
func (m *Model) UpdateCubeColumns(name string, columns []string) bool {
	cube, exists := m.cubes[name]
	if !exists {
		return false
	}
	cube.Columns = columns

	valid := func(r Relation) bool {
		if r.LeftCube == name && !cube.HasColumn(r.LeftColumn) {
			return false
		}
		if r.RightCube == name && !cube.HasColumn(r.RightColumn) {
			return false
		}
		return true
	}
	for source, rels := range m.adjacency {
		kept := rels[:0:0]
		for _, rel := range rels {
			if valid(rel) {
				kept = append(kept, rel)
			}
		}
		if len(kept) == 0 {
			delete(m.adjacency, source)
		} else {
			m.adjacency[source] = kept
		}
	}

	m.invalidateReachability()
	return true
}

// wouldCreateCycle reports whether adding an edge from -> to would make
// from reachable from to, via a depth-first walk over outgoing edges.
func (m *Model) wouldCreateCycle(from, to string) bool {
	visited := make(map[string]bool)
	stack := []string{to}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == from {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, rel := range m.adjacency[current] {
			stack = append(stack, rel.RightCube)
		}
	}
	return false
}

// AddRelation adds a relation between two cubes.
//
// It fails with *SelfRelationError if the endpoints are equal,
// *UnknownCubeError if either endpoint is missing, *DuplicatePathError
// if the target is already reachable from the source, and *CycleError
// if the edge would make the source reachable from the target.
func (m *Model) AddRelation(rel Relation) error {
	if rel.LeftCube == rel.RightCube {
		return &SelfRelationError{Name: rel.LeftCube}
	}
	if !m.HasCube(rel.LeftCube) {
		return &UnknownCubeError{Name: rel.LeftCube}
	}
	if !m.HasCube(rel.RightCube) {
		return &UnknownCubeError{Name: rel.RightCube}
	}

	if _, reachable := m.Reachability()[rel.LeftCube][rel.RightCube]; reachable {
		return &DuplicatePathError{From: rel.LeftCube, To: rel.RightCube}
	}
	if m.wouldCreateCycle(rel.LeftCube, rel.RightCube) {
		return &CycleError{From: rel.LeftCube, To: rel.RightCube}
	}

	m.adjacency[rel.LeftCube] = append(m.adjacency[rel.LeftCube], rel)
	m.invalidateReachability()
	return nil
}

// RemoveRelation removes a relation by structural equality. It reports
// whether the relation was present.
func (m *Model) RemoveRelation(rel Relation) bool {
	rels, ok := m.adjacency[rel.LeftCube]
	if !ok {
		return false
	}
	i := slices.Index(rels, rel)
	if i < 0 {
		return false
	}
	rels = slices.Delete(rels, i, i+1)
	if len(rels) == 0 {
		delete(m.adjacency, rel.LeftCube)
	} else {
		m.adjacency[rel.LeftCube] = rels
	}
	m.invalidateReachability()
	return true
}

// RelationUpdate describes a partial change to an existing relation.
// Zero-valued fields keep the old relation's value.
type RelationUpdate struct {
	LeftColumn  string
	RightColumn string
	Cardinality Cardinality
}

// UpdateRelation replaces an existing relation with a freshly
// constructed one carrying the updated fields. New column names are
// re-validated against the endpoint cubes' current columns. Relations
// are immutable values; the old entry is swapped for the replacement
// rather than mutated in place.
func (m *Model) UpdateRelation(old Relation, upd RelationUpdate) (Relation, error) {
	rels, ok := m.adjacency[old.LeftCube]
	if !ok || !slices.Contains(rels, old) {
		return Relation{}, fmt.Errorf("relation %s not found in model", old.Label())
	}

	updated := old
	if upd.LeftColumn != "" {
		updated.LeftColumn = upd.LeftColumn
	}
	if upd.RightColumn != "" {
		updated.RightColumn = upd.RightColumn
	}
	if upd.Cardinality != "" {
		updated.Cardinality = upd.Cardinality
	}

	left := m.cubes[old.LeftCube]
	right := m.cubes[old.RightCube]
	if !left.HasColumn(updated.LeftColumn) {
		return Relation{}, &InvalidColumnError{Cube: left.Name, Column: updated.LeftColumn}
	}
	if !right.HasColumn(updated.RightColumn) {
		return Relation{}, &InvalidColumnError{Cube: right.Name, Column: updated.RightColumn}
	}

	i := slices.Index(m.adjacency[old.LeftCube], old)
	m.adjacency[old.LeftCube][i] = updated
	m.invalidateReachability()
	return updated, nil
}

// RootCubes returns cubes with no incoming edges, in insertion order.
func (m *Model) RootCubes() []string {
	hasIncoming := make(map[string]bool)
	for _, rels := range m.adjacency {
		for _, rel := range rels {
			hasIncoming[rel.RightCube] = true
		}
	}

	var roots []string
	for _, name := range m.order {
		if !hasIncoming[name] {
			roots = append(roots, name)
		}
	}
	return roots
}

// TopologicalSort returns cube names in topological order using Kahn's
// algorithm. The model's acyclicity invariant guarantees the result
// contains every cube; a shorter result would indicate a cycle that
// evaded validation.
func (m *Model) TopologicalSort() []string {
	inDegree := make(map[string]int, len(m.cubes))
	for _, name := range m.order {
		inDegree[name] = 0
	}
	for _, rels := range m.adjacency {
		for _, rel := range rels {
			inDegree[rel.RightCube]++
		}
	}

	var queue []string
	for _, name := range m.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	result := make([]string, 0, len(m.cubes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, rel := range m.adjacency[current] {
			inDegree[rel.RightCube]--
			if inDegree[rel.RightCube] == 0 {
				queue = append(queue, rel.RightCube)
			}
		}
	}
	return result
}
