package core

import (
	"fmt"
	"strings"
)

// DuplicateCubeError is returned when adding or renaming a cube to a
// name that already exists in the model.
type DuplicateCubeError struct {
	Name string
}

func (e *DuplicateCubeError) Error() string {
	return fmt.Sprintf("cube %q already exists in model", e.Name)
}

// UnknownCubeError is returned when an operation references a cube that
// is not present in the model.
type UnknownCubeError struct {
	Name string
}

func (e *UnknownCubeError) Error() string {
	return fmt.Sprintf("cube %q not found in model", e.Name)
}

// SelfRelationError is returned when a relation connects a cube to itself.
type SelfRelationError struct {
	Name string
}

func (e *SelfRelationError) Error() string {
	return fmt.Sprintf("cube %q cannot connect to itself", e.Name)
}

// DuplicatePathError is returned when adding a relation whose target is
// already reachable from its source through existing edges.
type DuplicatePathError struct {
	From string
	To   string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("adding relation %s -> %s would create a duplicate path", e.From, e.To)
}

// CycleError is returned when adding a relation would make its source
// reachable from its target.
type CycleError struct {
	From string
	To   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("adding relation %s -> %s would create a cycle", e.From, e.To)
}

// InvalidColumnError is returned when a column is not a member of the
// cube it is referenced against.
type InvalidColumnError struct {
	Cube   string
	Column string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("column %q not found in cube %q", e.Column, e.Cube)
}

// InvalidColumnFormatError is returned when a column reference is not
// in "cube.column" form.
type InvalidColumnFormatError struct {
	Ref string
}

func (e *InvalidColumnFormatError) Error() string {
	return fmt.Sprintf("invalid column format: %q (want cube.column)", e.Ref)
}

// UnreachableError is returned when no cube can reach every cube named
// by a column selection.
type UnreachableError struct {
	Cubes []string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("no cube can reach all selected cubes: %s", strings.Join(e.Cubes, ", "))
}
