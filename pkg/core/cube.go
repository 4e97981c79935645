package core

import "slices"

// Cube represents a database table with a name and an ordered list of
// column names. Cube identity is its name; the Model owns all Cube
// values and keys them by name.
type Cube struct {
	Name    string
	Columns []string
}

// NewCube creates a cube with the given name and columns.
func NewCube(name string, columns ...string) *Cube {
	return &Cube{Name: name, Columns: columns}
}

// HasColumn reports whether the cube contains the named column.
func (c *Cube) HasColumn(name string) bool {
	return slices.Contains(c.Columns, name)
}
