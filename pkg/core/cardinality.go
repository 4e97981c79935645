package core

import "fmt"

// Cardinality describes the row multiplicity of a relation between two
// cubes. It determines the SQL join keyword used when rendering.
type Cardinality string

// Cardinality values.
const (
	OneToOne  Cardinality = "one-to-one"
	OneToMany Cardinality = "one-to-many"
	ManyToOne Cardinality = "many-to-one"
)

// JoinKeyword returns the SQL JOIN keyword for this cardinality.
func (c Cardinality) JoinKeyword() string {
	switch c {
	case OneToOne:
		return "INNER JOIN"
	case OneToMany:
		return "LEFT JOIN"
	case ManyToOne:
		return "RIGHT JOIN"
	}
	return "JOIN"
}

// Valid reports whether c is one of the defined cardinality values.
func (c Cardinality) Valid() bool {
	switch c {
	case OneToOne, OneToMany, ManyToOne:
		return true
	}
	return false
}

// ParseCardinality converts a stored string into a Cardinality.
func ParseCardinality(s string) (Cardinality, error) {
	c := Cardinality(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown cardinality %q", s)
	}
	return c, nil
}
