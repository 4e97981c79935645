package core

import "fmt"

// Relation is a directed join edge between two cubes:
//
//	LeftCube.LeftColumn -> RightCube.RightColumn
//
// A relation references its endpoint cubes by name only; the Model owns
// cube lifetime. Identity is structural over the five fields, so
// relations compare with == and can be used as map keys.
type Relation struct {
	LeftCube    string
	RightCube   string
	LeftColumn  string
	RightColumn string
	Cardinality Cardinality
}

// NewRelation constructs a relation between two cubes, validating that
// each join column is a member of its cube's column set. Validation
// failures are reported immediately as *InvalidColumnError.
func NewRelation(left, right *Cube, leftColumn, rightColumn string, cardinality Cardinality) (Relation, error) {
	if !left.HasColumn(leftColumn) {
		return Relation{}, &InvalidColumnError{Cube: left.Name, Column: leftColumn}
	}
	if !right.HasColumn(rightColumn) {
		return Relation{}, &InvalidColumnError{Cube: right.Name, Column: rightColumn}
	}
	return Relation{
		LeftCube:    left.Name,
		RightCube:   right.Name,
		LeftColumn:  leftColumn,
		RightColumn: rightColumn,
		Cardinality: cardinality,
	}, nil
}

// Label returns a human-readable description of the join.
func (r Relation) Label() string {
	return fmt.Sprintf("%s.%s -> %s.%s (%s)",
		r.LeftCube, r.LeftColumn, r.RightCube, r.RightColumn, r.Cardinality)
}

// Join represents one SQL JOIN clause in a join plan.
type Join struct {
	FromCube    string      `json:"from_cube"`
	ToCube      string      `json:"to_cube"`
	LeftColumn  string      `json:"left_column"`
	RightColumn string      `json:"right_column"`
	Cardinality Cardinality `json:"cardinality"`
}

// SQL renders the JOIN clause.
func (j Join) SQL() string {
	return fmt.Sprintf("%s %s ON %s.%s = %s.%s",
		j.Cardinality.JoinKeyword(), j.ToCube,
		j.FromCube, j.LeftColumn, j.ToCube, j.RightColumn)
}
