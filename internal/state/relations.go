package state

import (
	"fmt"

	"github.com/leapstack-labs/cubeql/pkg/core"
)

// ListRelations returns all relation rows in creation order.
func (s *SQLiteStore) ListRelations() ([]core.RelationRow, error) {
	rows, err := s.db.Query(`
		SELECT id, left_cube, right_cube, left_column, right_column, cardinality
		FROM relations
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list relations: %w", err)
	}
	defer rows.Close()

	var result []core.RelationRow
	for rows.Next() {
		var row core.RelationRow
		var cardinality string
		if err := rows.Scan(&row.ID, &row.LeftCube, &row.RightCube, &row.LeftColumn, &row.RightColumn, &cardinality); err != nil {
			return nil, fmt.Errorf("failed to scan relation row: %w", err)
		}
		card, err := core.ParseCardinality(cardinality)
		if err != nil {
			return nil, fmt.Errorf("relation %s: %w", row.ID, err)
		}
		row.Cardinality = card
		result = append(result, row)
	}
	return result, rows.Err()
}

// SaveRelation inserts a relation row and returns its assigned id.
func (s *SQLiteStore) SaveRelation(rel core.Relation) (string, error) {
	id := generateID()
	_, err := s.db.Exec(`
		INSERT INTO relations (id, left_cube, right_cube, left_column, right_column, cardinality)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, rel.LeftCube, rel.RightCube, rel.LeftColumn, rel.RightColumn, string(rel.Cardinality),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save relation %s: %w", rel.Label(), err)
	}
	return id, nil
}

// UpdateRelation replaces the stored fields of a relation row.
func (s *SQLiteStore) UpdateRelation(id string, rel core.Relation) error {
	res, err := s.db.Exec(`
		UPDATE relations
		SET left_cube = ?, right_cube = ?, left_column = ?, right_column = ?, cardinality = ?
		WHERE id = ?`,
		rel.LeftCube, rel.RightCube, rel.LeftColumn, rel.RightColumn, string(rel.Cardinality), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update relation %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("relation %s not found in store", id)
	}
	return nil
}

// DeleteRelation removes a relation row by id.
func (s *SQLiteStore) DeleteRelation(id string) error {
	_, err := s.db.Exec("DELETE FROM relations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete relation %s: %w", id, err)
	}
	return nil
}
