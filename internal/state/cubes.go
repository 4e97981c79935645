package state

import (
	"encoding/json"
	"fmt"

	"github.com/leapstack-labs/cubeql/pkg/core"
)

// ListCubes returns all cubes in creation order.
func (s *SQLiteStore) ListCubes() ([]*core.Cube, error) {
	rows, err := s.db.Query("SELECT name, columns FROM cubes ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list cubes: %w", err)
	}
	defer rows.Close()

	var cubes []*core.Cube
	for rows.Next() {
		var name, columnsJSON string
		if err := rows.Scan(&name, &columnsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan cube row: %w", err)
		}

		var columns []string
		if err := json.Unmarshal([]byte(columnsJSON), &columns); err != nil {
			return nil, fmt.Errorf("failed to decode columns of cube %q: %w", name, err)
		}
		cubes = append(cubes, core.NewCube(name, columns...))
	}
	return cubes, rows.Err()
}

// SaveCube inserts a cube row.
func (s *SQLiteStore) SaveCube(cube *core.Cube) error {
	columnsJSON, err := json.Marshal(cube.Columns)
	if err != nil {
		return fmt.Errorf("failed to encode columns: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO cubes (name, columns) VALUES (?, ?)",
		cube.Name, string(columnsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save cube %q: %w", cube.Name, err)
	}
	return nil
}

// RenameCube updates a cube's name. Relation endpoints follow via the
// ON UPDATE CASCADE foreign keys.
func (s *SQLiteStore) RenameCube(oldName, newName string) error {
	res, err := s.db.Exec("UPDATE cubes SET name = ? WHERE name = ?", newName, oldName)
	if err != nil {
		return fmt.Errorf("failed to rename cube %q: %w", oldName, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cube %q not found in store", oldName)
	}
	return nil
}

// UpdateCubeColumns replaces a cube's column list.
func (s *SQLiteStore) UpdateCubeColumns(name string, columns []string) error {
	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("failed to encode columns: %w", err)
	}

	res, err := s.db.Exec("UPDATE cubes SET columns = ? WHERE name = ?", string(columnsJSON), name)
	if err != nil {
		return fmt.Errorf("failed to update cube %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cube %q not found in store", name)
	}
	return nil
}

// DeleteCube removes a cube row; incident relations cascade.
func (s *SQLiteStore) DeleteCube(name string) error {
	_, err := s.db.Exec("DELETE FROM cubes WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete cube %q: %w", name, err)
	}
	return nil
}
