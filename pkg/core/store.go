package core

// RelationRow is a persisted relation record. Unlike Relation it
// carries the store-assigned id and has not been validated against the
// current model.
type RelationRow struct {
	ID          string
	LeftCube    string
	RightCube   string
	LeftColumn  string
	RightColumn string
	Cardinality Cardinality
}

// Store is the persistence contract for cube model snapshots. The core
// never touches storage directly; the engine validates mutations
// through a Model and then writes through a Store.
type Store interface {
	ListCubes() ([]*Cube, error)
	SaveCube(cube *Cube) error
	RenameCube(oldName, newName string) error
	UpdateCubeColumns(name string, columns []string) error
	DeleteCube(name string) error

	ListRelations() ([]RelationRow, error)
	SaveRelation(rel Relation) (string, error)
	UpdateRelation(id string, rel Relation) error
	DeleteRelation(id string) error

	Close() error
}

// LoadModel reconstructs a Model from a store snapshot by replaying
// AddCube and AddRelation. Relations that fail validation (for example
// a stale column reference) are skipped rather than aborting the load,
// so the rest of the snapshot still comes up. This leniency is specific
// to snapshot reload; interactive mutations never swallow validation
// errors.
func LoadModel(name string, store Store) (*Model, error) {
	cubes, err := store.ListCubes()
	if err != nil {
		return nil, err
	}
	rows, err := store.ListRelations()
	if err != nil {
		return nil, err
	}

	model := NewModel(name)
	for _, cube := range cubes {
		if err := model.AddCube(cube); err != nil {
			return nil, err
		}
	}

	for _, row := range rows {
		left, lok := model.GetCube(row.LeftCube)
		right, rok := model.GetCube(row.RightCube)
		if !lok || !rok {
			continue
		}
		rel, err := NewRelation(left, right, row.LeftColumn, row.RightColumn, row.Cardinality)
		if err != nil {
			continue
		}
		// Deliberately ignored: see the leniency note above.
		_ = model.AddRelation(rel)
	}

	return model, nil
}
