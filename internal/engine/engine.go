// Package engine coordinates the in-memory cube model and its
// persistent store. Every mutation is validated through the model
// first; only mutations the model accepts are written to the store, so
// the database can never hold a snapshot the graph invariants reject
// wholesale.
package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/cubeql/internal/state"
	"github.com/leapstack-labs/cubeql/pkg/core"
)

// ModelName is the display name of the loaded model.
const ModelName = "Cube Model"

// Config holds engine configuration.
type Config struct {
	// StatePath is the SQLite database path. Empty means in-memory.
	StatePath string
	Logger    *slog.Logger
}

// Engine owns the model and the store behind it.
type Engine struct {
	store  core.Store
	model  *core.Model
	logger *slog.Logger
}

// New opens the state database, runs migrations, and loads the model.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	path := cfg.StatePath
	if path == "" {
		path = ":memory:"
	} else if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(path); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}

	model, err := core.LoadModel(ModelName, store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	logger.Debug("engine ready",
		"state", path,
		"cubes", len(model.Cubes()),
		"relations", len(model.Relations()))

	return &Engine{store: store, model: model, logger: logger}, nil
}

// NewWithStore creates an engine over an existing store. Used in tests.
func NewWithStore(store core.Store, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	model, err := core.LoadModel(ModelName, store)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return &Engine{store: store, model: model, logger: logger}, nil
}

// Model returns the current in-memory model.
func (e *Engine) Model() *core.Model {
	return e.model
}

// Refresh reloads the model from the store.
func (e *Engine) Refresh() error {
	model, err := core.LoadModel(ModelName, e.store)
	if err != nil {
		return fmt.Errorf("failed to reload model: %w", err)
	}
	e.model = model
	return nil
}

// Close closes the underlying store.
func (e *Engine) Close() error {
	return e.store.Close()
}

// CreateCube validates and persists a new cube.
func (e *Engine) CreateCube(name string, columns []string) (*core.Cube, error) {
	cube := core.NewCube(name, columns...)
	if err := e.model.AddCube(cube); err != nil {
		return nil, err
	}
	if err := e.store.SaveCube(cube); err != nil {
		return nil, err
	}
	e.logger.Info("cube created", "cube", name, "columns", len(columns))
	return cube, nil
}

// RenameCube renames a cube in the model and the store.
func (e *Engine) RenameCube(oldName, newName string) error {
	if err := e.model.RenameCube(oldName, newName); err != nil {
		return err
	}
	if err := e.store.RenameCube(oldName, newName); err != nil {
		return err
	}
	e.logger.Info("cube renamed", "from", oldName, "to", newName)
	return nil
}

// UpdateCubeColumns replaces a cube's columns. Relations orphaned by
// the change are dropped from the model; the store is then refreshed
// from the model's surviving relation set on next load, and the cube
// row itself is updated here.
func (e *Engine) UpdateCubeColumns(name string, columns []string) error {
	if !e.model.UpdateCubeColumns(name, columns) {
		return &core.UnknownCubeError{Name: name}
	}
	if err := e.store.UpdateCubeColumns(name, columns); err != nil {
		return err
	}

	// Drop persisted relations the model no longer accepts.
	rows, err := e.store.ListRelations()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.LeftCube != name && row.RightCube != name {
			continue
		}
		if e.relationInModel(row) {
			continue
		}
		if err := e.store.DeleteRelation(row.ID); err != nil {
			return err
		}
		e.logger.Info("relation dropped with column update", "relation", row.ID)
	}

	e.logger.Info("cube columns updated", "cube", name, "columns", len(columns))
	return nil
}

// DeleteCube removes a cube and its incident relations. It reports
// whether the cube existed.
func (e *Engine) DeleteCube(name string) (bool, error) {
	if !e.model.RemoveCube(name) {
		return false, nil
	}
	if err := e.store.DeleteCube(name); err != nil {
		return false, err
	}
	e.logger.Info("cube deleted", "cube", name)
	return true, nil
}

// CreateRelation validates a new relation through the model (catching
// self-relations, missing cubes, duplicate paths, and cycles) and
// persists it. Returns the store-assigned relation id.
func (e *Engine) CreateRelation(leftCube, rightCube, leftColumn, rightColumn string, cardinality core.Cardinality) (string, error) {
	left, ok := e.model.GetCube(leftCube)
	if !ok {
		return "", &core.UnknownCubeError{Name: leftCube}
	}
	right, ok := e.model.GetCube(rightCube)
	if !ok {
		return "", &core.UnknownCubeError{Name: rightCube}
	}

	rel, err := core.NewRelation(left, right, leftColumn, rightColumn, cardinality)
	if err != nil {
		return "", err
	}
	if err := e.model.AddRelation(rel); err != nil {
		return "", err
	}

	id, err := e.store.SaveRelation(rel)
	if err != nil {
		return "", err
	}
	e.logger.Info("relation created", "relation", rel.Label(), "id", id)
	return id, nil
}

// UpdateRelation updates the relation with the given store id.
func (e *Engine) UpdateRelation(id string, upd core.RelationUpdate) error {
	row, err := e.findRelationRow(id)
	if err != nil {
		return err
	}

	old := core.Relation{
		LeftCube:    row.LeftCube,
		RightCube:   row.RightCube,
		LeftColumn:  row.LeftColumn,
		RightColumn: row.RightColumn,
		Cardinality: row.Cardinality,
	}
	updated, err := e.model.UpdateRelation(old, upd)
	if err != nil {
		return err
	}

	if err := e.store.UpdateRelation(id, updated); err != nil {
		return err
	}
	e.logger.Info("relation updated", "relation", updated.Label(), "id", id)
	return nil
}

// DeleteRelation removes the relation with the given store id.
func (e *Engine) DeleteRelation(id string) error {
	row, err := e.findRelationRow(id)
	if err != nil {
		return err
	}

	e.model.RemoveRelation(core.Relation{
		LeftCube:    row.LeftCube,
		RightCube:   row.RightCube,
		LeftColumn:  row.LeftColumn,
		RightColumn: row.RightColumn,
		Cardinality: row.Cardinality,
	})

	if err := e.store.DeleteRelation(id); err != nil {
		return err
	}
	e.logger.Info("relation deleted", "id", id)
	return nil
}

// ListRelations returns the persisted relation rows.
func (e *Engine) ListRelations() ([]core.RelationRow, error) {
	return e.store.ListRelations()
}

func (e *Engine) findRelationRow(id string) (core.RelationRow, error) {
	rows, err := e.store.ListRelations()
	if err != nil {
		return core.RelationRow{}, err
	}
	for _, row := range rows {
		if row.ID == id {
			return row, nil
		}
	}
	return core.RelationRow{}, fmt.Errorf("relation %s not found", id)
}

func (e *Engine) relationInModel(row core.RelationRow) bool {
	for _, rel := range e.model.Relations() {
		if rel.LeftCube == row.LeftCube &&
			rel.RightCube == row.RightCube &&
			rel.LeftColumn == row.LeftColumn &&
			rel.RightColumn == row.RightColumn &&
			rel.Cardinality == row.Cardinality {
			return true
		}
	}
	return false
}
