package state

import (
	"testing"

	"github.com/leapstack-labs/cubeql/pkg/core"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	if err := store.Open(":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore()
	if err := store.Open(":memory:"); err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"cubes", "relations"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		} else {
			rows.Close()
		}
	}
}

func TestSQLiteStore_CubeCRUD(t *testing.T) {
	store := setupTestStore(t)

	if err := store.SaveCube(core.NewCube("orders", "id", "customer_id")); err != nil {
		t.Fatalf("failed to save cube: %v", err)
	}
	if err := store.SaveCube(core.NewCube("customers", "id", "name")); err != nil {
		t.Fatalf("failed to save cube: %v", err)
	}

	// Duplicate insert violates the primary key.
	if err := store.SaveCube(core.NewCube("orders", "id")); err == nil {
		t.Error("expected error saving duplicate cube")
	}

	cubes, err := store.ListCubes()
	if err != nil {
		t.Fatalf("failed to list cubes: %v", err)
	}
	if len(cubes) != 2 {
		t.Fatalf("expected 2 cubes, got %d", len(cubes))
	}
	if cubes[0].Name != "orders" || cubes[1].Name != "customers" {
		t.Errorf("expected creation order preserved, got %v, %v", cubes[0].Name, cubes[1].Name)
	}
	if len(cubes[0].Columns) != 2 {
		t.Errorf("expected columns round-tripped, got %v", cubes[0].Columns)
	}

	if err := store.UpdateCubeColumns("orders", []string{"id", "total"}); err != nil {
		t.Fatalf("failed to update columns: %v", err)
	}
	if err := store.RenameCube("orders", "purchases"); err != nil {
		t.Fatalf("failed to rename cube: %v", err)
	}
	if err := store.RenameCube("missing", "x"); err == nil {
		t.Error("expected error renaming missing cube")
	}

	if err := store.DeleteCube("purchases"); err != nil {
		t.Fatalf("failed to delete cube: %v", err)
	}
	cubes, _ = store.ListCubes()
	if len(cubes) != 1 {
		t.Errorf("expected 1 cube after delete, got %d", len(cubes))
	}
}

func TestSQLiteStore_RelationCRUD(t *testing.T) {
	store := setupTestStore(t)

	orders := core.NewCube("orders", "id", "customer_id")
	customers := core.NewCube("customers", "id", "name")
	for _, cube := range []*core.Cube{orders, customers} {
		if err := store.SaveCube(cube); err != nil {
			t.Fatalf("failed to save cube: %v", err)
		}
	}

	rel, err := core.NewRelation(orders, customers, "customer_id", "id", core.ManyToOne)
	if err != nil {
		t.Fatalf("failed to build relation: %v", err)
	}

	id, err := store.SaveRelation(rel)
	if err != nil {
		t.Fatalf("failed to save relation: %v", err)
	}
	if id == "" {
		t.Fatal("expected a relation id")
	}

	rows, err := store.ListRelations()
	if err != nil {
		t.Fatalf("failed to list relations: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != id || rows[0].Cardinality != core.ManyToOne {
		t.Fatalf("unexpected relation rows: %+v", rows)
	}

	updated := rel
	updated.Cardinality = core.OneToOne
	if err := store.UpdateRelation(id, updated); err != nil {
		t.Fatalf("failed to update relation: %v", err)
	}
	rows, _ = store.ListRelations()
	if rows[0].Cardinality != core.OneToOne {
		t.Errorf("expected updated cardinality, got %s", rows[0].Cardinality)
	}

	if err := store.UpdateRelation("no-such-id", updated); err == nil {
		t.Error("expected error updating missing relation")
	}

	if err := store.DeleteRelation(id); err != nil {
		t.Fatalf("failed to delete relation: %v", err)
	}
	rows, _ = store.ListRelations()
	if len(rows) != 0 {
		t.Errorf("expected no relations after delete, got %d", len(rows))
	}
}

func TestSQLiteStore_DeleteCubeCascadesRelations(t *testing.T) {
	store := setupTestStore(t)

	orders := core.NewCube("orders", "id", "customer_id")
	customers := core.NewCube("customers", "id", "name")
	for _, cube := range []*core.Cube{orders, customers} {
		if err := store.SaveCube(cube); err != nil {
			t.Fatalf("failed to save cube: %v", err)
		}
	}
	rel, _ := core.NewRelation(orders, customers, "customer_id", "id", core.ManyToOne)
	if _, err := store.SaveRelation(rel); err != nil {
		t.Fatalf("failed to save relation: %v", err)
	}

	if err := store.DeleteCube("customers"); err != nil {
		t.Fatalf("failed to delete cube: %v", err)
	}

	rows, err := store.ListRelations()
	if err != nil {
		t.Fatalf("failed to list relations: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected cascade to remove relations, got %+v", rows)
	}
}

func TestSQLiteStore_RenameCubeFollowsRelations(t *testing.T) {
	store := setupTestStore(t)

	orders := core.NewCube("orders", "id", "customer_id")
	customers := core.NewCube("customers", "id", "name")
	for _, cube := range []*core.Cube{orders, customers} {
		if err := store.SaveCube(cube); err != nil {
			t.Fatalf("failed to save cube: %v", err)
		}
	}
	rel, _ := core.NewRelation(orders, customers, "customer_id", "id", core.ManyToOne)
	if _, err := store.SaveRelation(rel); err != nil {
		t.Fatalf("failed to save relation: %v", err)
	}

	if err := store.RenameCube("customers", "clients"); err != nil {
		t.Fatalf("failed to rename cube: %v", err)
	}

	rows, _ := store.ListRelations()
	if len(rows) != 1 || rows[0].RightCube != "clients" {
		t.Errorf("expected relation endpoint to follow rename, got %+v", rows)
	}
}

func TestSQLiteStore_RoundTripThroughLoadModel(t *testing.T) {
	store := setupTestStore(t)

	orders := core.NewCube("orders", "id", "customer_id")
	customers := core.NewCube("customers", "id", "name")
	for _, cube := range []*core.Cube{orders, customers} {
		if err := store.SaveCube(cube); err != nil {
			t.Fatalf("failed to save cube: %v", err)
		}
	}
	rel, _ := core.NewRelation(orders, customers, "customer_id", "id", core.ManyToOne)
	if _, err := store.SaveRelation(rel); err != nil {
		t.Fatalf("failed to save relation: %v", err)
	}

	model, err := core.LoadModel("test", store)
	if err != nil {
		t.Fatalf("failed to load model: %v", err)
	}
	if len(model.Cubes()) != 2 || len(model.Relations()) != 1 {
		t.Errorf("unexpected model contents: %d cubes, %d relations",
			len(model.Cubes()), len(model.Relations()))
	}
}
