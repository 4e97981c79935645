package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSeed = `
cubes:
  - name: orders
    columns: [id, customer_id]
  - name: customers
    columns: [id, name]
relations:
  - left: orders
    right: customers
    left_column: customer_id
    right_column: id
    cardinality: many-to-one
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	eng := setupTestEngine(t)

	require.NoError(t, eng.LoadSeedFile(writeSeedFile(t, validSeed)))

	assert.True(t, eng.Model().HasCube("orders"))
	assert.True(t, eng.Model().HasCube("customers"))
	require.Len(t, eng.Model().Relations(), 1)
	assert.Equal(t, "orders.customer_id -> customers.id (many-to-one)",
		eng.Model().Relations()[0].Label())
}

func TestLoadSeedFile_InvalidRelationReported(t *testing.T) {
	eng := setupTestEngine(t)

	seed := `
cubes:
  - name: orders
    columns: [id]
relations:
  - left: orders
    right: ghosts
    left_column: id
    right_column: id
`
	err := eng.LoadSeedFile(writeSeedFile(t, seed))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghosts")
}

func TestLoadSeedFile_BadYAML(t *testing.T) {
	eng := setupTestEngine(t)
	err := eng.LoadSeedFile(writeSeedFile(t, "cubes: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse seed file")
}

func TestLoadSeedFile_Missing(t *testing.T) {
	eng := setupTestEngine(t)
	assert.Error(t, eng.LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml")))
}
