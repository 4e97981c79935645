package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSQL_SingleCubeSelectsAllColumns(t *testing.T) {
	m := NewModel("demo")
	testCube(t, m, "customers", "id", "name", "email")

	plan, err := m.Plan([]string{"customers.name"})
	require.NoError(t, err)

	sql := m.RenderSQL(plan, []string{"customers.name"})
	assert.Equal(t, "SELECT customers.id, customers.name, customers.email\nFROM customers", sql)
}

func TestRenderSQL_JoinClauses(t *testing.T) {
	m := NewModel("demo")
	orders := testCube(t, m, "orders", "id", "customer_id")
	customers := testCube(t, m, "customers", "id", "name")
	testRelation(t, m, orders, customers, "customer_id", "id", ManyToOne)

	cols := []string{"orders.id", "customers.name"}
	plan, err := m.Plan(cols)
	require.NoError(t, err)

	sql := m.RenderSQL(plan, cols)
	assert.Equal(t,
		"SELECT orders.id, customers.name\n"+
			"FROM orders\n"+
			"RIGHT JOIN customers ON orders.customer_id = customers.id",
		sql)
}

func TestCardinality_JoinKeyword(t *testing.T) {
	assert.Equal(t, "INNER JOIN", OneToOne.JoinKeyword())
	assert.Equal(t, "LEFT JOIN", OneToMany.JoinKeyword())
	assert.Equal(t, "RIGHT JOIN", ManyToOne.JoinKeyword())
}

func TestGenerateSQL_CollapsesErrors(t *testing.T) {
	m := NewModel("demo")
	testCube(t, m, "customers", "id", "name")

	out := m.GenerateSQL([]string{"customers"})
	assert.Contains(t, out, "Error: ")

	out = m.GenerateSQL([]string{"customers.name"})
	assert.Contains(t, out, "SELECT ")
}

func TestParseCardinality(t *testing.T) {
	c, err := ParseCardinality("many-to-one")
	require.NoError(t, err)
	assert.Equal(t, ManyToOne, c)

	_, err = ParseCardinality("many-to-many")
	assert.Error(t, err)
}
