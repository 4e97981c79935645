package core

import (
	"testing"
)

func TestGraphData_Export(t *testing.T) {
	m := NewModel("demo")
	orders := testCube(t, m, "orders", "id", "customer_id")
	customers := testCube(t, m, "customers", "id", "name")
	testRelation(t, m, orders, customers, "customer_id", "id", ManyToOne)

	data := m.GraphData()

	if len(data.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(data.Nodes))
	}
	if data.Nodes[0].ID != "orders" || data.Nodes[1].ID != "customers" {
		t.Errorf("expected nodes in insertion order, got %v", data.Nodes)
	}

	if len(data.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(data.Edges))
	}
	edge := data.Edges[0]
	if edge.ID != "edge_0" || edge.Source != "orders" || edge.Target != "customers" {
		t.Errorf("unexpected edge: %+v", edge)
	}
	if edge.Cardinality != "many-to-one" {
		t.Errorf("unexpected edge cardinality: %s", edge.Cardinality)
	}
}
