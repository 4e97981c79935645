package core

import "fmt"

// GraphNode is one cube in the exported graph.
type GraphNode struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Columns []string `json:"columns"`
}

// GraphEdge is one relation in the exported graph.
type GraphEdge struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Label       string `json:"label"`
	Cardinality string `json:"cardinality"`
}

// GraphData is the node/edge export consumed by the visualization
// front-end.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphData exports the model for visualization. Nodes follow cube
// insertion order; edges follow Relations() order.
func (m *Model) GraphData() GraphData {
	data := GraphData{
		Nodes: make([]GraphNode, 0, len(m.order)),
		Edges: make([]GraphEdge, 0),
	}

	for _, cube := range m.Cubes() {
		data.Nodes = append(data.Nodes, GraphNode{
			ID:      cube.Name,
			Label:   cube.Name,
			Columns: cube.Columns,
		})
	}

	for i, rel := range m.Relations() {
		data.Edges = append(data.Edges, GraphEdge{
			ID:          fmt.Sprintf("edge_%d", i),
			Source:      rel.LeftCube,
			Target:      rel.RightCube,
			Label:       fmt.Sprintf("%s -> %s [%s]", rel.LeftColumn, rel.RightColumn, rel.Cardinality),
			Cardinality: string(rel.Cardinality),
		})
	}

	return data
}
