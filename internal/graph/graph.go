package graph

import (
	"fmt"
)

// Edge is an adjacency entry: the neighbor's node index and the weight of
// the connecting edge.
type Edge struct {
	To     int
	Weight float64
}

// WeightedEdge names an undirected edge by the external ids of its
// endpoints.
type WeightedEdge struct {
	From   int64
	To     int64
	Weight float64
}

// Graph is an immutable undirected weighted graph. Nodes are addressed by
// dense indices in [0, Size()); external ids are kept only for reporting.
type Graph struct {
	labels []int64
	index  map[int64]int
	adj    [][]Edge
}

// New builds a graph from external node ids and undirected edges. Every
// edge is inserted symmetrically. Duplicate node ids and edges naming
// unknown ids are rejected.
func New(nodes []int64, edges []WeightedEdge) (*Graph, error) {
	g := &Graph{
		labels: make([]int64, 0, len(nodes)),
		index:  make(map[int64]int, len(nodes)),
		adj:    make([][]Edge, len(nodes)),
	}
	for _, id := range nodes {
		if _, exists := g.index[id]; exists {
			return nil, fmt.Errorf("duplicate node id: %d", id)
		}
		g.index[id] = len(g.labels)
		g.labels = append(g.labels, id)
	}
	for _, e := range edges {
		from, ok := g.index[e.From]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node id: %d", e.From)
		}
		to, ok := g.index[e.To]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node id: %d", e.To)
		}
		g.adj[from] = append(g.adj[from], Edge{To: to, Weight: e.Weight})
		g.adj[to] = append(g.adj[to], Edge{To: from, Weight: e.Weight})
	}
	return g, nil
}

// Size returns the node count.
func (g *Graph) Size() int {
	return len(g.labels)
}

// Neighbors returns the adjacency entries of the node at index i. The
// returned slice is owned by the graph and must not be modified.
func (g *Graph) Neighbors(i int) []Edge {
	return g.adj[i]
}

// Degree returns the number of incident edges of the node at index i.
func (g *Graph) Degree(i int) int {
	return len(g.adj[i])
}

// Label returns the external id of the node at index i.
func (g *Graph) Label(i int) int64 {
	return g.labels[i]
}

// Index returns the dense index of an external node id.
func (g *Graph) Index(id int64) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, entries := range g.adj {
		total += len(entries)
	}
	return total / 2
}
