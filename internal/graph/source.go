package graph

import (
	"context"
	"fmt"
)

// Source is the host graph collaborator. Implementations iterate vertices
// and undirected weighted edges; iteration callbacks returning an error
// abort the walk with that error.
type Source interface {
	ForEachVertex(ctx context.Context, fn func(id int64) error) error
	ForEachEdge(ctx context.Context, fn func(from, to int64, weight float64) error) error
}

// FromSource builds a graph from every vertex and edge the source exposes.
// The context is polled once per vertex and edge so construction over a
// large host graph stays interruptible.
func FromSource(ctx context.Context, src Source) (*Graph, error) {
	var nodes []int64
	err := src.ForEachVertex(ctx, func(id int64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		nodes = append(nodes, id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var edges []WeightedEdge
	err = src.ForEachEdge(ctx, func(from, to int64, weight float64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		edges = append(edges, WeightedEdge{From: from, To: to, Weight: weight})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return New(nodes, edges)
}

// FromSubgraph builds a graph restricted to the supplied vertex and edge
// collections. Edges must connect supplied vertices.
func FromSubgraph(ctx context.Context, vertexIDs []int64, edges []WeightedEdge) (*Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	allowed := make(map[int64]struct{}, len(vertexIDs))
	for _, id := range vertexIDs {
		allowed[id] = struct{}{}
	}
	for _, e := range edges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := allowed[e.From]; !ok {
			return nil, fmt.Errorf("subgraph edge references vertex outside selection: %d", e.From)
		}
		if _, ok := allowed[e.To]; !ok {
			return nil, fmt.Errorf("subgraph edge references vertex outside selection: %d", e.To)
		}
	}
	return New(vertexIDs, edges)
}

// SliceSource is a Source over in-memory vertex and edge slices.
type SliceSource struct {
	Nodes []int64
	Edges []WeightedEdge
}

func (s SliceSource) ForEachVertex(ctx context.Context, fn func(id int64) error) error {
	for _, id := range s.Nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

func (s SliceSource) ForEachEdge(ctx context.Context, fn func(from, to int64, weight float64) error) error {
	for _, e := range s.Edges {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(e.From, e.To, e.Weight); err != nil {
			return err
		}
	}
	return nil
}
