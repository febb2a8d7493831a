package graph

import (
	"context"
	"errors"
	"testing"
)

func TestNewBuildsSymmetricAdjacency(t *testing.T) {
	g, err := New([]int64{10, 20, 30}, []WeightedEdge{
		{From: 10, To: 20, Weight: 2},
		{From: 20, To: 30, Weight: 1.5},
	})
	if err != nil {
		t.Fatalf("new graph: %v", err)
	}

	if g.Size() != 3 {
		t.Fatalf("size: got %d, want 3", g.Size())
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("edge count: got %d, want 2", g.EdgeCount())
	}

	idx20, ok := g.Index(20)
	if !ok {
		t.Fatal("node 20 not indexed")
	}
	if g.Degree(idx20) != 2 {
		t.Fatalf("degree of 20: got %d, want 2", g.Degree(idx20))
	}

	idx10, _ := g.Index(10)
	found := false
	for _, e := range g.Neighbors(idx10) {
		if e.To == idx20 {
			found = true
			if e.Weight != 2 {
				t.Fatalf("edge weight: got %g, want 2", e.Weight)
			}
		}
	}
	if !found {
		t.Fatal("edge 10-20 missing from 10's adjacency")
	}

	found = false
	for _, e := range g.Neighbors(idx20) {
		if e.To == idx10 {
			found = true
		}
	}
	if !found {
		t.Fatal("edge 10-20 missing from 20's adjacency: adjacency not symmetric")
	}
}

func TestNewRejectsDuplicateNodes(t *testing.T) {
	if _, err := New([]int64{1, 1}, nil); err == nil {
		t.Fatal("expected duplicate node error")
	}
}

func TestNewRejectsUnknownEdgeEndpoint(t *testing.T) {
	if _, err := New([]int64{1}, []WeightedEdge{{From: 1, To: 2, Weight: 1}}); err == nil {
		t.Fatal("expected unknown endpoint error")
	}
}

func TestLabelRoundTrip(t *testing.T) {
	g, err := New([]int64{42, 7}, nil)
	if err != nil {
		t.Fatalf("new graph: %v", err)
	}
	for i := 0; i < g.Size(); i++ {
		idx, ok := g.Index(g.Label(i))
		if !ok || idx != i {
			t.Fatalf("label/index round trip broken at %d", i)
		}
	}
}

func TestFromSource(t *testing.T) {
	src := SliceSource{
		Nodes: []int64{1, 2, 3},
		Edges: []WeightedEdge{{From: 1, To: 2, Weight: 1}, {From: 2, To: 3, Weight: 1}},
	}
	g, err := FromSource(context.Background(), src)
	if err != nil {
		t.Fatalf("from source: %v", err)
	}
	if g.Size() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("got size=%d edges=%d, want 3/2", g.Size(), g.EdgeCount())
	}
}

func TestFromSourceHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := SliceSource{Nodes: []int64{1, 2, 3}}
	if _, err := FromSource(ctx, src); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestFromSubgraphRejectsOutsideEdges(t *testing.T) {
	_, err := FromSubgraph(context.Background(), []int64{1, 2}, []WeightedEdge{{From: 1, To: 9, Weight: 1}})
	if err == nil {
		t.Fatal("expected outside-selection error")
	}
}

func TestFromSubgraphRestricts(t *testing.T) {
	g, err := FromSubgraph(context.Background(), []int64{5, 6}, []WeightedEdge{{From: 5, To: 6, Weight: 3}})
	if err != nil {
		t.Fatalf("from subgraph: %v", err)
	}
	if g.Size() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("got size=%d edges=%d, want 2/1", g.Size(), g.EdgeCount())
	}
}
