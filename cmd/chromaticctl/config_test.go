package main

import "testing"

func TestParseGraphFile(t *testing.T) {
	src, err := parseGraphFile([]byte(`{
		"nodes": [0, 1, 2],
		"edges": [[0, 1], [1, 2, 2.5]]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(src.Nodes) != 3 {
		t.Fatalf("nodes: got %d, want 3", len(src.Nodes))
	}
	if len(src.Edges) != 2 {
		t.Fatalf("edges: got %d, want 2", len(src.Edges))
	}
	if src.Edges[0].Weight != 1 {
		t.Fatalf("default weight: got %g, want 1", src.Edges[0].Weight)
	}
	if src.Edges[1].From != 1 || src.Edges[1].To != 2 || src.Edges[1].Weight != 2.5 {
		t.Fatalf("weighted edge: %+v", src.Edges[1])
	}
}

func TestParseGraphFileRejectsBadEdgeArity(t *testing.T) {
	if _, err := parseGraphFile([]byte(`{"nodes": [0, 1], "edges": [[0]]}`)); err == nil {
		t.Fatal("expected error for single-value edge")
	}
	if _, err := parseGraphFile([]byte(`{"nodes": [0, 1], "edges": [[0, 1, 1, 1]]}`)); err == nil {
		t.Fatal("expected error for four-value edge")
	}
}

func TestParseGraphFileRequiresNodes(t *testing.T) {
	if _, err := parseGraphFile([]byte(`{"edges": [[0, 1]]}`)); err == nil {
		t.Fatal("expected error for missing nodes")
	}
}

func TestParseGraphFileRejectsGarbage(t *testing.T) {
	if _, err := parseGraphFile([]byte(`nodes: [0]`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
