package main

import (
	"encoding/json"
	"fmt"
	"os"

	"chromatic/internal/graph"
)

// graphFile is the on-disk graph format: external node ids plus edges as
// [from, to] or [from, to, weight] triples. Weight defaults to 1.
type graphFile struct {
	Nodes []int64     `json:"nodes"`
	Edges [][]float64 `json:"edges"`
}

func loadGraphFile(path string) (graph.SliceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.SliceSource{}, err
	}
	return parseGraphFile(data)
}

func parseGraphFile(data []byte) (graph.SliceSource, error) {
	var file graphFile
	if err := json.Unmarshal(data, &file); err != nil {
		return graph.SliceSource{}, fmt.Errorf("parse graph file: %w", err)
	}
	if len(file.Nodes) == 0 {
		return graph.SliceSource{}, fmt.Errorf("graph file has no nodes")
	}

	edges := make([]graph.WeightedEdge, 0, len(file.Edges))
	for i, entry := range file.Edges {
		if len(entry) != 2 && len(entry) != 3 {
			return graph.SliceSource{}, fmt.Errorf("edge %d: want [from, to] or [from, to, weight], got %d values", i, len(entry))
		}
		weight := 1.0
		if len(entry) == 3 {
			weight = entry[2]
		}
		edges = append(edges, graph.WeightedEdge{
			From:   int64(entry[0]),
			To:     int64(entry[1]),
			Weight: weight,
		})
	}
	return graph.SliceSource{Nodes: file.Nodes, Edges: edges}, nil
}
