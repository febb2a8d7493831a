package chromatic

import (
	"context"
	"errors"
	"testing"

	"chromatic/internal/coloring"
	"chromatic/internal/graph"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return client
}

func squareSource() graph.SliceSource {
	return graph.SliceSource{
		Nodes: []int64{10, 20, 30, 40},
		Edges: []graph.WeightedEdge{
			{From: 10, To: 20, Weight: 1},
			{From: 20, To: 30, Weight: 1},
			{From: 30, To: 40, Weight: 1},
			{From: 40, To: 10, Weight: 1},
		},
	}
}

func TestColorGraphProducesProperColoringAndArchivesRun(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	result, err := client.ColorGraph(ctx, squareSource(), ColorRequest{
		NoOfColors:    2,
		MaxIterations: 100,
		Seed:          42,
		RunID:         "square-run",
	})
	if err != nil {
		t.Fatalf("color: %v", err)
	}
	if result.RunID != "square-run" {
		t.Fatalf("run id: got %q, want square-run", result.RunID)
	}
	if !result.Proper || result.Energy != 0 {
		t.Fatalf("expected proper coloring, got energy %g", result.Energy)
	}
	if len(result.Assignments) != 4 {
		t.Fatalf("assignments: got %d, want 4", len(result.Assignments))
	}
	labels := map[string]bool{}
	for _, a := range result.Assignments {
		labels[a.Node] = true
		if a.Color < 0 || a.Color >= 2 {
			t.Fatalf("node %s assigned color %d outside palette", a.Node, a.Color)
		}
	}
	for _, want := range []string{"10", "20", "30", "40"} {
		if !labels[want] {
			t.Fatalf("node %s missing from assignments", want)
		}
	}

	run, ok, err := client.Run(ctx, "square-run")
	if err != nil || !ok {
		t.Fatalf("archived run: ok=%v err=%v", ok, err)
	}
	if run.Seed != 42 || !run.Proper || run.BestEnergy != 0 {
		t.Fatalf("archived run mismatch: %+v", run)
	}
	if run.NoOfColors != 2 {
		t.Fatalf("archived colors: got %d, want 2", run.NoOfColors)
	}

	history, ok, err := client.EnergyHistory(ctx, "square-run")
	if err != nil || !ok {
		t.Fatalf("history: ok=%v err=%v", ok, err)
	}
	if len(history) != result.Iterations {
		t.Fatalf("history length %d != iterations %d", len(history), result.Iterations)
	}

	runs, err := client.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "square-run" {
		t.Fatalf("listed runs: %+v", runs)
	}
}

func TestColorGraphGeneratesRunIDWhenUnset(t *testing.T) {
	client := newTestClient(t)

	result, err := client.ColorGraph(context.Background(), squareSource(), ColorRequest{
		NoOfColors:    2,
		MaxIterations: 50,
		Seed:          7,
	})
	if err != nil {
		t.Fatalf("color: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected a generated run id")
	}
	if _, ok, err := client.Run(context.Background(), result.RunID); err != nil || !ok {
		t.Fatalf("generated run not archived: ok=%v err=%v", ok, err)
	}
}

func TestColorSubgraphRestrictsToSelection(t *testing.T) {
	client := newTestClient(t)

	result, err := client.ColorSubgraph(context.Background(),
		[]int64{1, 2, 3},
		[]graph.WeightedEdge{
			{From: 1, To: 2, Weight: 1},
			{From: 2, To: 3, Weight: 1},
		},
		ColorRequest{NoOfColors: 2, MaxIterations: 50, Seed: 42})
	if err != nil {
		t.Fatalf("color: %v", err)
	}
	if !result.Proper {
		t.Fatalf("path should 2-color: energy %g", result.Energy)
	}
	if len(result.Assignments) != 3 {
		t.Fatalf("assignments: got %d, want 3", len(result.Assignments))
	}
}

func TestColorSubgraphRejectsEdgeOutsideSelection(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ColorSubgraph(context.Background(),
		[]int64{1, 2},
		[]graph.WeightedEdge{{From: 1, To: 3, Weight: 1}},
		ColorRequest{Seed: 42})
	if err == nil {
		t.Fatal("expected error for edge leaving the selection")
	}
}

func TestColorGraphRejectsUnknownStrategyNames(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	cases := []ColorRequest{
		{Mutation: "quantum", Seed: 42},
		{MutationTunneling: "quantum", Seed: 42},
		{Error: "entropy", Seed: 42},
		{Algorithms: []string{"ldo", "rlf"}, Seed: 42},
	}
	for i, req := range cases {
		if _, err := client.ColorGraph(ctx, squareSource(), req); err == nil {
			t.Fatalf("case %d: expected unknown-strategy error", i)
		}
	}
}

func TestColorGraphStrategyNamesAreCaseInsensitive(t *testing.T) {
	client := newTestClient(t)

	result, err := client.ColorGraph(context.Background(), squareSource(), ColorRequest{
		NoOfColors:        2,
		MaxIterations:     50,
		Seed:              42,
		Mutation:          "Simple",
		MutationTunneling: "MULTIPLE",
		Error:             "Conflict",
		Algorithms:        []string{"LDO", "sdo"},
	})
	if err != nil {
		t.Fatalf("color: %v", err)
	}
	if !result.Proper {
		t.Fatalf("energy: got %g, want 0", result.Energy)
	}
}

func TestColorGraphSurfacesValidationErrors(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ColorGraph(context.Background(), squareSource(), ColorRequest{
		PopulationSize: 2,
		NoOfChunks:     5,
		Seed:           42,
	})
	if !errors.Is(err, coloring.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestColorGraphPropagatesCancellation(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ColorGraph(ctx, squareSource(), ColorRequest{Seed: 42}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestNewRejectsUnknownStoreKind(t *testing.T) {
	if _, err := New(Options{StoreKind: "papyrus"}); err == nil {
		t.Fatal("expected error for unknown store backend")
	}
}
