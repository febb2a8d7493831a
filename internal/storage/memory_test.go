package storage

import (
	"context"
	"testing"

	"chromatic/internal/model"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func testRun(id, createdAt string) model.RunRecord {
	return Stamp(model.RunRecord{
		ID:             id,
		CreatedAtUTC:   createdAt,
		Seed:           42,
		PopulationSize: 7,
		NoOfColors:     3,
		NoOfChunks:     1,
		Iterations:     10,
		BestEnergy:     0,
		Proper:         true,
		Coloring: []model.NodeColor{
			{Node: "0", Color: 0},
			{Node: "1", Color: 1},
		},
	})
}

func TestMemoryStoreSaveGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	run := testRun("color-42-100", "2026-08-24T10:00:00Z")

	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.GetRun(ctx, run.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.ID != run.ID || got.Seed != run.Seed || got.BestEnergy != run.BestEnergy {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Coloring) != 2 || got.Coloring[1].Color != 1 {
		t.Fatalf("coloring mismatch: %+v", got.Coloring)
	}
}

func TestMemoryStoreGetMissingRun(t *testing.T) {
	store := newTestStore(t)
	if _, ok, err := store.GetRun(context.Background(), "nope"); err != nil || ok {
		t.Fatalf("missing run: ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.SaveRun(ctx, testRun("r1", "2026-08-24T10:00:00Z")); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, _, err := store.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first.Coloring[0].Color = 99

	second, _, err := store.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second.Coloring[0].Color == 99 {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestMemoryStoreListOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for _, run := range []model.RunRecord{
		testRun("old", "2026-08-24T10:00:00Z"),
		testRun("newest", "2026-08-24T12:00:00Z"),
		testRun("middle", "2026-08-24T11:00:00Z"),
		testRun("a-tied", "2026-08-24T11:00:00Z"),
	} {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save %s: %v", run.ID, err)
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ids := make([]string, len(runs))
	for i, run := range runs {
		ids[i] = run.ID
	}
	want := []string{"newest", "a-tied", "middle", "old"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}

	limited, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "newest" {
		t.Fatalf("limited list: %+v", limited)
	}
}

func TestMemoryStoreHistoryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	history := []float64{4, 2.5, 1, 0}

	if err := store.SaveEnergyHistory(ctx, "r1", history); err != nil {
		t.Fatalf("save history: %v", err)
	}
	got, ok, err := store.GetEnergyHistory(ctx, "r1")
	if err != nil || !ok {
		t.Fatalf("get history: ok=%v err=%v", ok, err)
	}
	if len(got) != len(history) {
		t.Fatalf("history length: got %d, want %d", len(got), len(history))
	}
	for i := range history {
		if got[i] != history[i] {
			t.Fatalf("history[%d]: got %g, want %g", i, got[i], history[i])
		}
	}

	got[0] = 99
	again, _, err := store.GetEnergyHistory(ctx, "r1")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if again[0] == 99 {
		t.Fatal("caller mutation leaked into stored history")
	}
}

func TestMemoryStoreHistoryMissing(t *testing.T) {
	store := newTestStore(t)
	if _, ok, err := store.GetEnergyHistory(context.Background(), "nope"); err != nil || ok {
		t.Fatalf("missing history: ok=%v err=%v", ok, err)
	}
}
