package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"chromatic/internal/storage"
	chromapi "chromatic/pkg/chromatic"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "color":
		return runColor(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return errors.New(msg + "\nusage: chromaticctl <init|color|runs|show> [flags]")
}

func newClient(ctx context.Context, storeKind, dbPath string) (*chromapi.Client, error) {
	client, err := chromapi.New(chromapi.Options{StoreKind: storeKind, DBPath: dbPath})
	if err != nil {
		return nil, err
	}
	if err := client.Init(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func storeFlags(fs *flag.FlagSet) (storeKind, dbPath *string) {
	storeKind = fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath = fs.String("db-path", "chromatic.db", "sqlite database path")
	return storeKind, dbPath
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runColor(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("color", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	graphPath := fs.String("graph", "", "graph JSON file path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	colors := fs.Int("colors", 0, "number of colors")
	population := fs.Int("pop", 0, "population size")
	chunks := fs.Int("chunks", 0, "number of chunks")
	workers := fs.Int("workers", 0, "parallel chunk workers")
	iterations := fs.Int("iterations", 0, "outer iteration budget")
	steps := fs.Int("steps", 0, "local-search steps per individual per iteration")
	temperature := fs.Float64("temperature", 0, "annealing temperature")
	seed := fs.Int64("seed", 0, "random seed (0 = time-based)")
	mutation := fs.String("mutation", "", "mutation variant: simple|multiple")
	errName := fs.String("error", "", "error variant: conflict|conflict_count")
	algorithms := fs.String("algorithms", "", "comma-separated seeding heuristics: ldo,sdo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *graphPath == "" {
		return errors.New("-graph is required")
	}

	src, err := loadGraphFile(*graphPath)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	req := chromapi.ColorRequest{
		PopulationSize: *population,
		NoOfColors:     *colors,
		NoOfChunks:     *chunks,
		Workers:        *workers,
		MaxIterations:  *iterations,
		MaxSteps:       *steps,
		Temperature:    *temperature,
		Mutation:       *mutation,
		Error:          *errName,
		Seed:           *seed,
		RunID:          *runID,
	}
	if *algorithms != "" {
		req.Algorithms = strings.Split(*algorithms, ",")
	}

	result, err := client.ColorGraph(ctx, src, req)
	if err != nil {
		return err
	}

	for _, assignment := range result.Assignments {
		fmt.Printf("%s %d\n", assignment.Node, assignment.Color)
	}
	fmt.Printf("run=%s energy=%g proper=%t iterations=%d\n", result.RunID, result.Energy, result.Proper, result.Iterations)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	limit := fs.Int("limit", 20, "maximum rows")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Printf("%s created=%s colors=%d energy=%g proper=%t\n",
			run.ID, run.CreatedAtUTC, run.NoOfColors, run.BestEnergy, run.Proper)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	runID := fs.String("run-id", "", "run id to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("-run-id is required")
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	run, ok, err := client.Run(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run not found: %s", *runID)
	}

	fmt.Printf("run=%s created=%s seed=%d pop=%d colors=%d chunks=%d iterations=%d energy=%g proper=%t\n",
		run.ID, run.CreatedAtUTC, run.Seed, run.PopulationSize, run.NoOfColors, run.NoOfChunks,
		run.Iterations, run.BestEnergy, run.Proper)
	for _, assignment := range run.Coloring {
		fmt.Printf("%s %d\n", assignment.Node, assignment.Color)
	}
	if history, ok, err := client.EnergyHistory(ctx, *runID); err != nil {
		return err
	} else if ok && len(history) > 0 {
		fmt.Printf("energy history: %v\n", history)
	}
	return nil
}
