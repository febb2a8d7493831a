package chromatic

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chromatic/internal/coloring"
	"chromatic/internal/graph"
	"chromatic/internal/model"
	"chromatic/internal/storage"
)

const defaultDBPath = "chromatic.db"

type Options struct {
	StoreKind string
	DBPath    string
}

// Client colors graphs and archives the resulting runs.
type Client struct {
	store storage.Store
}

// ColorRequest selects the engine parameters by value and the strategy
// variants by name. Zero fields fall back to the documented default
// table; anything still invalid is rejected before the search starts.
type ColorRequest struct {
	PopulationSize int
	NoOfColors     int
	NoOfChunks     int
	Workers        int
	MaxIterations  int
	MaxSteps       int

	Temperature float64
	Alpha       float64
	Beta        float64

	Mutation          string
	MutationTunneling string
	Error             string
	Algorithms        []string

	ConvergenceTolerance   int
	ConvergenceProbability float64
	MaxAttemptsTunneling   int

	MultipleMutationNoOfNodes  int
	NeighMutationProbability   float64
	RandomMutationProbability  float64
	RandomMutationProbability2 float64

	CommunicationDelay int
	LoggingDelay       int

	Seed  int64
	RunID string
}

type ColorResult struct {
	RunID       string
	Energy      float64
	Proper      bool
	Iterations  int
	Assignments []model.NodeColor
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// ColorGraph builds the internal graph from every vertex and edge the
// source exposes, runs the engine and archives the run.
func (c *Client) ColorGraph(ctx context.Context, src graph.Source, req ColorRequest) (ColorResult, error) {
	g, err := graph.FromSource(ctx, src)
	if err != nil {
		return ColorResult{}, err
	}
	return c.color(ctx, g, req)
}

// ColorSubgraph restricts the run to explicitly supplied vertex and edge
// collections.
func (c *Client) ColorSubgraph(ctx context.Context, vertexIDs []int64, edges []graph.WeightedEdge, req ColorRequest) (ColorResult, error) {
	g, err := graph.FromSubgraph(ctx, vertexIDs, edges)
	if err != nil {
		return ColorResult{}, err
	}
	return c.color(ctx, g, req)
}

func (c *Client) color(ctx context.Context, g *graph.Graph, req ColorRequest) (ColorResult, error) {
	params, err := buildParameters(req)
	if err != nil {
		return ColorResult{}, err
	}

	sol, err := coloring.QA{}.Run(ctx, g, params)
	if err != nil {
		return ColorResult{}, err
	}

	assignments := make([]model.NodeColor, g.Size())
	for i, color := range sol.Chromosome {
		assignments[i] = model.NodeColor{
			Node:  strconv.FormatInt(g.Label(i), 10),
			Color: color,
		}
	}

	now := time.Now().UTC()
	runID := req.RunID
	if runID == "" {
		runID = fmt.Sprintf("color-%d-%d", params.Seed, now.Unix())
	}
	record := storage.Stamp(model.RunRecord{
		ID:             runID,
		CreatedAtUTC:   now.Format(time.RFC3339Nano),
		Seed:           params.Seed,
		PopulationSize: params.PopulationSize,
		NoOfColors:     params.NoOfColors,
		NoOfChunks:     params.NoOfChunks,
		Iterations:     sol.Iterations,
		BestEnergy:     sol.Energy,
		Proper:         sol.Proper(),
		Coloring:       assignments,
	})
	if err := c.store.SaveRun(ctx, record); err != nil {
		return ColorResult{}, err
	}
	if err := c.store.SaveEnergyHistory(ctx, runID, sol.History); err != nil {
		return ColorResult{}, err
	}

	return ColorResult{
		RunID:       runID,
		Energy:      sol.Energy,
		Proper:      sol.Proper(),
		Iterations:  sol.Iterations,
		Assignments: assignments,
	}, nil
}

func (c *Client) Runs(ctx context.Context, limit int) ([]model.RunRecord, error) {
	return c.store.ListRuns(ctx, limit)
}

func (c *Client) Run(ctx context.Context, id string) (model.RunRecord, bool, error) {
	return c.store.GetRun(ctx, id)
}

func (c *Client) EnergyHistory(ctx context.Context, id string) ([]float64, bool, error) {
	return c.store.GetEnergyHistory(ctx, id)
}

func buildParameters(req ColorRequest) (coloring.Parameters, error) {
	params := coloring.DefaultParameters()

	if req.PopulationSize != 0 {
		params.PopulationSize = req.PopulationSize
	}
	if req.NoOfColors != 0 {
		params.NoOfColors = req.NoOfColors
	}
	if req.NoOfChunks != 0 {
		params.NoOfChunks = req.NoOfChunks
	}
	if req.Workers != 0 {
		params.Workers = req.Workers
	}
	if req.MaxIterations != 0 {
		params.MaxIterations = req.MaxIterations
	}
	if req.MaxSteps != 0 {
		params.MaxSteps = req.MaxSteps
	}
	if req.Temperature != 0 {
		params.Temperature = req.Temperature
	}
	if req.Alpha != 0 {
		params.Alpha = req.Alpha
	}
	if req.Beta != 0 {
		params.Beta = req.Beta
	}
	if req.ConvergenceTolerance != 0 {
		params.ConvergenceTolerance = req.ConvergenceTolerance
	}
	if req.ConvergenceProbability != 0 {
		params.ConvergenceProbability = req.ConvergenceProbability
	}
	if req.MaxAttemptsTunneling != 0 {
		params.MaxAttemptsTunneling = req.MaxAttemptsTunneling
	}
	if req.MultipleMutationNoOfNodes != 0 {
		params.MultipleMutationNoOfNodes = req.MultipleMutationNoOfNodes
	}
	if req.NeighMutationProbability != 0 {
		params.NeighMutationProbability = req.NeighMutationProbability
	}
	if req.RandomMutationProbability != 0 {
		params.RandomMutationProbability = req.RandomMutationProbability
	}
	if req.RandomMutationProbability2 != 0 {
		params.RandomMutationProbability2 = req.RandomMutationProbability2
	}
	if req.CommunicationDelay != 0 {
		params.CommunicationDelay = req.CommunicationDelay
	}
	if req.LoggingDelay != 0 {
		params.LoggingDelay = req.LoggingDelay
	}

	if req.Mutation != "" {
		mutation, err := mutationByName(req.Mutation)
		if err != nil {
			return coloring.Parameters{}, err
		}
		params.Mutation = mutation
	}
	if req.MutationTunneling != "" {
		mutation, err := mutationByName(req.MutationTunneling)
		if err != nil {
			return coloring.Parameters{}, err
		}
		params.MutationTunneling = mutation
	}
	if req.Error != "" {
		errFn, err := errorByName(req.Error)
		if err != nil {
			return coloring.Parameters{}, err
		}
		params.Error = errFn
	}
	if req.Algorithms != nil {
		seeders := make([]coloring.Seeder, 0, len(req.Algorithms))
		for _, name := range req.Algorithms {
			seeder, err := seederByName(name)
			if err != nil {
				return coloring.Parameters{}, err
			}
			seeders = append(seeders, seeder)
		}
		params.Algorithms = seeders
	}

	params.Seed = req.Seed
	if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
	}
	return params, nil
}

func mutationByName(name string) (coloring.Mutation, error) {
	switch strings.ToLower(name) {
	case "simple":
		return coloring.SimpleMutation{}, nil
	case "multiple":
		return coloring.MultipleMutation{}, nil
	default:
		return nil, fmt.Errorf("unknown mutation variant: %s", name)
	}
}

func errorByName(name string) (coloring.ErrorFunc, error) {
	switch strings.ToLower(name) {
	case "conflict":
		return coloring.ConflictError{}, nil
	case "conflict_count":
		return coloring.ConflictCountError{}, nil
	default:
		return nil, fmt.Errorf("unknown error variant: %s", name)
	}
}

func seederByName(name string) (coloring.Seeder, error) {
	switch strings.ToLower(name) {
	case "ldo":
		return coloring.LDO{}, nil
	case "sdo":
		return coloring.SDO{}, nil
	default:
		return nil, fmt.Errorf("unknown seeding algorithm: %s", name)
	}
}
