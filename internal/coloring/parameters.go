package coloring

import (
	"errors"
	"fmt"

	"chromatic/internal/graph"
)

var (
	// ErrValidation wraps every parameter or input rejection raised before
	// any search work begins.
	ErrValidation = errors.New("invalid configuration")
	// ErrSeedingFailed wraps ordering-heuristic failures during population
	// construction.
	ErrSeedingFailed = errors.New("seeding failed")
)

// ProgressEvent reports per-chunk search progress at the configured
// logging cadence.
type ProgressEvent struct {
	Chunk      int
	Iteration  int
	BestEnergy float64
}

// Parameters is the full configuration surface of the coloring engine.
// Zero values are not silently defaulted: Validate rejects anything the
// algorithm cannot run with. Use DefaultParameters for the standard table.
type Parameters struct {
	PopulationSize int
	NoOfColors     int
	NoOfChunks     int
	Workers        int
	MaxIterations  int
	MaxSteps       int

	Temperature float64
	Alpha       float64
	Beta        float64

	Mutation          Mutation
	MutationTunneling Mutation
	Error             ErrorFunc
	Algorithms        []Seeder

	ConvergenceTolerance   int
	ConvergenceProbability float64
	MaxAttemptsTunneling   int

	MultipleMutationNoOfNodes  int
	NeighMutationProbability   float64
	RandomMutationProbability  float64
	RandomMutationProbability2 float64

	CommunicationDelay int
	LoggingDelay       int

	Seed     int64
	Progress func(ProgressEvent)
}

// DefaultParameters mirrors the reference default table.
func DefaultParameters() Parameters {
	return Parameters{
		PopulationSize:             7,
		NoOfColors:                 3,
		NoOfChunks:                 1,
		Workers:                    1,
		MaxIterations:              10,
		MaxSteps:                   25,
		Temperature:                0.035,
		Alpha:                      0.1,
		Beta:                       0.001,
		Mutation:                   SimpleMutation{},
		MutationTunneling:          MultipleMutation{},
		Error:                      ConflictError{},
		Algorithms:                 []Seeder{LDO{}, SDO{}},
		ConvergenceTolerance:       500,
		ConvergenceProbability:     0.5,
		MaxAttemptsTunneling:       10,
		MultipleMutationNoOfNodes:  5,
		NeighMutationProbability:   0.035,
		RandomMutationProbability:  0.1,
		RandomMutationProbability2: 0.5,
		CommunicationDelay:         10,
		LoggingDelay:               5,
	}
}

// Validate fails fast on any parameter combination the search loop cannot
// honor. It runs before any individual is built.
func (p Parameters) Validate(g *graph.Graph) error {
	if g == nil || g.Size() == 0 {
		return fmt.Errorf("%w: graph has no nodes", ErrValidation)
	}
	if p.NoOfColors < 1 {
		return fmt.Errorf("%w: no_of_colors must be >= 1, got %d", ErrValidation, p.NoOfColors)
	}
	if p.NoOfChunks < 1 {
		return fmt.Errorf("%w: no_of_chunks must be >= 1, got %d", ErrValidation, p.NoOfChunks)
	}
	if p.PopulationSize < p.NoOfChunks {
		return fmt.Errorf("%w: population_size %d is smaller than no_of_chunks %d", ErrValidation, p.PopulationSize, p.NoOfChunks)
	}
	if p.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrValidation, p.Workers)
	}
	if p.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations must be >= 0, got %d", ErrValidation, p.MaxIterations)
	}
	if p.MaxSteps < 1 {
		return fmt.Errorf("%w: max_steps must be >= 1, got %d", ErrValidation, p.MaxSteps)
	}
	if p.Temperature <= 0 {
		return fmt.Errorf("%w: temperature must be > 0, got %g", ErrValidation, p.Temperature)
	}
	if p.Mutation == nil {
		return fmt.Errorf("%w: mutation operator is required", ErrValidation)
	}
	if p.MutationTunneling == nil {
		return fmt.Errorf("%w: tunneling mutation operator is required", ErrValidation)
	}
	if p.Error == nil {
		return fmt.Errorf("%w: error function is required", ErrValidation)
	}
	for i, seeder := range p.Algorithms {
		if seeder == nil {
			return fmt.Errorf("%w: seeding algorithm at index %d is nil", ErrValidation, i)
		}
	}
	if p.ConvergenceTolerance < 0 {
		return fmt.Errorf("%w: convergence_tolerance must be >= 0, got %d", ErrValidation, p.ConvergenceTolerance)
	}
	if p.ConvergenceProbability < 0 || p.ConvergenceProbability > 1 {
		return fmt.Errorf("%w: convergence_probability must be in [0, 1], got %g", ErrValidation, p.ConvergenceProbability)
	}
	if p.MaxAttemptsTunneling < 0 {
		return fmt.Errorf("%w: max_attempts_tunneling must be >= 0, got %d", ErrValidation, p.MaxAttemptsTunneling)
	}
	if p.MultipleMutationNoOfNodes < 1 {
		return fmt.Errorf("%w: multiple_mutation_no_of_nodes must be >= 1, got %d", ErrValidation, p.MultipleMutationNoOfNodes)
	}
	for _, prob := range []struct {
		name  string
		value float64
	}{
		{"neigh_mutation_probability", p.NeighMutationProbability},
		{"random_mutation_probability", p.RandomMutationProbability},
		{"random_mutation_probability_2", p.RandomMutationProbability2},
	} {
		if prob.value < 0 || prob.value > 1 {
			return fmt.Errorf("%w: %s must be in [0, 1], got %g", ErrValidation, prob.name, prob.value)
		}
	}
	if p.CommunicationDelay < 1 {
		return fmt.Errorf("%w: communication_delay must be >= 1, got %d", ErrValidation, p.CommunicationDelay)
	}
	if p.LoggingDelay < 1 {
		return fmt.Errorf("%w: logging_delay must be >= 1, got %d", ErrValidation, p.LoggingDelay)
	}
	return nil
}
