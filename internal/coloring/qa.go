package coloring

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"chromatic/internal/graph"
	"chromatic/internal/platform"
)

// Solution is the outcome of a QA run: the minimum-energy chromosome
// across all chunks plus the per-iteration best-energy trail.
type Solution struct {
	Chromosome []int
	Energy     float64
	Iterations int
	History    []float64
}

// Proper reports whether the solution is a conflict-free coloring.
func (s *Solution) Proper() bool {
	return s.Energy == 0
}

// QA drives the annealing search: per-chunk local steps with
// exp(-delta/temperature) acceptance, tunneling on stagnation, and
// periodic boundary migration along the chunk ring.
type QA struct{}

// Run validates the configuration, builds the chunked population and
// searches until a proper coloring appears, the iteration budget runs
// out, or the context is cancelled. A cancelled or failed run returns no
// partial result.
func (QA) Run(ctx context.Context, g *graph.Graph, params Parameters) (*Solution, error) {
	if err := params.Validate(g); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks, err := CreateChunks(rand.New(rand.NewSource(params.Seed)), g, params)
	if err != nil {
		return nil, err
	}

	var solved atomic.Bool
	runners := make([]*chunkRunner, len(chunks))
	for i, chunk := range chunks {
		runners[i] = newChunkRunner(chunk, g, params, rand.New(rand.NewSource(params.Seed+int64(i)+1)), &solved)
	}

	if params.Workers > 1 && len(chunks) > 1 {
		group := platform.NewGroup(ctx)
		for i := range runners {
			runner := runners[i]
			group.Go(fmt.Sprintf("chunk-%d", runner.chunk.Index), runner.runLoop)
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		for iter := 0; iter < params.MaxIterations; iter++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if solved.Load() {
				break
			}
			for _, runner := range runners {
				if err := runner.iterate(iter); err != nil {
					return nil, err
				}
			}
		}
	}

	return assemble(runners), nil
}

func assemble(runners []*chunkRunner) *Solution {
	var best *Individual
	iterations := 0
	for _, runner := range runners {
		if len(runner.history) > iterations {
			iterations = len(runner.history)
		}
		_, candidate := runner.chunk.Best()
		if best == nil || candidate.Energy() < best.Energy() {
			best = candidate
		}
	}

	history := make([]float64, iterations)
	for i := range history {
		first := true
		for _, runner := range runners {
			if i >= len(runner.history) {
				continue
			}
			if first || runner.history[i] < history[i] {
				history[i] = runner.history[i]
				first = false
			}
		}
	}

	return &Solution{
		Chromosome: best.Chromosome(),
		Energy:     best.Energy(),
		Iterations: iterations,
		History:    history,
	}
}

// chunkRunner holds the per-chunk search state. Each runner owns its
// chunk and rng exclusively; the only cross-runner interaction is the
// ring boundary arena and the shared solved flag.
type chunkRunner struct {
	chunk  *ChainChunk
	g      *graph.Graph
	params Parameters
	rng    *rand.Rand
	solved *atomic.Bool

	best          float64
	stagnantSteps int
	history       []float64

	prevBoundary *Individual
	nextBoundary *Individual
}

func newChunkRunner(chunk *ChainChunk, g *graph.Graph, params Parameters, rng *rand.Rand, solved *atomic.Bool) *chunkRunner {
	_, best := chunk.Best()
	r := &chunkRunner{
		chunk:  chunk,
		g:      g,
		params: params,
		rng:    rng,
		solved: solved,
		best:   best.Energy(),
	}
	if best.ConflictCount() == 0 {
		solved.Store(true)
	}
	r.prevBoundary = chunk.PrevIndividual()
	r.nextBoundary = chunk.NextIndividual()
	return r
}

func (r *chunkRunner) runLoop(ctx context.Context) error {
	for iter := 0; iter < r.params.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.solved.Load() {
			return nil
		}
		if err := r.iterate(iter); err != nil {
			return err
		}
	}
	return nil
}

// iterate runs one outer iteration: a full local-search sweep over the
// chunk's individuals, then migration and progress at their cadences.
func (r *chunkRunner) iterate(iter int) error {
	for idx := range r.chunk.Individuals {
		for step := 0; step < r.params.MaxSteps; step++ {
			conflictFree, err := r.localStep(idx)
			if err != nil {
				return err
			}
			if conflictFree {
				break
			}
			if r.stagnantSteps >= r.params.ConvergenceTolerance {
				if err := r.tunnel(idx); err != nil {
					return err
				}
			}
		}
		if r.chunk.Individuals[idx].ConflictCount() == 0 {
			r.best = 0
			r.solved.Store(true)
			r.history = append(r.history, r.best)
			return nil
		}
	}

	if _, best := r.chunk.Best(); best.Energy() < r.best {
		r.best = best.Energy()
	}
	if r.chunk.Ring() != nil && (iter+1)%r.params.CommunicationDelay == 0 {
		r.migrate()
	}
	if r.params.Progress != nil && (iter+1)%r.params.LoggingDelay == 0 {
		r.params.Progress(ProgressEvent{Chunk: r.chunk.Index, Iteration: iter + 1, BestEnergy: r.best})
	}
	r.history = append(r.history, r.best)
	return nil
}

// localStep applies the configured mutation to a working copy and accepts
// it under simulated-annealing rules over the effective energy. Returns
// true when the individual has no conflicts left to mutate.
func (r *chunkRunner) localStep(idx int) (bool, error) {
	ind := r.chunk.Individuals[idx]
	if ind.ConflictCount() == 0 {
		return true, nil
	}

	work := ind.Clone()
	changed, err := r.params.Mutation.Mutate(r.rng, r.g, work, r.params)
	if err != nil {
		return false, fmt.Errorf("mutation %s: %w", r.params.Mutation.Name(), err)
	}
	if len(changed) == 0 {
		return true, nil
	}

	delta := r.effective(work) - r.effective(ind)
	if delta <= 0 || r.rng.Float64() < math.Exp(-delta/r.params.Temperature) {
		r.chunk.Individuals[idx] = work
		if work.Energy() < r.best {
			r.best = work.Energy()
			r.stagnantSteps = 0
			return false, nil
		}
	}
	r.stagnantSteps++
	return false, nil
}

// effective adds the ring-coupling potential to the conflict energy:
// alpha scales the coupling, beta weighs per-node disagreement with the
// neighboring chunks' boundary individuals.
func (r *chunkRunner) effective(ind *Individual) float64 {
	energy := ind.Energy()
	if r.prevBoundary == nil && r.nextBoundary == nil {
		return energy
	}
	coupling := 0.0
	if r.prevBoundary != nil {
		coupling += float64(Hamming(ind, r.prevBoundary))
	}
	if r.nextBoundary != nil {
		coupling += float64(Hamming(ind, r.nextBoundary))
	}
	return energy + r.params.Alpha*r.params.Beta*coupling
}

// tunnel applies the larger tunneling mutation to escape stagnation. The
// first attempt that beats the stagnant energy is kept; the final attempt
// is kept regardless so the walk always moves somewhere new.
func (r *chunkRunner) tunnel(idx int) error {
	r.stagnantSteps = 0
	if r.params.MaxAttemptsTunneling == 0 {
		return nil
	}
	if r.rng.Float64() >= r.params.ConvergenceProbability {
		return nil
	}

	ind := r.chunk.Individuals[idx]
	for attempt := 0; attempt < r.params.MaxAttemptsTunneling; attempt++ {
		work := ind.Clone()
		if _, err := r.params.MutationTunneling.Mutate(r.rng, r.g, work, r.params); err != nil {
			return fmt.Errorf("tunneling mutation %s: %w", r.params.MutationTunneling.Name(), err)
		}
		if work.Energy() < ind.Energy() || attempt == r.params.MaxAttemptsTunneling-1 {
			r.chunk.Individuals[idx] = work
			if work.Energy() < r.best {
				r.best = work.Energy()
			}
			return nil
		}
	}
	return nil
}

// migrate republishes this chunk's boundaries, refreshes the cached
// neighbor copies and adopts a better neighbor boundary in place of the
// chunk's worst individual. Neighbor state is read-only and copied.
func (r *chunkRunner) migrate() {
	r.chunk.PublishBoundaries()
	r.prevBoundary = r.chunk.PrevIndividual()
	r.nextBoundary = r.chunk.NextIndividual()

	incoming := r.prevBoundary
	if r.nextBoundary != nil && (incoming == nil || r.nextBoundary.Energy() < incoming.Energy()) {
		incoming = r.nextBoundary
	}
	if incoming == nil {
		return
	}
	if widx, worst := r.chunk.Worst(); incoming.Energy() < worst.Energy() {
		r.chunk.Individuals[widx] = incoming.Clone()
		if incoming.Energy() < r.best {
			r.best = incoming.Energy()
		}
	}
}
