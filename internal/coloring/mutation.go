package coloring

import (
	"errors"
	"math/rand"

	"chromatic/internal/graph"
)

// Mutation perturbs an individual's chromosome in place given its current
// conflict set and returns the indices of the nodes it changed, so the
// caller can update conflict state incrementally instead of rescanning
// the whole chromosome. A conflict-free individual is left untouched.
type Mutation interface {
	Name() string
	Mutate(rng *rand.Rand, g *graph.Graph, ind *Individual, params Parameters) ([]int, error)
}

var errNoRandomSource = errors.New("random source is required")

// SimpleMutation recolors one randomly chosen conflicting node to the
// color minimizing the local conflict score, breaking ties at random.
// With neigh_mutation_probability the target shifts to a same-colored
// neighbor; with random_mutation_probability the new color is drawn
// uniformly instead of greedily.
type SimpleMutation struct{}

func (SimpleMutation) Name() string {
	return "simple_mutation"
}

func (SimpleMutation) Mutate(rng *rand.Rand, g *graph.Graph, ind *Individual, params Parameters) ([]int, error) {
	if rng == nil {
		return nil, errNoRandomSource
	}
	conflicts := ind.ConflictNodes()
	if len(conflicts) == 0 {
		return nil, nil
	}

	u := conflicts[rng.Intn(len(conflicts))]
	if rng.Float64() < params.NeighMutationProbability {
		if v, ok := sameColoredNeighbor(rng, g, ind, u); ok {
			u = v
		}
	}

	var color int
	if rng.Float64() < params.RandomMutationProbability {
		color = rng.Intn(ind.NoOfColors())
	} else {
		color = greedyColor(rng, g, params.Error, ind, u)
	}
	ind.SetColor(g, params.Error, u, color)
	return []int{u}, nil
}

// MultipleMutation recolors up to multiple_mutation_no_of_nodes
// conflicting nodes in one step. It is the tunneling move used to escape
// local minima, so each node takes a uniformly random color with
// random_mutation_probability_2 and a greedy one otherwise.
type MultipleMutation struct{}

func (MultipleMutation) Name() string {
	return "multiple_mutation"
}

func (MultipleMutation) Mutate(rng *rand.Rand, g *graph.Graph, ind *Individual, params Parameters) ([]int, error) {
	if rng == nil {
		return nil, errNoRandomSource
	}
	conflicts := ind.ConflictNodes()
	if len(conflicts) == 0 {
		return nil, nil
	}

	count := params.MultipleMutationNoOfNodes
	if count > len(conflicts) {
		count = len(conflicts)
	}
	changed := make([]int, 0, count)
	for _, pick := range rng.Perm(len(conflicts))[:count] {
		u := conflicts[pick]
		var color int
		if rng.Float64() < params.RandomMutationProbability2 {
			color = rng.Intn(ind.NoOfColors())
		} else {
			color = greedyColor(rng, g, params.Error, ind, u)
		}
		ind.SetColor(g, params.Error, u, color)
		changed = append(changed, u)
	}
	return changed, nil
}

// greedyColor picks the color minimizing the local conflict contribution
// of node u under the configured error function, choosing uniformly among
// tied minima.
func greedyColor(rng *rand.Rand, g *graph.Graph, errFn ErrorFunc, ind *Individual, u int) int {
	original := ind.chromosome[u]
	best := original
	bestScore := 0.0
	ties := 0
	for c := 0; c < ind.noOfColors; c++ {
		ind.chromosome[u] = c
		score := errFn.NodeScore(g, ind.chromosome, u)
		switch {
		case ties == 0 || score < bestScore:
			best = c
			bestScore = score
			ties = 1
		case score == bestScore:
			ties++
			if rng.Intn(ties) == 0 {
				best = c
			}
		}
	}
	ind.chromosome[u] = original
	return best
}

func sameColoredNeighbor(rng *rand.Rand, g *graph.Graph, ind *Individual, u int) (int, bool) {
	candidates := make([]int, 0, g.Degree(u))
	for _, e := range g.Neighbors(u) {
		if ind.Color(e.To) == ind.Color(u) {
			candidates = append(candidates, e.To)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
