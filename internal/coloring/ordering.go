package coloring

import (
	"fmt"
	"math/rand"
	"sort"

	"chromatic/internal/graph"
)

// Seeder produces an initial individual from the graph. The vertex order
// is deterministic given the graph; randomness appears only in the color
// fallback when a neighborhood exhausts the palette.
type Seeder interface {
	Name() string
	Run(rng *rand.Rand, g *graph.Graph, params Parameters) (*Individual, error)
}

// LDO colors vertices largest-degree-first, greedily assigning the lowest
// color unused by already-colored neighbors.
type LDO struct{}

func (LDO) Name() string {
	return "LDO"
}

func (LDO) Run(rng *rand.Rand, g *graph.Graph, params Parameters) (*Individual, error) {
	return greedySeed(rng, g, params, LDO{}.Name(), func(order []int) {
		sort.SliceStable(order, func(i, j int) bool {
			return g.Degree(order[i]) > g.Degree(order[j])
		})
	})
}

// SDO is the smallest-degree-first variant of the same greedy coloring.
type SDO struct{}

func (SDO) Name() string {
	return "SDO"
}

func (SDO) Run(rng *rand.Rand, g *graph.Graph, params Parameters) (*Individual, error) {
	return greedySeed(rng, g, params, SDO{}.Name(), func(order []int) {
		sort.SliceStable(order, func(i, j int) bool {
			return g.Degree(order[i]) < g.Degree(order[j])
		})
	})
}

func greedySeed(rng *rand.Rand, g *graph.Graph, params Parameters, name string, arrange func([]int)) (*Individual, error) {
	if g.Size() == 0 {
		return nil, fmt.Errorf("%w: %s on empty graph", ErrSeedingFailed, name)
	}

	order := make([]int, g.Size())
	for i := range order {
		order[i] = i
	}
	arrange(order)

	const unassigned = -1
	chromosome := make([]int, g.Size())
	for i := range chromosome {
		chromosome[i] = unassigned
	}

	used := make([]bool, params.NoOfColors)
	for _, u := range order {
		for i := range used {
			used[i] = false
		}
		for _, e := range g.Neighbors(u) {
			c := chromosome[e.To]
			if c != unassigned && c < len(used) {
				used[c] = true
			}
		}
		color := unassigned
		for c := 0; c < params.NoOfColors; c++ {
			if !used[c] {
				color = c
				break
			}
		}
		if color == unassigned {
			// Palette locally exhausted; a conflict is unavoidable.
			color = rng.Intn(params.NoOfColors)
		}
		chromosome[u] = color
	}

	ind, err := NewIndividual(chromosome, params.NoOfColors, g, params.Error)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSeedingFailed, name, err)
	}
	return ind, nil
}
