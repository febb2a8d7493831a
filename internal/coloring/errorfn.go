package coloring

import "chromatic/internal/graph"

// ErrorFunc scores how far a chromosome is from a proper coloring. Score
// is the annealing energy of the whole chromosome; NodeScore is the
// contribution of the edges incident to one node, used for incremental
// updates after a mutation. Both are pure functions of their inputs, and
// adding a conflicting edge never decreases either value.
type ErrorFunc interface {
	Name() string
	Score(g *graph.Graph, chromosome []int) float64
	NodeScore(g *graph.Graph, chromosome []int, node int) float64
}

// ConflictError sums the weights of edges whose endpoints share a color.
// This is the default energy.
type ConflictError struct{}

func (ConflictError) Name() string {
	return "conflict_error"
}

func (ConflictError) Score(g *graph.Graph, chromosome []int) float64 {
	total := 0.0
	for u := 0; u < g.Size(); u++ {
		for _, e := range g.Neighbors(u) {
			if e.To > u && chromosome[e.To] == chromosome[u] {
				total += e.Weight
			}
		}
	}
	return total
}

func (ConflictError) NodeScore(g *graph.Graph, chromosome []int, node int) float64 {
	total := 0.0
	for _, e := range g.Neighbors(node) {
		if chromosome[e.To] == chromosome[node] {
			total += e.Weight
		}
	}
	return total
}

// ConflictCountError counts conflicting edges, ignoring weights.
type ConflictCountError struct{}

func (ConflictCountError) Name() string {
	return "conflict_count_error"
}

func (ConflictCountError) Score(g *graph.Graph, chromosome []int) float64 {
	total := 0.0
	for u := 0; u < g.Size(); u++ {
		for _, e := range g.Neighbors(u) {
			if e.To > u && chromosome[e.To] == chromosome[u] {
				total++
			}
		}
	}
	return total
}

func (ConflictCountError) NodeScore(g *graph.Graph, chromosome []int, node int) float64 {
	total := 0.0
	for _, e := range g.Neighbors(node) {
		if chromosome[e.To] == chromosome[node] {
			total++
		}
	}
	return total
}
