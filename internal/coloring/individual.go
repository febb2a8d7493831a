package coloring

import (
	"fmt"
	"math/rand"

	"chromatic/internal/graph"
)

// Individual is one candidate coloring: a chromosome with one color per
// node index plus derived conflict state. Conflict state is kept current
// by SetColor; a chunk owns its individuals exclusively and shares only
// deep copies.
type Individual struct {
	chromosome    []int
	noOfColors    int
	energy        float64
	inConflict    []bool
	conflictCount int
}

// NewIndividual wraps an existing chromosome and derives its conflict
// state. The chromosome is copied.
func NewIndividual(chromosome []int, noOfColors int, g *graph.Graph, errFn ErrorFunc) (*Individual, error) {
	if len(chromosome) != g.Size() {
		return nil, fmt.Errorf("chromosome length %d does not match graph size %d", len(chromosome), g.Size())
	}
	for i, c := range chromosome {
		if c < 0 || c >= noOfColors {
			return nil, fmt.Errorf("color %d at node %d is outside [0, %d)", c, i, noOfColors)
		}
	}
	ind := &Individual{
		chromosome: append([]int(nil), chromosome...),
		noOfColors: noOfColors,
		inConflict: make([]bool, g.Size()),
	}
	ind.recompute(g, errFn)
	return ind, nil
}

// NewRandomIndividual assigns each node a uniformly random color in range.
func NewRandomIndividual(rng *rand.Rand, noOfColors int, g *graph.Graph, errFn ErrorFunc) *Individual {
	chromosome := make([]int, g.Size())
	for i := range chromosome {
		chromosome[i] = rng.Intn(noOfColors)
	}
	ind := &Individual{
		chromosome: chromosome,
		noOfColors: noOfColors,
		inConflict: make([]bool, g.Size()),
	}
	ind.recompute(g, errFn)
	return ind
}

func (ind *Individual) recompute(g *graph.Graph, errFn ErrorFunc) {
	ind.energy = errFn.Score(g, ind.chromosome)
	ind.conflictCount = 0
	for u := 0; u < g.Size(); u++ {
		ind.inConflict[u] = nodeConflicts(g, ind.chromosome, u)
		if ind.inConflict[u] {
			ind.conflictCount++
		}
	}
}

func nodeConflicts(g *graph.Graph, chromosome []int, u int) bool {
	for _, e := range g.Neighbors(u) {
		if chromosome[e.To] == chromosome[u] {
			return true
		}
	}
	return false
}

// SetColor recolors one node and incrementally refreshes the energy and
// the conflict flags of the node and its neighborhood. The incremental
// delta accumulates floating-point residue, so the energy is pinned to
// exactly 0 whenever the conflict set empties; proper colorings always
// report Energy() == 0.
func (ind *Individual) SetColor(g *graph.Graph, errFn ErrorFunc, u, color int) {
	if color == ind.chromosome[u] {
		return
	}
	before := errFn.NodeScore(g, ind.chromosome, u)
	ind.chromosome[u] = color
	after := errFn.NodeScore(g, ind.chromosome, u)
	ind.energy += after - before

	ind.refreshConflict(g, u)
	for _, e := range g.Neighbors(u) {
		ind.refreshConflict(g, e.To)
	}
	if ind.conflictCount == 0 {
		ind.energy = 0
	}
}

func (ind *Individual) refreshConflict(g *graph.Graph, u int) {
	now := nodeConflicts(g, ind.chromosome, u)
	if now == ind.inConflict[u] {
		return
	}
	ind.inConflict[u] = now
	if now {
		ind.conflictCount++
	} else {
		ind.conflictCount--
	}
}

// Color returns the color assigned to node u.
func (ind *Individual) Color(u int) int {
	return ind.chromosome[u]
}

// NoOfColors returns the palette size the chromosome was built with.
func (ind *Individual) NoOfColors() int {
	return ind.noOfColors
}

// Energy returns the current conflict score. Zero means proper coloring.
func (ind *Individual) Energy() float64 {
	return ind.energy
}

// ConflictCount returns the number of nodes incident to a conflict.
func (ind *Individual) ConflictCount() int {
	return ind.conflictCount
}

// ConflictNodes returns the indices of nodes incident to at least one
// same-colored neighbor, in ascending order.
func (ind *Individual) ConflictNodes() []int {
	if ind.conflictCount == 0 {
		return nil
	}
	nodes := make([]int, 0, ind.conflictCount)
	for u, conflicted := range ind.inConflict {
		if conflicted {
			nodes = append(nodes, u)
		}
	}
	return nodes
}

// Chromosome returns a copy of the color assignment.
func (ind *Individual) Chromosome() []int {
	return append([]int(nil), ind.chromosome...)
}

// Clone deep-copies the individual. Migration between chunks must never
// alias chromosome state, so boundary reads always go through Clone.
func (ind *Individual) Clone() *Individual {
	return &Individual{
		chromosome:    append([]int(nil), ind.chromosome...),
		noOfColors:    ind.noOfColors,
		energy:        ind.energy,
		inConflict:    append([]bool(nil), ind.inConflict...),
		conflictCount: ind.conflictCount,
	}
}

// Hamming counts positions where two chromosomes disagree. Used by the
// ring-coupling potential.
func Hamming(a, b *Individual) int {
	if a == nil || b == nil || len(a.chromosome) != len(b.chromosome) {
		return 0
	}
	count := 0
	for i := range a.chromosome {
		if a.chromosome[i] != b.chromosome[i] {
			count++
		}
	}
	return count
}
