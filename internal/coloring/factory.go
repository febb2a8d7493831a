package coloring

import (
	"fmt"
	"math/rand"

	"chromatic/internal/graph"
)

// GenerateIndividuals runs each configured seeding algorithm once, capped
// at population_size results, and fills the remainder with random
// individuals. A failing seeder aborts construction; no partial
// population is returned.
func GenerateIndividuals(rng *rand.Rand, g *graph.Graph, params Parameters) ([]*Individual, error) {
	individuals := make([]*Individual, 0, params.PopulationSize)
	for _, seeder := range params.Algorithms {
		ind, err := seeder.Run(rng, g, params)
		if err != nil {
			return nil, fmt.Errorf("seeding algorithm %s: %w", seeder.Name(), err)
		}
		if len(individuals) < params.PopulationSize {
			individuals = append(individuals, ind)
		}
	}
	for len(individuals) < params.PopulationSize {
		individuals = append(individuals, NewRandomIndividual(rng, params.NoOfColors, g, params.Error))
	}
	return individuals, nil
}

// CreateChunks splits a freshly generated population into no_of_chunks
// contiguous chunks of near-equal size and wires the ring. With one chunk
// no ring is created.
func CreateChunks(rng *rand.Rand, g *graph.Graph, params Parameters) ([]*ChainChunk, error) {
	individuals, err := GenerateIndividuals(rng, g, params)
	if err != nil {
		return nil, err
	}

	if params.NoOfChunks == 1 {
		return []*ChainChunk{{
			Population: Population{Individuals: individuals},
			Index:      0,
		}}, nil
	}

	ring := NewRing(params.NoOfChunks)
	chunks := make([]*ChainChunk, 0, params.NoOfChunks)
	k := params.PopulationSize / params.NoOfChunks
	m := params.PopulationSize % params.NoOfChunks
	offset := 0
	for i := 0; i < params.NoOfChunks; i++ {
		size := k
		if i < m {
			size++
		}
		chunk := &ChainChunk{
			Population: Population{Individuals: individuals[offset : offset+size : offset+size]},
			Index:      i,
			ring:       ring,
		}
		offset += size
		chunks = append(chunks, chunk)
	}
	for _, chunk := range chunks {
		chunk.PublishBoundaries()
	}
	return chunks, nil
}
