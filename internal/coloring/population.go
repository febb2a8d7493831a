package coloring

import "sync"

// Population owns an ordered set of individuals exclusively. Insertion
// order is stable and breaks energy ties.
type Population struct {
	Individuals []*Individual
}

// Best returns the slot and individual with the lowest energy; ties keep
// the first-seen individual.
func (p *Population) Best() (int, *Individual) {
	bestIdx := 0
	for i := 1; i < len(p.Individuals); i++ {
		if p.Individuals[i].Energy() < p.Individuals[bestIdx].Energy() {
			bestIdx = i
		}
	}
	return bestIdx, p.Individuals[bestIdx]
}

// Worst returns the slot and individual with the highest energy; ties
// keep the first-seen individual.
func (p *Population) Worst() (int, *Individual) {
	worstIdx := 0
	for i := 1; i < len(p.Individuals); i++ {
		if p.Individuals[i].Energy() > p.Individuals[worstIdx].Energy() {
			worstIdx = i
		}
	}
	return worstIdx, p.Individuals[worstIdx]
}

// Ring holds the published boundary individuals of every chunk, addressed
// by chunk index. Chunks publish deep copies of their head and tail and
// read deep copies of their neighbors', so no chunk ever observes
// another's live state. Slot relationships are fixed at creation.
type Ring struct {
	slots []ringSlot
}

type ringSlot struct {
	mu   sync.Mutex
	head *Individual
	tail *Individual
}

// NewRing creates a ring with one boundary slot per chunk.
func NewRing(chunks int) *Ring {
	return &Ring{slots: make([]ringSlot, chunks)}
}

// Size returns the number of chunks on the ring.
func (r *Ring) Size() int {
	return len(r.slots)
}

// Publish stores copies of a chunk's boundary individuals.
func (r *Ring) Publish(chunk int, head, tail *Individual) {
	slot := &r.slots[chunk]
	slot.mu.Lock()
	slot.head = head.Clone()
	slot.tail = tail.Clone()
	slot.mu.Unlock()
}

// PrevBoundary returns a copy of the tail individual published by chunk
// (i-1 mod n).
func (r *Ring) PrevBoundary(chunk int) *Individual {
	n := len(r.slots)
	slot := &r.slots[(chunk-1+n)%n]
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.tail == nil {
		return nil
	}
	return slot.tail.Clone()
}

// NextBoundary returns a copy of the head individual published by chunk
// (i+1 mod n).
func (r *Ring) NextBoundary(chunk int) *Individual {
	n := len(r.slots)
	slot := &r.slots[(chunk+1)%n]
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.head == nil {
		return nil
	}
	return slot.head.Clone()
}

// ChainChunk is one ring-partitioned sub-population. A nil ring marks the
// degenerate single-chunk case with no neighbors.
type ChainChunk struct {
	Population
	Index int
	ring  *Ring
}

// Ring returns the chunk's ring, or nil in single-chunk mode.
func (c *ChainChunk) Ring() *Ring {
	return c.ring
}

// PrevIndividual returns a copy of the previous neighbor's boundary
// individual, or nil without a ring.
func (c *ChainChunk) PrevIndividual() *Individual {
	if c.ring == nil {
		return nil
	}
	return c.ring.PrevBoundary(c.Index)
}

// NextIndividual returns a copy of the next neighbor's boundary
// individual, or nil without a ring.
func (c *ChainChunk) NextIndividual() *Individual {
	if c.ring == nil {
		return nil
	}
	return c.ring.NextBoundary(c.Index)
}

// PublishBoundaries makes the chunk's current head and tail visible to
// its ring neighbors.
func (c *ChainChunk) PublishBoundaries() {
	if c.ring == nil || len(c.Individuals) == 0 {
		return
	}
	c.ring.Publish(c.Index, c.Individuals[0], c.Individuals[len(c.Individuals)-1])
}
