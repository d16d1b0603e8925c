package replacement

import "fmt"

// LRUMetadata is the state of a line under LRU.
type LRUMetadata struct {
	LastTouch uint64
	Valid     bool
}

// LRU evicts the least recently used line.
type LRU struct {
	clock uint64
}

// NewLRU returns a newly constructed LRU policy.
func NewLRU() *LRU {
	return &LRU{}
}

func asLRU(m Metadata) *LRUMetadata {
	lru, ok := m.(*LRUMetadata)
	if !ok {
		panic(fmt.Sprintf("metadata %T is not LRU metadata", m))
	}

	return lru
}

// InstantiateMetadata creates an invalid line.
func (p *LRU) InstantiateMetadata(setID int) Metadata {
	return &LRUMetadata{}
}

// Touch marks the line as the most recently used.
func (p *LRU) Touch(m Metadata) {
	p.clock++
	asLRU(m).LastTouch = p.clock
}

// Reset marks a filled line as the most recently used.
func (p *LRU) Reset(m Metadata) {
	p.Touch(m)
	asLRU(m).Valid = true
}

// Invalidate marks the line empty.
func (p *LRU) Invalidate(m Metadata) {
	asLRU(m).Valid = false
}

// FindVictim returns the first empty line, or the least recently used one.
func (p *LRU) FindVictim(candidates []Candidate) Candidate {
	mustHaveCandidates(candidates)

	victim := candidates[0]
	oldest := asLRU(victim.ReplacementMetadata()).LastTouch

	for _, c := range candidates {
		m := asLRU(c.ReplacementMetadata())
		if !m.Valid {
			return c
		}

		if m.LastTouch < oldest {
			victim = c
			oldest = m.LastTouch
		}
	}

	return victim
}
