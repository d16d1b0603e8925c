// Package replacement provides the replacement policies that decide which
// cache line to evict.
package replacement

// Metadata is the per-line state a Policy keeps. Only the policy that created
// it may look inside.
type Metadata interface{}

// A Candidate is a line that may be evicted.
type Candidate interface {
	ReplacementMetadata() Metadata
}

// A Policy decides which line of a set is replaced.
type Policy interface {
	// InstantiateMetadata creates the state of one line of the given set.
	InstantiateMetadata(setID int) Metadata

	// Touch updates the state of a line that was hit.
	Touch(m Metadata)

	// Reset updates the state of a line that was just filled.
	Reset(m Metadata)

	// Invalidate marks the line empty, making it the preferred victim.
	Invalidate(m Metadata)

	// FindVictim selects the line to evict. The candidates are the lines of
	// one set in way order and must not be empty.
	FindVictim(candidates []Candidate) Candidate
}

func mustHaveCandidates(candidates []Candidate) {
	if len(candidates) == 0 {
		panic("no replacement candidate")
	}
}
