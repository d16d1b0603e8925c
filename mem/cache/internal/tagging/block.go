package tagging

import "github.com/sarchlab/rripcache/mem/cache/replacement"

// A Block of a cache is the information that is associated with a cache line.
type Block struct {
	Tag     uint64
	SetID   int
	WayID   int
	IsValid bool
	IsDirty bool
	Data    []byte

	ReplacementData replacement.Metadata
}

// ReplacementMetadata returns the replacement state of the line.
func (b *Block) ReplacementMetadata() replacement.Metadata {
	return b.ReplacementData
}

// An Eviction describes a valid line that was replaced.
type Eviction struct {
	Tag     uint64
	Data    []byte
	IsDirty bool
}
