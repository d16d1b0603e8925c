// Package tagging keeps the lines of a set-associative cache.
package tagging

import (
	"fmt"

	"github.com/sarchlab/rripcache/mem/cache/replacement"
)

type set struct {
	blocks     []*Block
	candidates []replacement.Candidate
}

type duelClassifier interface {
	ClassOf(setID int) replacement.DuelClass
}

// A Directory stores the lines of a cache and finds them by address. Which
// line is replaced on a fill is decided by the replacement policy.
type Directory struct {
	numSets   int
	numWays   int
	blockSize uint64
	policy    replacement.Policy

	sets      []set
	index     map[uint64]*Block
	occupancy int
}

// NewDirectory creates a directory with all lines invalid.
func NewDirectory(
	numSets, numWays int,
	blockSize uint64,
	policy replacement.Policy,
) *Directory {
	if numSets <= 0 || numWays <= 0 {
		panic(fmt.Sprintf("invalid geometry: %d sets, %d ways",
			numSets, numWays))
	}

	if blockSize == 0 {
		panic("block size must not be zero")
	}

	if policy == nil {
		panic("replacement policy is not set")
	}

	d := &Directory{
		numSets:   numSets,
		numWays:   numWays,
		blockSize: blockSize,
		policy:    policy,
	}
	d.Reset()

	return d
}

// Reset invalidates all the lines and rebuilds their replacement state.
func (d *Directory) Reset() {
	d.sets = make([]set, d.numSets)
	d.index = make(map[uint64]*Block, d.numSets*d.numWays)
	d.occupancy = 0

	for i := range d.sets {
		s := &d.sets[i]
		for j := 0; j < d.numWays; j++ {
			block := &Block{
				SetID:           i,
				WayID:           j,
				Data:            make([]byte, d.blockSize),
				ReplacementData: d.policy.InstantiateMetadata(i),
			}

			s.blocks = append(s.blocks, block)
			s.candidates = append(s.candidates, block)
		}
	}
}

// NumSets returns the number of sets.
func (d *Directory) NumSets() int {
	return d.numSets
}

// NumWays returns the number of lines in each set.
func (d *Directory) NumWays() int {
	return d.numWays
}

// BlockSize returns the number of bytes in a line.
func (d *Directory) BlockSize() uint64 {
	return d.blockSize
}

// Capacity returns the number of lines.
func (d *Directory) Capacity() int {
	return d.numSets * d.numWays
}

// Occupancy returns the number of valid lines.
func (d *Directory) Occupancy() int {
	return d.occupancy
}

// SetOf returns the set that an address maps to.
func (d *Directory) SetOf(addr uint64) int {
	return int(addr / d.blockSize % uint64(d.numSets))
}

// DuelClassOf returns the set-dueling class of a set. Sets of policies that do
// not duel are followers.
func (d *Directory) DuelClassOf(setID int) replacement.DuelClass {
	if c, ok := d.policy.(duelClassifier); ok {
		return c.ClassOf(setID)
	}

	return replacement.DuelClassFollower
}

// Set returns the lines of a set in way order.
func (d *Directory) Set(setID int) []*Block {
	return d.sets[setID].blocks
}

// Lookup returns the valid line that holds the block.
func (d *Directory) Lookup(blockAddr uint64) (*Block, bool) {
	block, ok := d.index[blockAddr]
	return block, ok
}

// Visit tells the replacement policy that the line was hit.
func (d *Directory) Visit(block *Block) {
	d.policy.Touch(block.ReplacementData)
}

// Install fills a line with the block. If a valid line has to be replaced, its
// content is returned as an eviction.
func (d *Directory) Install(
	blockAddr uint64,
	data []byte,
) (eviction Eviction, evicted bool) {
	if blockAddr%d.blockSize != 0 {
		panic(fmt.Sprintf("address 0x%x is not aligned to %d bytes",
			blockAddr, d.blockSize))
	}

	if uint64(len(data)) != d.blockSize {
		panic(fmt.Sprintf("installing %d bytes into a %d-byte line",
			len(data), d.blockSize))
	}

	if _, found := d.index[blockAddr]; found {
		panic(fmt.Sprintf("block 0x%x is already installed", blockAddr))
	}

	s := &d.sets[d.SetOf(blockAddr)]
	victim := d.policy.FindVictim(s.candidates).(*Block)

	if victim.IsValid {
		eviction = Eviction{
			Tag:     victim.Tag,
			Data:    append([]byte(nil), victim.Data...),
			IsDirty: victim.IsDirty,
		}
		evicted = true

		delete(d.index, victim.Tag)
		d.occupancy--
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	copy(victim.Data, data)
	d.policy.Reset(victim.ReplacementData)

	d.index[blockAddr] = victim
	d.occupancy++

	return eviction, evicted
}

// Invalidate empties a line.
func (d *Directory) Invalidate(block *Block) {
	if block.IsValid {
		delete(d.index, block.Tag)
		d.occupancy--
	}

	block.IsValid = false
	block.IsDirty = false
	d.policy.Invalidate(block.ReplacementData)
}
