package replacement

import (
	"fmt"
	"math/bits"
)

// DuelClass tells whether a set samples one of the two dueling insertion
// policies or follows the winner.
type DuelClass int

// The classes a set can be in.
const (
	DuelClassFollower DuelClass = iota
	DuelClassA
	DuelClassB
)

func (c DuelClass) String() string {
	switch c {
	case DuelClassFollower:
		return "Follower"
	case DuelClassA:
		return "A"
	case DuelClassB:
		return "B"
	default:
		return fmt.Sprintf("DuelClass(%d)", int(c))
	}
}

// DuelCounters counts hits and accesses of the two leader classes. Class A
// leaders use SRRIP insertion, class B leaders use bimodal insertion.
type DuelCounters struct {
	HitsA     uint64
	AccessesA uint64
	HitsB     uint64
	AccessesB uint64
}

// NewDuelCounters creates zeroed counters.
func NewDuelCounters() *DuelCounters {
	return &DuelCounters{}
}

// RecordAccess counts one access to a set of the given class. Accesses to
// follower sets are not counted.
func (c *DuelCounters) RecordAccess(class DuelClass, hit bool) {
	switch class {
	case DuelClassA:
		c.AccessesA++
		if hit {
			c.HitsA++
		}
	case DuelClassB:
		c.AccessesB++
		if hit {
			c.HitsB++
		}
	}
}

// PreferB returns true if the hit ratio of class A is strictly lower than that
// of class B. A class with no access has a ratio of zero. The ratios are
// compared through 128-bit products, so any counter value is exact.
func (c *DuelCounters) PreferB() bool {
	if c.AccessesA == 0 {
		return c.AccessesB > 0 && c.HitsB > 0
	}

	if c.AccessesB == 0 {
		return false
	}

	hiA, loA := bits.Mul64(c.HitsA, c.AccessesB)
	hiB, loB := bits.Mul64(c.HitsB, c.AccessesA)

	return hiA < hiB || (hiA == hiB && loA < loB)
}

// Reset zeroes all the counters.
func (c *DuelCounters) Reset() {
	*c = DuelCounters{}
}

// SetDuelingClassifier splits sets into constituencies of a fixed size. The
// first set of each constituency leads class A and the last leads class B.
type SetDuelingClassifier struct {
	constituencySize int
}

// NewSetDuelingClassifier creates a classifier with the given constituency
// size.
func NewSetDuelingClassifier(constituencySize int) *SetDuelingClassifier {
	if constituencySize <= 0 {
		panic(fmt.Sprintf("constituency size must be positive, got %d",
			constituencySize))
	}

	return &SetDuelingClassifier{constituencySize: constituencySize}
}

// ClassOf returns the class of a set.
func (c *SetDuelingClassifier) ClassOf(setID int) DuelClass {
	pos := setID % c.constituencySize

	switch {
	case pos == 0:
		return DuelClassA
	case c.constituencySize > 1 && pos == c.constituencySize-1:
		return DuelClassB
	default:
		return DuelClassFollower
	}
}
