package replacement

import (
	"fmt"
	"math/rand/v2"
)

// DRRIP is dynamic re-reference interval prediction. It duels SRRIP insertion
// (class A) against bimodal insertion (class B) on a few leader sets and lets
// the other sets follow the class with the better hit ratio.
type DRRIP struct {
	SRRIP

	btp        int
	counters   *DuelCounters
	classifier *SetDuelingClassifier
	rng        *rand.Rand
}

// NewDRRIP creates a DRRIP policy. btp is the percentage of bimodal
// insertions that still get a long re-reference interval.
func NewDRRIP(
	numBits int,
	hitPriority bool,
	btp int,
	counters *DuelCounters,
	classifier *SetDuelingClassifier,
	rng *rand.Rand,
) *DRRIP {
	if btp < 0 || btp > 100 {
		panic(fmt.Sprintf("btp must be within [0, 100], got %d", btp))
	}

	if counters == nil {
		panic("DRRIP requires set-dueling counters")
	}

	if classifier == nil {
		panic("DRRIP requires a set classifier")
	}

	if rng == nil {
		panic("DRRIP requires a random number generator")
	}

	return &DRRIP{
		SRRIP:      *NewSRRIP(numBits, hitPriority),
		btp:        btp,
		counters:   counters,
		classifier: classifier,
		rng:        rng,
	}
}

// Counters returns the set-dueling counters the policy reads.
func (p *DRRIP) Counters() *DuelCounters {
	return p.counters
}

// ClassOf returns the duel class of a set.
func (p *DRRIP) ClassOf(setID int) DuelClass {
	return p.classifier.ClassOf(setID)
}

// Reset inserts a newly filled line. Lines use the insertion of their leader
// class, or of the winning class for follower sets.
func (p *DRRIP) Reset(m Metadata) {
	rrip := asRRIP(m)
	rrip.RRPV.Saturate()
	rrip.Valid = true

	useBimodal := false
	switch p.classifier.ClassOf(rrip.SetID) {
	case DuelClassA:
	case DuelClassB:
		useBimodal = true
	default:
		useBimodal = p.counters.PreferB()
	}

	if useBimodal && p.rng.IntN(100) >= p.btp {
		return
	}

	rrip.RRPV.Decrement()
}
