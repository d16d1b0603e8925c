package cache

import (
	"fmt"
	"log"
	"math/bits"
	"math/rand/v2"

	"github.com/sarchlab/rripcache/mem/cache/internal/tagging"
	"github.com/sarchlab/rripcache/mem/cache/replacement"
	"github.com/sarchlab/rripcache/sim"
)

// Names of the replacement policies the builder can create.
const (
	PolicySRRIP = "srrip"
	PolicyDRRIP = "drrip"
	PolicyLRU   = "lru"
)

// Builder can build caches.
type Builder struct {
	engine sim.EventScheduler

	byteSize         uint64
	blockSize        uint64
	wayAssociativity int
	fullyAssociative bool
	latency          sim.VTimeInCycle
	numRequesters    int
	writeBack        bool

	policyName       string
	policy           replacement.Policy
	numBits          int
	hitPriority      bool
	btp              int
	constituencySize int
	seed             uint64
}

// MakeBuilder creates a new builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		byteSize:         16 * 1024,
		blockSize:        64,
		wayAssociativity: 4,
		latency:          2,
		numRequesters:    1,
		writeBack:        true,
		policyName:       PolicySRRIP,
		numBits:          2,
		btp:              3,
		constituencySize: 32,
		seed:             1,
	}
}

// WithEngine sets the engine that schedules the cache's events.
func (b Builder) WithEngine(engine sim.EventScheduler) Builder {
	b.engine = engine
	return b
}

// WithByteSize sets the capacity of the cache in bytes.
func (b Builder) WithByteSize(byteSize uint64) Builder {
	b.byteSize = byteSize
	return b
}

// WithBlockSize sets the line size in bytes.
func (b Builder) WithBlockSize(blockSize uint64) Builder {
	b.blockSize = blockSize
	return b
}

// WithWayAssociativity sets the number of lines per set.
func (b Builder) WithWayAssociativity(ways int) Builder {
	b.wayAssociativity = ways
	return b
}

// FullyAssociative puts all the lines into a single set.
func (b Builder) FullyAssociative() Builder {
	b.fullyAssociative = true
	return b
}

// WithLatency sets the number of cycles between accepting a request and
// knowing whether it hits.
func (b Builder) WithLatency(latency sim.VTimeInCycle) Builder {
	b.latency = latency
	return b
}

// WithNumRequesters sets the number of requester-facing ports.
func (b Builder) WithNumRequesters(n int) Builder {
	b.numRequesters = n
	return b
}

// WithWriteBack sets whether dirty lines are written to memory on eviction.
func (b Builder) WithWriteBack(writeBack bool) Builder {
	b.writeBack = writeBack
	return b
}

// WithReplacementPolicyName selects the replacement policy by name: "srrip",
// "drrip" or "lru".
func (b Builder) WithReplacementPolicyName(name string) Builder {
	b.policyName = name
	return b
}

// WithReplacementPolicy injects a replacement policy, overriding the policy
// name. A policy with set-dueling counters shares them with the cache.
func (b Builder) WithReplacementPolicy(policy replacement.Policy) Builder {
	b.policy = policy
	return b
}

// WithNumRRPVBits sets the width of the re-reference prediction values.
func (b Builder) WithNumRRPVBits(numBits int) Builder {
	b.numBits = numBits
	return b
}

// WithHitPriority makes hits predict a near-immediate re-reference.
func (b Builder) WithHitPriority(hitPriority bool) Builder {
	b.hitPriority = hitPriority
	return b
}

// WithBTP sets the percentage of bimodal insertions that get a long
// re-reference interval.
func (b Builder) WithBTP(btp int) Builder {
	b.btp = btp
	return b
}

// WithConstituencySize sets how many sets share one pair of leader sets.
func (b Builder) WithConstituencySize(size int) Builder {
	b.constituencySize = size
	return b
}

// WithSeed seeds the random number generator of the replacement policy.
func (b Builder) WithSeed(seed uint64) Builder {
	b.seed = seed
	return b
}

// Build builds a cache.
func (b Builder) Build(name string) *Comp {
	b.mustBeValid()

	numWays := b.wayAssociativity
	if b.fullyAssociative {
		numWays = int(b.byteSize / b.blockSize)
	}

	b.mustBeFullSets(numWays)
	numSets := int(b.byteSize / (b.blockSize * uint64(numWays)))

	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		engine:        b.engine,
		latency:       b.latency,
		blockSize:     b.blockSize,
		writeBack:     b.writeBack,
		duel:          replacement.NewDuelCounters(),
		stats:         newStatistics(name),
	}

	policy := b.createPolicy(c.duel)
	if p, ok := policy.(duelingPolicy); ok {
		c.duel = p.Counters()
	}

	c.directory = tagging.NewDirectory(numSets, numWays, b.blockSize, policy)

	for i := 0; i < b.numRequesters; i++ {
		c.topPorts = append(c.topPorts, &topPort{
			comp: c,
			name: fmt.Sprintf("%s.Top[%d]", name, i),
			id:   i,
		})
	}

	c.bottomPort = &bottomPort{
		comp: c,
		name: name + ".Bottom",
	}

	return c
}

func (b Builder) mustBeValid() {
	if b.engine == nil {
		log.Panic("cache requires an engine")
	}

	if b.blockSize < 4 || bits.OnesCount64(b.blockSize) != 1 {
		log.Panicf("block size must be at least 4 and a power of 2, got %d",
			b.blockSize)
	}

	if b.numRequesters <= 0 {
		log.Panicf("cache needs at least one requester, got %d",
			b.numRequesters)
	}

	if !b.fullyAssociative && b.wayAssociativity <= 0 {
		log.Panicf("way associativity must be positive, got %d",
			b.wayAssociativity)
	}
}

func (b Builder) mustBeFullSets(numWays int) {
	setSize := b.blockSize * uint64(numWays)
	if b.byteSize == 0 || setSize == 0 || b.byteSize%setSize != 0 {
		log.Panicf("cache of %d bytes cannot be divided into sets of %d bytes",
			b.byteSize, setSize)
	}
}

// duelingPolicy is a policy that reads set-dueling counters. The cache
// updates the same counters on every leader set access.
type duelingPolicy interface {
	Counters() *replacement.DuelCounters
}

func (b Builder) createPolicy(
	counters *replacement.DuelCounters,
) replacement.Policy {
	if b.policy != nil {
		return b.policy
	}

	switch b.policyName {
	case PolicySRRIP:
		return replacement.NewSRRIP(b.numBits, b.hitPriority)
	case PolicyDRRIP:
		return replacement.NewDRRIP(
			b.numBits,
			b.hitPriority,
			b.btp,
			counters,
			replacement.NewSetDuelingClassifier(b.constituencySize),
			rand.New(rand.NewPCG(b.seed, b.seed^0x9e3779b97f4a7c15)),
		)
	case PolicyLRU:
		return replacement.NewLRU()
	default:
		log.Panicf("unknown replacement policy: %s", b.policyName)
	}

	return nil
}
