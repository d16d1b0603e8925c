package memaccessagent

import (
	"log"
	"math/bits"
	"math/rand/v2"

	"github.com/sarchlab/rripcache/mem"
	"github.com/sarchlab/rripcache/sim"
)

// Builder can build MemAccessAgents.
type Builder struct {
	engine       sim.EventScheduler
	startAddress uint64
	maxAddress   uint64
	accessSize   uint64
	interval     sim.VTimeInCycle
	writeLeft    int
	readLeft     int
	seed         uint64
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() *Builder {
	return &Builder{
		maxAddress: 1024 * 1024,
		accessSize: 4,
		interval:   1,
		writeLeft:  1000,
		readLeft:   1000,
		seed:       1,
	}
}

func (b *Builder) WithEngine(engine sim.EventScheduler) *Builder {
	b.engine = engine
	return b
}

// WithAddressRange limits the accesses to [start, max).
func (b *Builder) WithAddressRange(start, max uint64) *Builder {
	b.startAddress = start
	b.maxAddress = max
	return b
}

func (b *Builder) WithMaxAddress(addr uint64) *Builder {
	b.maxAddress = addr
	return b
}

func (b *Builder) WithAccessSize(size uint64) *Builder {
	b.accessSize = size
	return b
}

func (b *Builder) WithInterval(interval sim.VTimeInCycle) *Builder {
	b.interval = interval
	return b
}

func (b *Builder) WithWriteLeft(write int) *Builder {
	b.writeLeft = write
	return b
}

func (b *Builder) WithReadLeft(read int) *Builder {
	b.readLeft = read
	return b
}

func (b *Builder) WithSeed(seed uint64) *Builder {
	b.seed = seed
	return b
}

func (b *Builder) Build(name string) *MemAccessAgent {
	if b.engine == nil {
		log.Panic("agent requires an engine")
	}

	if b.accessSize < 4 || bits.OnesCount64(b.accessSize) != 1 {
		log.Panicf("access size must be a power of 2 and at least 4, got %d",
			b.accessSize)
	}

	if b.maxAddress <= b.startAddress ||
		b.maxAddress-b.startAddress < b.accessSize {
		log.Panicf("address range [0x%x, 0x%x) is too small",
			b.startAddress, b.maxAddress)
	}

	agent := &MemAccessAgent{
		ComponentBase: sim.NewComponentBase(name),
		engine:        b.engine,
		rng:           rand.New(rand.NewPCG(b.seed, b.seed+1)),
		StartAddress:  b.startAddress,
		MaxAddress:    b.maxAddress,
		AccessSize:    b.accessSize,
		Interval:      b.interval,
		WriteLeft:     b.writeLeft,
		ReadLeft:      b.readLeft,
		KnownMemValue: make(map[uint64][]byte),
		issueTimes:    make(map[string]sim.VTimeInCycle),
	}

	agent.port = &memPort{
		agent: agent,
		name:  name + ".MemPort",
	}

	return agent
}

var _ mem.BindableRequestPort = (*memPort)(nil)
