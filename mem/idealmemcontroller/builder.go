package idealmemcontroller

import (
	"log"

	"github.com/sarchlab/rripcache/mem"
	"github.com/sarchlab/rripcache/sim"
)

// Builder can build ideal memory controllers.
type Builder struct {
	engine   sim.EventScheduler
	width    int
	latency  sim.VTimeInCycle
	capacity uint64
	storage  *mem.Storage
}

// MakeBuilder returns a new Builder
func MakeBuilder() Builder {
	return Builder{
		latency:  100,
		capacity: 4 * mem.GB,
		width:    1,
	}
}

// WithEngine sets the engine of the memory controller
func (b Builder) WithEngine(engine sim.EventScheduler) Builder {
	b.engine = engine
	return b
}

// WithWidth sets the number of requests the memory controller serves at the
// same time.
func (b Builder) WithWidth(width int) Builder {
	b.width = width
	return b
}

// WithLatency sets the latency of the memory controller
func (b Builder) WithLatency(latency sim.VTimeInCycle) Builder {
	b.latency = latency
	return b
}

// WithNewStorage sets the capacity of the memory controller
func (b Builder) WithNewStorage(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// WithStorage sets the storage of the memory controller
func (b Builder) WithStorage(storage *mem.Storage) Builder {
	b.storage = storage
	return b
}

// Build builds a new Comp
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		log.Panic("memory controller requires an engine")
	}

	if b.width <= 0 {
		log.Panicf("width must be positive, got %d", b.width)
	}

	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		engine:        b.engine,
		Latency:       b.latency,
		width:         b.width,
	}

	if b.storage == nil {
		c.Storage = mem.NewStorage(b.capacity)
	} else {
		c.Storage = b.storage
	}

	c.topPort = &topPort{
		comp: c,
		name: name + ".TopPort",
	}

	return c
}
