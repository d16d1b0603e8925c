// Package cache provides a blocking, single-level cache that keeps at most
// one miss outstanding.
package cache

import (
	"fmt"
	"log"

	"github.com/sarchlab/rripcache/mem"
	"github.com/sarchlab/rripcache/mem/cache/internal/tagging"
	"github.com/sarchlab/rripcache/mem/cache/replacement"
	"github.com/sarchlab/rripcache/sim"
	"github.com/sarchlab/rripcache/tracing"
)

type state int

const (
	stateIdle state = iota
	stateAccessPending
	stateMissOutstanding
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "Idle"
	case stateAccessPending:
		return "AccessPending"
	case stateMissOutstanding:
		return "MissOutstanding"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// accessEvent fires when the tag and data access latency has passed.
type accessEvent struct {
	pkt       *mem.Packet
	requester int
}

// pendingMiss is the miss being served by the memory below.
type pendingMiss struct {
	req       *mem.Packet
	fetch     *mem.Packet
	requester int
	startTime sim.VTimeInCycle
}

// outgoing returns the packet sent downstream: the synthesized fetch, or the
// request itself when it was forwarded.
func (m *pendingMiss) outgoing() *mem.Packet {
	if m.fetch != nil {
		return m.fetch
	}

	return m.req
}

// A Comp is a cache that serves one request at a time. A request hits or
// misses after the access latency; a miss fetches the whole block from below
// before the cache takes the next request.
type Comp struct {
	*sim.ComponentBase

	engine    sim.EventScheduler
	latency   sim.VTimeInCycle
	blockSize uint64
	writeBack bool

	directory *tagging.Directory
	duel      *replacement.DuelCounters

	topPorts   []*topPort
	bottomPort *bottomPort

	state   state
	pending *pendingMiss
	stats   *Statistics
}

// TopPort returns the port that faces the i-th requester.
func (c *Comp) TopPort(i int) mem.BindableResponsePort {
	return c.topPorts[i]
}

// NumTopPorts returns the number of requester-facing ports.
func (c *Comp) NumTopPorts() int {
	return len(c.topPorts)
}

// BottomPort returns the port that faces the memory.
func (c *Comp) BottomPort() mem.BindableRequestPort {
	return c.bottomPort
}

// Stats returns the statistics of the cache.
func (c *Comp) Stats() *Statistics {
	return c.stats
}

// DuelCounters returns the set-dueling counters of the cache.
func (c *Comp) DuelCounters() *replacement.DuelCounters {
	return c.duel
}

// Occupancy returns the number of valid lines.
func (c *Comp) Occupancy() int {
	c.Lock()
	defer c.Unlock()

	return c.directory.Occupancy()
}

// NumSets returns the number of sets.
func (c *Comp) NumSets() int {
	return c.directory.NumSets()
}

// NumWays returns the number of lines in each set.
func (c *Comp) NumWays() int {
	return c.directory.NumWays()
}

// BlockSize returns the number of bytes in a line.
func (c *Comp) BlockSize() uint64 {
	return c.directory.BlockSize()
}

// Capacity returns the number of lines.
func (c *Comp) Capacity() int {
	return c.directory.Capacity()
}

// Busy returns true if a request is being served.
func (c *Comp) Busy() bool {
	c.Lock()
	defer c.Unlock()

	return c.state != stateIdle
}

// AddrRanges returns the ranges served by the memory below.
func (c *Comp) AddrRanges() []mem.AddrRange {
	if c.bottomPort.peer == nil {
		return nil
	}

	return c.bottomPort.peer.AddrRanges()
}

// Handle processes the events scheduled by the cache.
func (c *Comp) Handle(event any) error {
	switch e := event.(type) {
	case *accessEvent:
		c.accessTiming(e)
	default:
		return fmt.Errorf("cache %s cannot handle event %T", c.Name(), event)
	}

	return nil
}

func (c *Comp) mustBeValidRequest(pkt *mem.Packet) {
	if !pkt.IsRead() && !pkt.IsWrite() {
		log.Panicf("cache %s cannot handle command %s of packet %s",
			c.Name(), pkt.Cmd, pkt.ID)
	}

	if !pkt.IsWithinBlock(c.blockSize) {
		log.Panicf("packet %s [0x%x, +%d) crosses a %d-byte block",
			pkt.ID, pkt.Addr, pkt.Size, c.blockSize)
	}
}

// handleRequest takes a request from a top port if the cache is free.
func (c *Comp) handleRequest(pkt *mem.Packet, portID int) bool {
	c.mustBeValidRequest(pkt)

	if c.state != stateIdle || c.bottomPort.busy() {
		return false
	}

	c.state = stateAccessPending

	tracing.StartTask(
		tracing.MsgIDAtReceiver(pkt.ID, c),
		pkt.ID,
		c,
		"req_in",
		pkt.Cmd.String(),
		pkt,
	)

	c.engine.Schedule(sim.ScheduledEvent{
		Event:   &accessEvent{pkt: pkt, requester: portID},
		Time:    c.engine.CurrentTime() + c.latency,
		Handler: c,
	})

	return true
}

func (c *Comp) accessTiming(evt *accessEvent) {
	c.Lock()

	if c.state != stateAccessPending {
		c.Unlock()
		log.Panicf("cache %s fired an access in state %s", c.Name(), c.state)
	}

	pkt := evt.pkt
	blockAddr := pkt.BlockAddr(c.blockSize)
	block, hit := c.directory.Lookup(blockAddr)
	c.duel.RecordAccess(c.directory.DuelClassOf(c.directory.SetOf(blockAddr)), hit)

	if hit {
		c.handleHit(evt, block)
		c.Unlock()

		c.topPorts[evt.requester].trySend()
		c.retryTopPorts()

		return
	}

	c.handleMiss(evt, blockAddr)
	c.Unlock()

	c.bottomPort.trySend()
}

func (c *Comp) handleHit(evt *accessEvent, block *tagging.Block) {
	pkt := evt.pkt
	taskID := tracing.MsgIDAtReceiver(pkt.ID, c)

	c.stats.Hits.Inc()
	tracing.AddTaskStep(taskID, c, "hit")

	c.directory.Visit(block)
	c.applyToBlock(pkt, block)
	c.state = stateIdle

	c.respond(pkt, evt.requester)
	tracing.EndTask(taskID, c)
}

func (c *Comp) handleMiss(evt *accessEvent, blockAddr uint64) {
	pkt := evt.pkt

	c.stats.Misses.Inc()
	tracing.AddTaskStep(tracing.MsgIDAtReceiver(pkt.ID, c), c, "miss")

	miss := &pendingMiss{
		req:       pkt,
		requester: evt.requester,
		startTime: c.engine.CurrentTime(),
	}

	if !pkt.IsBlockAccess(c.blockSize) || !pkt.NeedsResponse {
		miss.fetch = mem.ReadReqBuilder{}.
			WithSrc(c.bottomPort.Name()).
			WithAddress(blockAddr).
			WithByteSize(c.blockSize).
			Build()
	}

	c.pending = miss
	c.state = stateMissOutstanding

	out := miss.outgoing()
	tracing.StartTask(
		out.ID,
		tracing.MsgIDAtReceiver(pkt.ID, c),
		c,
		"req_out",
		out.Cmd.String(),
		out,
	)

	c.bottomPort.enqueueRequest(out)
}

// handleResponse fills the line fetched for the outstanding miss and answers
// the request that caused it.
func (c *Comp) handleResponse(pkt *mem.Packet) bool {
	c.Lock()

	miss := c.pending
	if miss == nil {
		c.Unlock()
		log.Panicf("cache %s received response %s without a pending miss",
			c.Name(), pkt.ID)
	}

	if pkt.ID != miss.outgoing().ID {
		c.Unlock()
		log.Panicf("cache %s received response %s, waiting for %s",
			c.Name(), pkt.ID, miss.outgoing().ID)
	}

	blockAddr := pkt.BlockAddr(c.blockSize)
	c.install(blockAddr, pkt.Data)

	c.stats.MissLatency.Sample(float64(c.engine.CurrentTime() - miss.startTime))
	tracing.EndTask(pkt.ID, c)

	if miss.fetch != nil {
		block, found := c.directory.Lookup(blockAddr)
		if !found {
			c.Unlock()
			log.Panicf("cache %s lost block 0x%x right after filling it",
				c.Name(), blockAddr)
		}

		c.applyToBlock(miss.req, block)
	}

	c.pending = nil
	c.state = stateIdle
	c.respond(miss.req, miss.requester)
	tracing.EndTask(tracing.MsgIDAtReceiver(miss.req.ID, c), c)

	c.Unlock()

	c.topPorts[miss.requester].trySend()
	c.bottomPort.trySend()
	c.retryTopPorts()

	return true
}

func (c *Comp) install(blockAddr uint64, data []byte) {
	eviction, evicted := c.directory.Install(blockAddr, data)
	if !evicted {
		return
	}

	c.stats.Evictions.Inc()

	if !eviction.IsDirty || !c.writeBack {
		return
	}

	c.stats.Writebacks.Inc()

	wb := mem.WriteReqBuilder{}.
		WithSrc(c.bottomPort.Name()).
		WithAddress(eviction.Tag).
		WithData(eviction.Data).
		NoResponse().
		Build()
	c.bottomPort.enqueueWriteback(wb)
}

func (c *Comp) applyToBlock(pkt *mem.Packet, block *tagging.Block) {
	c.applyToData(pkt, block.Data)

	if pkt.IsWrite() {
		block.IsDirty = true
	}
}

func (c *Comp) applyToData(pkt *mem.Packet, data []byte) {
	if pkt.IsWrite() {
		pkt.WriteDataToBlock(data, c.blockSize)
		return
	}

	pkt.ReadDataFromBlock(data, c.blockSize)
}

func (c *Comp) completeFunctional(pkt *mem.Packet) {
	if pkt.NeedsResponse {
		pkt.MakeResponse()
	}
}

// respond hands the response of a request to its top port. Forwarded
// requests come back from below as responses already.
func (c *Comp) respond(pkt *mem.Packet, requester int) {
	if !pkt.NeedsResponse {
		return
	}

	if !pkt.IsResponse {
		pkt.MakeResponse()
	}

	c.topPorts[requester].enqueueResponse(pkt)
}

// handleFunctional accesses the cache immediately. Lines evicted but not yet
// written back are still served here. Other misses go to the memory below
// without filling the cache.
func (c *Comp) handleFunctional(pkt *mem.Packet) {
	c.mustBeValidRequest(pkt)

	c.Lock()

	blockAddr := pkt.BlockAddr(c.blockSize)
	if block, hit := c.directory.Lookup(blockAddr); hit {
		c.applyToBlock(pkt, block)
		c.completeFunctional(pkt)
		c.Unlock()

		return
	}

	if wb := c.bottomPort.pendingWriteback(blockAddr); wb != nil {
		c.applyToData(pkt, wb.Data)
		c.completeFunctional(pkt)
		c.Unlock()

		return
	}

	c.Unlock()

	if c.bottomPort.peer == nil {
		log.Panicf("cache %s has no memory to forward functional access to",
			c.Name())
	}

	c.bottomPort.peer.RecvFunctional(pkt)
}

func (c *Comp) recvRangeChange() {
	for _, p := range c.topPorts {
		if p.peer != nil {
			p.peer.RecvRangeChange()
		}
	}
}

// retryTopPorts tells the requesters that were turned away that the cache
// can take a request again.
func (c *Comp) retryTopPorts() {
	c.Lock()

	if c.state != stateIdle || c.bottomPort.busy() {
		c.Unlock()
		return
	}

	var toRetry []*topPort
	for _, p := range c.topPorts {
		if p.needRetry && p.blocked == nil {
			p.needRetry = false
			toRetry = append(toRetry, p)
		}
	}

	c.Unlock()

	for _, p := range toRetry {
		p.retry()
	}
}

func (c *Comp) invokePortHook(pos *sim.HookPos, portName string, pkt *mem.Packet) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    pos,
		Item:   pkt,
		Detail: portName,
	})
}
