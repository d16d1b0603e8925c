// Package memaccessagent provides a component that tests memory systems by
// issuing random reads and writes and checking the values read back.
package memaccessagent

import (
	"encoding/binary"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/sarchlab/rripcache/mem"
	"github.com/sarchlab/rripcache/sim"
)

var dumpLog = false

type issueEvent struct{}

// A MemAccessAgent is a Component that can help testing the cache and the
// memory controllers by generating a large number of read and write requests.
// It keeps one request outstanding at a time.
type MemAccessAgent struct {
	*sim.ComponentBase

	engine sim.EventScheduler
	port   *memPort
	rng    *rand.Rand

	StartAddress uint64
	MaxAddress   uint64
	AccessSize   uint64
	Interval     sim.VTimeInCycle

	WriteLeft     int
	ReadLeft      int
	KnownMemValue map[uint64][]byte
	Mismatches    []string

	next       *mem.Packet
	pending    *mem.Packet
	waitRetry  bool
	issueTimes map[string]sim.VTimeInCycle
	Latencies  []sim.VTimeInCycle
}

// MemPort returns the port that connects to the memory system.
func (a *MemAccessAgent) MemPort() mem.BindableRequestPort {
	return a.port
}

// Start schedules the first request.
func (a *MemAccessAgent) Start() {
	a.scheduleIssue(a.engine.CurrentTime())
}

// Done returns true if all the requests are issued and answered.
func (a *MemAccessAgent) Done() bool {
	a.Lock()
	defer a.Unlock()

	return a.ReadLeft == 0 && a.WriteLeft == 0 &&
		a.pending == nil && a.next == nil
}

// Handle issues the next request.
func (a *MemAccessAgent) Handle(event any) error {
	switch event.(type) {
	case *issueEvent:
		a.issue()
	default:
		return fmt.Errorf("%s cannot handle event %T", a.Name(), event)
	}

	return nil
}

func (a *MemAccessAgent) scheduleIssue(t sim.VTimeInCycle) {
	a.engine.Schedule(sim.ScheduledEvent{
		Event:   &issueEvent{},
		Time:    t,
		Handler: a,
	})
}

func (a *MemAccessAgent) issue() {
	a.Lock()

	if a.pending != nil || a.waitRetry {
		a.Unlock()
		return
	}

	if a.next == nil {
		a.next = a.generate()
	}

	req := a.next
	a.Unlock()

	if req == nil {
		return
	}

	if !a.port.peer.RecvReq(req) {
		a.Lock()
		a.waitRetry = true
		a.Unlock()

		return
	}

	a.Lock()
	a.next = nil
	a.pending = req
	a.issueTimes[req.ID] = a.engine.CurrentTime()

	if req.IsWrite() {
		a.WriteLeft--
		a.KnownMemValue[req.Addr] = append([]byte(nil), req.Data...)
	} else {
		a.ReadLeft--
	}
	a.Unlock()

	if dumpLog {
		log.Printf("%d, %s, issue, %s", a.engine.CurrentTime(), a.Name(), req)
	}
}

func (a *MemAccessAgent) generate() *mem.Packet {
	if a.shouldRead() {
		return mem.ReadReqBuilder{}.
			WithSrc(a.port.Name()).
			WithAddress(a.randomReadAddress()).
			WithByteSize(a.AccessSize).
			Build()
	}

	if a.WriteLeft == 0 {
		return nil
	}

	data := make([]byte, a.AccessSize)
	for i := 0; i < len(data); i += 4 {
		binary.LittleEndian.PutUint32(data[i:], a.rng.Uint32())
	}

	return mem.WriteReqBuilder{}.
		WithSrc(a.port.Name()).
		WithAddress(a.randomAddress()).
		WithData(data).
		Build()
}

func (a *MemAccessAgent) shouldRead() bool {
	if len(a.KnownMemValue) == 0 || a.ReadLeft == 0 {
		return false
	}

	if a.WriteLeft == 0 {
		return true
	}

	return a.rng.Float64() > 0.5
}

func (a *MemAccessAgent) randomAddress() uint64 {
	numSlots := (a.MaxAddress - a.StartAddress) / a.AccessSize
	return a.StartAddress + a.rng.Uint64N(numSlots)*a.AccessSize
}

func (a *MemAccessAgent) randomReadAddress() uint64 {
	for {
		addr := a.randomAddress()
		if _, written := a.KnownMemValue[addr]; written {
			return addr
		}
	}
}

func (a *MemAccessAgent) recvResp(rsp *mem.Packet) bool {
	a.Lock()

	if a.pending == nil || a.pending.ID != rsp.ID {
		a.Unlock()
		log.Panicf("%s received unexpected response %s", a.Name(), rsp)
	}

	now := a.engine.CurrentTime()
	a.Latencies = append(a.Latencies, now-a.issueTimes[rsp.ID])
	delete(a.issueTimes, rsp.ID)
	a.pending = nil

	if rsp.IsRead() {
		a.checkReadResult(rsp)
	}
	a.Unlock()

	if dumpLog {
		log.Printf("%d, %s, complete, %s", now, a.Name(), rsp)
	}

	a.scheduleIssue(now + a.Interval)

	return true
}

func (a *MemAccessAgent) checkReadResult(rsp *mem.Packet) {
	expected := a.KnownMemValue[rsp.Addr]

	if string(expected) != string(rsp.Data) {
		a.Mismatches = append(a.Mismatches, fmt.Sprintf(
			"read 0x%x: expected %v, got %v", rsp.Addr, expected, rsp.Data))
	}
}

func (a *MemAccessAgent) recvReqRetry() {
	a.Lock()
	a.waitRetry = false
	a.Unlock()

	a.scheduleIssue(a.engine.CurrentTime())
}

type memPort struct {
	agent *MemAccessAgent
	name  string
	peer  mem.ResponsePort
}

func (p *memPort) Name() string {
	return p.name
}

func (p *memPort) BindPeer(peer mem.ResponsePort) {
	mem.MustNotBeBound(p, p.peer)
	p.peer = peer
}

func (p *memPort) RecvResp(rsp *mem.Packet) bool {
	return p.agent.recvResp(rsp)
}

func (p *memPort) RecvReqRetry() {
	p.agent.recvReqRetry()
}

func (p *memPort) RecvRangeChange() {}
