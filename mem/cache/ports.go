package cache

import (
	"log"

	"github.com/sarchlab/rripcache/mem"
	"github.com/sarchlab/rripcache/sim"
)

// topPort faces one requester. It holds at most one response that the
// requester has not accepted yet.
type topPort struct {
	comp *Comp
	name string
	id   int
	peer mem.RequestPort

	needRetry bool
	blocked   *mem.Packet
	sending   bool
}

func (p *topPort) Name() string {
	return p.name
}

// BindPeer attaches the requester.
func (p *topPort) BindPeer(peer mem.RequestPort) {
	mem.MustNotBeBound(p, p.peer)
	p.peer = peer
}

// RecvReq takes a request unless the cache is busy or this port still holds
// an undelivered response. A rejected requester is retried later.
func (p *topPort) RecvReq(pkt *mem.Packet) bool {
	c := p.comp
	c.Lock()
	defer c.Unlock()

	if p.blocked != nil || !c.handleRequest(pkt, p.id) {
		p.needRetry = true
		return false
	}

	c.invokePortHook(sim.HookPosPortMsgRecvd, p.name, pkt)

	return true
}

// RecvRespRetry resends the held response.
func (p *topPort) RecvRespRetry() {
	p.comp.invokePortHook(sim.HookPosPortMsgRetry, p.name, nil)
	p.trySend()
}

// RecvFunctional performs the access without timing.
func (p *topPort) RecvFunctional(pkt *mem.Packet) {
	p.comp.handleFunctional(pkt)
}

// AddrRanges returns the ranges of the memory below the cache.
func (p *topPort) AddrRanges() []mem.AddrRange {
	return p.comp.AddrRanges()
}

// enqueueResponse holds a response for delivery. Must be called with the
// cache locked.
func (p *topPort) enqueueResponse(pkt *mem.Packet) {
	if p.blocked != nil {
		log.Panicf("port %s already holds response %s", p.name, p.blocked.ID)
	}

	p.blocked = pkt
}

// trySend delivers the held response if the requester takes it.
func (p *topPort) trySend() {
	c := p.comp

	c.Lock()
	pkt := p.blocked
	if pkt == nil || p.sending {
		c.Unlock()
		return
	}

	if p.peer == nil {
		c.Unlock()
		log.Panicf("port %s is not connected", p.name)
	}

	p.sending = true
	c.invokePortHook(sim.HookPosPortMsgSend, p.name, pkt)
	c.Unlock()

	ok := p.peer.RecvResp(pkt)

	c.Lock()
	p.sending = false
	if ok {
		p.blocked = nil
	}
	c.Unlock()

	if ok {
		c.retryTopPorts()
	}
}

func (p *topPort) retry() {
	if p.peer != nil {
		p.peer.RecvReqRetry()
	}
}

// bottomPort faces the memory. It sends one packet at a time: the fetch of
// the outstanding miss, or the write-backs of dirty lines in eviction order.
type bottomPort struct {
	comp *Comp
	name string
	peer mem.ResponsePort

	queue   []*mem.Packet
	sending bool
}

func (p *bottomPort) Name() string {
	return p.name
}

// BindPeer attaches the memory.
func (p *bottomPort) BindPeer(peer mem.ResponsePort) {
	mem.MustNotBeBound(p, p.peer)
	p.peer = peer
}

// RecvResp passes a response to the cache.
func (p *bottomPort) RecvResp(pkt *mem.Packet) bool {
	p.comp.invokePortHook(sim.HookPosPortMsgRecvd, p.name, pkt)
	return p.comp.handleResponse(pkt)
}

// RecvReqRetry resends the packet the memory turned away.
func (p *bottomPort) RecvReqRetry() {
	p.comp.invokePortHook(sim.HookPosPortMsgRetry, p.name, nil)
	p.trySend()
}

// RecvRangeChange tells the requesters that the address ranges changed.
func (p *bottomPort) RecvRangeChange() {
	p.comp.recvRangeChange()
}

// busy returns true if packets are waiting to be sent. Must be called with
// the cache locked.
func (p *bottomPort) busy() bool {
	return len(p.queue) > 0
}

// enqueueRequest holds a request for sending. Must be called with the cache
// locked.
func (p *bottomPort) enqueueRequest(pkt *mem.Packet) {
	if len(p.queue) > 0 {
		log.Panicf("port %s already holds packet %s", p.name, p.queue[0].ID)
	}

	p.queue = append(p.queue, pkt)
}

// enqueueWriteback adds a write-back behind the packets already held. Must be
// called with the cache locked.
func (p *bottomPort) enqueueWriteback(pkt *mem.Packet) {
	p.queue = append(p.queue, pkt)
}

// pendingWriteback returns the newest write-back of the block that has not
// been sent yet. Must be called with the cache locked.
func (p *bottomPort) pendingWriteback(blockAddr uint64) *mem.Packet {
	for i := len(p.queue) - 1; i >= 0; i-- {
		pkt := p.queue[i]
		if pkt.IsWrite() && !pkt.NeedsResponse && pkt.Addr == blockAddr {
			return pkt
		}
	}

	return nil
}

// trySend sends the held packets in order until the memory rejects one.
func (p *bottomPort) trySend() {
	c := p.comp

	for {
		c.Lock()
		if p.sending || len(p.queue) == 0 {
			c.Unlock()
			return
		}

		if p.peer == nil {
			c.Unlock()
			log.Panicf("port %s is not connected", p.name)
		}

		pkt := p.queue[0]
		p.sending = true
		c.invokePortHook(sim.HookPosPortMsgSend, p.name, pkt)
		c.Unlock()

		ok := p.peer.RecvReq(pkt)

		c.Lock()
		p.sending = false
		if !ok {
			c.Unlock()
			return
		}

		p.queue = p.queue[1:]
		drained := len(p.queue) == 0
		c.Unlock()

		if drained {
			c.retryTopPorts()
			return
		}
	}
}
