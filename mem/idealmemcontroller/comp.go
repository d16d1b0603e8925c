// Package idealmemcontroller provides a memory that answers every request
// after a fixed latency.
package idealmemcontroller

import (
	"fmt"
	"log"

	"github.com/sarchlab/rripcache/mem"
	"github.com/sarchlab/rripcache/sim"
	"github.com/sarchlab/rripcache/tracing"
)

type respondEvent struct {
	req *mem.Packet
}

// An Comp is an ideal memory controller that can perform read and write.
// It responds to each request in a fixed number of cycles and serves at most
// width requests at the same time.
type Comp struct {
	*sim.ComponentBase

	engine  sim.EventScheduler
	Storage *mem.Storage
	Latency sim.VTimeInCycle
	width   int

	topPort *topPort

	inflight  int
	needRetry bool
	respQueue []*mem.Packet
	sending   bool
}

// TopPort returns the port that serves requests.
func (c *Comp) TopPort() mem.BindableResponsePort {
	return c.topPort
}

// Handle defines how the Comp handles event
func (c *Comp) Handle(event any) error {
	switch e := event.(type) {
	case *respondEvent:
		c.respond(e.req)
	default:
		return fmt.Errorf("%s cannot handle event %T", c.Name(), event)
	}

	return nil
}

func (c *Comp) recvReq(req *mem.Packet) bool {
	c.Lock()
	defer c.Unlock()

	if c.inflight >= c.width {
		c.needRetry = true
		return false
	}

	c.inflight++

	tracing.StartTask(
		tracing.MsgIDAtReceiver(req.ID, c),
		req.ID,
		c,
		"req_in",
		req.Cmd.String(),
		req,
	)

	c.engine.Schedule(sim.ScheduledEvent{
		Event:   &respondEvent{req: req},
		Time:    c.engine.CurrentTime() + c.Latency,
		Handler: c,
	})

	return true
}

func (c *Comp) respond(req *mem.Packet) {
	c.Lock()

	c.access(req)
	tracing.EndTask(tracing.MsgIDAtReceiver(req.ID, c), c)

	if !req.NeedsResponse {
		c.inflight--
		c.Unlock()
		c.retryRequester()

		return
	}

	req.MakeResponse()
	c.respQueue = append(c.respQueue, req)
	c.Unlock()

	c.trySend()
}

func (c *Comp) access(req *mem.Packet) {
	switch req.Cmd {
	case mem.CmdRead:
		data, err := c.Storage.Read(req.Addr, req.Size)
		if err != nil {
			log.Panic(err)
		}

		req.Data = data
	case mem.CmdWrite:
		err := c.Storage.Write(req.Addr, req.Data)
		if err != nil {
			log.Panic(err)
		}
	default:
		log.Panicf("cannot handle command %s of packet %s", req.Cmd, req.ID)
	}
}

// trySend delivers the responses in the order they became ready.
func (c *Comp) trySend() {
	for {
		c.Lock()
		if c.sending || len(c.respQueue) == 0 {
			c.Unlock()
			return
		}

		rsp := c.respQueue[0]
		c.sending = true
		c.Unlock()

		ok := c.topPort.peer.RecvResp(rsp)

		c.Lock()
		c.sending = false
		if !ok {
			c.Unlock()
			return
		}

		c.respQueue = c.respQueue[1:]
		c.inflight--
		c.Unlock()

		c.retryRequester()
	}
}

func (c *Comp) retryRequester() {
	c.Lock()
	if !c.needRetry || c.inflight >= c.width {
		c.Unlock()
		return
	}

	c.needRetry = false
	c.Unlock()

	c.topPort.peer.RecvReqRetry()
}

func (c *Comp) recvFunctional(req *mem.Packet) {
	c.Lock()
	defer c.Unlock()

	c.access(req)

	if req.NeedsResponse {
		req.MakeResponse()
	}
}

type topPort struct {
	comp *Comp
	name string
	peer mem.RequestPort
}

func (p *topPort) Name() string {
	return p.name
}

func (p *topPort) BindPeer(peer mem.RequestPort) {
	mem.MustNotBeBound(p, p.peer)
	p.peer = peer
}

func (p *topPort) RecvReq(req *mem.Packet) bool {
	return p.comp.recvReq(req)
}

func (p *topPort) RecvRespRetry() {
	p.comp.trySend()
}

func (p *topPort) RecvFunctional(req *mem.Packet) {
	p.comp.recvFunctional(req)
}

func (p *topPort) AddrRanges() []mem.AddrRange {
	return []mem.AddrRange{{Start: 0, End: p.comp.Storage.Capacity()}}
}
