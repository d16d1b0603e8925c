package mem

import (
	"fmt"

	"github.com/sarchlab/rripcache/sim"
)

// AddrRange is a half-open address range [Start, End).
type AddrRange struct {
	Start uint64
	End   uint64
}

// Contains returns true if the address falls in the range.
func (r AddrRange) Contains(addr uint64) bool {
	return addr >= r.Start && addr < r.End
}

// Size returns the number of bytes in the range.
func (r AddrRange) Size() uint64 {
	return r.End - r.Start
}

func (r AddrRange) String() string {
	return fmt.Sprintf("[0x%x, 0x%x)", r.Start, r.End)
}

// A RequestPort is the side of a channel that issues requests and receives
// responses.
type RequestPort interface {
	sim.Named

	// RecvResp delivers a response. Returning false means the port cannot
	// take it now; the sender must hold it until RecvRespRetry.
	RecvResp(pkt *Packet) bool

	// RecvReqRetry tells the port that a request it had rejected may be
	// sent again.
	RecvReqRetry()

	// RecvRangeChange tells the port that the address ranges served by its
	// peer have changed.
	RecvRangeChange()
}

// A ResponsePort is the side of a channel that serves requests.
type ResponsePort interface {
	sim.Named

	// RecvReq delivers a request. Returning false means the port cannot take
	// it now; it will call RecvReqRetry on the sender later.
	RecvReq(pkt *Packet) bool

	// RecvRespRetry tells the port that a response it had rejected may be
	// sent again.
	RecvRespRetry()

	// RecvFunctional performs the access immediately, with no timing.
	RecvFunctional(pkt *Packet)

	// AddrRanges returns the address ranges the port serves.
	AddrRanges() []AddrRange
}

// BindableRequestPort is a RequestPort that can be attached to its peer.
type BindableRequestPort interface {
	RequestPort
	BindPeer(peer ResponsePort)
}

// BindableResponsePort is a ResponsePort that can be attached to its peer.
type BindableResponsePort interface {
	ResponsePort
	BindPeer(peer RequestPort)
}

// Connect attaches a requester and a responder to each other.
func Connect(requester BindableRequestPort, responder BindableResponsePort) {
	requester.BindPeer(responder)
	responder.BindPeer(requester)
}

// MustNotBeBound panics if a port already has a peer.
func MustNotBeBound(port sim.Named, peer sim.Named) {
	if peer != nil {
		panic(fmt.Sprintf("port %s is already connected to %s",
			port.Name(), peer.Name()))
	}
}
