package mem

import (
	"fmt"

	"github.com/sarchlab/rripcache/sim"
)

// Cmd is the kind of operation a packet asks for.
type Cmd int

// The commands a packet can carry.
const (
	CmdInvalid Cmd = iota
	CmdRead
	CmdWrite
)

func (c Cmd) String() string {
	switch c {
	case CmdRead:
		return "Read"
	case CmdWrite:
		return "Write"
	default:
		return fmt.Sprintf("Cmd(%d)", int(c))
	}
}

// A Packet is a memory access request, and later the response to it. The
// same object travels down and back up the hierarchy.
type Packet struct {
	ID            string
	Addr          uint64
	Size          uint64
	Cmd           Cmd
	NeedsResponse bool
	IsResponse    bool

	// Data holds the bytes to write for a write request and the bytes read
	// for a read response.
	Data []byte

	// Src is the name of the port that issued the request.
	Src string
}

// IsRead returns true if the packet reads memory.
func (p *Packet) IsRead() bool {
	return p.Cmd == CmdRead
}

// IsWrite returns true if the packet writes memory.
func (p *Packet) IsWrite() bool {
	return p.Cmd == CmdWrite
}

// MakeResponse turns the request into its response. Addr and Size are kept.
func (p *Packet) MakeResponse() {
	if !p.NeedsResponse {
		panic(fmt.Sprintf("packet %s does not need a response", p.ID))
	}

	if p.IsResponse {
		panic(fmt.Sprintf("packet %s is already a response", p.ID))
	}

	p.IsResponse = true
}

// BlockAddr returns the address of the block that holds the first byte of the
// packet.
func (p *Packet) BlockAddr(blockSize uint64) uint64 {
	return p.Addr / blockSize * blockSize
}

// Offset returns the distance between the packet address and its block
// address.
func (p *Packet) Offset(blockSize uint64) uint64 {
	return p.Addr - p.BlockAddr(blockSize)
}

// IsWithinBlock returns true if every byte of the packet falls into one block.
func (p *Packet) IsWithinBlock(blockSize uint64) bool {
	return p.Size <= blockSize-p.Offset(blockSize)
}

// IsBlockAccess returns true if the packet covers exactly one whole block.
func (p *Packet) IsBlockAccess(blockSize uint64) bool {
	return p.Offset(blockSize) == 0 && p.Size == blockSize
}

// WriteDataToBlock copies the packet payload into its slice of the block.
func (p *Packet) WriteDataToBlock(block []byte, blockSize uint64) {
	p.mustFitBlock(block, blockSize)

	if uint64(len(p.Data)) != p.Size {
		panic(fmt.Sprintf("packet %s carries %d bytes, size is %d",
			p.ID, len(p.Data), p.Size))
	}

	offset := p.Offset(blockSize)
	copy(block[offset:offset+p.Size], p.Data)
}

// ReadDataFromBlock fills the packet payload with its slice of the block.
func (p *Packet) ReadDataFromBlock(block []byte, blockSize uint64) {
	p.mustFitBlock(block, blockSize)

	offset := p.Offset(blockSize)
	p.Data = make([]byte, p.Size)
	copy(p.Data, block[offset:offset+p.Size])
}

func (p *Packet) mustFitBlock(block []byte, blockSize uint64) {
	if uint64(len(block)) != blockSize {
		panic(fmt.Sprintf("block has %d bytes, expected %d",
			len(block), blockSize))
	}

	if !p.IsWithinBlock(blockSize) {
		panic(fmt.Sprintf("packet %s [0x%x, +%d) crosses a %d-byte block",
			p.ID, p.Addr, p.Size, blockSize))
	}
}

func (p *Packet) String() string {
	kind := "req"
	if p.IsResponse {
		kind = "rsp"
	}

	return fmt.Sprintf("%s %s %s 0x%x+%d", p.ID, kind, p.Cmd, p.Addr, p.Size)
}

// ReadReqBuilder can build read requests.
type ReadReqBuilder struct {
	src        string
	address    uint64
	byteSize   uint64
	noResponse bool
}

// WithSrc sets the name of the port that issues the request.
func (b ReadReqBuilder) WithSrc(src string) ReadReqBuilder {
	b.src = src
	return b
}

// WithAddress sets the address of the request to build.
func (b ReadReqBuilder) WithAddress(address uint64) ReadReqBuilder {
	b.address = address
	return b
}

// WithByteSize sets the byte size of the request to build.
func (b ReadReqBuilder) WithByteSize(byteSize uint64) ReadReqBuilder {
	b.byteSize = byteSize
	return b
}

// NoResponse marks the request as one that the receiver does not answer.
func (b ReadReqBuilder) NoResponse() ReadReqBuilder {
	b.noResponse = true
	return b
}

// Build creates a new read request.
func (b ReadReqBuilder) Build() *Packet {
	return &Packet{
		ID:            sim.GetIDGenerator().Generate(),
		Addr:          b.address,
		Size:          b.byteSize,
		Cmd:           CmdRead,
		NeedsResponse: !b.noResponse,
		Src:           b.src,
	}
}

// WriteReqBuilder can build write requests.
type WriteReqBuilder struct {
	src        string
	address    uint64
	data       []byte
	noResponse bool
}

// WithSrc sets the name of the port that issues the request.
func (b WriteReqBuilder) WithSrc(src string) WriteReqBuilder {
	b.src = src
	return b
}

// WithAddress sets the address of the request to build.
func (b WriteReqBuilder) WithAddress(address uint64) WriteReqBuilder {
	b.address = address
	return b
}

// WithData sets the data of the request to build.
func (b WriteReqBuilder) WithData(data []byte) WriteReqBuilder {
	b.data = data
	return b
}

// NoResponse marks the request as one that the receiver does not answer.
func (b WriteReqBuilder) NoResponse() WriteReqBuilder {
	b.noResponse = true
	return b
}

// Build creates a new write request. The size is the length of the data.
func (b WriteReqBuilder) Build() *Packet {
	return &Packet{
		ID:            sim.GetIDGenerator().Generate(),
		Addr:          b.address,
		Size:          uint64(len(b.data)),
		Cmd:           CmdWrite,
		NeedsResponse: !b.noResponse,
		Data:          b.data,
		Src:           b.src,
	}
}
