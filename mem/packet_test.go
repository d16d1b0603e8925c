package mem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rripcache/mem"
)

var _ = Describe("Packet", func() {
	It("should compute block arithmetic", func() {
		pkt := mem.ReadReqBuilder{}.
			WithAddress(0x1044).
			WithByteSize(8).
			Build()

		Expect(pkt.BlockAddr(64)).To(Equal(uint64(0x1040)))
		Expect(pkt.Offset(64)).To(Equal(uint64(4)))
		Expect(pkt.IsWithinBlock(64)).To(BeTrue())
		Expect(pkt.IsBlockAccess(64)).To(BeFalse())
		Expect(pkt.IsWithinBlock(8)).To(BeFalse())
	})

	It("should not wrap around on a huge size", func() {
		pkt := mem.ReadReqBuilder{}.
			WithAddress(0x1044).
			WithByteSize(^uint64(0) - 2).
			Build()

		Expect(pkt.IsWithinBlock(64)).To(BeFalse())
		Expect(func() { pkt.ReadDataFromBlock(make([]byte, 64), 64) }).
			To(PanicWith(ContainSubstring("crosses a 64-byte block")))
	})

	It("should build a read that needs a response", func() {
		pkt := mem.ReadReqBuilder{}.
			WithSrc("Agent.Mem").
			WithAddress(0x40).
			WithByteSize(64).
			Build()

		Expect(pkt.IsRead()).To(BeTrue())
		Expect(pkt.NeedsResponse).To(BeTrue())
		Expect(pkt.Src).To(Equal("Agent.Mem"))
		Expect(pkt.IsBlockAccess(64)).To(BeTrue())
	})

	It("should size a write by its data", func() {
		pkt := mem.WriteReqBuilder{}.
			WithAddress(0x42).
			WithData([]byte{9, 8}).
			NoResponse().
			Build()

		Expect(pkt.IsWrite()).To(BeTrue())
		Expect(pkt.Size).To(Equal(uint64(2)))
		Expect(pkt.NeedsResponse).To(BeFalse())
	})

	It("should move data in and out of a block", func() {
		block := make([]byte, 16)
		write := mem.WriteReqBuilder{}.
			WithAddress(0x106).
			WithData([]byte{1, 2, 3}).
			Build()
		write.WriteDataToBlock(block, 16)

		read := mem.ReadReqBuilder{}.
			WithAddress(0x105).
			WithByteSize(5).
			Build()
		read.ReadDataFromBlock(block, 16)

		Expect(read.Data).To(Equal([]byte{0, 1, 2, 3, 0}))
	})

	It("should panic when the packet crosses the block", func() {
		block := make([]byte, 16)
		read := mem.ReadReqBuilder{}.
			WithAddress(0x10c).
			WithByteSize(8).
			Build()

		Expect(func() { read.ReadDataFromBlock(block, 16) }).To(Panic())
	})

	It("should keep address and size when making a response", func() {
		read := mem.ReadReqBuilder{}.
			WithAddress(0x10c).
			WithByteSize(4).
			Build()

		read.MakeResponse()

		Expect(read.IsResponse).To(BeTrue())
		Expect(read.Addr).To(Equal(uint64(0x10c)))
		Expect(read.Size).To(Equal(uint64(4)))
		Expect(func() { read.MakeResponse() }).To(Panic())
	})

	It("should panic when making a response nobody waits for", func() {
		write := mem.WriteReqBuilder{}.
			WithData([]byte{1}).
			NoResponse().
			Build()

		Expect(func() { write.MakeResponse() }).To(Panic())
	})
})

var _ = Describe("AddrRange", func() {
	It("should be half open", func() {
		r := mem.AddrRange{Start: 0x100, End: 0x200}

		Expect(r.Contains(0x100)).To(BeTrue())
		Expect(r.Contains(0x1ff)).To(BeTrue())
		Expect(r.Contains(0x200)).To(BeFalse())
		Expect(r.Size()).To(Equal(uint64(0x100)))
	})
})
