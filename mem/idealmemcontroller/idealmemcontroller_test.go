package idealmemcontroller

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/rripcache/mem"
	"github.com/sarchlab/rripcache/sim"
)

var _ = Describe("Ideal Memory Controller", func() {
	var (
		mockCtrl      *gomock.Controller
		engine        *sim.SerialEngine
		requester     *MockRequestPort
		memController *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = sim.NewSerialEngine()
		requester = NewMockRequestPort(mockCtrl)
		requester.EXPECT().Name().Return("Requester").AnyTimes()

		memController = MakeBuilder().
			WithEngine(engine).
			WithNewStorage(1 * mem.MB).
			WithLatency(10).
			WithWidth(2).
			Build("MemCtrl")
		memController.TopPort().BindPeer(requester)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should process read request", func() {
		Expect(memController.Storage.Write(4, []byte{1, 2, 3, 4})).To(Succeed())
		req := mem.ReadReqBuilder{}.WithAddress(4).WithByteSize(4).Build()

		var respTime sim.VTimeInCycle
		requester.EXPECT().
			RecvResp(req).
			DoAndReturn(func(pkt *mem.Packet) bool {
				respTime = engine.CurrentTime()
				return true
			})

		Expect(memController.TopPort().RecvReq(req)).To(BeTrue())
		Expect(engine.Run()).To(Succeed())

		Expect(respTime).To(Equal(sim.VTimeInCycle(10)))
		Expect(req.IsResponse).To(BeTrue())
		Expect(req.Data).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should process write request", func() {
		req := mem.WriteReqBuilder{}.
			WithAddress(8).
			WithData([]byte{5, 6}).
			Build()
		requester.EXPECT().RecvResp(req).Return(true)

		memController.TopPort().RecvReq(req)
		Expect(engine.Run()).To(Succeed())

		data, err := memController.Storage.Read(8, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte{5, 6}))
		Expect(req.Data).To(Equal([]byte{5, 6}))
	})

	It("should not respond to a write without response", func() {
		req := mem.WriteReqBuilder{}.
			WithAddress(0).
			WithData([]byte{9}).
			NoResponse().
			Build()

		memController.TopPort().RecvReq(req)
		Expect(engine.Run()).To(Succeed())

		data, _ := memController.Storage.Read(0, 1)
		Expect(data).To(Equal([]byte{9}))
	})

	It("should reject requests beyond the width and retry", func() {
		reqs := []*mem.Packet{
			mem.ReadReqBuilder{}.WithAddress(0).WithByteSize(4).Build(),
			mem.ReadReqBuilder{}.WithAddress(4).WithByteSize(4).Build(),
			mem.ReadReqBuilder{}.WithAddress(8).WithByteSize(4).Build(),
		}

		Expect(memController.TopPort().RecvReq(reqs[0])).To(BeTrue())
		Expect(memController.TopPort().RecvReq(reqs[1])).To(BeTrue())
		Expect(memController.TopPort().RecvReq(reqs[2])).To(BeFalse())

		requester.EXPECT().RecvResp(reqs[0]).Return(true)
		requester.EXPECT().RecvResp(reqs[1]).Return(true)
		requester.EXPECT().RecvReqRetry()

		Expect(engine.Run()).To(Succeed())
	})

	It("should hold responses until the requester retries", func() {
		req := mem.ReadReqBuilder{}.WithAddress(0).WithByteSize(4).Build()

		requester.EXPECT().RecvResp(req).Return(false)
		memController.TopPort().RecvReq(req)
		Expect(engine.Run()).To(Succeed())

		requester.EXPECT().RecvResp(req).Return(true)
		memController.TopPort().RecvRespRetry()

		Expect(memController.respQueue).To(BeEmpty())
		Expect(memController.inflight).To(Equal(0))
	})

	It("should panic when reading beyond the capacity", func() {
		req := mem.ReadReqBuilder{}.
			WithAddress(2 * mem.MB).
			WithByteSize(4).
			Build()

		memController.TopPort().RecvReq(req)

		Expect(func() { _ = engine.Run() }).To(Panic())
	})

	It("should serve functional accesses immediately", func() {
		write := mem.WriteReqBuilder{}.
			WithAddress(16).
			WithData([]byte{7, 7}).
			Build()
		memController.TopPort().RecvFunctional(write)

		read := mem.ReadReqBuilder{}.WithAddress(16).WithByteSize(2).Build()
		memController.TopPort().RecvFunctional(read)

		Expect(read.IsResponse).To(BeTrue())
		Expect(read.Data).To(Equal([]byte{7, 7}))
	})

	It("should report its address range", func() {
		Expect(memController.TopPort().AddrRanges()).To(Equal(
			[]mem.AddrRange{{Start: 0, End: 1 * mem.MB}}))
	})
})
