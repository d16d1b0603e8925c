package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/rripcache/sim"
)

var _ = Describe("Api", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *MockNamedHookable
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewMockNamedHookable(mockCtrl)
		domain.EXPECT().NumHooks().Return(1).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic if ID is not given", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("", "123", domain, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should panic if domain is nil", func() {
		Expect(func() {
			StartTask("id", "123", nil, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should panic if domain's name is empty", func() {
		domain.EXPECT().Name().Return("").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should panic if kind or what is empty", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "", "what", nil)
		}).Should(Panic())
		Expect(func() {
			StartTask("id", "123", domain, "kind", "", nil)
		}).Should(Panic())
	})

	It("should start, step and end a task", func() {
		domain.EXPECT().Name().Return("Cache").AnyTimes()

		var got []sim.HookCtx
		domain.EXPECT().InvokeHook(gomock.Any()).
			Do(func(ctx sim.HookCtx) { got = append(got, ctx) }).
			Times(3)

		StartTask("1", "0", domain, "req_in", "read", nil)
		AddTaskStep("1", domain, "hit")
		EndTask("1", domain)

		Expect(got[0].Pos).To(Equal(HookPosTaskStart))
		Expect(got[0].Item.(Task).Location).To(Equal("Cache"))
		Expect(got[1].Item.(Task).Steps[0].What).To(Equal("hit"))
		Expect(got[2].Pos).To(Equal(HookPosTaskEnd))
	})

	It("should not invoke hooks when nobody listens", func() {
		silent := NewMockNamedHookable(mockCtrl)
		silent.EXPECT().NumHooks().Return(0).AnyTimes()

		StartTask("1", "", silent, "req_in", "read", nil)
		EndTask("1", silent)
	})

	It("should name a message at its receiver", func() {
		domain.EXPECT().Name().Return("Cache")

		Expect(MsgIDAtReceiver("42", domain)).To(Equal("42@Cache"))
	})
})

var _ = Describe("CollectTrace", func() {
	It("should attach a tracer only once", func() {
		base := sim.NewComponentBase("Cache")
		tracer := NewAverageTimeTracer(sim.NewSerialEngine(), AllTasks)

		CollectTrace(base, tracer)

		Expect(base.NumHooks()).To(Equal(1))
		Expect(func() { CollectTrace(base, tracer) }).To(Panic())
	})
})
