package replacement_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rripcache/mem/cache/replacement"
)

var _ = Describe("SatCounter", func() {
	It("should stick at its bounds", func() {
		c := replacement.NewSatCounter(2, 0)

		c.Decrement()
		Expect(c.Value()).To(Equal(uint64(0)))

		c.Add(10)
		Expect(c.Value()).To(Equal(uint64(3)))
		Expect(c.IsSaturated()).To(BeTrue())

		c.Increment()
		Expect(c.Value()).To(Equal(uint64(3)))
	})

	It("should support the full width", func() {
		c := replacement.NewSatCounter(64, 0)
		c.Saturate()

		Expect(c.Value()).To(Equal(^uint64(0)))
	})

	It("should panic on invalid widths or values", func() {
		Expect(func() { replacement.NewSatCounter(0, 0) }).To(Panic())
		Expect(func() { replacement.NewSatCounter(65, 0) }).To(Panic())
		Expect(func() { replacement.NewSatCounter(2, 4) }).To(Panic())
	})
})
