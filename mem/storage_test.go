package mem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rripcache/mem"
)

var _ = Describe("Storage", func() {
	It("should read and write in single unit", func() {
		storage := mem.NewStorage(4096)
		Expect(storage.Write(0, []byte{1, 2, 3, 4})).To(Succeed())

		res, err := storage.Read(0, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]byte{1, 2}))

		res, _ = storage.Read(1, 2)
		Expect(res).To(Equal([]byte{2, 3}))
	})

	It("should read and write across units", func() {
		storage := mem.NewStorage(8192)
		Expect(storage.Write(4094, []byte{1, 2, 3, 4})).To(Succeed())

		res, err := storage.Read(4094, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should read zeros from untouched memory", func() {
		storage := mem.NewStorage(1 << 20)

		res, err := storage.Read(0x8000, 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(make([]byte, 8)))
	})

	It("should return error if accessing over the capacity", func() {
		storage := mem.NewStorage(4096)

		err := storage.Write(4095, []byte{1, 2})
		Expect(err).To(MatchError(mem.ErrAddressOutOfRange))

		_, err = storage.Read(4097, 1)
		Expect(err).To(MatchError(mem.ErrAddressOutOfRange))
	})
})
