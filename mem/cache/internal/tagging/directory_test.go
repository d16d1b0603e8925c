package tagging

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rripcache/mem/cache/replacement"
)

func blockOf(value byte, size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = value
	}

	return data
}

var _ = Describe("Directory", func() {
	var (
		dir *Directory
	)

	BeforeEach(func() {
		dir = NewDirectory(4, 2, 64, replacement.NewSRRIP(2, false))
	})

	It("should report its geometry", func() {
		Expect(dir.NumSets()).To(Equal(4))
		Expect(dir.Capacity()).To(Equal(8))
		Expect(dir.Occupancy()).To(Equal(0))
		Expect(dir.SetOf(0x140)).To(Equal(1))
	})

	It("should find an installed block", func() {
		_, evicted := dir.Install(0x140, blockOf(7, 64))
		Expect(evicted).To(BeFalse())

		block, found := dir.Lookup(0x140)
		Expect(found).To(BeTrue())
		Expect(block.Tag).To(Equal(uint64(0x140)))
		Expect(block.SetID).To(Equal(1))
		Expect(block.Data).To(Equal(blockOf(7, 64)))
		Expect(block.IsDirty).To(BeFalse())
		Expect(dir.Occupancy()).To(Equal(1))
	})

	It("should not find a block that was never installed", func() {
		_, found := dir.Lookup(0x40)
		Expect(found).To(BeFalse())
	})

	It("should panic when installing a present block", func() {
		dir.Install(0x40, blockOf(1, 64))

		Expect(func() { dir.Install(0x40, blockOf(1, 64)) }).To(Panic())
	})

	It("should panic on unaligned addresses or wrong data size", func() {
		Expect(func() { dir.Install(0x44, blockOf(1, 64)) }).To(Panic())
		Expect(func() { dir.Install(0x40, blockOf(1, 32)) }).To(Panic())
	})

	It("should evict from a full set", func() {
		dir.Install(0x000, blockOf(1, 64))
		dir.Install(0x100, blockOf(2, 64))
		block, _ := dir.Lookup(0x000)
		block.IsDirty = true
		dir.Visit(block)

		eviction, evicted := dir.Install(0x200, blockOf(3, 64))

		Expect(evicted).To(BeTrue())
		Expect(eviction.Tag).To(Equal(uint64(0x100)))
		Expect(eviction.Data).To(Equal(blockOf(2, 64)))
		Expect(eviction.IsDirty).To(BeFalse())
		Expect(dir.Occupancy()).To(Equal(2))

		_, found := dir.Lookup(0x100)
		Expect(found).To(BeFalse())
		_, found = dir.Lookup(0x000)
		Expect(found).To(BeTrue())
	})

	It("should report dirty evictions", func() {
		dir.Install(0x000, blockOf(1, 64))
		dir.Install(0x100, blockOf(2, 64))
		for _, b := range dir.Set(0) {
			b.IsDirty = true
		}

		eviction, evicted := dir.Install(0x200, blockOf(3, 64))

		Expect(evicted).To(BeTrue())
		Expect(eviction.IsDirty).To(BeTrue())
		Expect(eviction.Tag).To(Equal(uint64(0x000)))
	})

	It("should reuse an invalidated line first", func() {
		dir.Install(0x000, blockOf(1, 64))
		dir.Install(0x100, blockOf(2, 64))
		block, _ := dir.Lookup(0x100)

		dir.Invalidate(block)
		Expect(dir.Occupancy()).To(Equal(1))

		_, evicted := dir.Install(0x300, blockOf(4, 64))
		Expect(evicted).To(BeFalse())
		Expect(block.Tag).To(Equal(uint64(0x300)))
	})

	It("should classify sets through a dueling policy", func() {
		policy := replacement.NewDRRIP(2, false, 5,
			replacement.NewDuelCounters(),
			replacement.NewSetDuelingClassifier(4),
			rand.New(rand.NewPCG(1, 2)))
		dueling := NewDirectory(8, 2, 64, policy)

		Expect(dueling.DuelClassOf(0)).To(Equal(replacement.DuelClassA))
		Expect(dueling.DuelClassOf(3)).To(Equal(replacement.DuelClassB))
		Expect(dir.DuelClassOf(0)).To(Equal(replacement.DuelClassFollower))
	})

	It("should keep occupancy bounded and monotonic until full", func() {
		rng := rand.New(rand.NewPCG(3, 5))
		prev := 0

		for i := 0; i < 500; i++ {
			addr := uint64(rng.IntN(64)) * 64
			if _, found := dir.Lookup(addr); found {
				continue
			}

			dir.Install(addr, blockOf(byte(i), 64))

			Expect(dir.Occupancy()).To(BeNumerically(">=", prev))
			Expect(dir.Occupancy()).To(BeNumerically("<=", dir.Capacity()))
			prev = dir.Occupancy()

			block, found := dir.Lookup(addr)
			Expect(found).To(BeTrue())
			Expect(block.Data).To(Equal(blockOf(byte(i), 64)))
		}

		Expect(dir.Occupancy()).To(Equal(dir.Capacity()))
	})

	It("should forget everything on reset", func() {
		dir.Install(0x000, blockOf(1, 64))

		dir.Reset()

		_, found := dir.Lookup(0x000)
		Expect(found).To(BeFalse())
		Expect(dir.Occupancy()).To(Equal(0))
	})
})
